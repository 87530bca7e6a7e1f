package scripthelpers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dop251/goja"
)

// BuildMessageFromArgs renders console arguments from a script as one line.
func BuildMessageFromArgs(vm *goja.Runtime, args []goja.Value) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, ValueToString(vm, arg))
	}
	return strings.Join(parts, " ")
}

// ValueToString renders a script value the way the console displays it:
// primitives by their string form, functions by their source, and other
// objects as indented JSON. Objects JSON cannot represent (cycles, BigInt
// members) fall back to "[object <Class>]".
func ValueToString(vm *goja.Runtime, val goja.Value) (out string) {
	if val == nil || goja.IsUndefined(val) {
		return "undefined"
	}
	if goja.IsNull(val) {
		return "null"
	}
	obj, ok := val.(*goja.Object)
	if !ok {
		return val.String()
	}
	defer func() {
		if r := recover(); r != nil {
			out = opaque(obj)
		}
	}()
	if _, isFn := goja.AssertFunction(obj); isFn {
		return obj.String()
	}
	if vm == nil {
		return opaque(obj)
	}
	stringify, ok := goja.AssertFunction(vm.Get("JSON").ToObject(vm).Get("stringify"))
	if !ok {
		return opaque(obj)
	}
	res, err := stringify(goja.Undefined(), obj, goja.Null(), vm.ToValue(2))
	if err != nil || res == nil || goja.IsUndefined(res) {
		return opaque(obj)
	}
	return res.String()
}

func opaque(obj *goja.Object) string {
	return fmt.Sprintf("[object %s]", obj.ClassName())
}

var declarationPattern = regexp.MustCompile(`^\s*(?:let|const|var|class|function|async\s+function)\b`)

// IsDeclaration reports whether src starts with a declaration keyword.
func IsDeclaration(src string) bool {
	return declarationPattern.MatchString(src)
}
