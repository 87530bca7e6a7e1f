package scripthelpers

import (
	"strings"
	"testing"

	"github.com/dop251/goja"
)

func TestBuildMessageFromArgs(t *testing.T) {
	vm := goja.New()
	args := []goja.Value{vm.ToValue("hello"), vm.ToValue(2), goja.Undefined(), goja.Null(), vm.ToValue(true)}
	if got := BuildMessageFromArgs(vm, args); got != "hello 2 undefined null true" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := BuildMessageFromArgs(vm, nil); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestValueToStringObjectIsIndentedJSON(t *testing.T) {
	vm := goja.New()
	val, err := vm.RunString(`({a: 1, b: [1, 2]})`)
	if err != nil {
		t.Fatalf("RunString: %v", err)
	}
	want := "{\n  \"a\": 1,\n  \"b\": [\n    1,\n    2\n  ]\n}"
	if got := ValueToString(vm, val); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestValueToStringCyclicObjectFallsBack(t *testing.T) {
	vm := goja.New()
	val, err := vm.RunString(`var o = {}; o.self = o; o`)
	if err != nil {
		t.Fatalf("RunString: %v", err)
	}
	if got := ValueToString(vm, val); got != "[object Object]" {
		t.Fatalf("got %q", got)
	}
}

func TestValueToStringFunctionUsesSource(t *testing.T) {
	vm := goja.New()
	val, err := vm.RunString(`(function add(a, b) { return a + b })`)
	if err != nil {
		t.Fatalf("RunString: %v", err)
	}
	if got := ValueToString(vm, val); !strings.Contains(got, "return a + b") {
		t.Fatalf("got %q", got)
	}
}

func TestIsDeclaration(t *testing.T) {
	for _, src := range []string{"let x = 1;", "  const y = 2", "var z", "function f() {}", "class A {}", "async function g() {}"} {
		if !IsDeclaration(src) {
			t.Fatalf("expected declaration: %q", src)
		}
	}
	for _, src := range []string{"x + 1", "letter = 1", "functional()", "console.log('let')", ""} {
		if IsDeclaration(src) {
			t.Fatalf("unexpected declaration: %q", src)
		}
	}
}
