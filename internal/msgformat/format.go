package msgformat

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Format renders a heterogeneous argument list as one display string.
// Each argument is rendered with Value and the results are joined with a space.
func Format(args ...any) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, Value(arg))
	}
	return strings.Join(parts, " ")
}

// Value renders a single argument. Primitive-like values use their natural
// string form; composite values are serialized as indented JSON. When
// serialization fails the value falls back to a form that never recurses.
func Value(val any) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = opaque(val)
		}
	}()

	switch v := val.(type) {
	case nil:
		return "<nil>"
	case string:
		return v
	case []byte:
		return string(v)
	case error:
		return v.Error()
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return v.String()
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, uintptr, float32, float64, complex64, complex128:
		return fmt.Sprint(v)
	}

	if !isComposite(val) {
		return fmt.Sprint(val)
	}
	data, err := json.MarshalIndent(val, "", "  ")
	if err != nil {
		return opaque(val)
	}
	// JSON skips unexported fields, which would show a populated struct as {}.
	if string(data) == "{}" {
		if rv := deref(val); rv.Kind() == reflect.Struct && rv.NumField() > 0 {
			return fmt.Sprintf("%+v", val)
		}
	}
	return string(data)
}

func deref(val any) reflect.Value {
	rv := reflect.ValueOf(val)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

func isComposite(val any) bool {
	rv := deref(val)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return true
	default:
		return false
	}
}

// opaque names the value's type without walking it; fmt would recurse
// forever on a map that contains itself.
func opaque(val any) string {
	return fmt.Sprintf("[%T]", val)
}
