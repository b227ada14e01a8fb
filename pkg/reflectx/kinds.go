// Package reflectx contains the reflection helpers used to check and compare
// values whose static type is only known as a type parameter.
package reflectx

import "reflect"

// IsNil reports whether v is nil or a nil pointer, map, slice, func, channel
// or interface.
func IsNil(v any) bool {
	if v == nil {
		return true
	}

	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return val.IsNil()
	}
	return false
}

// IsBool reports whether v holds a boolean, including named bool types.
func IsBool(v any) bool {
	return kindOf(v) == reflect.Bool
}

// IsString reports whether v holds a string, including named string types.
func IsString(v any) bool {
	return kindOf(v) == reflect.String
}

// IsNumber reports whether v holds any integer or floating point kind.
func IsNumber(v any) bool {
	switch kindOf(v) {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// IsPrimitive reports whether v is a bool, string or number.
func IsPrimitive(v any) bool {
	return IsBool(v) || IsString(v) || IsNumber(v)
}

func kindOf(v any) reflect.Kind {
	if v == nil {
		return reflect.Invalid
	}
	return reflect.TypeOf(v).Kind()
}
