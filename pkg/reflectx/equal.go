package reflectx

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// SameValue is a shallow identity check.
//
// Comparable values are compared with ==. Slices, maps, pointers, channels and
// funcs are the same only when they share the same underlying storage, so two
// structurally equal but distinct slices are not the same value. Empty non-nil
// slices are never the same, since distinct ones may share a data pointer. Values whose
// type is not comparable (structs holding slices, for example) are never the same.
func SameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Slice:
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() == vb.IsNil()
		}
		if va.Len() == 0 || vb.Len() == 0 {
			return false
		}
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Map, reflect.Ptr, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	}

	if !va.Type().Comparable() {
		return false
	}
	return comparableEqual(a, b)
}

// Same is the typed form of SameValue.
func Same[T any](a, b T) bool {
	return SameValue(any(a), any(b))
}

// comparableEqual guards against interface fields that hold non-comparable
// values, which make == panic at runtime.
func comparableEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

var equalOpts = []cmp.Option{
	cmpopts.EquateEmpty(),
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

// Equal is a deep structural comparison. Nil and empty slices or maps are
// considered equal and unexported struct fields take part in the comparison.
func Equal[T any](a, b T) bool {
	return cmp.Equal(a, b, equalOpts...)
}
