// Package stdx holds small generic helpers that the standard library lacks.
package stdx

// Zero returns the zero value for T.
func Zero[T any]() T {
	var zero T
	return zero
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}

// Must panics when err is not nil and returns v otherwise. Use it for
// failures that indicate a programming error, like a broken embedded asset.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
