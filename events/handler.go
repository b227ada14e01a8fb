package events

// Handler wraps a callback so that it can be identified when it is
// unregistered or registered again.
type Handler[T any] struct {
	fn func(T)
}

// NewHandler wraps fn. Keep the returned pointer around to unregister it.
func NewHandler[T any](fn func(T)) *Handler[T] {
	return &Handler[T]{fn: fn}
}

// UnregisterFunc removes the registration it was returned for.
// Calling it more than once is harmless.
type UnregisterFunc func()

// Source is the subscriber side of a Broker. Owners hand out a Source so that
// consumers can listen without being able to emit.
type Source[T any] interface {
	Register(h *Handler[T]) UnregisterFunc
	RegisterOnce(h *Handler[T]) UnregisterFunc
	Unregister(h *Handler[T])
	On(fn func(T)) UnregisterFunc
}
