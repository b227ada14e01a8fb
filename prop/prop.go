package prop

import (
	"github.com/casualjim/tracked/events"
	"github.com/casualjim/tracked/pkg/reflectx"
)

var _ Settable[int] = (*Prop[int])(nil)

// Prop is a settable broker.
type Prop[T any] struct {
	*Readable[T]
}

// NewProp creates a settable broker bound to emitter.
func NewProp[T any](emitter *events.Emitter, initial T, options ...Option[T]) *Prop[T] {
	return &Prop[T]{Readable: NewReadable(emitter, initial, options...)}
}

// Set stores value when the gate accepts it and it is not the current value.
// It reports whether the value changed. The identity check is shallow, see
// reflectx.SameValue.
func (p *Prop[T]) Set(value T, options ...SetOption) bool {
	if !p.gate(value) {
		return false
	}
	if reflectx.Same(p.value, value) {
		return false
	}
	p.store(value, applySetOptions(options))
	return true
}
