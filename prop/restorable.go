package prop

import (
	"github.com/casualjim/tracked/events"
	"github.com/casualjim/tracked/internal/clock"
	"github.com/casualjim/tracked/pkg/reflectx"
)

// Tracked is a Settable with dirty tracking against a stored default.
type Tracked[T any] interface {
	Settable[T]
	IsChanged() bool
	Commit()
	Restore()
	ResetToDefault() bool
	StoredValue() T
}

var _ Tracked[int] = (*Restorable[int])(nil)

// Restorable tracks whether its value diverged from the stored default.
//
// Divergence is kept as a pair of logical timestamps instead of a value
// comparison: a Set back to a value deeply equal to the default rewinds the
// change stamp to the commit stamp.
type Restorable[T any] struct {
	*Prop[T]
	stored      T
	lastChanged uint64
	lastCommit  uint64
}

// NewRestorable creates a restorable broker. initial becomes the default.
func NewRestorable[T any](emitter *events.Emitter, initial T, options ...Option[T]) *Restorable[T] {
	r := &Restorable[T]{
		Prop:   NewProp(emitter, initial, options...),
		stored: initial,
	}
	r.tracker = r
	return r
}

// StoredValue returns the default the broker restores to.
func (r *Restorable[T]) StoredValue() T {
	return r.stored
}

// IsChanged reports whether the value diverged from the default since the
// last commit.
func (r *Restorable[T]) IsChanged() bool {
	return r.lastChanged > r.lastCommit
}

// ResetToDefault sets the value back to the default through Set.
func (r *Restorable[T]) ResetToDefault() bool {
	return r.Set(r.stored)
}

// Restore discards the uncommitted value.
func (r *Restorable[T]) Restore() {
	r.ResetToDefault()
}

// Commit promotes the current value to the default when the two differ
// deeply. It emits the value-changed event even though the value did not
// move, so listeners learn that the baseline advanced.
func (r *Restorable[T]) Commit() {
	if reflectx.Equal(r.stored, r.value) {
		return
	}
	r.commitStored()
	r.emitValueChanged()
}

func (r *Restorable[T]) beforeStore(value T) {
	if reflectx.Equal(value, r.stored) {
		r.lastChanged = r.lastCommit
		return
	}
	r.lastChanged = clock.Tick()
}

func (r *Restorable[T]) commitStored() {
	r.stored = r.value
	r.lastCommit = clock.Tick()
}
