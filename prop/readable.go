package prop

import (
	"fmt"
	"maps"
	"slices"

	"github.com/casualjim/tracked/events"
	"github.com/casualjim/tracked/pkg/reflectx"
)

// ValueChanged is emitted after a broker stored a new value.
type ValueChanged[T any] struct {
	Value T
}

// Value is the read side of a property broker.
type Value[T any] interface {
	events.Source[ValueChanged[T]]
	Get() T
	Serialize() (string, bool)
	IsValid() bool
	Violations() []Violation
	ViolationsChanged() events.Source[[]Violation]
	MetadataValue(key string) (any, bool)
}

// Settable is a Value that can be changed.
type Settable[T any] interface {
	Value[T]
	Set(value T, options ...SetOption) bool
}

// tracker is notified by a broker while it stores a value. Restorable uses it
// for dirty tracking.
type tracker[T any] interface {
	beforeStore(value T)
	commitStored()
}

var _ Value[int] = (*Readable[int])(nil)

// Readable holds a value with its violations and metadata.
type Readable[T any] struct {
	value             T
	changed           *events.Broker[ValueChanged[T]]
	violationsChanged *events.Broker[[]Violation]
	gate              func(T) bool
	serializer        func(Value[T]) string
	rules             []Rule[T]
	violations        []Violation
	metadata          map[string]any
	tracker           tracker[T]
}

// NewReadable creates a read only broker bound to emitter.
func NewReadable[T any](emitter *events.Emitter, initial T, options ...Option[T]) *Readable[T] {
	s := applyOptions(options)

	var brokerOpts []events.BrokerOption
	if s.eventName != "" {
		brokerOpts = append(brokerOpts, events.WithEventName(s.eventName))
	}

	r := &Readable[T]{
		value:             initial,
		changed:           events.NewBroker[ValueChanged[T]](emitter, brokerOpts...),
		violationsChanged: events.NewBroker[[]Violation](emitter),
		gate:              resolveGate[T](s.gate),
		serializer:        s.serializer,
		rules:             s.rules,
		metadata:          make(map[string]any),
	}
	for _, rule := range s.rules {
		maps.Copy(r.metadata, rule.Metadata)
	}
	if r.revalidate() {
		r.violationsChanged.Emit(r.Violations())
	}
	return r
}

// Get returns the current value.
func (r *Readable[T]) Get() T {
	return r.value
}

// Register attaches h to the value-changed event.
func (r *Readable[T]) Register(h *events.Handler[ValueChanged[T]]) events.UnregisterFunc {
	return r.changed.Register(h)
}

// RegisterOnce attaches h to the next value-changed event.
func (r *Readable[T]) RegisterOnce(h *events.Handler[ValueChanged[T]]) events.UnregisterFunc {
	return r.changed.RegisterOnce(h)
}

// Unregister detaches h from the value-changed event.
func (r *Readable[T]) Unregister(h *events.Handler[ValueChanged[T]]) {
	r.changed.Unregister(h)
}

// On registers fn for value changes.
func (r *Readable[T]) On(fn func(ValueChanged[T])) events.UnregisterFunc {
	return r.changed.On(fn)
}

// ViolationsChanged fires with the new violations whenever they differ from
// the previous ones. The payload is nil once the value is valid again.
func (r *Readable[T]) ViolationsChanged() events.Source[[]Violation] {
	return r.violationsChanged
}

// IsValid reports whether no rule reported a violation for the current value.
func (r *Readable[T]) IsValid() bool {
	return len(r.violations) == 0
}

// Violations returns the violations of the current value, or nil.
func (r *Readable[T]) Violations() []Violation {
	if len(r.violations) == 0 {
		return nil
	}
	return slices.Clone(r.violations)
}

// MetadataValue returns metadata attached by a rule. When several rules set
// the same key the last one wins.
func (r *Readable[T]) MetadataValue(key string) (any, bool) {
	v, ok := r.metadata[key]
	return v, ok
}

// Serialize renders the value with the configured serializer. Without one,
// strings, numbers and booleans are formatted and anything else reports false.
func (r *Readable[T]) Serialize() (string, bool) {
	if r.serializer != nil {
		return r.serializer(r), true
	}
	if reflectx.IsPrimitive(any(r.value)) {
		return fmt.Sprint(r.value), true
	}
	return "", false
}

// Notify emits the value-changed event for the current value.
func (r *Readable[T]) Notify() {
	r.emitValueChanged()
}

func (r *Readable[T]) emitValueChanged() {
	r.changed.Emit(ValueChanged[T]{Value: r.value})
}

// revalidate recomputes the violations and reports whether they changed.
func (r *Readable[T]) revalidate() bool {
	var results []Violation
	for _, rule := range r.rules {
		if rule.Validate == nil {
			continue
		}
		if v := rule.Validate(r.value); v != nil {
			results = append(results, *v)
		}
	}
	if reflectx.Equal(results, r.violations) {
		return false
	}
	r.violations = results
	return true
}

// store applies value completely before any event is emitted, so handlers
// always observe the new value, its violations and its dirty state.
func (r *Readable[T]) store(value T, o SetOptions) {
	if r.tracker != nil {
		r.tracker.beforeStore(value)
	}
	r.value = value
	if o.Commit && r.tracker != nil {
		r.tracker.commitStored()
	}
	violationsChanged := r.revalidate()

	if !o.Silent {
		r.emitValueChanged()
	}
	if violationsChanged {
		r.violationsChanged.Emit(r.Violations())
	}
}
