package events

import (
	"github.com/casualjim/tracked/pkg/uuidx"
	"github.com/fogfish/opts"
)

var _ Source[struct{}] = (*Broker[struct{}])(nil)

// Broker is a named, typed channel on an Emitter.
type Broker[T any] struct {
	emitter   *Emitter
	eventName string
}

// BrokerOptions holds the settings a Broker is created with.
type BrokerOptions struct {
	EventName string
}

// BrokerOption configures a Broker.
type BrokerOption = opts.Option[BrokerOptions]

// WithEventName fixes the channel name instead of generating one.
var WithEventName = opts.ForName[BrokerOptions, string]("EventName")

// NewBroker creates a broker bound to emitter.
func NewBroker[T any](emitter *Emitter, options ...BrokerOption) *Broker[T] {
	var o BrokerOptions
	if err := opts.Apply(&o, options); err != nil {
		panic(err)
	}
	if o.EventName == "" {
		o.EventName = uuidx.NewString()
	}
	return &Broker[T]{emitter: emitter, eventName: o.EventName}
}

// EventName returns the channel name on the emitter.
func (b *Broker[T]) EventName() string {
	return b.eventName
}

// Register attaches h. A handler that is already registered is moved to the
// end of the list instead of being added twice.
func (b *Broker[T]) Register(h *Handler[T]) UnregisterFunc {
	b.Unregister(h)
	b.emitter.add(b.eventName, b.listener(h, false))
	return func() { b.Unregister(h) }
}

// RegisterOnce attaches h for the next emission only.
func (b *Broker[T]) RegisterOnce(h *Handler[T]) UnregisterFunc {
	b.emitter.add(b.eventName, b.listener(h, true))
	return func() { b.Unregister(h) }
}

// Unregister detaches h. It does nothing when h is not registered.
func (b *Broker[T]) Unregister(h *Handler[T]) {
	b.emitter.removeKey(b.eventName, h)
}

// On registers fn under a fresh handler.
func (b *Broker[T]) On(fn func(T)) UnregisterFunc {
	return b.Register(NewHandler(fn))
}

// Emit delivers data to every registered handler before returning.
func (b *Broker[T]) Emit(data T) {
	b.emitter.emit(b.eventName, data)
}

// HasHandlers reports whether anything is registered on the broker.
func (b *Broker[T]) HasHandlers() bool {
	return b.emitter.ListenerCount(b.eventName) > 0
}

func (b *Broker[T]) listener(h *Handler[T], once bool) *listener {
	return &listener{
		key:  h,
		once: once,
		call: func(data any) {
			v, _ := data.(T)
			h.fn(v)
		},
	}
}
