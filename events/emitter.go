package events

import (
	"log/slog"
	"slices"

	"github.com/casualjim/tracked/internal/registry"
	"github.com/casualjim/tracked/pkg/slogx"
	"github.com/fogfish/opts"
)

// PanicHandler is called after a handler panicked during an emission.
type PanicHandler func(event string, recovered any)

type listener struct {
	key  any
	call func(any)
	once bool
}

// Emitter is the dispatch context shared by all brokers of one owner.
type Emitter struct {
	name         string
	events       registry.Registry[[]*listener]
	logger       *slog.Logger
	panicHandler PanicHandler
	metrics      *Metrics
}

// Option configures an Emitter.
type Option = opts.Option[Emitter]

// WithName labels the emitter in logs and metrics.
var WithName = opts.ForName[Emitter, string]("name")

// WithLogger sets the logger used to report recovered handler panics.
func WithLogger(logger *slog.Logger) Option {
	return opts.Type[Emitter](func(e *Emitter) error {
		e.logger = logger
		return nil
	})
}

// WithPanicHandler registers a callback invoked for every recovered handler panic.
func WithPanicHandler(fn PanicHandler) Option {
	return opts.Type[Emitter](func(e *Emitter) error {
		e.panicHandler = fn
		return nil
	})
}

// WithMetrics records emissions and recovered panics.
func WithMetrics(m *Metrics) Option {
	return opts.Type[Emitter](func(e *Emitter) error {
		e.metrics = m
		return nil
	})
}

// NewEmitter creates an Emitter. It panics when an option fails to apply.
func NewEmitter(options ...Option) *Emitter {
	em := &Emitter{
		name:   "default",
		events: registry.New[[]*listener](),
	}
	if err := opts.Apply(em, options); err != nil {
		panic(err)
	}
	if em.logger == nil {
		em.logger = slog.Default()
	}
	em.logger = em.logger.With(slogx.LoggerName("events"), slog.String("emitter", em.name))
	return em
}

// Name returns the label given with WithName.
func (e *Emitter) Name() string {
	return e.name
}

// EventNames returns the sorted names of the channels that have listeners.
func (e *Emitter) EventNames() []string {
	names := e.events.Names()
	slices.Sort(names)
	return names
}

// ListenerCount returns how many registrations exist for event.
func (e *Emitter) ListenerCount(event string) int {
	ls, _ := e.events.Get(event)
	return len(ls)
}

func (e *Emitter) add(event string, l *listener) {
	ls, _ := e.events.Get(event)
	e.events.Set(event, append(slices.Clip(ls), l))
}

func (e *Emitter) remove(event string, match func(*listener) bool) {
	ls, ok := e.events.Get(event)
	if !ok {
		return
	}
	kept := slices.DeleteFunc(slices.Clone(ls), match)
	if len(kept) == 0 {
		e.events.Del(event)
		return
	}
	e.events.Set(event, kept)
}

func (e *Emitter) removeKey(event string, key any) {
	e.remove(event, func(l *listener) bool { return l.key == key })
}

// emit invokes the listeners registered when the emission starts. Listeners
// added or removed by a handler take effect from the next emission.
func (e *Emitter) emit(event string, data any) bool {
	ls, ok := e.events.Get(event)
	if !ok || len(ls) == 0 {
		return false
	}
	e.metrics.emitted(e.name)

	for _, l := range slices.Clone(ls) {
		if l.once {
			e.remove(event, func(other *listener) bool { return other == l })
		}
		e.dispatch(event, l, data)
	}
	return true
}

func (e *Emitter) dispatch(event string, l *listener, data any) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("event handler panicked", slog.String("event", event), slogx.Panic(r))
			e.metrics.panicked(e.name)
			if e.panicHandler != nil {
				e.panicHandler(event, r)
			}
		}
	}()
	l.call(data)
}
