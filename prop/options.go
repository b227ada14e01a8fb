package prop

import "github.com/fogfish/opts"

type settings[T any] struct {
	gate       Gate
	serializer func(Value[T]) string
	rules      []Rule[T]
	eventName  string
}

// Option configures a property broker holding a T.
type Option[T any] = opts.Option[settings[T]]

// WithKind gates Set with a builtin type check.
func WithKind[T any](kind Kind) Option[T] {
	return opts.Type[settings[T]](func(s *settings[T]) error {
		s.gate = kind
		return nil
	})
}

// WithPredicate gates Set with fn. Values it rejects are not stored.
func WithPredicate[T any](fn func(T) bool) Option[T] {
	return opts.Type[settings[T]](func(s *settings[T]) error {
		s.gate = Predicate[T](fn)
		return nil
	})
}

// WithSerializer replaces the default serialization of the value.
func WithSerializer[T any](fn func(Value[T]) string) Option[T] {
	return opts.Type[settings[T]](func(s *settings[T]) error {
		s.serializer = fn
		return nil
	})
}

// WithValidators appends advisory rules. They run in order after every
// accepted Set, on construction and on Restore.
func WithValidators[T any](rules ...Rule[T]) Option[T] {
	return opts.Type[settings[T]](func(s *settings[T]) error {
		s.rules = append(s.rules, rules...)
		return nil
	})
}

// WithEventName fixes the name of the value-changed channel.
func WithEventName[T any](name string) Option[T] {
	return opts.Type[settings[T]](func(s *settings[T]) error {
		s.eventName = name
		return nil
	})
}

func applyOptions[T any](options []Option[T]) settings[T] {
	var s settings[T]
	if err := opts.Apply(&s, options); err != nil {
		panic(err)
	}
	return s
}

// SetOptions modifies a single Set call.
type SetOptions struct {
	// Silent stores the value and recomputes violations without emitting the
	// value-changed event.
	Silent bool
	// Commit promotes the new value to the stored default in the same call.
	// Only restorable brokers honour it.
	Commit bool
}

// SetOption configures a Set call.
type SetOption = opts.Option[SetOptions]

var (
	// Silent suppresses the value-changed event of a Set.
	Silent = opts.ForName[SetOptions, bool]("Silent")
	// Commit commits a restorable broker right after the value is stored.
	Commit = opts.ForName[SetOptions, bool]("Commit")
)

func applySetOptions(options []SetOption) SetOptions {
	var o SetOptions
	if len(options) == 0 {
		return o
	}
	if err := opts.Apply(&o, options); err != nil {
		panic(err)
	}
	return o
}
