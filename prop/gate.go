package prop

import "github.com/casualjim/tracked/pkg/reflectx"

// Gate is the master predicate of a settable broker. It is either a builtin
// Kind or a Predicate for the broker's value type.
type Gate interface {
	isGate()
}

// Kind names a builtin type check.
type Kind string

const (
	KindBoolean      Kind = "boolean"
	KindString       Kind = "string"
	KindNumber       Kind = "number"
	KindNotUndefined Kind = "notUndefined"
)

func (Kind) isGate() {}

// Predicate accepts or rejects a candidate value.
type Predicate[T any] func(T) bool

func (Predicate[T]) isGate() {}

func acceptAll[T any](T) bool { return true }

// resolveGate turns a Gate into the check Set runs. A missing gate, an unknown
// kind or a predicate for another value type accept everything.
func resolveGate[T any](g Gate) func(T) bool {
	switch g := g.(type) {
	case Kind:
		switch g {
		case KindBoolean:
			return func(v T) bool { return reflectx.IsBool(any(v)) }
		case KindString:
			return func(v T) bool { return reflectx.IsString(any(v)) }
		case KindNumber:
			return func(v T) bool { return reflectx.IsNumber(any(v)) }
		case KindNotUndefined:
			return func(v T) bool { return !reflectx.IsNil(any(v)) }
		}
	case Predicate[T]:
		if g != nil {
			return g
		}
	}
	return acceptAll[T]
}
