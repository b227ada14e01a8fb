package prop

import "github.com/goccy/go-json"

// JSONSerializer renders the value as JSON. It is meant for structured values
// that have no default serialization. Values that cannot be encoded serialize
// to the empty string.
func JSONSerializer[T any]() func(Value[T]) string {
	return func(v Value[T]) string {
		b, err := json.Marshal(v.Get())
		if err != nil {
			return ""
		}
		return string(b)
	}
}
