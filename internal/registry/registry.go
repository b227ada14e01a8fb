// Package registry is a name keyed table of values.
package registry

import "github.com/alphadose/haxmap"

type Registry[T any] interface {
	Get(name string) (T, bool)
	Set(name string, value T)
	Del(name string)
	Names() []string
}

type registry[T any] struct {
	values *haxmap.Map[string, T]
}

func New[T any]() Registry[T] {
	return &registry[T]{
		values: haxmap.New[string, T](),
	}
}

func (r *registry[T]) Get(name string) (T, bool) {
	return r.values.Get(name)
}

func (r *registry[T]) Set(name string, value T) {
	r.values.Set(name, value)
}

func (r *registry[T]) Del(name string) {
	r.values.Del(name)
}

func (r *registry[T]) Names() []string {
	names := make([]string, 0, r.values.Len())
	r.values.ForEach(func(name string, _ T) bool {
		names = append(names, name)
		return true
	})
	return names
}
