package entity

import (
	"github.com/casualjim/tracked/prop"
)

type todo struct {
	*Base
	title *prop.Restorable[string]
	done  *prop.Restorable[bool]
}

func newTodo(title string, options ...Option) *todo {
	t := &todo{Base: NewBase("todo", options...)}
	t.title = NewProp(t.Base, "title", title)
	t.done = NewProp(t.Base, "done", false)
	return t
}

func todos(titles ...string) []*todo {
	result := make([]*todo, len(titles))
	for i, title := range titles {
		result[i] = newTodo(title, WithID(title))
	}
	return result
}

func ids[T Entity](items []T) []string {
	result := make([]string, len(items))
	for i, item := range items {
		result[i] = item.ID()
	}
	return result
}
