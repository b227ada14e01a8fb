package entity

var _ Entity = (*Collection[*Base])(nil)

// Collection keeps its items in insertion order.
type Collection[T Entity] struct {
	*CollectionBase[T]
}

// NewCollection creates a collection holding items. It panics when two items
// share an id.
func NewCollection[T Entity](name string, items []T, options ...Option) *Collection[T] {
	c := &Collection[T]{CollectionBase: newCollectionBase(name, items, options...)}
	c.hooks = c
	return c
}

// Items returns the backing slice. Mutations replace it rather than writing
// to it, so a returned slice is a stable snapshot.
func (c *Collection[T]) Items() []T {
	return c.items
}

func (c *Collection[T]) onItemsAdded([]T, AddOptions) func()   { return nil }
func (c *Collection[T]) onItemRemoved(T) func()                { return nil }
func (c *Collection[T]) onItemIDChanged(IDChangedEvent) func() { return nil }
