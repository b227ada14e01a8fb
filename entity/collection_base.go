package entity

import (
	"fmt"
	"slices"

	"github.com/casualjim/tracked/events"
	"github.com/casualjim/tracked/pkg/stdx"
)

// ItemEvent carries a single item.
type ItemEvent[T Entity] struct {
	Item T
}

// ItemsEvent carries the items added in one call.
type ItemsEvent[T Entity] struct {
	Items []T
}

// ItemIDChangedEvent is emitted when an item's id changed.
type ItemIDChangedEvent[T Entity] struct {
	Item T
	IDChangedEvent
}

// membership is implemented by the concrete collections. Each hook brings
// derived state in line with a membership change that was already applied and
// returns a func that publishes it, or nil. Hooks must not emit.
type membership[T Entity] interface {
	onItemsAdded(items []T, o AddOptions) func()
	onItemRemoved(item T) func()
	onItemIDChanged(e IDChangedEvent) func()
}

type itemWire struct {
	changed   *events.Handler[PropertyChangedEvent]
	idChanged *events.Handler[IDChangedEvent]
}

// CollectionBase holds the membership of a collection. It is embedded by
// Collection and OrderedCollection.
type CollectionBase[T Entity] struct {
	*Base
	items []T
	wires []itemWire
	hooks membership[T]

	itemChanged       *events.Broker[ItemEvent[T]]
	itemIDChanged     *events.Broker[ItemIDChangedEvent[T]]
	itemRemoved       *events.Broker[ItemEvent[T]]
	itemsAdded        *events.Broker[ItemsEvent[T]]
	collectionChanged *events.Broker[struct{}]
}

// newCollectionBase creates a collection named name whose persistent id is its
// name. It panics when items hold the same id twice.
func newCollectionBase[T Entity](name string, items []T, options ...Option) *CollectionBase[T] {
	base := NewBase(name, append([]Option{WithID(name)}, options...)...)
	em := base.Emitter()
	c := &CollectionBase[T]{
		Base:              base,
		itemChanged:       events.NewBroker[ItemEvent[T]](em),
		itemIDChanged:     events.NewBroker[ItemIDChangedEvent[T]](em),
		itemRemoved:       events.NewBroker[ItemEvent[T]](em),
		itemsAdded:        events.NewBroker[ItemsEvent[T]](em),
		collectionChanged: events.NewBroker[struct{}](em),
	}
	if err := c.checkNew(items); err != nil {
		panic(err)
	}
	c.items = slices.Clone(items)
	for _, item := range c.items {
		c.attachItem(item)
	}
	return c
}

func (c *CollectionBase[T]) ItemChanged() events.Source[ItemEvent[T]] {
	return c.itemChanged
}

func (c *CollectionBase[T]) ItemIDChanged() events.Source[ItemIDChangedEvent[T]] {
	return c.itemIDChanged
}

func (c *CollectionBase[T]) ItemRemoved() events.Source[ItemEvent[T]] {
	return c.itemRemoved
}

func (c *CollectionBase[T]) ItemsAdded() events.Source[ItemsEvent[T]] {
	return c.itemsAdded
}

// CollectionChanged fires after every membership or order change.
func (c *CollectionBase[T]) CollectionChanged() events.Source[struct{}] {
	return c.collectionChanged
}

// Item returns the item whose current id is id.
func (c *CollectionBase[T]) Item(id string) (T, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	return stdx.Zero[T](), false
}

// Len returns the number of items.
func (c *CollectionBase[T]) Len() int {
	return len(c.items)
}

func (c *CollectionBase[T]) IsEmpty() bool {
	return len(c.items) == 0
}

// NewItems returns the items that have no persistent id yet.
func (c *CollectionBase[T]) NewItems() []T {
	return c.filter(func(item T) bool { return item.IsNew() })
}

// OldItems returns the items that have a persistent id.
func (c *CollectionBase[T]) OldItems() []T {
	return c.filter(func(item T) bool { return !item.IsNew() })
}

// AddItems appends items and emits ItemsAdded followed by CollectionChanged.
// When an id is already taken the whole batch is rejected with an error
// wrapping ErrItemExists, unless KeepExistingItems is set. Ordered collections
// insert the items at StartIndex, or at the end.
func (c *CollectionBase[T]) AddItems(items []T, options ...AddOption) error {
	return c.add(items, applyAddOptions(options))
}

func (c *CollectionBase[T]) add(items []T, o AddOptions) error {
	if len(items) == 0 {
		return nil
	}

	toAdd := items
	if o.KeepExistingItems {
		toAdd = make([]T, 0, len(items))
		seen := make(map[string]struct{}, len(items))
		for _, item := range items {
			if _, dup := seen[item.ID()]; dup || c.indexOf(item.ID()) >= 0 {
				continue
			}
			seen[item.ID()] = struct{}{}
			toAdd = append(toAdd, item)
		}
	}
	if len(toAdd) == 0 {
		return nil
	}
	if err := c.checkNew(toAdd); err != nil {
		return err
	}

	c.items = slices.Concat(c.items, toAdd)
	for _, item := range toAdd {
		c.attachItem(item)
	}
	notify := c.hooks.onItemsAdded(toAdd, o)

	c.itemsAdded.Emit(ItemsEvent[T]{Items: slices.Clone(toAdd)})
	c.collectionChanged.Emit(struct{}{})
	if notify != nil {
		notify()
	}
	return nil
}

// RemoveItem removes the item with id, detaches it and emits ItemRemoved
// followed by CollectionChanged.
func (c *CollectionBase[T]) RemoveItem(id string) (T, error) {
	i := c.indexOf(id)
	if i < 0 {
		return stdx.Zero[T](), fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}

	item := c.items[i]
	c.detachItem(i)
	c.items = slices.Delete(slices.Clone(c.items), i, i+1)
	c.wires = slices.Delete(c.wires, i, i+1)
	notify := c.hooks.onItemRemoved(item)

	c.itemRemoved.Emit(ItemEvent[T]{Item: item})
	c.collectionChanged.Emit(struct{}{})
	if notify != nil {
		notify()
	}
	return item, nil
}

// RemoveAllItems removes the items one at a time, so every item produces its
// own ItemRemoved and CollectionChanged.
func (c *CollectionBase[T]) RemoveAllItems() {
	ids := make([]string, len(c.items))
	for i, item := range c.items {
		ids[i] = item.ID()
	}
	for _, id := range ids {
		_, _ = c.RemoveItem(id)
	}
}

// ReplaceAllItems removes every item and adds items.
func (c *CollectionBase[T]) ReplaceAllItems(items []T, options ...AddOption) error {
	c.RemoveAllItems()
	return c.AddItems(items, options...)
}

// IsChanged reports whether a property of the collection or any item changed.
func (c *CollectionBase[T]) IsChanged() bool {
	return c.Base.IsChanged() || slices.ContainsFunc(c.items, func(item T) bool { return item.IsChanged() })
}

func (c *CollectionBase[T]) Commit() {
	c.Base.Commit()
	for _, item := range c.items {
		item.Commit()
	}
}

func (c *CollectionBase[T]) Restore() {
	c.Base.Restore()
	for _, item := range c.items {
		item.Restore()
	}
}

// ChangedProps reports the collection's own changes followed by those of its
// items in insertion order.
func (c *CollectionBase[T]) ChangedProps() []EntityChangedProps {
	result := c.Base.ChangedProps()
	for _, item := range c.items {
		result = append(result, item.ChangedProps()...)
	}
	return result
}

// checkNew fails for the first item whose id is held or repeated in items.
func (c *CollectionBase[T]) checkNew(items []T) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		id := item.ID()
		if _, dup := seen[id]; dup || c.indexOf(id) >= 0 {
			return fmt.Errorf("%w: item with id %s already exists", ErrItemExists, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func (c *CollectionBase[T]) indexOf(id string) int {
	return slices.IndexFunc(c.items, func(item T) bool { return item.ID() == id })
}

func (c *CollectionBase[T]) filter(keep func(T) bool) []T {
	var result []T
	for _, item := range c.items {
		if keep(item) {
			result = append(result, item)
		}
	}
	return result
}

func (c *CollectionBase[T]) attachItem(item T) {
	w := itemWire{
		changed: events.NewHandler(func(PropertyChangedEvent) {
			c.itemChanged.Emit(ItemEvent[T]{Item: item})
		}),
		idChanged: events.NewHandler(func(e IDChangedEvent) {
			c.handleIDChanged(item, e)
		}),
	}
	c.attach(item)
	item.PropertyChanged().Register(w.changed)
	item.IDChanged().Register(w.idChanged)
	c.wires = append(c.wires, w)
}

func (c *CollectionBase[T]) detachItem(i int) {
	item, w := c.items[i], c.wires[i]
	c.detach(item)
	item.PropertyChanged().Unregister(w.changed)
	item.IDChanged().Unregister(w.idChanged)
}

func (c *CollectionBase[T]) handleIDChanged(item T, e IDChangedEvent) {
	notify := c.hooks.onItemIDChanged(e)
	c.itemIDChanged.Emit(ItemIDChangedEvent[T]{Item: item, IDChangedEvent: e})
	if notify != nil {
		notify()
	}
}
