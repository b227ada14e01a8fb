package entity

import (
	"fmt"
	"slices"

	"github.com/casualjim/tracked/pkg/stdx"
	"github.com/casualjim/tracked/prop"
)

// OrderPropName is the property holding the order of an OrderedCollection.
const OrderPropName = "order"

var _ Entity = (*OrderedCollection[*Base])(nil)

// OrderedCollection keeps an explicit order of its item ids. The order is a
// restorable property, so reordering is dirty tracked, committed and restored
// like any other property.
type OrderedCollection[T Entity] struct {
	*CollectionBase[T]
	order *prop.Restorable[[]string]
}

// NewOrderedCollection creates an ordered collection holding items in the
// given order. It panics when two items share an id.
func NewOrderedCollection[T Entity](name string, items []T, options ...Option) *OrderedCollection[T] {
	c := &OrderedCollection[T]{CollectionBase: newCollectionBase(name, items, options...)}
	c.hooks = c

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID()
	}
	c.order = NewProp(c.Base, OrderPropName, ids)
	c.order.On(func(prop.ValueChanged[[]string]) {
		c.collectionChanged.Emit(struct{}{})
	})
	return c
}

// Order exposes the order property.
func (c *OrderedCollection[T]) Order() prop.Tracked[[]string] {
	return c.order
}

// Items returns the items in order. It panics with ErrOrderInconsistent when
// the order names an id that no item answers to.
func (c *OrderedCollection[T]) Items() []T {
	order := c.order.Get()
	result := make([]T, len(order))
	for i, id := range order {
		j := slices.IndexFunc(c.items, func(item T) bool { return item.CheckID(id) })
		if j < 0 {
			panic(fmt.Errorf("%w: item not found for id %s", ErrOrderInconsistent, id))
		}
		result[i] = c.items[j]
	}
	return result
}

// ItemAt returns the item at index in the order.
func (c *OrderedCollection[T]) ItemAt(index int) (T, bool) {
	order := c.order.Get()
	if index < 0 || index >= len(order) {
		return stdx.Zero[T](), false
	}
	return c.Item(order[index])
}

// ItemOrderIndex returns the position of id in the order, or -1.
func (c *OrderedCollection[T]) ItemOrderIndex(id string) int {
	return slices.Index(c.order.Get(), id)
}

// PagedItems returns the page of ordered items selected by page.
func (c *OrderedCollection[T]) PagedItems(page Paging) []T {
	items := c.Items()
	start := min(max(page.Offset*page.Limit, 0), len(items))
	end := min(start+max(page.Limit, 0), len(items))
	return items[start:end]
}

// MoveItem moves id to newIndex, shifting the items in between.
func (c *OrderedCollection[T]) MoveItem(id string, newIndex int) error {
	order := c.order.Get()
	from := slices.Index(order, id)
	if from < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	next := slices.Delete(slices.Clone(order), from, from+1)
	to := min(max(newIndex, 0), len(next))
	c.order.Set(slices.Insert(next, to, id))
	return nil
}

// Sort reorders the items with cmp. Only the order changes. Equal items keep
// their relative order.
func (c *OrderedCollection[T]) Sort(cmp func(a, b T) int) {
	items := c.Items()
	slices.SortStableFunc(items, cmp)
	order := make([]string, len(items))
	for i, item := range items {
		order[i] = item.ID()
	}
	c.order.Set(order)
}

// ChangedProps reports the collection's own changes followed by those of its
// items in order. Item entries carry their position unless a nested ordered
// collection already set one.
func (c *OrderedCollection[T]) ChangedProps() []EntityChangedProps {
	result := c.Base.ChangedProps()
	for i, item := range c.Items() {
		for _, entry := range item.ChangedProps() {
			if entry.Order == nil {
				entry.Order = stdx.Ptr(i)
			}
			result = append(result, entry)
		}
	}
	return result
}

// Restore restores the collection and its items. Membership is not restored,
// so the restored order is reconciled with the items held: ids without an
// item are dropped and held items missing from it are appended.
func (c *OrderedCollection[T]) Restore() {
	c.props.Restore(OrderPropName)
	for _, item := range c.items {
		item.Restore()
	}
	order := c.restoredOrder()
	if slices.Equal(order, c.order.Get()) {
		return
	}
	if notify := c.setOrder(order); notify != nil {
		notify()
	}
}

func (c *OrderedCollection[T]) restoredOrder() []string {
	stored := c.order.StoredValue()
	order := make([]string, 0, len(c.items))
	placed := make([]bool, len(c.items))
	for _, id := range stored {
		j := slices.IndexFunc(c.items, func(item T) bool { return item.CheckID(id) })
		if j < 0 || placed[j] {
			continue
		}
		placed[j] = true
		order = append(order, c.items[j].ID())
	}
	for j, item := range c.items {
		if !placed[j] {
			order = append(order, item.ID())
		}
	}
	if slices.Equal(order, stored) {
		return stored
	}
	return order
}

func (c *OrderedCollection[T]) onItemsAdded(items []T, o AddOptions) func() {
	order := c.order.Get()
	at := len(order)
	if o.hasStartIndex {
		at = min(max(o.startIndex, 0), len(order))
	}
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID()
	}
	return c.setOrder(slices.Insert(slices.Clone(order), at, ids...))
}

func (c *OrderedCollection[T]) onItemRemoved(item T) func() {
	id := item.ID()
	return c.setOrder(slices.DeleteFunc(slices.Clone(c.order.Get()), func(s string) bool { return s == id }))
}

func (c *OrderedCollection[T]) onItemIDChanged(e IDChangedEvent) func() {
	order := slices.Clone(c.order.Get())
	moved := false
	for i, id := range order {
		if id == e.OldID {
			order[i] = e.NewID
			moved = true
		}
	}
	if !moved {
		return nil
	}
	return c.setOrder(order)
}

// setOrder stores order without publishing it and returns the func that does.
func (c *OrderedCollection[T]) setOrder(order []string) func() {
	if !c.order.Set(order, prop.Silent(true)) {
		return nil
	}
	return c.order.Notify
}
