package prop

import (
	"slices"

	"github.com/casualjim/tracked/events"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ChangedProp describes one changed property of an entity.
type ChangedProp struct {
	PropName string `json:"propName"`
	Value    string `json:"value"`
}

// changeable is the type-erased view the collection keeps of a Restorable.
type changeable interface {
	IsChanged() bool
	Commit()
	Restore()
	serialized(name string) string
}

type entry[T any] struct {
	*Restorable[T]
	serializer func(Value[T]) string
}

// serialized returns the custom serializer's output, then the default
// serialization, then name when both are empty. A changed value that
// serializes to "" therefore reports its name.
func (e entry[T]) serialized(name string) string {
	if e.serializer != nil {
		return e.serializer(e.Restorable)
	}
	if s, ok := e.Serialize(); ok && s != "" {
		return s
	}
	return name
}

// Collection owns the named restorable brokers of one entity, in creation
// order.
type Collection struct {
	props      *orderedmap.OrderedMap[string, changeable]
	anyChanged *events.Broker[string]
}

// NewCollection creates an empty collection whose any-prop-changed channel
// lives on emitter.
func NewCollection(emitter *events.Emitter) *Collection {
	return &Collection{
		props:      orderedmap.New[string, changeable](),
		anyChanged: events.NewBroker[string](emitter),
	}
}

// Create builds a restorable broker on emitter and registers it under name.
// Its value changes are re-emitted on AnyPropChanged with name as payload.
// Creating a second broker with an existing name replaces the first one.
func Create[T any](c *Collection, name string, emitter *events.Emitter, initial T, options ...Option[T]) *Restorable[T] {
	r := NewRestorable(emitter, initial, options...)
	r.On(func(ValueChanged[T]) {
		c.anyChanged.Emit(name)
	})
	c.props.Set(name, entry[T]{Restorable: r, serializer: r.serializer})
	return r
}

// AnyPropChanged fires with the property name whenever one of the brokers
// emits its value-changed event.
func (c *Collection) AnyPropChanged() events.Source[string] {
	return c.anyChanged
}

// ChangedProps lists the changed properties in creation order.
func (c *Collection) ChangedProps() []ChangedProp {
	var result []ChangedProp
	for pair := c.props.Oldest(); pair != nil; pair = pair.Next() {
		if !pair.Value.IsChanged() {
			continue
		}
		result = append(result, ChangedProp{
			PropName: pair.Key,
			Value:    pair.Value.serialized(pair.Key),
		})
	}
	return result
}

// Restore restores every broker except the ones named in skip.
func (c *Collection) Restore(skip ...string) {
	for pair := c.props.Oldest(); pair != nil; pair = pair.Next() {
		if slices.Contains(skip, pair.Key) {
			continue
		}
		pair.Value.Restore()
	}
}

// Commit commits every broker.
func (c *Collection) Commit() {
	for pair := c.props.Oldest(); pair != nil; pair = pair.Next() {
		pair.Value.Commit()
	}
}

// HasChanges reports whether any broker is changed.
func (c *Collection) HasChanges() bool {
	return len(c.ChangedProps()) > 0
}

// Count returns the number of brokers in the collection.
func (c *Collection) Count() int {
	return c.props.Len()
}
