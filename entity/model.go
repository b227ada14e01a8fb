package entity

import "slices"

var _ Entity = (*Model)(nil)

// Model is an entity that owns collections besides its properties and
// sub-entities. Commit, IsChanged and ChangedProps cover the collections;
// Restore only restores the model's own properties.
type Model struct {
	*Base
	collections []Entity
}

// NewModel creates a model named name.
func NewModel(name string, options ...Option) *Model {
	return &Model{Base: NewBase(name, options...)}
}

// AttachCollection creates an unordered collection owned by m. The collection
// shares m's emitter unless options say otherwise.
func AttachCollection[T Entity](m *Model, name string, items []T, options ...Option) *Collection[T] {
	c := NewCollection(name, items, m.collectionOptions(options)...)
	m.addCollection(c)
	return c
}

// AttachOrderedCollection creates an ordered collection owned by m. The
// collection shares m's emitter unless options say otherwise.
func AttachOrderedCollection[T Entity](m *Model, name string, items []T, options ...Option) *OrderedCollection[T] {
	c := NewOrderedCollection(name, items, m.collectionOptions(options)...)
	m.addCollection(c)
	return c
}

func (m *Model) collectionOptions(options []Option) []Option {
	return append([]Option{WithEmitter(m.Emitter())}, options...)
}

func (m *Model) addCollection(c Entity) {
	m.collections = append(m.collections, c)
	m.attach(c)
}

func (m *Model) IsChanged() bool {
	return m.Base.IsChanged() || slices.ContainsFunc(m.collections, Entity.IsChanged)
}

func (m *Model) Commit() {
	m.Base.Commit()
	for _, c := range m.collections {
		c.Commit()
	}
}

// ChangedProps reports the model's own and sub-entity changes followed by
// those of its collections.
func (m *Model) ChangedProps() []EntityChangedProps {
	return dropUnchanged(append(m.Base.ChangedProps(), childReports(m.ID(), m.collections)...))
}
