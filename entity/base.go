package entity

import (
	"slices"

	"github.com/casualjim/tracked/events"
	"github.com/casualjim/tracked/pkg/uuidx"
	"github.com/casualjim/tracked/prop"
	"github.com/fogfish/opts"
)

var _ Entity = (*Base)(nil)

// Base carries identity and properties. Domain types embed a *Base and create
// their properties with NewProp.
type Base struct {
	name    string
	id      string
	hasID   bool
	tempID  string
	emitter *events.Emitter
	props   *prop.Collection

	propertyChanged *events.Broker[PropertyChangedEvent]
	idChanged       *events.Broker[IDChangedEvent]

	subEntities        []Entity
	onSubEntityChanged *events.Handler[PropertyChangedEvent]
}

// Option configures a Base.
type Option = opts.Option[Base]

// WithID sets the persistent id, making the entity not new.
func WithID(id string) Option {
	return opts.Type[Base](func(b *Base) error {
		b.id = id
		b.hasID = true
		return nil
	})
}

// WithEmitter shares emitter instead of creating one for the entity.
var WithEmitter = opts.ForName[Base, *events.Emitter]("emitter")

// NewBase creates an entity named name. It panics when an option fails to
// apply.
func NewBase(name string, options ...Option) *Base {
	b := &Base{
		name:   name,
		tempID: uuidx.NewTempID(),
	}
	if err := opts.Apply(b, options); err != nil {
		panic(err)
	}
	if b.emitter == nil {
		b.emitter = events.NewEmitter(events.WithName(name))
	}

	b.props = prop.NewCollection(b.emitter)
	b.propertyChanged = events.NewBroker[PropertyChangedEvent](b.emitter)
	b.idChanged = events.NewBroker[IDChangedEvent](b.emitter)
	b.onSubEntityChanged = events.NewHandler(func(e PropertyChangedEvent) {
		b.propertyChanged.Emit(PropertyChangedEvent{EntityID: b.ID(), PropName: e.EntityID})
	})

	b.props.AnyPropChanged().On(func(name string) {
		b.propertyChanged.Emit(PropertyChangedEvent{EntityID: b.ID(), PropName: name})
	})
	return b
}

// NewProp creates a restorable property of b named name.
func NewProp[T any](b *Base, name string, initial T, options ...prop.Option[T]) *prop.Restorable[T] {
	return prop.Create(b.props, name, b.emitter, initial, options...)
}

// Emitter returns the dispatch context of the entity, for brokers that are not
// properties.
func (b *Base) Emitter() *events.Emitter {
	return b.emitter
}

// EntityName returns the name the entity was created with.
func (b *Base) EntityName() string {
	return b.name
}

// ID returns the persistent id, or the temporary id while the entity is new.
func (b *Base) ID() string {
	if b.hasID {
		return b.id
	}
	return b.tempID
}

// SetID assigns the persistent id and emits IDChanged when the id moved.
func (b *Base) SetID(id string) {
	old := b.ID()
	if old == id {
		return
	}
	b.id = id
	b.hasID = true
	b.idChanged.Emit(IDChangedEvent{OldID: old, NewID: id})
}

// CheckID reports whether id is the persistent or the temporary id.
func (b *Base) CheckID(id string) bool {
	return (b.hasID && b.id == id) || b.tempID == id
}

// IsNew reports whether no persistent id was assigned.
func (b *Base) IsNew() bool {
	return !b.hasID
}

func (b *Base) PropertyChanged() events.Source[PropertyChangedEvent] {
	return b.propertyChanged
}

func (b *Base) IDChanged() events.Source[IDChangedEvent] {
	return b.idChanged
}

// IsChanged reports whether one of the entity's own properties changed.
func (b *Base) IsChanged() bool {
	return b.props.HasChanges()
}

func (b *Base) Commit() {
	b.props.Commit()
}

func (b *Base) Restore() {
	b.props.Restore()
}

func (b *Base) ChangeablePropsCount() int {
	return b.props.Count()
}

// ChangedProps reports the entity's own changed properties followed by those
// of its sub-entities. Entries without changed properties are dropped.
func (b *Base) ChangedProps() []EntityChangedProps {
	own := EntityChangedProps{
		EntityID:     b.ID(),
		EntityName:   b.name,
		ChangedProps: b.props.ChangedProps(),
	}
	return dropUnchanged(append([]EntityChangedProps{own}, childReports(b.ID(), b.subEntities)...))
}

// AddSubEntity makes e part of the entity: its property changes bubble up as
// changes of the property named by e's id, and its changes are reported.
func (b *Base) AddSubEntity(e Entity) {
	b.subEntities = append(b.subEntities, e)
	b.attach(e)
}

// RemoveSubEntity undoes AddSubEntity.
func (b *Base) RemoveSubEntity(e Entity) {
	if i := slices.Index(b.subEntities, e); i >= 0 {
		b.subEntities = slices.Delete(b.subEntities, i, i+1)
	}
	b.detach(e)
}

func (b *Base) attach(e Entity) {
	e.PropertyChanged().Register(b.onSubEntityChanged)
}

func (b *Base) detach(e Entity) {
	e.PropertyChanged().Unregister(b.onSubEntityChanged)
}
