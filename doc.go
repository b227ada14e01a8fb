/*
Package tracked is a toolkit for observable, validatable and dirty tracked
state.

The building blocks live in sub packages:

  - events: typed brokers on a shared, per owner Emitter. Handlers run
    synchronously in registration order and a panicking handler never reaches
    the mutator or its siblings.
  - prop: property brokers. Readable holds a value with its violations,
    Prop adds a gated Set and Restorable adds Commit, Restore and IsChanged.
  - entity: entities built from restorable properties, sub-entities and
    collections, with change events that bubble up to the owner.
  - report: renders changed-props reports as JSON, as a keyed patch document
    or as markdown, and describes the payload with a JSON schema.

# Basic Usage

Embed an entity base and create the properties from it:

	type card struct {
		*entity.Base
		title *prop.Restorable[string]
	}

	func newCard(title string) *card {
		c := &card{Base: entity.NewBase("card")}
		c.title = entity.NewProp(c.Base, "title", title,
			prop.WithValidators(prop.TextMaxLength(40)),
		)
		return c
	}

Group entities in collections and listen to them:

	cards := entity.NewOrderedCollection("cards", []*card{newCard("one")})
	cards.CollectionChanged().On(func(struct{}) {
		render(cards.Items())
	})
	_ = cards.AddItems([]*card{newCard("two")}, entity.StartIndex(0))

Every mutation is applied before the first event fires, so handlers can read
the collection back. Changes are reported with ChangedProps and accepted with
Commit or discarded with Restore.
*/
package tracked
