package main

import (
	"cmp"

	"github.com/casualjim/tracked/entity"
	"github.com/casualjim/tracked/events"
	"github.com/casualjim/tracked/prop"
)

const maxTitleLength = 40

type card struct {
	*entity.Base
	title    *prop.Restorable[string]
	estimate *prop.Restorable[int]
	done     *prop.Restorable[bool]
	tags     *prop.Restorable[[]string]
}

func newCard(em *events.Emitter, seed cardSeed) *card {
	options := []entity.Option{entity.WithEmitter(em)}
	if seed.ID != "" {
		options = append(options, entity.WithID(seed.ID))
	}
	c := &card{Base: entity.NewBase("card", options...)}
	c.title = entity.NewProp(c.Base, "title", seed.Title,
		prop.WithValidators(prop.TextMinLength(1), prop.TextMaxLength(maxTitleLength)),
	)
	c.estimate = entity.NewProp(c.Base, "estimate", seed.Estimate,
		prop.WithPredicate(func(v int) bool { return v >= 0 }),
	)
	c.done = entity.NewProp(c.Base, "done", seed.Done, prop.WithKind[bool](prop.KindBoolean))
	c.tags = entity.NewProp(c.Base, "tags", seed.Tags, prop.WithSerializer(prop.JSONSerializer[[]string]()))
	return c
}

func byEstimate(a, b *card) int {
	return cmp.Compare(a.estimate.Get(), b.estimate.Get())
}

type board struct {
	*entity.Model
	title   *prop.Restorable[string]
	cards   *entity.OrderedCollection[*card]
	archive *entity.Collection[*card]
}

func newBoard(em *events.Emitter, seed *boardSeed) *board {
	b := &board{Model: entity.NewModel("board", entity.WithID(seed.Board.ID), entity.WithEmitter(em))}
	b.title = entity.NewProp(b.Base, "title", seed.Board.Title)
	b.cards = entity.AttachOrderedCollection(b.Model, "cards", newCards(em, seed.Cards))
	b.archive = entity.AttachCollection(b.Model, "archive", newCards(em, seed.Archive))
	return b
}

func newCards(em *events.Emitter, seeds []cardSeed) []*card {
	cards := make([]*card, len(seeds))
	for i, s := range seeds {
		cards[i] = newCard(em, s)
	}
	return cards
}

// archiveCard moves the card with id from the board to the archive.
func (b *board) archiveCard(id string) error {
	c, err := b.cards.RemoveItem(id)
	if err != nil {
		return err
	}
	c.done.Set(true)
	return b.archive.AddItems([]*card{c})
}
