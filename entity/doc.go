// Package entity implements observable entities and collections of entities.
//
// An entity has a persistent id, assigned at most once with SetID, and a
// temporary id generated at construction that identifies it until then. Its
// properties are restorable brokers created with NewProp; changes to any of
// them, and to the sub-entities and collections it owns, bubble up through
// PropertyChanged.
//
// Collections are entities themselves. Collection keeps its items in insertion
// order, OrderedCollection keeps an explicit, dirty-tracked order that can be
// moved, sorted and paged. Every membership change is applied completely
// before the first event fires, so handlers that read the collection back see
// the new state.
package entity
