// Package prop implements observable property brokers.
//
// A property broker holds a single value and announces every accepted change
// to the handlers registered on it. There are three layers:
//
//   - Readable: holds the value, its advisory validation rules, the resulting
//     violations and static metadata. Read only.
//   - Prop: adds Set, gated by an optional master predicate (a builtin Kind or
//     a Predicate). A rejected value leaves the broker untouched.
//   - Restorable: adds dirty tracking against a stored default with Commit,
//     Restore and IsChanged.
//
// Gating and reporting are kept apart: a gate rejects a value outright, while
// the rules given with WithValidators never block a Set and only populate
// Violations.
//
// Change detection in Set is a shallow identity check (see reflectx.SameValue)
// while the stored-default comparisons in Commit and in dirty tracking are deep.
// A structurally equal but distinct slice is therefore reported by Set as a
// change, and IsChanged still reports false for it.
//
// Collection groups the restorable brokers of one entity under their property
// names and folds their change events into a single AnyPropChanged signal.
package prop
