// Package model implements the L6 layer: the message-record contract
// generated types satisfy (immutability, a static DEFAULT, comparability),
// the OneOf tagged variant, and the OrderedMap wrapper around a Protobuf
// map field, per spec.md §3.3–§3.6.
package model

// OneOf is a tagged variant over a set of mutually-exclusive field kinds:
// {kind, value}. Kind zero is always UNSET. Two OneOf values are equal
// iff their kinds match and, when set, their values match by the message
// model's own equality rule (spec.md §3.4).
type OneOf[K comparable, V any] struct {
	kind K
	set  bool
	val  V
}

// Unset is the zero-value OneOf: no variant selected.
func Unset[K comparable, V any]() OneOf[K, V] {
	return OneOf[K, V]{}
}

// Of constructs a OneOf with variant kind holding value v.
func Of[K comparable, V any](kind K, v V) OneOf[K, V] {
	return OneOf[K, V]{kind: kind, set: true, val: v}
}

// IsSet reports whether any variant is selected.
func (o OneOf[K, V]) IsSet() bool { return o.set }

// Kind returns the selected variant tag; the zero value of K when unset.
func (o OneOf[K, V]) Kind() K { return o.kind }

// Value returns the held value and whether a variant was set.
func (o OneOf[K, V]) Value() (V, bool) { return o.val, o.set }

// Equal compares two OneOf values using eq to compare held values when
// both are set. Callers supply eq because V may not itself be comparable
// with == (e.g. nested messages, slices).
func (o OneOf[K, V]) Equal(other OneOf[K, V], eq func(a, b V) bool) bool {
	if o.set != other.set {
		return false
	}
	if !o.set {
		return true
	}
	if o.kind != other.kind {
		return false
	}
	return eq(o.val, other.val)
}
