package model

import "sort"

// OrderedMap wraps a Protobuf map field: maps are semantically unordered,
// but canonical write iterates keys in ascending order, and equality/hash
// are key-set based rather than order-sensitive (spec.md §3.5).
type OrderedMap[K comparable, V any] struct {
	m    map[K]V
	keys []K // kept sorted lazily; see SortedKeys
	less func(a, b K) bool
}

// NewOrderedMap builds an OrderedMap over m using less to order keys for
// canonical serialization. less must be a strict weak ordering consistent
// with K's equality.
func NewOrderedMap[K comparable, V any](m map[K]V, less func(a, b K) bool) *OrderedMap[K, V] {
	return &OrderedMap[K, V]{m: m, less: less}
}

// Len returns the number of entries.
func (o *OrderedMap[K, V]) Len() int { return len(o.m) }

// Get looks up a key.
func (o *OrderedMap[K, V]) Get(k K) (V, bool) {
	v, ok := o.m[k]
	return v, ok
}

// SortedKeys returns the map's keys in ascending order (spec.md §3.5,
// §4.3.2 rule 7). The slice is recomputed and cached on first call.
func (o *OrderedMap[K, V]) SortedKeys() []K {
	if o.keys == nil {
		keys := make([]K, 0, len(o.m))
		for k := range o.m {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return o.less(keys[i], keys[j]) })
		o.keys = keys
	}
	return o.keys
}

// Range visits entries in ascending key order, the order canonical write
// uses.
func (o *OrderedMap[K, V]) Range(fn func(k K, v V)) {
	for _, k := range o.SortedKeys() {
		fn(k, o.m[k])
	}
}

// Equal compares two OrderedMaps by key set and value equality
// (order-independent), using eq to compare values.
func (o *OrderedMap[K, V]) Equal(other *OrderedMap[K, V], eq func(a, b V) bool) bool {
	if o.Len() != other.Len() {
		return false
	}
	for k, v := range o.m {
		ov, ok := other.m[k]
		if !ok || !eq(v, ov) {
			return false
		}
	}
	return true
}

// Raw returns the underlying map, for callers that just need membership
// tests without caring about order.
func (o *OrderedMap[K, V]) Raw() map[K]V { return o.m }
