package domain

import (
	"iter"
)

// Multimap maps each key to a set of values, absorbing duplicate inserts.
// It is used to express "task -> its direct dependencies" adjacency.
type Multimap[K comparable, V comparable] struct {
	m map[K]map[V]struct{}
}

// NewMultimap creates an empty Multimap.
func NewMultimap[K comparable, V comparable]() *Multimap[K, V] {
	return &Multimap[K, V]{m: make(map[K]map[V]struct{})}
}

// NewMultimapFromEntries builds a Multimap from (key, values) entries.
func NewMultimapFromEntries[K comparable, V comparable](entries map[K][]V) *Multimap[K, V] {
	mm := NewMultimap[K, V]()
	for k, vs := range entries {
		mm.InsertAll(k, vs)
	}
	return mm
}

// Insert adds v to the set for k, creating the key if absent.
func (mm *Multimap[K, V]) Insert(k K, v V) {
	set, ok := mm.m[k]
	if !ok {
		set = make(map[V]struct{})
		mm.m[k] = set
	}
	set[v] = struct{}{}
}

// InsertAll adds every value in vs to the set for k.
func (mm *Multimap[K, V]) InsertAll(k K, vs []V) {
	if _, ok := mm.m[k]; !ok {
		mm.m[k] = make(map[V]struct{})
	}
	for _, v := range vs {
		mm.m[k][v] = struct{}{}
	}
}

// Has reports whether v is present in the set for k.
func (mm *Multimap[K, V]) Has(k K, v V) bool {
	set, ok := mm.m[k]
	if !ok {
		return false
	}
	_, ok = set[v]
	return ok
}

// GetAll returns the values associated with k. Order is not guaranteed.
func (mm *Multimap[K, V]) GetAll(k K) []V {
	set, ok := mm.m[k]
	if !ok {
		return nil
	}
	out := make([]V, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	return out
}

// Keys returns every key, including one whose value set is empty (as
// InsertAll leaves it for a key with no values). Order is not guaranteed.
func (mm *Multimap[K, V]) Keys() []K {
	out := make([]K, 0, len(mm.m))
	for k := range mm.m {
		out = append(out, k)
	}
	return out
}

// Values returns the flattened union of all value sets. Order is not guaranteed.
func (mm *Multimap[K, V]) Values() []V {
	var out []V
	for _, set := range mm.m {
		for v := range set {
			out = append(out, v)
		}
	}
	return out
}

// All iterates (key, values) pairs. Order is not guaranteed.
func (mm *Multimap[K, V]) All() iter.Seq2[K, []V] {
	return func(yield func(K, []V) bool) {
		for k, set := range mm.m {
			vs := make([]V, 0, len(set))
			for v := range set {
				vs = append(vs, v)
			}
			if !yield(k, vs) {
				return
			}
		}
	}
}

// Delete removes v from the set for k. If the set becomes empty the key is dropped.
func (mm *Multimap[K, V]) Delete(k K, v V) {
	set, ok := mm.m[k]
	if !ok {
		return
	}
	delete(set, v)
	if len(set) == 0 {
		delete(mm.m, k)
	}
}

// DeleteAll removes k and its entire value set.
func (mm *Multimap[K, V]) DeleteAll(k K) {
	delete(mm.m, k)
}

// Len returns the number of keys, including any with an empty value set.
func (mm *Multimap[K, V]) Len() int {
	return len(mm.m)
}
