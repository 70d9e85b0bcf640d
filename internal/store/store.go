// Package store provides the named registry shared by the datarails containers.
package store

// Ordered is a string-keyed registry that remembers the order in which keys were
// first inserted. Overwriting a key keeps its original position.
//
// Ordered is not safe for concurrent use.
type Ordered[V any] struct {
	values map[string]V
	keys   []string
}

// NewOrdered creates an empty registry.
func NewOrdered[V any]() *Ordered[V] {
	return &Ordered[V]{
		values: make(map[string]V),
	}
}

// Put stores v under key and reports whether a previous value was replaced.
func (s *Ordered[V]) Put(key string, v V) bool {
	_, ok := s.values[key]
	if !ok {
		s.keys = append(s.keys, key)
	}

	s.values[key] = v

	return ok
}

// Get returns the value stored under key.
func (s *Ordered[V]) Get(key string) (V, bool) {
	v, ok := s.values[key]

	return v, ok
}

// Has reports whether key was ever put.
func (s *Ordered[V]) Has(key string) bool {
	_, ok := s.values[key]

	return ok
}

// Keys returns the keys in first-insertion order.
func (s *Ordered[V]) Keys() []string {
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)

	return keys
}

// Len returns the number of keys.
func (s *Ordered[V]) Len() int {
	return len(s.keys)
}
