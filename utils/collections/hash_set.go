package collections

import "golang.org/x/exp/maps"

type hashSet[R comparable, V any] struct {
	entries  map[R]V
	hashFunc HashSetHashFunc[R, V]
}

type HashSetHashFunc[R comparable, V any] func(V) R

func NewHashSet[R comparable, V any](f HashSetHashFunc[R, V]) Set[V] {
	return &hashSet[R, V]{
		entries:  make(map[R]V),
		hashFunc: f,
	}
}

func identity(s string) string {
	return s
}

// NewStringSet returns a set keyed by the strings themselves, seeded with items.
// Duplicates in items collapse.
func NewStringSet(items ...string) Set[string] {
	s := &hashSet[string, string]{
		entries:  make(map[string]string, len(items)),
		hashFunc: identity,
	}
	for _, item := range items {
		s.entries[item] = item
	}
	return s
}

func (s *hashSet[R, V]) Contains(v V) bool {
	hash := s.hashFunc(v)
	if _, ok := s.entries[hash]; ok {
		return true
	}
	return false
}

func (s *hashSet[R, V]) Add(v V) error {
	if s.Contains(v) {
		return ErrValueExisted
	}
	s.entries[s.hashFunc(v)] = v
	return nil
}

func (s *hashSet[R, V]) Remove(v V) error {
	if !s.Contains(v) {
		return ErrValueNotExisted
	}
	delete(s.entries, s.hashFunc(v))
	return nil
}

func (s *hashSet[R, V]) Size() int {
	return len(s.entries)
}

func (s *hashSet[R, V]) Entries() []V {
	return maps.Values(s.entries)
}

// Equals reports whether both sets hold the same members under this set's hash function.
func (s *hashSet[R, V]) Equals(other Set[V]) bool {
	if other == nil || s.Size() != other.Size() {
		return false
	}
	for _, v := range s.entries {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}

func (s *hashSet[R, V]) Clear() {
	maps.Clear(s.entries)
}
