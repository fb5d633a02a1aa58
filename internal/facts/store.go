// Package facts holds the per-session mutable state of the advisor: the fact
// store written by user answers, and the derived requirements written by rule
// effects. Everything else in the engine is read-only.
package facts

import "sort"

// Store maps dotted attribute paths (e.g. "environment.moisture") to values.
// It is the single mutable entity of a session: user answers and rule
// derivations are both written through it. Writing never triggers
// re-evaluation; that is the rule evaluator's job, invoked explicitly after
// each write batch.
//
// A Store is not safe for concurrent use; a session is a single linear
// sequence of writes interleaved with evaluation.
type Store struct {
	values map[string]any
}

// NewStore returns an empty fact store.
func NewStore() *Store {
	return &Store{values: make(map[string]any)}
}

// Set writes a value at the given attribute path. Callers are responsible for
// writing only validated values; the store performs no constraint checks.
func (s *Store) Set(path string, value any) {
	s.values[path] = value
}

// Get returns the value at path and whether it is set.
func (s *Store) Get(path string) (any, bool) {
	v, ok := s.values[path]
	return v, ok
}

// GetDefault returns the value at path, or def if unset.
func (s *Store) GetDefault(path string, def any) any {
	if v, ok := s.values[path]; ok {
		return v
	}
	return def
}

// Has reports whether a value is set at path.
func (s *Store) Has(path string) bool {
	_, ok := s.values[path]
	return ok
}

// Bool returns the value at path as a boolean. Unset or non-boolean values
// read as false.
func (s *Store) Bool(path string) bool {
	b, _ := s.values[path].(bool)
	return b
}

// String returns the value at path as a string. Unset or non-string values
// read as "".
func (s *Store) String(path string) string {
	str, _ := s.values[path].(string)
	return str
}

// Len returns the number of facts set.
func (s *Store) Len() int {
	return len(s.values)
}

// Paths returns all set attribute paths in sorted order.
func (s *Store) Paths() []string {
	paths := make([]string, 0, len(s.values))
	for p := range s.values {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Clone returns an independent copy of the store.
func (s *Store) Clone() *Store {
	c := NewStore()
	for p, v := range s.values {
		c.values[p] = v
	}
	return c
}

// Snapshot returns the facts as a plain map keyed by path, for display and
// serialization.
func (s *Store) Snapshot() map[string]any {
	out := make(map[string]any, len(s.values))
	for p, v := range s.values {
		out[p] = v
	}
	return out
}
