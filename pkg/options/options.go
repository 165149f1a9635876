// Package options provides the ordered key/value option set shared by the
// renderer and its engines.
package options

import (
	"sort"
	"strings"
)

// Set stores named option values while remembering insertion order. The zero
// value is not usable; construct one with New or FromMap. Set is not safe for
// concurrent mutation; engines guard their own copy.
type Set struct {
	keys   []string
	values map[string]any
}

// New returns an empty option set.
func New() *Set {
	return &Set{values: make(map[string]any)}
}

// FromMap copies a plain map into a new set. Go maps carry no order, so keys
// are inserted alphabetically to keep iteration deterministic.
func FromMap(m map[string]any) *Set {
	out := New()
	if len(m) == 0 {
		return out
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		out.Set(key, m[key])
	}
	return out
}

// With sets name and returns the receiver, allowing literal-style construction.
func (s *Set) With(name string, value any) *Set {
	s.Set(name, value)
	return s
}

// Set writes value under name. Names are trimmed; blank names are ignored.
// Existing names keep their original position.
func (s *Set) Set(name string, value any) {
	name = strings.TrimSpace(name)
	if s == nil || name == "" {
		return
	}
	if s.values == nil {
		s.values = make(map[string]any)
	}
	if _, exists := s.values[name]; !exists {
		s.keys = append(s.keys, name)
	}
	s.values[name] = value
}

// Lookup returns the value stored under name and whether it was present.
func (s *Set) Lookup(name string) (any, bool) {
	if s == nil {
		return nil, false
	}
	value, ok := s.values[strings.TrimSpace(name)]
	return value, ok
}

// Get returns the value stored under name, or nil.
func (s *Set) Get(name string) any {
	value, _ := s.Lookup(name)
	return value
}

// Has reports whether name is present, even when its value is nil.
func (s *Set) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Delete removes name from the set.
func (s *Set) Delete(name string) {
	name = strings.TrimSpace(name)
	if s == nil {
		return
	}
	if _, ok := s.values[name]; !ok {
		return
	}
	delete(s.values, name)
	for i, key := range s.keys {
		if key == name {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// String returns the value under name when it holds a string.
func (s *Set) String(name string) (string, bool) {
	value, ok := s.Lookup(name)
	if !ok {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}

// Bool returns the value under name when it holds a bool.
func (s *Set) Bool(name string) (bool, bool) {
	value, ok := s.Lookup(name)
	if !ok {
		return false, false
	}
	b, ok := value.(bool)
	return b, ok
}

// StringMap returns the value under name when it holds a string keyed map.
func (s *Set) StringMap(name string) (map[string]any, bool) {
	value, ok := s.Lookup(name)
	if !ok {
		return nil, false
	}
	m, ok := value.(map[string]any)
	return m, ok
}

// Keys returns option names in insertion order.
func (s *Set) Keys() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.keys...)
}

// Len returns the number of options.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Each calls fn for every option in insertion order.
func (s *Set) Each(fn func(name string, value any)) {
	if s == nil || fn == nil {
		return
	}
	for _, key := range s.keys {
		fn(key, s.values[key])
	}
}

// Map returns a plain map copy of the set.
func (s *Set) Map() map[string]any {
	out := make(map[string]any, s.Len())
	s.Each(func(name string, value any) {
		out[name] = value
	})
	return out
}

// Clone returns a shallow copy that preserves ordering.
func (s *Set) Clone() *Set {
	out := New()
	s.Each(out.Set)
	return out
}

// Merge copies every option from other into the receiver, overwriting
// existing names.
func (s *Set) Merge(other *Set) *Set {
	other.Each(s.Set)
	return s
}
