// Package schema decodes loosely shaped JSON values into typed records using
// declarative, per-record field tables instead of reflection.
//
// A Schema[T] lists the fields of T in wire order. Each Field carries its wire
// key, its target name, whether it may be absent, and a setter closure that
// stores the coerced value into the record. The same schema decodes both an
// object (matched by key) and a bare array (matched by position).
package schema

import (
	"sync"
)

type fieldKind int

const (
	kindScalar fieldKind = iota
	kindRecord
	kindSequence
	kindMap
)

// Field is one entry of a Schema[T], built by Int, String, Nested and the
// other constructors.
type Field[T any] struct {
	source   string
	name     string
	optional bool
	kind     fieldKind
	decode   func(st *state, path string, raw any, out *T) error
}

// From sets the wire key the field is read from, the target name is kept.
func (f Field[T]) From(source string) Field[T] {
	f.source = source
	return f
}

// Optional marks the field as allowed to be absent or null, its setter is
// not called in that case.
func (f Field[T]) Optional() Field[T] {
	f.optional = true
	return f
}

type Schema[T any] struct {
	Name   string
	Fields []Field[T]
	// Ignore lists wire keys that are known and dropped without a warning.
	Ignore []string
	// Variants, when set, replace Fields: the first variant whose required
	// fields are all present in the input decodes it.
	Variants []*Schema[T]
	// Open schemas read their fields out of a larger object, keys they do
	// not declare are not reported.
	Open bool

	once  sync.Once
	known map[string]bool
}

// OneOf builds a schema that tries each variant in order.
func OneOf[T any](name string, variants ...*Schema[T]) *Schema[T] {
	return &Schema[T]{Name: name, Variants: variants}
}

func (s *Schema[T]) init() {
	s.once.Do(func() {
		s.known = make(map[string]bool, len(s.Fields)+len(s.Ignore))
		for _, f := range s.Fields {
			s.known[f.source] = true
		}
		for _, k := range s.Ignore {
			s.known[k] = true
		}
	})
}

// matches reports whether every required field of s is present in m.
func (s *Schema[T]) matches(m map[string]any) bool {
	for _, f := range s.Fields {
		if f.optional {
			continue
		}
		if _, ok := m[f.source]; !ok {
			return false
		}
	}
	return true
}

type state struct {
	unknown []string
}

func (st *state) addUnknown(path string) {
	st.unknown = append(st.unknown, path)
}
