/*
Package mapping resolves a small runtime key to one member of a closed set
of targets that was fixed when the table was declared.

A table is built once, usually at package initialisation, and queried once
per configuration:

	shapes := mapping.MustNew(
		mapping.Map(key{0, -1}, plain),
		mapping.Map(key{1, 3}, rgb),
	)
	target, err := shapes.Resolve(key{1, 3})

Keys are compared with ==, entries are tried in declaration order and a key
may appear at most once.
*/
package mapping

import (
	"fmt"

	"github.com/spaghettifunk/offmesh/engine/core"
)

// Mapping associates a key with the target it selects.
type Mapping[K comparable, S any] struct {
	Key    K
	Target S
}

func Map[K comparable, S any](key K, target S) Mapping[K, S] {
	return Mapping[K, S]{Key: key, Target: target}
}

// Result is the outcome of Lookup: either no match, or the matched target.
type Result[S any] struct {
	target  S
	matched bool
}

func (r Result[S]) Matched() bool {
	return r.matched
}

// Target returns the matched target and true, or the zero value and false.
func (r Result[S]) Target() (S, bool) {
	return r.target, r.matched
}

// Mapper is an immutable, ordered table of mappings. It is safe for
// concurrent use.
type Mapper[K comparable, S any] struct {
	mappings []Mapping[K, S]
}

// New builds a table. It returns ErrOverlappingKeys when two mappings share
// a key, since only the first could ever be selected.
func New[K comparable, S any](mappings ...Mapping[K, S]) (*Mapper[K, S], error) {
	seen := make(map[K]int, len(mappings))
	for i, m := range mappings {
		if j, ok := seen[m.Key]; ok {
			return nil, fmt.Errorf("%w: entries %d and %d both use key %v", core.ErrOverlappingKeys, j, i, m.Key)
		}
		seen[m.Key] = i
	}
	return &Mapper[K, S]{mappings: append([]Mapping[K, S](nil), mappings...)}, nil
}

// MustNew is like New but panics on overlapping keys. Intended for tables
// declared as package variables.
func MustNew[K comparable, S any](mappings ...Mapping[K, S]) *Mapper[K, S] {
	m, err := New(mappings...)
	if err != nil {
		panic(err)
	}
	return m
}

// Lookup returns the first mapping whose key equals key. It never fails.
func (m *Mapper[K, S]) Lookup(key K) Result[S] {
	for _, mapping := range m.mappings {
		if mapping.Key == key {
			return Result[S]{target: mapping.Target, matched: true}
		}
	}
	return Result[S]{}
}

// Resolve returns the target selected by key, or a *core.ConfigurationError
// when no mapping matches.
func (m *Mapper[K, S]) Resolve(key K) (S, error) {
	if target, ok := m.Lookup(key).Target(); ok {
		return target, nil
	}
	var zero S
	return zero, &core.ConfigurationError{Key: fmt.Sprint(key)}
}

// Entries returns a copy of the table in declaration order.
func (m *Mapper[K, S]) Entries() []Mapping[K, S] {
	return append([]Mapping[K, S](nil), m.mappings...)
}

func (m *Mapper[K, S]) Len() int {
	return len(m.mappings)
}
