// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package wellformed

import (
	"slices"
	"sync/atomic"
)

// wellFormedness is the memoized scan state of a Text value.
type wellFormedness int32

const (
	unknown wellFormedness = iota
	wellFormed
	illFormed
)

// Text is an immutable UTF-16 string value that caches its well-formedness.
// The cached bit is computed at most once per value and is propagated
// through Concat and Slice when those operations provably preserve it.
// Copies of a Text share the cache, so memoization performed through one
// copy benefits all of them.
//
// The zero value is the empty text and is well-formed.
type Text struct {
	units []uint16
	state *atomic.Int32
}

func newState(w wellFormedness) *atomic.Int32 {
	s := new(atomic.Int32)
	s.Store(int32(w))
	return s
}

// NewText returns a Text holding a copy of units. The well-formedness of the
// new value is not yet known; it is determined lazily on first use.
func NewText(units []uint16) Text {
	return Text{
		units: slices.Clone(units),
		state: newState(unknown),
	}
}

// Len returns the number of code units in t.
func (t Text) Len() int {
	return len(t.units)
}

// Units returns a copy of the code units of t.
func (t Text) Units() []uint16 {
	return slices.Clone(t.units)
}

// CodeUnitAt returns the code unit at index i.
func (t Text) CodeUnitAt(i int) uint16 {
	return t.units[i]
}

// Equal reports whether t and o contain the same code unit sequence.
func (t Text) Equal(o Text) bool {
	return slices.Equal(t.units, o.units)
}

// IsWellFormed reports whether t contains no unpaired surrogates. The first
// call scans the units; the result is cached for subsequent calls on this
// value and on any copy of it. Racing first calls compute the same pure
// result, so the cache needs no locking beyond the atomic store.
func (t Text) IsWellFormed() bool {
	if t.state != nil {
		switch wellFormedness(t.state.Load()) {
		case wellFormed:
			return true
		case illFormed:
			return false
		}
	}
	ok := IsWellFormed(t.units)
	if t.state != nil {
		if ok {
			t.state.Store(int32(wellFormed))
		} else {
			t.state.Store(int32(illFormed))
		}
	}
	return ok
}

// ToWellFormed returns a Text whose units are the sanitized copy of t's, per
// ToWellFormed on the underlying sequence. When t is already known or found
// to be well-formed, t itself is returned and no allocation happens; the
// elision is invisible to callers because Text is immutable.
func (t Text) ToWellFormed() Text {
	if t.IsWellFormed() {
		return t
	}
	return Text{
		units: ToWellFormed(t.units),
		state: newState(wellFormed),
	}
}

// Slice returns the sub-text of units [i:j). Index rules match Go slicing:
// 0 <= i <= j <= t.Len(), otherwise Slice panics.
//
// When the receiver is known well-formed, the cached bit propagates: a cut
// that does not split a surrogate pair yields a known well-formed result,
// while a cut through a pair yields a known ill-formed one (the severed half
// is unpaired by construction). In every other case the result starts
// unknown, since slicing can just as well remove the ill-formed region.
func (t Text) Slice(i, j int) Text {
	units := slices.Clone(t.units[i:j])
	state := newState(unknown)
	if t.state != nil && wellFormedness(t.state.Load()) == wellFormed {
		if len(units) > 0 && (IsTrailingSurrogate(units[0]) || IsLeadingSurrogate(units[len(units)-1])) {
			state = newState(illFormed)
		} else {
			state = newState(wellFormed)
		}
	}
	return Text{units: units, state: state}
}

// Concat returns the concatenation of parts. When every part is known
// well-formed the result is too: joining well-formed sequences cannot create
// an unpaired surrogate at any boundary. Otherwise the result starts
// unknown; in particular a known ill-formed part does not make the result
// ill-formed, because adjacent parts can complete each other's severed
// pairs (e.g. [0xD800] followed by [0xDC00]).
func Concat(parts ...Text) Text {
	n := 0
	for _, p := range parts {
		n += len(p.units)
	}
	units := make([]uint16, 0, n)
	known := wellFormed
	for _, p := range parts {
		units = append(units, p.units...)
		if p.state == nil || wellFormedness(p.state.Load()) != wellFormed {
			known = unknown
		}
	}
	return Text{units: units, state: newState(known)}
}
