// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package wellformed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usvtext/usvtext/wellformed"
)

func TestTextZeroValue(t *testing.T) {
	var text wellformed.Text
	assert.Equal(t, 0, text.Len())
	assert.True(t, text.IsWellFormed())
	assert.Equal(t, 0, text.ToWellFormed().Len())
}

func TestNewTextCopiesInput(t *testing.T) {
	units := []uint16{0x0041, 0x0042}
	text := wellformed.NewText(units)
	units[0] = 0xd800
	assert.Equal(t, []uint16{0x0041, 0x0042}, text.Units())
	assert.True(t, text.IsWellFormed())
}

func TestTextUnitsCopiesOut(t *testing.T) {
	text := wellformed.NewText([]uint16{0x0041, 0x0042})
	out := text.Units()
	out[0] = 0xd800
	assert.Equal(t, []uint16{0x0041, 0x0042}, text.Units())
}

func TestTextCodeUnitAt(t *testing.T) {
	text := wellformed.NewText([]uint16{0x0041, 0xd83d, 0xde00})
	assert.Equal(t, uint16(0x0041), text.CodeUnitAt(0))
	assert.Equal(t, uint16(0xde00), text.CodeUnitAt(2))
	assert.Panics(t, func() { text.CodeUnitAt(3) })
}

func TestTextIsWellFormed(t *testing.T) {
	for _, test := range wellFormednessTests {
		t.Run(test.name, func(t *testing.T) {
			text := wellformed.NewText(test.units)
			assert.Equal(t, test.wellFormed, text.IsWellFormed())
			// Second call answers from the cache and must agree.
			assert.Equal(t, test.wellFormed, text.IsWellFormed())
		})
	}
}

func TestTextToWellFormed(t *testing.T) {
	for _, test := range wellFormednessTests {
		t.Run(test.name, func(t *testing.T) {
			text := wellformed.NewText(test.units).ToWellFormed()
			assert.Equal(t, test.sanitized, text.Units())
			assert.True(t, text.IsWellFormed())
			assert.True(t, text.Equal(text.ToWellFormed()), "sanitizing twice must be a no-op")
		})
	}
}

func TestTextEqual(t *testing.T) {
	a := wellformed.NewText([]uint16{0xd800, 0x0041})
	b := wellformed.NewText([]uint16{0xd800, 0x0041})
	c := wellformed.NewText([]uint16{0x0041})
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.True(t, wellformed.Text{}.Equal(wellformed.NewText(nil)))
}

func TestTextSlice(t *testing.T) {
	// A surrogate pair flanked by BMP units.
	text := wellformed.NewText([]uint16{0x0041, 0xd83d, 0xde00, 0x0042})
	require.True(t, text.IsWellFormed())

	tests := []struct {
		name       string
		i, j       int
		units      []uint16
		wellFormed bool
	}{
		{name: "full", i: 0, j: 4, units: []uint16{0x0041, 0xd83d, 0xde00, 0x0042}, wellFormed: true},
		{name: "empty", i: 2, j: 2, units: []uint16{}, wellFormed: true},
		{name: "around pair", i: 1, j: 3, units: []uint16{0xd83d, 0xde00}, wellFormed: true},
		{name: "cut after leading unit", i: 0, j: 2, units: []uint16{0x0041, 0xd83d}, wellFormed: false},
		{name: "cut before trailing unit", i: 2, j: 4, units: []uint16{0xde00, 0x0042}, wellFormed: false},
		{name: "cut through pair", i: 2, j: 3, units: []uint16{0xde00}, wellFormed: false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sub := text.Slice(test.i, test.j)
			assert.Equal(t, test.units, sub.Units())
			assert.Equal(t, test.wellFormed, sub.IsWellFormed())
			// The propagated bit must agree with a fresh scan.
			assert.Equal(t, wellformed.IsWellFormed(sub.Units()), sub.IsWellFormed())
		})
	}
}

func TestTextSliceUnknownReceiver(t *testing.T) {
	// The receiver's well-formedness was never queried, so the sub-text
	// must be scanned on demand rather than inherit a stale bit.
	text := wellformed.NewText([]uint16{0xd800, 0x0041, 0x0042})
	sub := text.Slice(1, 3)
	assert.True(t, sub.IsWellFormed())
	assert.False(t, text.Slice(0, 1).IsWellFormed())
}

func TestTextSliceIllFormedReceiver(t *testing.T) {
	text := wellformed.NewText([]uint16{0xd800, 0x0041})
	require.False(t, text.IsWellFormed())
	// Slicing away the unpaired surrogate yields a well-formed sub-text.
	assert.True(t, text.Slice(1, 2).IsWellFormed())
}

func TestTextSliceSharedCache(t *testing.T) {
	text := wellformed.NewText([]uint16{0x0041, 0xd83d, 0xde00, 0x0042})
	clone := text
	require.True(t, clone.IsWellFormed())
	// The bit memoized through the copy propagates through the original.
	sub := text.Slice(0, 2)
	assert.False(t, sub.IsWellFormed())
	assert.Equal(t, []uint16{0x0041, 0xd83d}, sub.Units())
}

func TestTextSliceOutOfRange(t *testing.T) {
	text := wellformed.NewText([]uint16{0x0041, 0x0042})
	assert.Panics(t, func() { text.Slice(0, 3) })
	assert.Panics(t, func() { text.Slice(-1, 1) })
	assert.Panics(t, func() { text.Slice(2, 1) })
}

func TestConcat(t *testing.T) {
	tests := []struct {
		name       string
		parts      []wellformed.Text
		units      []uint16
		wellFormed bool
	}{
		{
			name:       "no parts",
			units:      []uint16{},
			wellFormed: true,
		},
		{
			name: "well-formed parts",
			parts: []wellformed.Text{
				wellformed.NewText([]uint16{0x0041}),
				wellformed.NewText([]uint16{0xd83d, 0xde00}),
			},
			units:      []uint16{0x0041, 0xd83d, 0xde00},
			wellFormed: true,
		},
		{
			name: "severed pair healed at boundary",
			parts: []wellformed.Text{
				wellformed.NewText([]uint16{0xd800}),
				wellformed.NewText([]uint16{0xdc00}),
			},
			units:      []uint16{0xd800, 0xdc00},
			wellFormed: true,
		},
		{
			name: "unpaired surrogate survives",
			parts: []wellformed.Text{
				wellformed.NewText([]uint16{0x0041}),
				wellformed.NewText([]uint16{0xd800}),
				wellformed.NewText([]uint16{0x0042}),
			},
			units: []uint16{0x0041, 0xd800, 0x0042},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			joined := wellformed.Concat(test.parts...)
			assert.Equal(t, test.units, joined.Units())
			assert.Equal(t, test.wellFormed, joined.IsWellFormed())
		})
	}
}

func TestConcatPropagatesKnownBit(t *testing.T) {
	a := wellformed.NewText([]uint16{0x0041})
	b := wellformed.NewText([]uint16{0xd83d, 0xde00})
	require.True(t, a.IsWellFormed())
	require.True(t, b.IsWellFormed())
	joined := wellformed.Concat(a, b)
	assert.True(t, joined.IsWellFormed())
	assert.Equal(t, wellformed.IsWellFormed(joined.Units()), joined.IsWellFormed())
}

func TestTextRoundTrip(t *testing.T) {
	for _, test := range wellFormednessTests {
		t.Run(test.name, func(t *testing.T) {
			text := wellformed.NewText(test.units)
			require.Equal(t, len(test.units), text.Len())
			if test.wellFormed {
				// Sanitizing a well-formed text returns an equal value.
				assert.True(t, text.Equal(text.ToWellFormed()))
			}
			assert.Equal(t, test.sanitized, text.ToWellFormed().Units())
		})
	}
}
