// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package codeunits

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBytes(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		order binary.ByteOrder
		units []uint16
	}{
		{name: "empty", data: []byte{}, order: binary.LittleEndian, units: []uint16{}},
		{name: "little endian", data: []byte{0x41, 0x00, 0x00, 0xd8}, order: binary.LittleEndian, units: []uint16{0x0041, 0xd800}},
		{name: "big endian", data: []byte{0x00, 0x41, 0xd8, 0x00}, order: binary.BigEndian, units: []uint16{0x0041, 0xd800}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			units, err := FromBytes(test.data, test.order)
			require.NoError(t, err)
			assert.Equal(t, test.units, units)
		})
	}
}

func TestFromBytesOddLength(t *testing.T) {
	units, err := FromBytes([]byte{0x41, 0x00, 0x42}, binary.LittleEndian)
	require.ErrorIs(t, err, ErrOddLength)
	assert.Nil(t, units)
}

func TestToBytesRoundTrip(t *testing.T) {
	units := []uint16{0x0041, 0xd83d, 0xde00, 0xfffd}
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		data := ToBytes(units, order)
		require.Len(t, data, 2*len(units))
		back, err := FromBytes(data, order)
		require.NoError(t, err)
		assert.Equal(t, units, back)
	}
}

func TestDetectByteOrder(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		order  binary.ByteOrder
		bomLen int
	}{
		{name: "big endian BOM", data: []byte{0xfe, 0xff, 0x00, 0x41}, order: binary.BigEndian, bomLen: 2},
		{name: "little endian BOM", data: []byte{0xff, 0xfe, 0x41, 0x00}, order: binary.LittleEndian, bomLen: 2},
		{name: "no BOM", data: []byte{0x41, 0x00}, order: binary.LittleEndian, bomLen: 0},
		{name: "short data", data: []byte{0xfe}, order: binary.LittleEndian, bomLen: 0},
		{name: "empty", data: nil, order: binary.LittleEndian, bomLen: 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			order, bomLen := DetectByteOrder(test.data)
			assert.Equal(t, test.order, order)
			assert.Equal(t, test.bomLen, bomLen)
		})
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		units []uint16
	}{
		{name: "empty", input: "", units: []uint16{}},
		{name: "blank", input: "  \t ", units: []uint16{}},
		{name: "spaces", input: "0041 D800 0042", units: []uint16{0x0041, 0xd800, 0x0042}},
		{name: "commas", input: "D83D,DE00", units: []uint16{0xd83d, 0xde00}},
		{name: "mixed separators", input: "41, D800\n42", units: []uint16{0x0041, 0xd800, 0x0042}},
		{name: "lower case", input: "fffd", units: []uint16{0xfffd}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			units, err := ParseHex(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.units, units)
		})
	}
}

func TestParseHexErrors(t *testing.T) {
	for _, input := range []string{"xyz", "0041 nope", "12345", "-41"} {
		t.Run(input, func(t *testing.T) {
			units, err := ParseHex(input)
			require.Error(t, err)
			assert.Nil(t, units)
			assert.ErrorContains(t, err, "invalid code unit")
		})
	}
}

func TestFormatHex(t *testing.T) {
	assert.Empty(t, FormatHex(nil))
	assert.Equal(t, "0041 D800 FFFD", FormatHex([]uint16{0x41, 0xd800, 0xfffd}))
}

func TestHexRoundTrip(t *testing.T) {
	units := []uint16{0x0000, 0x0041, 0xd800, 0xdfff, 0xfffd, 0xffff}
	back, err := ParseHex(FormatHex(units))
	require.NoError(t, err)
	assert.Equal(t, units, back)
}
