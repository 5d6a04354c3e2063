// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

// Package codeunits converts between UTF-16 code unit sequences and the
// byte and hex-text forms they travel in. It moves code units in and out of
// files and flags verbatim; it performs no transcoding to or from other
// encodings.
package codeunits

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrOddLength is returned when a byte stream cannot hold whole 16-bit
// code units.
var ErrOddLength = errors.New("truncated UTF-16 data: byte length is not a multiple of 2")

// FromBytes decodes data as UTF-16 code units in the given byte order.
func FromBytes(data []byte, order binary.ByteOrder) ([]uint16, error) {
	if len(data)%2 != 0 {
		return nil, ErrOddLength
	}
	units := make([]uint16, len(data)/2)
	for i := range units {
		units[i] = order.Uint16(data[2*i:])
	}
	return units, nil
}

// ToBytes encodes units in the given byte order.
func ToBytes(units []uint16, order binary.ByteOrder) []byte {
	buf := make([]byte, 2*len(units))
	for i, u := range units {
		order.PutUint16(buf[2*i:], u)
	}
	return buf
}

// DetectByteOrder sniffs a byte order mark at the start of data. It returns
// the detected order and the number of BOM bytes to skip. Without a BOM the
// data is assumed little-endian and nothing is skipped.
func DetectByteOrder(data []byte) (binary.ByteOrder, int) {
	if len(data) >= 2 {
		switch {
		case data[0] == 0xfe && data[1] == 0xff:
			return binary.BigEndian, 2
		case data[0] == 0xff && data[1] == 0xfe:
			return binary.LittleEndian, 2
		}
	}
	return binary.LittleEndian, 0
}

// ParseHex parses a sequence of code units written as whitespace or comma
// separated hex numbers, e.g. "0041 D800 0042". Each number must fit in 16
// bits. An input with no tokens yields an empty sequence.
func ParseHex(s string) ([]uint16, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	units := make([]uint16, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid code unit %q: %w", f, err)
		}
		units = append(units, uint16(v))
	}
	return units, nil
}

// FormatHex renders units as space separated 4-digit hex numbers.
func FormatHex(units []uint16) string {
	parts := make([]string, len(units))
	for i, u := range units {
		parts[i] = fmt.Sprintf("%04X", u)
	}
	return strings.Join(parts, " ")
}
