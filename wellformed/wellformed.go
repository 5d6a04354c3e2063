// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package wellformed

import "iter"

const (
	// 0xd800-0xdc00 encodes the high 10 bits of a pair.
	// 0xdc00-0xe000 encodes the low 10 bits of a pair.
	surr1 = 0xd800
	surr2 = 0xdc00
	surr3 = 0xe000
)

// ReplacementChar is the Unicode replacement character U+FFFD, substituted
// for each unpaired surrogate by ToWellFormed.
const ReplacementChar uint16 = 0xfffd

// IsLeadingSurrogate reports whether u is a leading (high) surrogate,
// i.e. in the range 0xD800..0xDBFF.
func IsLeadingSurrogate(u uint16) bool {
	return surr1 <= u && u < surr2
}

// IsTrailingSurrogate reports whether u is a trailing (low) surrogate,
// i.e. in the range 0xDC00..0xDFFF.
func IsTrailingSurrogate(u uint16) bool {
	return surr2 <= u && u < surr3
}

// IsSurrogate reports whether u falls anywhere in the surrogate range.
func IsSurrogate(u uint16) bool {
	return surr1 <= u && u < surr3
}

// Unpaired returns an iterator over the indexes of all unpaired surrogates
// in s, in increasing order. A leading surrogate immediately followed by a
// trailing surrogate is a valid pair and both units are skipped; every other
// surrogate is yielded. Non-surrogate code units are never yielded.
//
// Both IsWellFormed and ToWellFormed are defined in terms of this single
// scan, which is what keeps their edge-case behavior identical.
func Unpaired(s []uint16) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < len(s); i++ {
			switch u := s[i]; {
			case u < surr1, surr3 <= u:
				// normal code unit
			case IsLeadingSurrogate(u) && i+1 < len(s) && IsTrailingSurrogate(s[i+1]):
				// valid surrogate pair, consume both units
				i++
			default:
				if !yield(i) {
					return
				}
			}
		}
	}
}

// IsWellFormed reports whether s contains no unpaired surrogates. The empty
// sequence is well-formed. The scan stops at the first unpaired surrogate.
func IsWellFormed(s []uint16) bool {
	for range Unpaired(s) {
		return false
	}
	return true
}

// ToWellFormed returns a copy of s of identical length in which every
// unpaired surrogate is replaced with ReplacementChar. Valid surrogate pairs
// and non-surrogate code units are preserved unchanged. The result is always
// newly allocated and never aliases s.
func ToWellFormed(s []uint16) []uint16 {
	out := make([]uint16, len(s))
	copy(out, s)
	for i := range Unpaired(s) {
		out[i] = ReplacementChar
	}
	return out
}

// CountUnpaired returns the number of unpaired surrogates in s, which is
// exactly the number of replacements ToWellFormed makes.
func CountUnpaired(s []uint16) int {
	n := 0
	for range Unpaired(s) {
		n++
	}
	return n
}
