// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

// Package wellformed implements well-formedness testing and sanitization
// of UTF-16 code unit sequences.
//
// A sequence is well-formed when every surrogate code unit participates in
// an adjacent, correctly ordered pair: each leading surrogate
// (0xD800..0xDBFF) is immediately followed by a trailing surrogate
// (0xDC00..0xDFFF), and no trailing surrogate appears without such a
// predecessor. Well-formed sequences encode Unicode Scalar Value text.
//
// The two entry points, IsWellFormed and ToWellFormed, share a single scan
// (see Unpaired), so the boolean test and the sanitizing transform can never
// disagree about which code units are unpaired.
package wellformed
