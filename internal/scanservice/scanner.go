// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

// Package scanservice sits between the pure wellformed package and the
// transports. It adds logging, metrics, and a bounded result cache to the
// scan operations, and runs asynchronous batch jobs.
package scanservice

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/usvtext/usvtext/internal/cache"
	"github.com/usvtext/usvtext/internal/metrics"
	"github.com/usvtext/usvtext/wellformed"
)

// CheckResult is the outcome of scanning one sequence.
type CheckResult struct {
	// WellFormed is false if the sequence contains any unpaired surrogate.
	WellFormed bool
	// Unpaired holds the index of every unpaired surrogate, in order.
	Unpaired []int
	// Scanned is the length of the sequence in code units.
	Scanned int
}

// SanitizeResult is the outcome of sanitizing one sequence.
type SanitizeResult struct {
	// Units is the sanitized sequence, same length as the input.
	Units []uint16
	// Replaced is the number of code units overwritten with U+FFFD.
	Replaced int
}

type scannerMetrics struct {
	// SequencesScanned counts sequences passed to Check or Sanitize.
	SequencesScanned metrics.Counter `metric:"sequences_scanned" help:"Number of sequences scanned"`

	// IllFormedSequences counts scans whose input contained at least one
	// unpaired surrogate.
	IllFormedSequences metrics.Counter `metric:"ill_formed_sequences" help:"Number of scanned sequences that were ill-formed"`

	// ReplacementsMade counts code units overwritten by Sanitize.
	ReplacementsMade metrics.Counter `metric:"replacements_made" help:"Number of code units replaced with U+FFFD"`

	CacheHits   metrics.Counter `metric:"cache_hits"`
	CacheMisses metrics.Counter `metric:"cache_misses"`

	ScanLatency metrics.Timer `metric:"scan_latency"`
}

// ScannerParams holds the construction parameters for a Scanner.
type ScannerParams struct {
	Logger         *zap.Logger
	MetricsFactory metrics.Factory

	// CacheSize bounds the number of memoized scan results. Zero disables
	// the cache.
	CacheSize int

	// CacheTTL expires memoized results. Zero means no expiry.
	CacheTTL time.Duration
}

// Scanner wraps the wellformed scan with logging, metrics, and an optional
// LRU cache of scan results keyed by the content of the sequence. The cache
// holds only derived results, so its entries never need invalidation, only
// eviction.
type Scanner struct {
	logger  *zap.Logger
	metrics scannerMetrics
	cache   *cache.LRU
}

// NewScanner creates a Scanner.
func NewScanner(params ScannerParams) *Scanner {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metricsFactory := params.MetricsFactory
	if metricsFactory == nil {
		metricsFactory = metrics.NullFactory
	}

	s := &Scanner{logger: logger}
	metrics.MustInit(&s.metrics, metricsFactory.Namespace(metrics.NSOptions{Name: "scanner"}), nil)

	if params.CacheSize > 0 {
		s.cache = cache.NewLRUWithOptions(params.CacheSize, &cache.Options{
			TTL: params.CacheTTL,
		})
	}
	return s
}

// Check scans the sequence and reports whether it is well-formed, together
// with the indexes of all unpaired surrogates.
func (s *Scanner) Check(units []uint16) CheckResult {
	sw := metrics.StartStopwatch(s.metrics.ScanLatency)
	defer sw.Stop()

	s.metrics.SequencesScanned.Inc(1)

	result, ok := s.cachedResult(units)
	if !ok {
		result = scan(units)
		s.storeResult(units, result)
	}
	if !result.WellFormed {
		s.metrics.IllFormedSequences.Inc(1)
	}
	return result
}

// Sanitize returns a copy of the sequence with every unpaired surrogate
// replaced by U+FFFD. It is built on Check, so repeated sanitization of the
// same content reuses the memoized scan.
func (s *Scanner) Sanitize(units []uint16) SanitizeResult {
	check := s.Check(units)

	out := slices.Clone(units)
	for _, i := range check.Unpaired {
		out[i] = wellformed.ReplacementChar
	}
	if n := len(check.Unpaired); n > 0 {
		s.metrics.ReplacementsMade.Inc(int64(n))
		s.logger.Debug("Replaced unpaired surrogates",
			zap.Int("replacements", n),
			zap.Int("length", len(units)))
	}
	return SanitizeResult{Units: out, Replaced: len(check.Unpaired)}
}

func scan(units []uint16) CheckResult {
	var unpaired []int
	for i := range wellformed.Unpaired(units) {
		unpaired = append(unpaired, i)
	}
	return CheckResult{
		WellFormed: len(unpaired) == 0,
		Unpaired:   unpaired,
		Scanned:    len(units),
	}
}

// makeCacheKey carries the length next to the content hash so that colliding
// hashes of different-length sequences cannot alias.
func makeCacheKey(units []uint16) string {
	h := fnv.New64a()
	var buf [2]byte
	for _, u := range units {
		binary.LittleEndian.PutUint16(buf[:], u)
		h.Write(buf[:])
	}
	return fmt.Sprintf("%016x:%d", h.Sum64(), len(units))
}

func (s *Scanner) cachedResult(units []uint16) (CheckResult, bool) {
	if s.cache == nil {
		return CheckResult{}, false
	}
	value := s.cache.Get(makeCacheKey(units))
	if value == nil {
		s.metrics.CacheMisses.Inc(1)
		return CheckResult{}, false
	}
	s.metrics.CacheHits.Inc(1)
	return value.(CheckResult), true
}

func (s *Scanner) storeResult(units []uint16, result CheckResult) {
	if s.cache == nil {
		return
	}
	s.cache.Put(makeCacheKey(units), result)
}
