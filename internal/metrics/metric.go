// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package metrics

import "time"

// Counter tracks the number of times an event has occurred.
type Counter interface {
	// Inc adds the given value to the counter.
	Inc(int64)
}

// Gauge returns instantaneous measurements of something as an int64 value.
type Gauge interface {
	// Update the gauge to the value passed in.
	Update(int64)
}

// Timer accumulates observations about how long some operation took and
// maintains a histogram of percentiles.
type Timer interface {
	// Record the duration passed in.
	Record(time.Duration)
}

// Histogram keeps track of a distribution of values.
type Histogram interface {
	// Record the value passed in.
	Record(float64)
}

// NullCounter counter that does nothing.
var NullCounter Counter = nullCounter{}

// NullGauge gauge that does nothing.
var NullGauge Gauge = nullGauge{}

// NullTimer timer that does nothing.
var NullTimer Timer = nullTimer{}

// NullHistogram histogram that does nothing.
var NullHistogram Histogram = nullHistogram{}

type nullCounter struct{}

func (nullCounter) Inc(int64) {}

type nullGauge struct{}

func (nullGauge) Update(int64) {}

type nullTimer struct{}

func (nullTimer) Record(time.Duration) {}

type nullHistogram struct{}

func (nullHistogram) Record(float64) {}
