// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package scanservice

import (
	"expvar"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usvtext/usvtext/internal/metricstest"
	"github.com/usvtext/usvtext/internal/testutils"
)

func TestBatchProcessor(t *testing.T) {
	mb := metricstest.NewFactory(0)
	defer mb.Stop()
	logger, _ := testutils.NewLogger()
	p := NewBatchProcessor(BatchProcessorParams{
		Scanner:        NewScanner(ScannerParams{}),
		Logger:         logger,
		MetricsFactory: mb,
		QueueSize:      10,
		NumWorkers:     1,
	})
	defer p.Stop()

	capacity, ok := expvar.Get("batch.queue_capacity").(*expvar.Int)
	require.True(t, ok)
	assert.Equal(t, int64(10), capacity.Value())

	id, err := p.Submit([][]uint16{
		{0x0041},
		{0xd800},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	job := waitForJobDone(t, p, id)
	require.Len(t, job.Results, 2)
	assert.True(t, job.Results[0].WellFormed)
	assert.False(t, job.Results[1].WellFormed)
	assert.Equal(t, []int{0}, job.Results[1].Unpaired)
	assert.False(t, job.Completed.IsZero())

	waitForCounter(t, mb, "batch.jobs_finished", 1)
	mb.AssertCounterMetrics(t,
		metricstest.ExpectedMetric{Name: "batch.jobs_submitted", Value: 1},
		metricstest.ExpectedMetric{Name: "batch.jobs_finished", Value: 1},
	)
}

func TestBatchProcessorJobNotFound(t *testing.T) {
	p := NewBatchProcessor(BatchProcessorParams{
		Scanner: NewScanner(ScannerParams{}),
	})
	defer p.Stop()

	_, err := p.Job("no-such-job")
	require.ErrorIs(t, err, ErrJobNotFound)
}

func TestBatchProcessorSubmitAfterStop(t *testing.T) {
	mb := metricstest.NewFactory(0)
	defer mb.Stop()
	p := NewBatchProcessor(BatchProcessorParams{
		Scanner:        NewScanner(ScannerParams{}),
		MetricsFactory: mb,
	})
	p.Stop()

	_, err := p.Submit([][]uint16{{0x0041}})
	require.ErrorIs(t, err, ErrQueueFull)
	mb.AssertCounterMetrics(t,
		metricstest.ExpectedMetric{Name: "batch.jobs_dropped", Value: 1},
	)
}

func TestBatchProcessorJobExpiry(t *testing.T) {
	p := NewBatchProcessor(BatchProcessorParams{
		Scanner: NewScanner(ScannerParams{}),
		JobTTL:  time.Nanosecond,
	})
	defer p.Stop()

	id, err := p.Submit([][]uint16{{0x0041}})
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	_, err = p.Job(id)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func waitForJobDone(t *testing.T, p *BatchProcessor, id string) BatchJob {
	for i := 0; i < 1000; i++ {
		job, err := p.Job(id)
		require.NoError(t, err)
		if job.Status == JobStatusDone {
			return job
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("job %s did not finish", id)
	return BatchJob{}
}

func waitForCounter(t *testing.T, mb *metricstest.Factory, name string, expected int64) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		counters, _ := mb.Snapshot()
		if counters[name] == expected {
			return
		}
		time.Sleep(time.Millisecond)
	}
	counters, _ := mb.Snapshot()
	assert.Equal(t, expected, counters[name], "counter %s", name)
}
