// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package scanservice

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/usvtext/usvtext/internal/cache"
	"github.com/usvtext/usvtext/internal/metrics"
	"github.com/usvtext/usvtext/internal/queue"
	"github.com/usvtext/usvtext/internal/safeexpvar"
)

// Default construction parameters for BatchProcessor.
const (
	DefaultQueueSize  = 1000
	DefaultNumWorkers = 4
	DefaultMaxJobs    = 1000
	DefaultJobTTL     = 15 * time.Minute
)

// ErrQueueFull is returned by Submit when the queue cannot accept more jobs.
var ErrQueueFull = errors.New("batch queue is full")

// ErrJobNotFound is returned by Job for unknown or expired job IDs.
var ErrJobNotFound = errors.New("job not found")

// JobStatus describes the lifecycle state of a batch job.
type JobStatus string

// Lifecycle states of a batch job.
const (
	JobStatusPending JobStatus = "pending"
	JobStatusDone    JobStatus = "done"
)

// BatchJob is the unit of asynchronous work tracked by the BatchProcessor.
type BatchJob struct {
	ID        string
	Status    JobStatus
	Submitted time.Time
	Completed time.Time
	Results   []CheckResult
}

type queuedJob struct {
	queuedTime time.Time
	id         string
	sequences  [][]uint16
}

type batchMetrics struct {
	JobsSubmitted metrics.Counter `metric:"jobs_submitted"`
	JobsDropped   metrics.Counter `metric:"jobs_dropped"`
	JobsFinished  metrics.Counter `metric:"jobs_finished"`

	// QueueLength is reported periodically while the processor runs.
	QueueLength metrics.Gauge `metric:"queue_length"`

	SequencesPerJob metrics.Histogram `metric:"sequences_per_job" buckets:"1,8,64,512,4096"`

	InQueueLatency metrics.Timer `metric:"in_queue_latency"`
}

// BatchProcessorParams holds the construction parameters for a
// BatchProcessor. Zero values fall back to the package defaults.
type BatchProcessorParams struct {
	Scanner        *Scanner
	Logger         *zap.Logger
	MetricsFactory metrics.Factory

	// QueueSize bounds the number of jobs waiting for a worker.
	QueueSize int

	// NumWorkers is the number of goroutines draining the queue.
	NumWorkers int

	// MaxJobs bounds the number of retained finished jobs.
	MaxJobs int

	// JobTTL expires retained jobs.
	JobTTL time.Duration
}

// BatchProcessor scans batches of sequences asynchronously: Submit enqueues
// a job and returns its ID, workers drain the queue through the Scanner, and
// finished jobs stay retrievable by ID until they expire.
type BatchProcessor struct {
	scanner *Scanner
	logger  *zap.Logger
	metrics batchMetrics
	queue   *queue.BoundedQueue

	jobsMu sync.Mutex
	jobs   *cache.LRU
}

// NewBatchProcessor creates a BatchProcessor and starts its workers and
// queue length reporter.
func NewBatchProcessor(params BatchProcessorParams) *BatchProcessor {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metricsFactory := params.MetricsFactory
	if metricsFactory == nil {
		metricsFactory = metrics.NullFactory
	}
	if params.QueueSize <= 0 {
		params.QueueSize = DefaultQueueSize
	}
	if params.NumWorkers <= 0 {
		params.NumWorkers = DefaultNumWorkers
	}
	if params.MaxJobs <= 0 {
		params.MaxJobs = DefaultMaxJobs
	}
	if params.JobTTL <= 0 {
		params.JobTTL = DefaultJobTTL
	}

	p := &BatchProcessor{
		scanner: params.Scanner,
		logger:  logger,
	}
	metrics.MustInit(&p.metrics, metricsFactory.Namespace(metrics.NSOptions{Name: "batch"}), nil)

	p.queue = queue.NewBoundedQueue(params.QueueSize, func(any) {
		p.metrics.JobsDropped.Inc(1)
	})
	p.jobs = cache.NewLRUWithOptions(params.MaxJobs, &cache.Options{
		TTL: params.JobTTL,
	})

	p.queue.StartConsumers(params.NumWorkers, p.processItemFromQueue)
	p.queue.StartLengthReporting(time.Second, p.metrics.QueueLength)
	safeexpvar.SetExpvarInt("batch.queue_capacity", int64(p.queue.Capacity()))

	logger.Info("Batch processor started",
		zap.Int("queue-size", params.QueueSize),
		zap.Int("workers", params.NumWorkers))
	return p
}

// Submit enqueues a batch of sequences and returns the job ID. It returns
// ErrQueueFull when the queue is saturated or the processor is stopped.
func (p *BatchProcessor) Submit(sequences [][]uint16) (string, error) {
	job := &queuedJob{
		queuedTime: time.Now(),
		id:         newJobID(),
		sequences:  sequences,
	}
	p.metrics.SequencesPerJob.Record(float64(len(sequences)))

	p.jobsMu.Lock()
	p.jobs.Put(job.id, &BatchJob{
		ID:        job.id,
		Status:    JobStatusPending,
		Submitted: job.queuedTime,
	})
	p.jobsMu.Unlock()

	if !p.queue.Produce(job) {
		p.jobsMu.Lock()
		p.jobs.Delete(job.id)
		p.jobsMu.Unlock()
		return "", ErrQueueFull
	}
	p.metrics.JobsSubmitted.Inc(1)
	return job.id, nil
}

// Job returns a snapshot of the job with the given ID.
func (p *BatchProcessor) Job(id string) (BatchJob, error) {
	p.jobsMu.Lock()
	defer p.jobsMu.Unlock()
	stored, ok := p.jobs.Get(id).(*BatchJob)
	if !ok {
		return BatchJob{}, ErrJobNotFound
	}
	return *stored, nil
}

// Stop halts the batch processor and all its goroutines. Submissions after
// Stop are rejected.
func (p *BatchProcessor) Stop() {
	p.queue.Stop()
}

func (p *BatchProcessor) processItemFromQueue(item any) {
	job := item.(*queuedJob)
	p.metrics.InQueueLatency.Record(time.Since(job.queuedTime))

	results := make([]CheckResult, len(job.sequences))
	for i, seq := range job.sequences {
		results[i] = p.scanner.Check(seq)
	}

	p.jobsMu.Lock()
	if stored, ok := p.jobs.Get(job.id).(*BatchJob); ok {
		stored.Status = JobStatusDone
		stored.Completed = time.Now()
		stored.Results = results
	}
	p.jobsMu.Unlock()

	p.metrics.JobsFinished.Inc(1)
	p.logger.Debug("Batch job finished",
		zap.String("job-id", job.id),
		zap.Int("sequences", len(job.sequences)))
}

func newJobID() string {
	return fmt.Sprintf("%016x", rand.Uint64())
}
