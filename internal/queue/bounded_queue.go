// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

// Package queue provides a bounded producer-consumer queue for background
// work.
package queue

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/usvtext/usvtext/internal/metrics"
)

// Consumer consumes data from a bounded queue.
type Consumer interface {
	Consume(item any)
}

// ConsumerFunc is an adapter to allow the use of a consume function
// callback as a Consumer.
type ConsumerFunc func(item any)

// Consume calls c(item).
func (c ConsumerFunc) Consume(item any) {
	c(item)
}

// BoundedQueue implements a producer-consumer exchange backed by a channel
// of fixed capacity. When the queue fills up due to slow consumers, new
// items are rejected rather than blocking the producer.
type BoundedQueue struct {
	workers int
	stopWG  sync.WaitGroup
	size    atomic.Int32
	stopped atomic.Bool
	items   chan any

	onDroppedItem func(item any)
	stopCh        chan struct{}
}

// NewBoundedQueue constructs the new queue of specified capacity, and with
// an optional callback for dropped items (e.g. useful to emit metrics).
func NewBoundedQueue(capacity int, onDroppedItem func(item any)) *BoundedQueue {
	return &BoundedQueue{
		onDroppedItem: onDroppedItem,
		items:         make(chan any, capacity),
		stopCh:        make(chan struct{}),
	}
}

// StartConsumersWithFactory creates a given number of consumers consuming
// items from the queue in separate goroutines.
func (q *BoundedQueue) StartConsumersWithFactory(num int, factory func() Consumer) {
	q.workers = num
	var startWG sync.WaitGroup
	for i := 0; i < q.workers; i++ {
		q.stopWG.Add(1)
		startWG.Add(1)
		go func() {
			startWG.Done()
			defer q.stopWG.Done()
			consumer := factory()
			for {
				select {
				case item, ok := <-q.items:
					if !ok {
						// channel closed, finish worker
						return
					}
					q.size.Add(-1)
					consumer.Consume(item)
				case <-q.stopCh:
					// the whole queue is closing, finish worker
					return
				}
			}
		}()
	}
	startWG.Wait()
}

// StartConsumers starts a given number of goroutines consuming items from
// the queue and passing them into the consumer callback.
func (q *BoundedQueue) StartConsumers(num int, callback func(item any)) {
	q.StartConsumersWithFactory(num, func() Consumer {
		return ConsumerFunc(callback)
	})
}

// Produce is used by the producer to submit new item to the queue.
// Returns false in case of queue overflow or when the queue is stopped.
func (q *BoundedQueue) Produce(item any) bool {
	if q.stopped.Load() {
		q.dropItem(item)
		return false
	}

	if q.Size() >= q.Capacity() {
		// note that all items will be dropped if the capacity is 0
		q.dropItem(item)
		return false
	}

	q.size.Add(1)
	select {
	case q.items <- item:
		return true
	default:
		// should not happen, as overflows are captured earlier
		q.size.Add(-1)
		q.dropItem(item)
		return false
	}
}

func (q *BoundedQueue) dropItem(item any) {
	if q.onDroppedItem != nil {
		q.onDroppedItem(item)
	}
}

// Stop stops all consumers, as well as the length reporter if started.
// It blocks until all consumers have stopped.
func (q *BoundedQueue) Stop() {
	q.stopped.Store(true) // disable producer
	close(q.stopCh)
	q.stopWG.Wait()
	close(q.items)
}

// Size returns the current size of the queue.
func (q *BoundedQueue) Size() int {
	return int(q.size.Load())
}

// Capacity returns the capacity of the queue.
func (q *BoundedQueue) Capacity() int {
	return cap(q.items)
}

// StartLengthReporting starts a timer-based goroutine that periodically
// reports the current queue length to a given metrics gauge.
func (q *BoundedQueue) StartLengthReporting(reportPeriod time.Duration, gauge metrics.Gauge) {
	ticker := time.NewTicker(reportPeriod)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				gauge.Update(int64(q.Size()))
			case <-q.stopCh:
				return
			}
		}
	}()
}
