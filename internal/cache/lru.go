// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

// Package cache provides a concurrent LRU cache with optional TTL.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// EvictCallback is invoked with the key and value of an entry leaving the
// cache, whether by LRU pressure, TTL expiry, or explicit Delete.
type EvictCallback func(key string, value any)

// Options control the behavior of the LRU cache.
type Options struct {
	// TTL is how long entries stay alive. Zero disables expiry.
	TTL time.Duration

	// InitialCapacity sizes the internal map.
	InitialCapacity int

	// OnEvict is called for every entry removed from the cache.
	OnEvict EvictCallback

	// TimeNow is used to override the behavior of default time.Now(),
	// e.g. in tests.
	TimeNow func() time.Time
}

// LRU is a concurrent fixed size cache that evicts elements in LRU order as
// well as by TTL.
type LRU struct {
	mux      sync.Mutex
	byAccess *list.List
	byKey    map[string]*list.Element
	maxSize  int
	ttl      time.Duration
	timeNow  func() time.Time
	onEvict  EvictCallback
}

// NewLRU creates a new LRU cache with default options.
func NewLRU(maxSize int) *LRU {
	return NewLRUWithOptions(maxSize, nil)
}

// NewLRUWithOptions creates a new LRU cache with the given options.
func NewLRUWithOptions(maxSize int, opts *Options) *LRU {
	if opts == nil {
		opts = &Options{}
	}
	if opts.TimeNow == nil {
		opts.TimeNow = time.Now
	}
	return &LRU{
		byAccess: list.New(),
		byKey:    make(map[string]*list.Element, opts.InitialCapacity),
		ttl:      opts.TTL,
		maxSize:  maxSize,
		timeNow:  opts.TimeNow,
		onEvict:  opts.OnEvict,
	}
}

// Get retrieves the value stored under the given key, or nil.
func (c *LRU) Get(key string) any {
	c.mux.Lock()
	defer c.mux.Unlock()

	elt := c.byKey[key]
	if elt == nil {
		return nil
	}

	entry := elt.Value.(*cacheEntry)
	if !entry.expiration.IsZero() && c.timeNow().After(entry.expiration) {
		// entry has expired
		if c.onEvict != nil {
			c.onEvict(entry.key, entry.value)
		}
		c.byAccess.Remove(elt)
		delete(c.byKey, entry.key)
		return nil
	}

	c.byAccess.MoveToFront(elt)
	return entry.value
}

// Put puts a new value associated with a given key, returning the existing
// value (if present).
func (c *LRU) Put(key string, value any) any {
	c.mux.Lock()
	defer c.mux.Unlock()

	if elt := c.byKey[key]; elt != nil {
		entry := elt.Value.(*cacheEntry)
		existing := entry.value
		entry.value = value
		if c.ttl != 0 {
			entry.expiration = c.timeNow().Add(c.ttl)
		}
		c.byAccess.MoveToFront(elt)
		return existing
	}

	entry := &cacheEntry{
		key:   key,
		value: value,
	}
	if c.ttl != 0 {
		entry.expiration = c.timeNow().Add(c.ttl)
	}
	c.byKey[key] = c.byAccess.PushFront(entry)
	for len(c.byKey) > c.maxSize {
		oldest := c.byAccess.Remove(c.byAccess.Back()).(*cacheEntry)
		if c.onEvict != nil {
			c.onEvict(oldest.key, oldest.value)
		}
		delete(c.byKey, oldest.key)
	}

	return nil
}

// Delete deletes the key, value pair associated with a key.
func (c *LRU) Delete(key string) {
	c.mux.Lock()
	defer c.mux.Unlock()

	if elt := c.byKey[key]; elt != nil {
		entry := c.byAccess.Remove(elt).(*cacheEntry)
		if c.onEvict != nil {
			c.onEvict(entry.key, entry.value)
		}
		delete(c.byKey, key)
	}
}

// Size returns the number of entries currently in the cache.
func (c *LRU) Size() int {
	c.mux.Lock()
	defer c.mux.Unlock()

	return len(c.byKey)
}

type cacheEntry struct {
	key        string
	expiration time.Time
	value      any
}
