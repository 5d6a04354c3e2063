// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLRUGetPut(t *testing.T) {
	c := NewLRU(2)
	assert.Nil(t, c.Get("a"))

	assert.Nil(t, c.Put("a", 1))
	assert.Equal(t, 1, c.Get("a"))
	assert.Equal(t, 1, c.Put("a", 2), "Put returns the previous value")
	assert.Equal(t, 2, c.Get("a"))
	assert.Equal(t, 1, c.Size())
}

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	var evicted []string
	c := NewLRUWithOptions(2, &Options{
		OnEvict: func(key string, _ any) {
			evicted = append(evicted, key)
		},
	})

	c.Put("a", 1)
	c.Put("b", 2)
	// Touch "a" so that "b" becomes the eviction candidate.
	c.Get("a")
	c.Put("c", 3)

	assert.Equal(t, []string{"b"}, evicted)
	assert.Nil(t, c.Get("b"))
	assert.Equal(t, 1, c.Get("a"))
	assert.Equal(t, 3, c.Get("c"))
	assert.Equal(t, 2, c.Size())
}

func TestLRUTTL(t *testing.T) {
	now := time.Now()
	c := NewLRUWithOptions(5, &Options{
		TTL:     time.Minute,
		TimeNow: func() time.Time { return now },
	})

	c.Put("a", 1)
	assert.Equal(t, 1, c.Get("a"))

	now = now.Add(2 * time.Minute)
	assert.Nil(t, c.Get("a"), "expired entry must not be returned")
	assert.Equal(t, 0, c.Size())
}

func TestLRUPutRefreshesTTL(t *testing.T) {
	now := time.Now()
	c := NewLRUWithOptions(5, &Options{
		TTL:     time.Minute,
		TimeNow: func() time.Time { return now },
	})

	c.Put("a", 1)
	now = now.Add(45 * time.Second)
	c.Put("a", 2)
	now = now.Add(45 * time.Second)
	assert.Equal(t, 2, c.Get("a"), "refreshed entry must still be alive")
}

func TestLRUDelete(t *testing.T) {
	evictions := 0
	c := NewLRUWithOptions(5, &Options{
		OnEvict: func(string, any) { evictions++ },
	})

	c.Put("a", 1)
	c.Delete("a")
	assert.Nil(t, c.Get("a"))
	assert.Equal(t, 1, evictions)

	// Deleting a missing key is a no-op.
	c.Delete("missing")
	assert.Equal(t, 1, evictions)
}
