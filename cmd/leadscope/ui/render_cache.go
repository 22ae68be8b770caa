package ui

import (
	"encoding/binary"
	"hash/fnv"
	"sync"
)

// RenderCache memoizes expensive renders (markdown through glamour, mostly)
// keyed by a hash of their inputs. When full it starts over.
type RenderCache struct {
	mu      sync.Mutex
	entries map[uint64]string
	maxSize int
	hits    int
	misses  int
}

// NewRenderCache creates a cache holding at most maxSize entries.
func NewRenderCache(maxSize int) *RenderCache {
	if maxSize < 1 {
		maxSize = 1
	}
	return &RenderCache{entries: make(map[uint64]string), maxSize: maxSize}
}

// ComputeKey hashes strings, ints and bools into a cache key. Every input is
// length- or type-delimited so ("ab","c") and ("a","bc") differ.
func ComputeKey(inputs ...interface{}) uint64 {
	h := fnv.New64a()
	var b [8]byte
	for _, input := range inputs {
		switch v := input.(type) {
		case string:
			binary.LittleEndian.PutUint64(b[:], uint64(len(v)))
			h.Write([]byte{'s'})
			h.Write(b[:])
			h.Write([]byte(v))
		case int:
			binary.LittleEndian.PutUint64(b[:], uint64(v))
			h.Write([]byte{'i'})
			h.Write(b[:])
		case bool:
			if v {
				h.Write([]byte{'b', 1})
			} else {
				h.Write([]byte{'b', 0})
			}
		}
	}
	return h.Sum64()
}

// GetOrCompute returns the cached value for key or computes and stores it.
func (rc *RenderCache) GetOrCompute(key uint64, compute func() string) string {
	rc.mu.Lock()
	if v, ok := rc.entries[key]; ok {
		rc.hits++
		rc.mu.Unlock()
		return v
	}
	rc.misses++
	rc.mu.Unlock()

	v := compute()

	rc.mu.Lock()
	if len(rc.entries) >= rc.maxSize {
		rc.entries = make(map[uint64]string)
	}
	rc.entries[key] = v
	rc.mu.Unlock()
	return v
}

// Stats returns hit and miss counts.
func (rc *RenderCache) Stats() (hits, misses int) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.hits, rc.misses
}

// Len returns the number of cached entries.
func (rc *RenderCache) Len() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.entries)
}
