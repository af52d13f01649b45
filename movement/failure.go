package movement

import "github.com/popsim/popcore"

// FailureCacheSize is the number of (start, end) tile pairs remembered by a
// FailureCache before the oldest entry is overwritten.
const FailureCacheSize = 8

// FailureCache remembers recent pathfinder failures so the route dispatcher
// can short-circuit a doomed lookup (Tier 3) instead of re-running the
// wall-follower against an endpoint pair it already knows has no route.
// Entries are kept in a fixed ring buffer, matching the fixed-capacity
// slab style used by SegmentPool: no growth, oldest entry evicted first.
type FailureCache struct {
	entries [FailureCacheSize]failureEntry
	write   int
	count   int
}

type failureEntry struct {
	start, end popcore.TileCoord
}

// NewFailureCache returns an empty FailureCache.
func NewFailureCache() *FailureCache {
	return &FailureCache{}
}

// Reset clears every entry.
func (c *FailureCache) Reset() {
	*c = FailureCache{}
}

// RecordFailure remembers that no route exists between start and end,
// overwriting the oldest entry once the cache is full.
func (c *FailureCache) RecordFailure(start, end popcore.TileCoord) {
	c.entries[c.write] = failureEntry{start, end}
	c.write = (c.write + 1) % FailureCacheSize
	if c.count < FailureCacheSize {
		c.count++
	}
}

// Contains reports whether (start, end), or the reverse pair (end, start),
// was recently recorded as a failure.
func (c *FailureCache) Contains(start, end popcore.TileCoord) bool {
	for i := 0; i < c.count; i++ {
		if (c.entries[i].start == start && c.entries[i].end == end) ||
			(c.entries[i].start == end && c.entries[i].end == start) {
			return true
		}
	}
	return false
}
