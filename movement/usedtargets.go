package movement

import "github.com/popsim/popcore"

// UsedTargetsCacheSize is the number of recently-snapped walkability targets
// an UsedTargetsCache remembers.
const UsedTargetsCacheSize = 16

// UsedTargetsCache tracks tiles that a walkability snap has recently
// assigned as someone's destination, so a group order issued in the same
// tick doesn't pile every unit onto the identical tile: once a tile is
// recorded, the next unit's spiral scan skips it and snaps to the next
// free candidate instead. Cleared at the start of every OrderMove.
type UsedTargetsCache struct {
	entries [UsedTargetsCacheSize]popcore.TileCoord
	write   int
	count   int
}

// NewUsedTargetsCache returns an empty UsedTargetsCache.
func NewUsedTargetsCache() *UsedTargetsCache {
	return &UsedTargetsCache{}
}

// Reset clears every entry.
func (c *UsedTargetsCache) Reset() {
	*c = UsedTargetsCache{}
}

// Record remembers t as a just-assigned target.
func (c *UsedTargetsCache) Record(t popcore.TileCoord) {
	c.entries[c.write] = t
	c.write = (c.write + 1) % UsedTargetsCacheSize
	if c.count < UsedTargetsCacheSize {
		c.count++
	}
}

// Contains reports whether t was recently assigned as a target.
func (c *UsedTargetsCache) Contains(t popcore.TileCoord) bool {
	for i := 0; i < c.count; i++ {
		if c.entries[i] == t {
			return true
		}
	}
	return false
}
