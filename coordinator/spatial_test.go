package coordinator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/popsim/popcore"
)

func TestUnitGridInsertAndQueryNeighborhood(t *testing.T) {
	g := newUnitGrid(4)

	origin := popcore.WorldCoord{X: 0, Z: 0}
	near := popcore.WorldCoord{X: 100, Z: -100}  // same cell as origin
	far := popcore.WorldCoord{X: 4000, Z: 4000} // far outside a 3x3 block

	g.insert(0, origin)
	g.insert(1, near)
	g.insert(2, far)

	got := g.queryNeighborhood(origin, nil)
	assert.ElementsMatch(t, []int{0, 1}, got, "only same-cell units should be returned")
}

func TestUnitGridWrapsAcrossWorldEdge(t *testing.T) {
	g := newUnitGrid(2)

	// A point 10 units before the wrap point and one 10 units after it
	// should land in adjacent buckets (the last cell and cell 0).
	beforeWrap := popcore.WorldCoord{X: popcore.WorldSize - 10, Z: 0}
	afterWrap := popcore.WorldCoord{X: 10, Z: 0}

	g.insert(0, beforeWrap)
	g.insert(1, afterWrap)

	got := g.queryNeighborhood(popcore.WorldCoord{X: 0, Z: 0}, nil)
	assert.ElementsMatch(t, []int{0, 1}, got, "cells adjacent across the toroidal edge should both be in range")
}

func TestBuildUnitGridEmptyWhenNoUnitsLoaded(t *testing.T) {
	c := New()
	c.LoadLevel(nil, [128][128]uint16{}, 128)
	grid := c.buildUnitGrid()
	assert.Empty(t, grid.pool, "no units loaded means an empty grid")
}
