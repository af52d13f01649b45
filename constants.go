package popcore

// World geometry. The world is toroidal: both axes wrap at WorldSize.
const (
	WorldSize       = 0x10000 // world coordinate period on each axis
	WorldWrapThresh = 0x8000  // deltas larger in magnitude than this wrap the other way
	CellSize        = 512     // world units per region-map cell
	TileSize        = 256     // world units per tile (half a cell)
	RegionGridSize  = 128     // cells per axis in the region map
	RegionIDMask    = 0x3FF   // RegionAt masks RegionID to its low 10 effective bits
	CellHasBuilding = 0x02    // RegionCell.FlagsHigh bit set when a building occupies the cell
)

// MaxWalkabilitySearch bounds the spiral scan used when snapping an
// unwalkable target onto the nearest walkable tile: at most this many
// neighbouring tiles are tried.
const MaxWalkabilitySearch = 32

// Angle math: 2048 discrete steps per full turn.
const (
	AngleMod  = 2048
	AngleHalf = AngleMod / 2
)

// Cardinal direction indices used by the pathfinder's wall-following arms.
const (
	DirS = 0
	DirE = 1
	DirN = 2
	DirW = 3
)

// DirectionDX and DirectionDZ give the tile-space step for each of the
// four cardinal directions, indexed by DirS..DirW.
var DirectionDX = [4]int32{0, 1, 0, -1}
var DirectionDZ = [4]int32{1, 0, -1, 0}
