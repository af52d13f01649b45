package popcore

import (
	"math"

	"github.com/aurelien-rainone/assertgo"
)

// 16.16 fixed-point sin/cos lookup tables and an 8-octant atan2, indexed
// over a 2048-step angle circle (AngleMod). Built once at init() rather
// than computed at call sites so every lookup is an array index.
var (
	cosTable [AngleMod]int32
	sinTable [AngleMod]int32
	// atanTable holds round(atan(i/256) * AngleMod / tau) for i in 0..256,
	// used to resolve the octant-local angle inside Atan2.
	atanTable [257]int32
)

func init() {
	for i := 0; i < AngleMod; i++ {
		theta := float64(i) * 2 * math.Pi / float64(AngleMod)
		cosTable[i] = int32(math.Round(math.Cos(theta) * 65536))
		sinTable[i] = int32(math.Round(math.Sin(theta) * 65536))
	}
	for i := 0; i <= 256; i++ {
		ratio := float64(i) / 256.0
		angle := math.Atan(ratio)
		atanTable[i] = int32(math.Round(angle * float64(AngleMod) / (2 * math.Pi)))
	}
	assert.True(cosTable[0] == 65536, "cos(0) must be exactly 1.0 in fixed point")
	assert.True(sinTable[0] == 0, "sin(0) must be exactly 0 in fixed point")
}

// normalizeAngle wraps a raw angle unit into [0, AngleMod).
func normalizeAngle(a int32) int32 {
	a %= AngleMod
	if a < 0 {
		a += AngleMod
	}
	return a
}

// Cos returns cos(angle) in 16.16 fixed point, angle given in AngleMod units.
func Cos(angle int32) int32 {
	return cosTable[normalizeAngle(angle)]
}

// Sin returns sin(angle) in 16.16 fixed point, angle given in AngleMod units.
func Sin(angle int32) int32 {
	return sinTable[normalizeAngle(angle)]
}

// Atan2 returns the angle (in AngleMod units, [0, AngleMod)) of the vector
// (dx, dz), decomposing into one of 8 octants and consulting atanTable for
// the octant-local angle. dx and dz may be any int32; (0,0) returns 0.
func Atan2(dx, dz int32) int32 {
	if dx == 0 && dz == 0 {
		return 0
	}

	ax, az := dx, dz
	neg := false
	if ax < 0 {
		ax = -ax
		neg = true
	}
	az2 := az
	if az2 < 0 {
		az2 = -az2
	}

	var octantAngle int32
	if ax >= az2 {
		if az2 == 0 {
			octantAngle = 0
		} else {
			octantAngle = atanLookup(az2, ax)
		}
	} else {
		octantAngle = AngleMod/4 - atanLookup(ax, az2)
	}

	// Reflect into the correct quadrant based on the signs of dx and dz.
	var angle int32
	switch {
	case dx >= 0 && dz >= 0:
		angle = octantAngle
	case dx < 0 && dz >= 0:
		angle = AngleMod/2 - octantAngle
	case dx < 0 && dz < 0:
		angle = AngleMod/2 + octantAngle
	default: // dx >= 0 && dz < 0
		angle = AngleMod - octantAngle
	}
	_ = neg
	return normalizeAngle(angle)
}

// atanLookup returns atan(num/den) in AngleMod units for 0 <= num <= den,
// by scaling num/den into the table's 0..256 domain, truncating to the
// lower table index and returning that entry (no interpolation).
func atanLookup(num, den int32) int32 {
	if den == 0 {
		return AngleMod / 4
	}
	idx := int64(num) * 256 / int64(den)
	if idx > 256 {
		idx = 256
	}
	return atanTable[idx]
}

// AngleDifference returns the signed shortest difference (b - a) normalized
// into (-AngleHalf, AngleHalf].
func AngleDifference(a, b int32) int32 {
	d := normalizeAngle(b - a)
	if d > AngleHalf {
		d -= AngleMod
	}
	return d
}

// RotationDirection returns -1, 0 or 1: the sign of the shortest rotation
// from facing a to target angle b.
func RotationDirection(a, b int32) int32 {
	d := AngleDifference(a, b)
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	default:
		return 0
	}
}

// Distance returns the Euclidean distance between two world-space points,
// using integer square root (Isqrt) on the squared toroidal delta.
func Distance(ax, az, bx, bz int32) int32 {
	dx := ToroidalDelta(ax, bx)
	dz := ToroidalDelta(az, bz)
	return Isqrt(dx*dx + dz*dz)
}

// MovePointByAngle advances (x, z) by dist fixed-point units along angle,
// wrapping both axes into [0, WorldSize).
func MovePointByAngle(x, z, angle, dist int32) (int32, int32) {
	dx := (Cos(angle) * dist) >> 16
	dz := (Sin(angle) * dist) >> 16
	nx := wrapCoord(x + dx)
	nz := wrapCoord(z + dz)
	return nx, nz
}

func wrapCoord(v int32) int32 {
	v %= WorldSize
	if v < 0 {
		v += WorldSize
	}
	return v
}
