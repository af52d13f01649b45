package popcore

import "github.com/aurelien-rainone/math32"

// sqrtEstimates seeds the Newton iteration in Isqrt: index i gives a first
// guess for the square root of values near 2^i, ported from the original's
// 32-entry estimate table.
var sqrtEstimates = [32]uint32{
	0x00000001, 0x00000001, 0x00000002, 0x00000002,
	0x00000004, 0x00000005, 0x00000008, 0x0000000b,
	0x00000010, 0x00000016, 0x00000020, 0x0000002d,
	0x00000040, 0x0000005a, 0x00000080, 0x000000b5,
	0x00000100, 0x0000016a, 0x00000200, 0x000002d4,
	0x00000400, 0x000005a8, 0x00000800, 0x00000b50,
	0x00001000, 0x000016a1, 0x00002000, 0x00002d41,
	0x00004000, 0x00005a82, 0x00008000, 0xFFFFFFFF,
}

// Isqrt returns floor(sqrt(v)) for v >= 0, using a bit-scan-indexed seed
// table followed by Newton-Raphson refinement; matches the original's
// integer sqrt exactly for all int32 magnitudes used by this package.
func Isqrt(v int32) int32 {
	if v <= 0 {
		return 0
	}
	u := uint32(v)
	idx := math32.Ilog2(u)
	if idx >= uint32(len(sqrtEstimates)) {
		idx = uint32(len(sqrtEstimates)) - 1
	}
	x := sqrtEstimates[idx]
	for i := 0; i < 4; i++ {
		x = (x + u/x) / 2
	}
	for x*x > u {
		x--
	}
	for (x+1)*(x+1) <= u {
		x++
	}
	return int32(x)
}
