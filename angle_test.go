package popcore

import "testing"

func TestCosSinAtCardinalAngles(t *testing.T) {
	if got := Cos(0); got != 65536 {
		t.Fatalf("Cos(0) = %d, want 65536", got)
	}
	if got := Sin(0); got != 0 {
		t.Fatalf("Sin(0) = %d, want 0", got)
	}
	if got := Sin(AngleMod / 4); abs(got-65536) > 1 {
		t.Fatalf("Sin(AngleMod/4) = %d, want ~65536", got)
	}
	if got := Cos(AngleMod / 2); abs(got+65536) > 1 {
		t.Fatalf("Cos(AngleMod/2) = %d, want ~-65536", got)
	}
}

func TestCosNormalizesOutOfRangeAngles(t *testing.T) {
	if Cos(AngleMod) != Cos(0) {
		t.Fatal("Cos should wrap a full turn back to angle 0")
	}
	if Cos(-AngleMod/4) != Cos(3*AngleMod/4) {
		t.Fatal("Cos should normalize negative angles")
	}
}

func TestAtan2ZeroVector(t *testing.T) {
	if got := Atan2(0, 0); got != 0 {
		t.Fatalf("Atan2(0,0) = %d, want 0", got)
	}
}

func TestAtan2Quadrants(t *testing.T) {
	cases := []struct {
		dx, dz int32
		want   int32
	}{
		{1, 0, 0},
		{0, 1, AngleMod / 4},
		{-1, 0, AngleMod / 2},
		{0, -1, 3 * AngleMod / 4},
	}
	for _, c := range cases {
		if got := Atan2(c.dx, c.dz); got != c.want {
			t.Errorf("Atan2(%d,%d) = %d, want %d", c.dx, c.dz, got, c.want)
		}
	}
}

func TestAngleDifferenceShortestPath(t *testing.T) {
	if got := AngleDifference(0, AngleMod/4); got != AngleMod/4 {
		t.Fatalf("got %d, want %d", got, AngleMod/4)
	}
	// Crossing the wrap boundary should still return the short way.
	if got := AngleDifference(AngleMod-10, 10); got != 20 {
		t.Fatalf("got %d, want 20", got)
	}
}

func TestRotationDirectionSign(t *testing.T) {
	if got := RotationDirection(0, 10); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
	if got := RotationDirection(10, 0); got != -1 {
		t.Fatalf("got %d, want -1", got)
	}
	if got := RotationDirection(5, 5); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}

func TestDistancePythagorean(t *testing.T) {
	got := Distance(0, 0, 30, 40)
	if got != 50 {
		t.Fatalf("got %d, want 50", got)
	}
}

func TestMovePointByAngleWrapsWorld(t *testing.T) {
	x, z := MovePointByAngle(WorldSize-1, 0, 0, 10)
	if x < 0 || x >= WorldSize {
		t.Fatalf("x = %d, out of [0, WorldSize)", x)
	}
	if z != 0 {
		t.Fatalf("z = %d, want 0 (angle 0 moves purely along x)", z)
	}
}

func TestIsqrtKnownValues(t *testing.T) {
	cases := []struct {
		in, want int32
	}{
		{0, 0}, {1, 1}, {4, 2}, {15, 3}, {16, 4}, {1000000, 1000}, {-5, 0},
	}
	for _, c := range cases {
		if got := Isqrt(c.in); got != c.want {
			t.Errorf("Isqrt(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
