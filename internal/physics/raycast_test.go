package physics_test

import (
	"testing"

	"blockworld/internal/physics"

	"github.com/go-gl/mathgl/mgl32"
)

func wall(x int) physics.SolidFunc {
	return func(cx, cy, cz int) bool { return cx == x }
}

func TestRaycast(t *testing.T) {
	solid := func(x, y, z int) bool { return x == 5 && y == 0 && z == 0 }

	start := mgl32.Vec3{0.5, 0.5, 0.5}
	dir := mgl32.Vec3{1, 0, 0}

	result := physics.Raycast(start, dir, 0.1, 10.0, solid)

	if !result.Hit {
		t.Fatalf("Expected hit, got miss")
	}
	if result.HitPosition != [3]int{5, 0, 0} {
		t.Errorf("Expected hit at {5,0,0}, got %v", result.HitPosition)
	}
	if result.AdjacentPosition != [3]int{4, 0, 0} {
		t.Errorf("Expected adjacent at {4,0,0}, got %v", result.AdjacentPosition)
	}
	if result.Distance < 4.49 || result.Distance > 4.51 {
		t.Errorf("Expected distance 4.5, got %f", result.Distance)
	}
	if result.Normal != (mgl32.Vec3{-1, 0, 0}) {
		t.Errorf("Expected normal -X, got %v", result.Normal)
	}
	if result.Point.X() < 4.99 || result.Point.X() > 5.01 {
		t.Errorf("Expected hit point on x=5 face, got %v", result.Point)
	}
}

func TestRaycastMiss(t *testing.T) {
	result := physics.Raycast(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 0.1, 3, wall(5))
	if result.Hit {
		t.Fatalf("Expected miss beyond max distance, got hit at %v", result.HitPosition)
	}
	if result.Intersection() != nil {
		t.Errorf("Expected nil intersection on miss")
	}
}

func TestRaycastDownward(t *testing.T) {
	floor := func(x, y, z int) bool { return y <= 2 }
	result := physics.Raycast(mgl32.Vec3{3.5, 10.2, 3.5}, mgl32.Vec3{0, -1, 0}, 0.1, 10, floor)
	if !result.Hit {
		t.Fatalf("Expected to hit the floor")
	}
	if result.HitPosition != [3]int{3, 2, 3} {
		t.Errorf("Expected hit at {3,2,3}, got %v", result.HitPosition)
	}
	hit := result.Intersection()
	if hit == nil || hit.Normal != (mgl32.Vec3{0, 1, 0}) {
		t.Fatalf("Expected +Y normal, got %+v", hit)
	}
	// Stepping back half a cell along the normal lands inside the hit cell.
	inside := hit.Point.Sub(hit.Normal.Mul(0.5))
	if int(inside.Y()) != 2 {
		t.Errorf("Expected point inside y=2, got %v", inside)
	}
}

func TestRaycastNegativeDirection(t *testing.T) {
	result := physics.Raycast(mgl32.Vec3{8.5, 0.5, 0.5}, mgl32.Vec3{-1, 0, 0}, 0.1, 10, wall(2))
	if !result.Hit || result.HitPosition[0] != 2 {
		t.Fatalf("Expected hit at x=2, got %+v", result)
	}
	if result.Normal != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("Expected +X normal, got %v", result.Normal)
	}
	if result.AdjacentPosition[0] != 3 {
		t.Errorf("Expected adjacent x=3, got %v", result.AdjacentPosition)
	}
}

func TestRaycastZeroDirection(t *testing.T) {
	if physics.Raycast(mgl32.Vec3{}, mgl32.Vec3{}, 0, 10, wall(0)).Hit {
		t.Errorf("zero direction must not hit")
	}
}

func BenchmarkRaycast(b *testing.B) {
	start := mgl32.Vec3{0.5, 8, 0.5}
	dir := mgl32.Vec3{1, -0.2, 0.3}
	solid := wall(40)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = physics.Raycast(start, dir, physics.MinReachDistance, 64, solid)
	}
}
