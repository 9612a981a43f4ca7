package physics

import (
	"math"

	"blockworld/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinReachDistance = 0.1
	MaxReachDistance = 8.0
)

// Intersection is a ray hit on a block surface: the exact point on the face
// and the outward face normal.
type Intersection struct {
	Point  mgl32.Vec3
	Normal mgl32.Vec3
}

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	HitPosition      [3]int
	AdjacentPosition [3]int
	Point            mgl32.Vec3
	Normal           mgl32.Vec3
	Distance         float32
	Hit              bool
}

// Intersection returns the hit as an Intersection, or nil on a miss.
func (r RaycastResult) Intersection() *Intersection {
	if !r.Hit {
		return nil
	}
	return &Intersection{Point: r.Point, Normal: r.Normal}
}

// Raycast walks the voxel cells pierced by the ray (Amanatides–Woo traversal)
// and returns the first solid cell between minDist and maxDist. direction does
// not need to be normalised.
func Raycast(start, direction mgl32.Vec3, minDist, maxDist float32, solid SolidFunc) RaycastResult {
	defer profiling.Track("physics.Raycast")()

	var result RaycastResult
	if direction.Len() == 0 {
		return result
	}
	dir := direction.Normalize()

	cell := [3]int{floorInt(start.X()), floorInt(start.Y()), floorInt(start.Z())}
	var step [3]int
	var tMax, tDelta [3]float64
	for a := 0; a < 3; a++ {
		d := float64(dir[a])
		s := float64(start[a])
		switch {
		case d > 0:
			step[a] = 1
			tMax[a] = (float64(cell[a]+1) - s) / d
			tDelta[a] = 1 / d
		case d < 0:
			step[a] = -1
			tMax[a] = (s - float64(cell[a])) / -d
			tDelta[a] = -1 / d
		default:
			tMax[a] = math.Inf(1)
			tDelta[a] = math.Inf(1)
		}
	}

	prev := cell
	t := 0.0
	axis := -1
	for t <= float64(maxDist) {
		if axis >= 0 && t >= float64(minDist) && solid(cell[0], cell[1], cell[2]) {
			var n mgl32.Vec3
			n[axis] = float32(-step[axis])
			result.HitPosition = cell
			result.AdjacentPosition = prev
			result.Point = start.Add(dir.Mul(float32(t)))
			result.Normal = n
			result.Distance = float32(t)
			result.Hit = true
			return result
		}

		prev = cell
		axis = 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		t = tMax[axis]
		cell[axis] += step[axis]
		tMax[axis] += tDelta[axis]
	}

	return result
}
