package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SolidFunc reports whether the voxel cell at integer coordinates is solid.
// Cells occupy [x,x+1) × [y,y+1) × [z,z+1).
type SolidFunc func(x, y, z int) bool

// Collides reports whether an upright box overlaps a solid cell. pos is the
// top centre of the box (eye level): it spans [x-radius, x+radius] horizontally
// and [y-height, y] vertically. Every integer cell touched by that range is
// tested, boundaries included.
func Collides(pos mgl32.Vec3, radius, height float32, solid SolidFunc) bool {
	minX := floorInt(pos.X() - radius)
	maxX := floorInt(pos.X() + radius)
	minY := floorInt(pos.Y() - height)
	maxY := floorInt(pos.Y())
	minZ := floorInt(pos.Z() - radius)
	maxZ := floorInt(pos.Z() + radius)

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				if solid(x, y, z) {
					return true
				}
			}
		}
	}
	return false
}

// SurfaceHeight returns the highest solid y in column (x,z) scanning down
// from top-1, or 0 when the column is empty.
func SurfaceHeight(x, z, top int, solid SolidFunc) int {
	for y := top - 1; y >= 0; y-- {
		if solid(x, y, z) {
			return y
		}
	}
	return 0
}

func floorInt(v float32) int {
	return int(math.Floor(float64(v)))
}
