package world

import (
	"math"

	"blockworld/internal/physics"
	"blockworld/internal/registry"
)

const (
	treeFrequency = 0.025
	treeNoiseGate = 0.3
	trunkMin      = 4
	trunkMax      = 6
	leafRadius    = 2
	treeMargin    = 2
)

// scatterTrees plants trees on grass columns at least treeMargin cells from
// the border. A column needs both the low-frequency noise gate and a random
// draw under TreeDensity. Leaves only fill air so trunks and terrain survive.
func (g *Generator) scatterTrees(grid *Grid) int {
	w, h, d := grid.Dimensions()
	planted := 0

	for x := treeMargin; x < w-treeMargin; x++ {
		for z := treeMargin; z < d-treeMargin; z++ {
			surface := physics.SurfaceHeight(x, z, h, grid.Solid)
			if surface <= 0 {
				continue
			}
			if grid.Get(x, surface, z) != registry.BlockGrass {
				continue
			}
			if g.field.Noise2D(float64(x)*treeFrequency, float64(z)*treeFrequency) < treeNoiseGate {
				continue
			}
			if g.rng.Float64() > g.terrain.TreeDensity {
				continue
			}

			trunk := int(math.Floor(trunkMin + g.rng.Float64()*(trunkMax-trunkMin)))
			for i := 1; i <= trunk && surface+i < h-1; i++ {
				grid.Set(x, surface+i, z, registry.BlockWood)
			}
			g.canopy(grid, x, surface+trunk, z)
			planted++
		}
	}
	return planted
}

func (g *Generator) canopy(grid *Grid, cx, cy, cz int) {
	for dx := -leafRadius; dx <= leafRadius; dx++ {
		for dy := -leafRadius; dy <= leafRadius; dy++ {
			for dz := -leafRadius; dz <= leafRadius; dz++ {
				if abs(dx)+abs(dy)+abs(dz) > leafRadius+1 {
					continue
				}
				x, y, z := cx+dx, cy+dy, cz+dz
				if !grid.InBounds(x, y, z) || grid.Get(x, y, z) != registry.BlockAir {
					continue
				}
				grid.Set(x, y, z, registry.BlockLeaves)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
