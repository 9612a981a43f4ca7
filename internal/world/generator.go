package world

import (
	"math"

	"blockworld/internal/noise"
	"blockworld/internal/profiling"
	"blockworld/internal/registry"
)

// Terrain holds the generator parameters.
type Terrain struct {
	MinHeight, MaxHeight int
	Roughness            float64
	CaveFrequency        float64
	CaveThreshold        float64
	// CaveGuard keeps caves this many cells below the surface.
	CaveGuard   int
	SandLevel   int
	TreeDensity float64
}

// Generator handles terrain generation logic.
type Generator struct {
	field   noise.Field
	rng     noise.Source
	terrain Terrain
}

// NewGenerator creates a generator sampling field for terrain and caves and
// drawing tree placement from rng.
func NewGenerator(field noise.Field, rng noise.Source, terrain Terrain) *Generator {
	return &Generator{field: field, rng: rng, terrain: terrain}
}

// HeightAt computes the surface height (block y) of column x,z.
func (g *Generator) HeightAt(x, z int) int {
	t := &g.terrain
	n := g.field.Noise2D(float64(x)*t.Roughness, float64(z)*t.Roughness)
	return int(math.Floor(float64(t.MinHeight) + (n+1)/2*float64(t.MaxHeight-t.MinHeight)))
}

// Populate overwrites every cell of grid with terrain, carves caves and then
// scatters trees. It returns the number of trees planted.
func (g *Generator) Populate(grid *Grid) int {
	defer profiling.Track("world.Generate")()
	g.fill(grid)
	return g.scatterTrees(grid)
}

func (g *Generator) fill(grid *Grid) {
	t := &g.terrain
	w, h, d := grid.Dimensions()
	cf := t.CaveFrequency

	for x := 0; x < w; x++ {
		for z := 0; z < d; z++ {
			height := g.HeightAt(x, z)
			sandy := height < t.SandLevel

			for y := 0; y < h; y++ {
				if y > height {
					grid.Set(x, y, z, registry.BlockAir)
					continue
				}

				id := registry.BlockStone
				switch {
				case y == height && sandy:
					id = registry.BlockSand
				case y == height:
					id = registry.BlockGrass
				case height-y <= 3 && sandy:
					id = registry.BlockSand
				case height-y <= 3:
					id = registry.BlockDirt
				}

				n := g.field.Noise3D(float64(x)*cf, float64(y)*cf, float64(z)*cf)
				if n > t.CaveThreshold && y < height-t.CaveGuard {
					id = registry.BlockAir
				}

				grid.Set(x, y, z, id)
			}
		}
	}
}
