package world

import (
	"log/slog"

	"blockworld/internal/metrics"
	"blockworld/internal/noise"
)

const (
	DefaultWidth  = 64
	DefaultDepth  = 64
	DefaultHeight = 48

	DefaultRoughness     = 0.045
	DefaultCaveFrequency = 0.09
	DefaultCaveThreshold = 0.45
	DefaultTreeDensity   = 0.1

	// DefaultFractalOctaves is used by NoiseFractal.
	DefaultFractalOctaves = 4
)

// NoiseKind selects the coherent noise field driving terrain and caves.
type NoiseKind int

const (
	// NoisePerlin is classic gradient noise over a permutation shuffled from
	// the world's random source.
	NoisePerlin NoiseKind = iota
	// NoiseFractal sums several octaves of Perlin noise.
	NoiseFractal
)

func (k NoiseKind) String() string {
	switch k {
	case NoisePerlin:
		return "perlin"
	case NoiseFractal:
		return "fractal"
	default:
		return "unknown"
	}
}

// Options configures world construction. Zero fields take defaults.
// Caves are disabled by a CaveThreshold of 1 or more, trees by a negative
// TreeDensity.
type Options struct {
	Width, Depth, Height int

	// Seed makes generation reproducible. Nil picks a random seed.
	Seed *int64

	Roughness     float64
	CaveFrequency float64
	CaveThreshold float64
	TreeDensity   float64

	Noise NoiseKind
	// Octaves only applies to NoiseFractal.
	Octaves int

	// Rand overrides the seeded Mulberry32 source. It both shuffles the
	// permutation table and drives tree placement.
	Rand noise.Source

	Log     *slog.Logger
	Metrics *metrics.Recorder
}

// Seed is a helper for filling Options.Seed from a literal.
func Seed(v int64) *int64 {
	return &v
}

func (o Options) withDefaults() Options {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Depth == 0 {
		o.Depth = DefaultDepth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Roughness == 0 {
		o.Roughness = DefaultRoughness
	}
	if o.CaveFrequency == 0 {
		o.CaveFrequency = DefaultCaveFrequency
	}
	if o.CaveThreshold == 0 {
		o.CaveThreshold = DefaultCaveThreshold
	}
	if o.TreeDensity == 0 {
		o.TreeDensity = DefaultTreeDensity
	}
	if o.Octaves == 0 {
		o.Octaves = DefaultFractalOctaves
	}
	if o.Log == nil {
		o.Log = slog.Default()
	}
	return o
}

// terrain derives the generator parameters for o. Height bands shrink with
// short grids so the surface always stays inside the volume.
func (o Options) terrain() Terrain {
	t := Terrain{
		MinHeight:     6,
		MaxHeight:     26,
		Roughness:     o.Roughness,
		CaveFrequency: o.CaveFrequency,
		CaveThreshold: o.CaveThreshold,
		CaveGuard:     5,
		SandLevel:     12,
		TreeDensity:   o.TreeDensity,
	}
	if t.MaxHeight > o.Height-2 {
		t.MaxHeight = o.Height - 2
	}
	if t.MinHeight > t.MaxHeight {
		t.MinHeight = t.MaxHeight
	}
	return t
}
