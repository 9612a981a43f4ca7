package noise

import (
	"github.com/aquilax/go-perlin"
)

// Fractal is a multi-octave field for rougher terrain. It is an alternative to
// Perlin for the height map and does not share its permutation table.
type Fractal struct {
	p *perlin.Perlin
}

const (
	fractalAlpha = 2.0
	fractalBeta  = 2.0
)

// NewFractal creates a field summing octaves layers of noise.
func NewFractal(seed int64, octaves int32) *Fractal {
	if octaves < 1 {
		octaves = 1
	}
	return &Fractal{p: perlin.NewPerlin(fractalAlpha, fractalBeta, octaves, seed)}
}

// Noise2D samples the field; the result is clamped to [-1,1].
func (f *Fractal) Noise2D(x, y float64) float64 {
	return clampUnit(f.p.Noise2D(x, y))
}

// Noise3D samples the field; the result is clamped to [-1,1].
func (f *Fractal) Noise3D(x, y, z float64) float64 {
	return clampUnit(f.p.Noise3D(x, y, z))
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
