package noise

import (
	"math"
)

// Field is a continuous, deterministic noise field.
type Field interface {
	Noise2D(x, y float64) float64
	Noise3D(x, y, z float64) float64
}

const permutationSize = 256

// Perlin is classic gradient noise over a seeded permutation table.
// Output is roughly in [-1,1].
type Perlin struct {
	perm [permutationSize * 2]uint8
}

// NewPerlin builds the permutation table by shuffling 0..255 with values drawn
// from src. The table is duplicated to 512 entries so lookups never wrap.
func NewPerlin(src Source) *Perlin {
	var base [permutationSize]uint8
	for i := range base {
		base[i] = uint8(i)
	}
	// Fisher-Yates, high index down to 1
	for i := permutationSize - 1; i > 0; i-- {
		j := int(math.Floor(src.Float64() * float64(i+1)))
		base[i], base[j] = base[j], base[i]
	}

	p := &Perlin{}
	for i := range p.perm {
		p.perm[i] = base[i%permutationSize]
	}
	return p
}

// NewPerlinSeed is NewPerlin fed by a fresh Mulberry32 seeded with seed.
func NewPerlinSeed(seed int64) *Perlin {
	return NewPerlin(NewMulberry32(seed))
}

// Permutation returns a copy of the first half of the lookup table.
func (p *Perlin) Permutation() [permutationSize]uint8 {
	var out [permutationSize]uint8
	copy(out[:], p.perm[:permutationSize])
	return out
}

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// grad picks one of 12 edge directions (16 with repeats) from the low 4 bits
// of hash and returns its dot product with (x,y,z).
func grad(hash uint8, x, y, z float64) float64 {
	h := hash & 15
	u := y
	if h < 8 {
		u = x
	}
	var v float64
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	default:
		v = z
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// Noise2D samples the plane z=0 of the 3-D field.
func (p *Perlin) Noise2D(x, y float64) float64 {
	return p.Noise3D(x, y, 0)
}

// Noise3D samples the field at (x,y,z).
func (p *Perlin) Noise3D(x, y, z float64) float64 {
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)
	X := int(fx) & 255
	Y := int(fy) & 255
	Z := int(fz) & 255

	x -= fx
	y -= fy
	z -= fz

	u := fade(x)
	v := fade(y)
	w := fade(z)

	perm := &p.perm
	A := int(perm[X]) + Y
	AA := int(perm[A]) + Z
	AB := int(perm[A+1]) + Z
	B := int(perm[X+1]) + Y
	BA := int(perm[B]) + Z
	BB := int(perm[B+1]) + Z

	return lerp(
		lerp(
			lerp(grad(perm[AA], x, y, z), grad(perm[BA], x-1, y, z), u),
			lerp(grad(perm[AB], x, y-1, z), grad(perm[BB], x-1, y-1, z), u),
			v,
		),
		lerp(
			lerp(grad(perm[AA+1], x, y, z-1), grad(perm[BA+1], x-1, y, z-1), u),
			lerp(grad(perm[AB+1], x, y-1, z-1), grad(perm[BB+1], x-1, y-1, z-1), u),
			v,
		),
		w,
	)
}
