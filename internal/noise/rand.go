package noise

import (
	"math/rand/v2"
)

// Source is a stream of uniformly distributed values in [0,1).
// Every random decision made while generating a world is drawn from one Source.
type Source interface {
	Float64() float64
}

// Mulberry32 is a small 32-bit generator. The same seed yields the same stream
// on every platform, which keeps generated worlds reproducible.
type Mulberry32 struct {
	state uint32
}

// NewMulberry32 creates a generator seeded with the low 32 bits of seed.
func NewMulberry32(seed int64) *Mulberry32 {
	return &Mulberry32{state: uint32(seed)}
}

// Uint32 advances the generator and returns the next raw value.
func (m *Mulberry32) Uint32() uint32 {
	m.state += 0x6d2b79f5
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns the next value in [0,1).
func (m *Mulberry32) Float64() float64 {
	return float64(m.Uint32()) / 4294967296.0
}

// Intn returns a value in [0,n). It panics if n <= 0.
func (m *Mulberry32) Intn(n int) int {
	if n <= 0 {
		panic("noise: Intn with non-positive n")
	}
	return int(m.Float64() * float64(n))
}

// RandomSeed picks a seed for worlds created without one. The range matches the
// seed field of the settings form so seeds can be typed back in.
func RandomSeed() int64 {
	return rand.Int64N(1_000_000)
}
