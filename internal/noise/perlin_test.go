package noise

import (
	"math"
	"math/rand"
	"testing"
)

func TestMulberry32Deterministic(t *testing.T) {
	a := NewMulberry32(12345)
	b := NewMulberry32(12345)
	for i := 0; i < 1000; i++ {
		va, vb := a.Float64(), b.Float64()
		if va != vb {
			t.Fatalf("step %d: %v != %v", i, va, vb)
		}
		if va < 0 || va >= 1 {
			t.Fatalf("step %d: value %v outside [0,1)", i, va)
		}
	}
}

// TestMulberry32Reference pins the first outputs for seed 12345 so worlds stay
// identical across releases and ports.
func TestMulberry32Reference(t *testing.T) {
	m := NewMulberry32(12345)
	want := []float64{0.9797282677609473, 0.3067522644996643, 0.484205421525985}
	for i, w := range want {
		if got := m.Float64(); got != w {
			t.Errorf("value %d: got %v, want %v", i, got, w)
		}
	}
}

func TestMulberry32SeedsDiffer(t *testing.T) {
	a := NewMulberry32(1)
	b := NewMulberry32(2)
	same := 0
	for i := 0; i < 64; i++ {
		if a.Uint32() == b.Uint32() {
			same++
		}
	}
	if same == 64 {
		t.Errorf("different seeds produced identical streams")
	}
}

func TestPermutationIsPermutation(t *testing.T) {
	p := NewPerlinSeed(12345)
	perm := p.Permutation()
	var seen [256]bool
	for _, v := range perm {
		if seen[v] {
			t.Fatalf("value %d appears twice in permutation", v)
		}
		seen[v] = true
	}
	for i := 0; i < 256; i++ {
		if p.perm[i] != p.perm[i+256] {
			t.Fatalf("perm[%d]=%d but perm[%d]=%d", i, p.perm[i], i+256, p.perm[i+256])
		}
	}
}

func TestPermutationDeterministic(t *testing.T) {
	a := NewPerlinSeed(12345).Permutation()
	b := NewPerlinSeed(12345).Permutation()
	if a != b {
		t.Fatalf("same seed produced different permutation tables")
	}
	c := NewPerlinSeed(54321).Permutation()
	if a == c {
		t.Errorf("different seeds produced identical permutation tables")
	}
}

// TestNoiseReproducible verifies repeated sampling and independently built
// generators agree exactly.
func TestNoiseReproducible(t *testing.T) {
	p1 := NewPerlinSeed(12345)
	p2 := NewPerlinSeed(12345)
	coords := [][3]float64{
		{0.5, 0.5, 0.5},
		{1.3, 2.7, 3.1},
		{-4.2, 17.9, 0.01},
		{100.123, -55.5, 9.75},
	}
	for _, c := range coords {
		a := p1.Noise3D(c[0], c[1], c[2])
		b := p1.Noise3D(c[0], c[1], c[2])
		d := p2.Noise3D(c[0], c[1], c[2])
		if a != b || a != d {
			t.Errorf("Noise3D%v not reproducible: %v %v %v", c, a, b, d)
		}
		if p1.Noise2D(c[0], c[1]) != p2.Noise2D(c[0], c[1]) {
			t.Errorf("Noise2D(%v,%v) not reproducible", c[0], c[1])
		}
	}
}

func TestNoiseReference(t *testing.T) {
	p := NewPerlinSeed(12345)
	perm := p.Permutation()
	wantPerm := []uint8{25, 27, 202, 81, 11, 156, 195, 79}
	for i, w := range wantPerm {
		if perm[i] != w {
			t.Fatalf("perm[%d] = %d, want %d", i, perm[i], w)
		}
	}

	cases := []struct {
		x, y, z float64
		want    float64
	}{
		{0.5, 0.5, 0.5, -0.375},
		{1.3, 2.7, 3.1, 0.3134960536379136},
		{-4.2, 17.9, 0.01, -0.0695741681197917},
		{10 * 0.045, 20 * 0.045, 0, -0.16412542202249983},
	}
	for _, c := range cases {
		if got := p.Noise3D(c.x, c.y, c.z); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("Noise3D(%v,%v,%v) = %v, want %v", c.x, c.y, c.z, got, c.want)
		}
	}
}

func TestNoise2DIsZPlane(t *testing.T) {
	p := NewPerlinSeed(12345)
	if p.Noise2D(3.3, 4.4) != p.Noise3D(3.3, 4.4, 0) {
		t.Errorf("Noise2D must equal Noise3D at z=0")
	}
}

// TestNoiseZeroAtLattice: gradient noise vanishes on integer lattice points.
func TestNoiseZeroAtLattice(t *testing.T) {
	p := NewPerlinSeed(12345)
	for x := -3; x <= 3; x++ {
		for y := -3; y <= 3; y++ {
			if v := p.Noise3D(float64(x), float64(y), 2); v != 0 {
				t.Errorf("Noise3D(%d,%d,2) = %v, want 0", x, y, v)
			}
		}
	}
}

func TestNoiseRange(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	p := NewPerlinSeed(42)
	for i := 0; i < 5000; i++ {
		x := rng.Float64()*200 - 100
		y := rng.Float64()*200 - 100
		z := rng.Float64()*200 - 100
		v := p.Noise3D(x, y, z)
		if v < -1 || v > 1 || math.IsNaN(v) {
			t.Fatalf("Noise3D(%f,%f,%f) = %f, expected in [-1,1]", x, y, z, v)
		}
	}
}

func TestNoiseContinuity(t *testing.T) {
	p := NewPerlinSeed(42)
	v1 := p.Noise3D(1.5, 1.5, 1.5)
	v2 := p.Noise3D(1.51, 1.5, 1.5)
	if diff := math.Abs(v1 - v2); diff >= 0.1 {
		t.Errorf("noise not continuous: %f vs %f (diff %f)", v1, v2, diff)
	}
}

func TestFractalDeterministicAndBounded(t *testing.T) {
	a := NewFractal(7, 3)
	b := NewFractal(7, 3)
	for i := 0; i < 100; i++ {
		x := float64(i) * 0.137
		va := a.Noise2D(x, x*0.5)
		if va != b.Noise2D(x, x*0.5) {
			t.Fatalf("fractal noise differs at %f", x)
		}
		if va < -1 || va > 1 {
			t.Fatalf("fractal noise %f outside [-1,1]", va)
		}
	}
}

func BenchmarkNoise3D(b *testing.B) {
	p := NewPerlinSeed(12345)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.Noise3D(float64(i)*0.09, 3.3, float64(i%64)*0.09)
	}
}
