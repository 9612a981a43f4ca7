package player

import (
	"testing"

	"blockworld/internal/registry"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// floorWorld is solid at and below floorY, plus optional wall cells.
type floorWorld struct {
	w, h, d int
	floorY  int
	walls   map[[3]int]bool
}

func (f floorWorld) Dimensions() (int, int, int) { return f.w, f.h, f.d }

func (f floorWorld) solid(x, y, z int) bool {
	return y <= f.floorY || f.walls[[3]int{x, y, z}]
}

func (f floorWorld) Collides(pos mgl32.Vec3, radius, height float32) bool {
	fl := func(v float32) int {
		i := int(v)
		if float32(i) > v {
			i--
		}
		return i
	}
	for x := fl(pos.X() - radius); x <= fl(pos.X()+radius); x++ {
		for y := fl(pos.Y() - height); y <= fl(pos.Y()); y++ {
			for z := fl(pos.Z() - radius); z <= fl(pos.Z()+radius); z++ {
				if f.solid(x, y, z) {
					return true
				}
			}
		}
	}
	return false
}

func newFloor() floorWorld {
	return floorWorld{w: 32, h: 32, d: 32, floorY: 4, walls: map[[3]int]bool{}}
}

func settle(p *Player, w Collider) {
	for i := 0; i < 200; i++ {
		p.UpdatePosition(1.0/60, Intent{}, w)
	}
}

func TestFallAndLand(t *testing.T) {
	w := newFloor()
	p := New(mgl32.Vec3{10.5, 12, 10.5})
	settle(p, w)

	require.True(t, p.CanJump, "player should be grounded")
	assert.Equal(t, float32(0), p.VelocityY)
	feet := p.Position.Y() - Height
	assert.GreaterOrEqual(t, feet, float32(5))
	assert.Less(t, feet, float32(5.5))
	assert.False(t, w.Collides(p.Position, Radius, Height))
}

func TestJump(t *testing.T) {
	w := newFloor()
	p := New(mgl32.Vec3{10.5, 12, 10.5})
	assert.False(t, p.Jump(), "cannot jump mid-air")
	settle(p, w)
	startY := p.Position.Y()

	require.True(t, p.Jump())
	assert.False(t, p.CanJump)
	p.UpdatePosition(0.1, Intent{}, w)
	assert.Greater(t, p.Position.Y(), startY)
}

func TestWalkForward(t *testing.T) {
	w := newFloor()
	p := New(mgl32.Vec3{16.5, 12, 16.5})
	settle(p, w)
	z := p.Position.Z()

	p.UpdatePosition(0.5, Intent{Forward: true}, w)
	// Default yaw looks down -Z at walking speed.
	assert.InDelta(t, z-WalkSpeed*0.5, p.Position.Z(), 1e-3)
	assert.InDelta(t, 16.5, p.Position.X(), 1e-3)

	z = p.Position.Z()
	p.UpdatePosition(0.5, Intent{Backward: true, Sprint: true}, w)
	assert.InDelta(t, z+SprintSpeed*0.5, p.Position.Z(), 1e-3)
}

func TestStrafeRight(t *testing.T) {
	w := newFloor()
	p := New(mgl32.Vec3{16.5, 12, 16.5})
	settle(p, w)
	x := p.Position.X()
	p.UpdatePosition(0.25, Intent{Right: true}, w)
	// Facing -Z, right is +X.
	assert.InDelta(t, x+WalkSpeed*0.25, p.Position.X(), 1e-3)
}

func TestWallBlocksOneAxisOnly(t *testing.T) {
	w := newFloor()
	p := New(mgl32.Vec3{10.5, 12, 10.5})
	settle(p, w)
	eye := int(p.Position.Y())
	for y := 5; y <= eye; y++ {
		for z := 0; z < 32; z++ {
			w.walls[[3]int{11, y, z}] = true
		}
	}

	p.CamYaw = -45 // diagonal towards +X and -Z
	z := p.Position.Z()
	for i := 0; i < 30; i++ {
		p.UpdatePosition(1.0/60, Intent{Forward: true}, w)
	}
	assert.Less(t, p.Position.X()+Radius, float32(11), "x movement must stop at the wall")
	assert.Less(t, p.Position.Z(), z, "z movement continues along the wall")
}

func TestClamps(t *testing.T) {
	w := floorWorld{w: 16, h: 16, d: 16, floorY: -100, walls: map[[3]int]bool{}}
	p := New(mgl32.Vec3{8, 5, 8})
	p.CamYaw = 0 // +X
	for i := 0; i < 120; i++ {
		p.UpdatePosition(0.1, Intent{Forward: true, Sprint: true}, w)
	}
	assert.Equal(t, float32(14), p.Position.X())
	assert.Equal(t, float32(2), p.Position.Y(), "falling into the void stops at y=2")

	p.Position[1] = 100
	p.UpdatePosition(0.001, Intent{}, w)
	assert.Equal(t, float32(36), p.Position.Y())
}

func TestHandleScrollCycles(t *testing.T) {
	c := registry.Default()
	p := New(mgl32.Vec3{})
	p.HandleScroll(c, -1)
	assert.Equal(t, registry.BlockSand, p.SelectedBlock)
	p.HandleScroll(c, 1)
	assert.Equal(t, registry.BlockGrass, p.SelectedBlock)
	p.HandleScroll(c, 0)
	assert.Equal(t, registry.BlockGrass, p.SelectedBlock)
}

func TestMouseLookClampsPitch(t *testing.T) {
	p := New(mgl32.Vec3{})
	p.HandleMouseMovement(100, 100, 0.1)
	p.HandleMouseMovement(100, -5000, 0.1)
	assert.Equal(t, 89.0, p.CamPitch)
	f := p.FrontVector()
	assert.InDelta(t, 1, f.Len(), 1e-5)
	assert.Greater(t, f.Y(), float32(0.99))
}
