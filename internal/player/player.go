package player

import (
	"blockworld/internal/registry"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	Radius = 0.35
	Height = 1.7

	Gravity      = 25.0
	JumpVelocity = 8.0
	WalkSpeed    = 6.0
	SprintSpeed  = 10.0
)

// Collider is the part of the world the movement stepper needs.
type Collider interface {
	Collides(pos mgl32.Vec3, radius, height float32) bool
	Dimensions() (width, height, depth int)
}

// Intent is the movement requested for one step.
type Intent struct {
	Forward, Backward, Left, Right bool
	Sprint                         bool
}

// Player is a first-person walker. Position is the eye point; the body box
// hangs Height below it.
type Player struct {
	Position  mgl32.Vec3
	VelocityY float32
	CanJump   bool

	CamYaw, CamPitch       float64 // degrees
	FirstMouse             bool
	LastMouseX, LastMouseY float64

	// SelectedBlock is the id placed on right click.
	SelectedBlock registry.BlockID
}

// New creates a player standing at spawn with grass selected.
func New(spawn mgl32.Vec3) *Player {
	p := &Player{
		CamYaw:        -90, // looking down -Z
		FirstMouse:    true,
		SelectedBlock: registry.BlockGrass,
	}
	p.Respawn(spawn)
	return p
}

// Respawn moves the player to spawn at rest.
func (p *Player) Respawn(spawn mgl32.Vec3) {
	p.Position = spawn
	p.VelocityY = 0
	p.CanJump = false
}

// Jump launches the player if grounded and reports whether it did.
func (p *Player) Jump() bool {
	if !p.CanJump {
		return false
	}
	p.VelocityY = JumpVelocity
	p.CanJump = false
	return true
}

// HandleScroll cycles the selected block by the sign of yoff.
func (p *Player) HandleScroll(c *registry.Catalog, yoff float64) {
	switch {
	case yoff > 0:
		p.SelectedBlock = c.Cycle(p.SelectedBlock, 1)
	case yoff < 0:
		p.SelectedBlock = c.Cycle(p.SelectedBlock, -1)
	}
}
