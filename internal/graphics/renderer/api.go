package renderer

import (
	"blockworld/internal/graphics"
	"blockworld/internal/player"
	"blockworld/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderContext provides shared context for all renderables
type RenderContext struct {
	Camera *graphics.Camera
	World  *world.World
	Player *player.Player
	// Hovered is the block under the crosshair, nil when none.
	Hovered *world.BlockHit
	DT      float64
	View    mgl32.Mat4
	Proj    mgl32.Mat4
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init() error
	Render(ctx RenderContext)
	Dispose()
}
