package renderer

import (
	"blockworld/internal/config"
	"blockworld/internal/graphics"
	"blockworld/internal/player"
	"blockworld/internal/profiling"
	"blockworld/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// SkyColor is the clear and fog color (0x87ceeb).
var SkyColor = [3]float32{0x87 / 255.0, 0xce / 255.0, 0xeb / 255.0}

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	renderables []Renderable
	camera      *graphics.Camera

	// FOV transition
	targetFOV  float32
	currentFOV float32
}

// NewRenderer creates a new renderer with the given renderables
func NewRenderer(width, height int, rs ...Renderable) (*Renderer, error) {
	// Configure OpenGL
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	camera := graphics.NewCamera(width, height)

	r := &Renderer{
		renderables: rs,
		camera:      camera,
		targetFOV:   camera.FOV,
		currentFOV:  camera.FOV,
	}

	// Initialize all renderables
	for i, rr := range rs {
		if err := rr.Init(); err != nil {
			for j := i - 1; j >= 0; j-- {
				rs[j].Dispose()
			}
			return nil, err
		}
	}

	return r, nil
}

// Render clears to the sky color and draws every renderable. sprinting
// widens the field of view while it lasts.
func (r *Renderer) Render(w *world.World, p *player.Player, hovered *world.BlockHit, sprinting bool, dt float64) {
	defer profiling.Track("renderer.Render")()

	gl.ClearColor(SkyColor[0], SkyColor[1], SkyColor[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	// Update FOV smoothly based on sprinting
	{
		normalFOV := config.GetFOV()
		if sprinting {
			r.targetFOV = normalFOV + 10
		} else {
			r.targetFOV = normalFOV
		}
		transitionSpeed := float32(100.0)
		step := float32(dt) * transitionSpeed
		if r.currentFOV < r.targetFOV {
			r.currentFOV = min(r.currentFOV+step, r.targetFOV)
		} else if r.currentFOV > r.targetFOV {
			r.currentFOV = max(r.currentFOV-step, r.targetFOV)
		}
		r.camera.FOV = r.currentFOV
	}

	ctx := RenderContext{
		Camera:  r.camera,
		World:   w,
		Player:  p,
		Hovered: hovered,
		DT:      dt,
		View:    p.ViewMatrix(),
		Proj:    r.camera.GetProjectionMatrix(),
	}

	for _, renderable := range r.renderables {
		renderable.Render(ctx)
	}
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
}

// GetCamera returns the camera instance
func (r *Renderer) GetCamera() *graphics.Camera {
	return r.camera
}

// UpdateViewport updates the camera and GL viewport
func (r *Renderer) UpdateViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	r.camera.SetViewport(width, height)
}
