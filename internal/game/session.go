package game

import (
	"fmt"
	"log/slog"

	"blockworld/internal/config"
	"blockworld/internal/graphics/renderables/crosshair"
	"blockworld/internal/graphics/renderables/hud"
	"blockworld/internal/graphics/renderables/terrain"
	"blockworld/internal/graphics/renderables/wireframe"
	"blockworld/internal/graphics/renderer"
	"blockworld/internal/input"
	"blockworld/internal/metrics"
	"blockworld/internal/physics"
	"blockworld/internal/player"
	"blockworld/internal/profiling"
	"blockworld/internal/world"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// maxStep caps dt so a long stall cannot tunnel the player through floors.
const maxStep = 0.05

// Session owns one world, the player walking it and the GL renderer.
type Session struct {
	Window   *glfw.Window
	Renderer *renderer.Renderer
	Terrain  *terrain.Terrain
	HUD      *hud.HUD
	World    *world.World
	Player   *player.Player

	Paused bool

	opts    world.Options
	log     *slog.Logger
	hovered *world.BlockHit
}

// NewSession builds the renderer, generates a world from opts into the
// terrain scene and drops the player at its spawn point.
func NewSession(window *glfw.Window, opts world.Options, log *slog.Logger) (*Session, error) {
	if log == nil {
		log = slog.Default()
	}
	scene := terrain.NewTerrain()
	overlay := hud.NewHUD()
	width, height := window.GetFramebufferSize()
	r, err := renderer.NewRenderer(width, height,
		scene,
		wireframe.NewWireframe(),
		crosshair.NewCrosshair(),
		overlay,
	)
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	overlay.SetViewport(width, height)

	w := world.New(scene, opts)
	return &Session{
		Window:   window,
		Renderer: r,
		Terrain:  scene,
		HUD:      overlay,
		World:    w,
		Player:   player.New(w.SpawnPoint()),
		opts:     opts,
		log:      log,
	}, nil
}

// Metrics returns the recorder the session's worlds report to.
func (s *Session) Metrics() *metrics.Recorder {
	return s.opts.Metrics
}

// Regenerate replaces the world with a fresh one from the same options.
// A fixed seed reproduces the same terrain; nil draws a new one.
func (s *Session) Regenerate() {
	s.World.Dispose()
	s.World = world.New(s.Terrain, s.opts)
	s.Player.Respawn(s.World.SpawnPoint())
	s.hovered = nil
}

// Cleanup releases the world mesh and GL resources.
func (s *Session) Cleanup() {
	s.World.Dispose()
	s.Renderer.Dispose()
}

func (s *Session) SetPaused(paused bool) {
	s.Paused = paused
	if paused {
		s.Window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		return
	}
	s.Window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	s.Player.FirstMouse = true
}

// Update applies one frame of input.
func (s *Session) Update(dt float64, im *input.Manager) {
	if im.JustPressed(input.ActionPause) {
		s.SetPaused(!s.Paused)
	}
	if im.JustPressed(input.ActionToggleProfiling) {
		s.log.Debug("Profile overlay", "enabled", s.HUD.ToggleProfiling())
	}
	if s.Paused {
		im.TakeScroll()
		return
	}

	if im.JustPressed(input.ActionRegenerate) {
		func() { defer profiling.Track("world.Regenerate")(); s.Regenerate() }()
	}

	p := s.Player
	if x, y, moved := im.Cursor(); moved {
		p.HandleMouseMovement(x, y, float64(mgl32.RadToDeg(config.GetSensitivity())))
	}
	if yoff := im.TakeScroll(); yoff != 0 {
		p.HandleScroll(s.World.Catalog(), yoff)
		s.log.Info("Selected block", "block", s.World.GetBlockLabel(p.SelectedBlock))
	}

	if im.IsActive(input.ActionJump) {
		p.Jump()
	}
	intent := player.Intent{
		Forward:  im.IsActive(input.ActionMoveForward),
		Backward: im.IsActive(input.ActionMoveBackward),
		Left:     im.IsActive(input.ActionMoveLeft),
		Right:    im.IsActive(input.ActionMoveRight),
		Sprint:   im.IsActive(input.ActionSprint),
	}
	p.UpdatePosition(float32(min(dt, maxStep)), intent, s.World)

	s.updateHovered()
	switch {
	case im.JustPressed(input.ActionRemoveBlock):
		s.removeHovered()
	case im.JustPressed(input.ActionPlaceBlock):
		s.placeAdjacent()
	}
}

func (s *Session) updateHovered() {
	defer profiling.Track("world.Raycast")()
	res := s.World.Raycast(s.Player.Position, s.Player.FrontVector(), physics.MaxReachDistance)
	if !res.Hit {
		s.hovered = nil
		return
	}
	hit := res.Intersection()
	s.hovered = s.World.GetIntersectedBlock(&hit)
}

func (s *Session) removeHovered() {
	h := s.hovered
	if h == nil {
		return
	}
	if s.World.RemoveBlock(float64(h.Position[0]), float64(h.Position[1]), float64(h.Position[2])) {
		s.updateHovered()
	}
}

// placeAdjacent puts the selected block against the hovered face, unless
// the new cell would overlap the player's body.
func (s *Session) placeAdjacent() {
	h := s.hovered
	if h == nil {
		return
	}
	x := h.Position[0] + int(h.Normal.X())
	y := h.Position[1] + int(h.Normal.Y())
	z := h.Position[2] + int(h.Normal.Z())
	if s.overlapsPlayer(x, y, z) {
		return
	}
	if s.World.PlaceBlock(float64(x), float64(y), float64(z), s.Player.SelectedBlock) {
		s.updateHovered()
	}
}

func (s *Session) overlapsPlayer(x, y, z int) bool {
	p := s.Player.Position
	fx, fy, fz := float32(x), float32(y), float32(z)
	return p.X()+player.Radius > fx && p.X()-player.Radius < fx+1 &&
		p.Z()+player.Radius > fz && p.Z()-player.Radius < fz+1 &&
		p.Y() > fy && p.Y()-player.Height < fy+1
}

// Render draws the frame.
func (s *Session) Render(dt float64, im *input.Manager) {
	sprinting := !s.Paused && im.IsActive(input.ActionSprint) && im.IsActive(input.ActionMoveForward)
	s.Renderer.Render(s.World, s.Player, s.hovered, sprinting, dt)
}
