// Package hud draws the text overlay: the selected block, the block under
// the crosshair and, when toggled, the last frame's profile.
package hud

import (
	"fmt"

	"blockworld/internal/graphics"
	renderer "blockworld/internal/graphics/renderer"
	"blockworld/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font/basicfont"
)

const (
	atlasWidth = 256
	textScale  = 2
	lineStep   = 15 * textScale
	margin     = 12
	maxSamples = 6
)

var (
	textColor    = mgl32.Vec3{1, 1, 1}
	profileColor = mgl32.Vec3{1, 0.9, 0.4}
)

// HUD implements renderer.Renderable.
type HUD struct {
	font *graphics.FontRenderer

	profiling bool
	fps       int
	samples   []profiling.Sample
}

func NewHUD() *HUD {
	return &HUD{}
}

func (h *HUD) Init() error {
	fr, err := graphics.NewFontRenderer(graphics.PackFontAtlas(basicfont.Face7x13, atlasWidth))
	if err != nil {
		return fmt.Errorf("hud font: %w", err)
	}
	h.font = fr
	return nil
}

// SetViewport keeps text in window pixels after a resize.
func (h *HUD) SetViewport(width, height int) {
	if h.font != nil {
		h.font.SetViewport(width, height)
	}
}

// ToggleProfiling flips the profile overlay and reports the new state.
func (h *HUD) ToggleProfiling() bool {
	h.profiling = !h.profiling
	return h.profiling
}

// SetProfile stores the figures shown by the profile overlay.
func (h *HUD) SetProfile(fps int, samples []profiling.Sample) {
	h.fps = fps
	if len(samples) > maxSamples {
		samples = samples[:maxSamples]
	}
	h.samples = append(h.samples[:0], samples...)
}

func (h *HUD) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.renderHUD")()

	lines := []string{"block: " + ctx.World.GetBlockLabel(ctx.Player.SelectedBlock)}
	if hit := ctx.Hovered; hit != nil {
		lines = append(lines, fmt.Sprintf("target: %s @ %d %d %d",
			ctx.World.GetBlockLabel(hit.ID), hit.Position[0], hit.Position[1], hit.Position[2]))
	}
	pos := ctx.Player.Position
	lines = append(lines, fmt.Sprintf("pos: %.1f %.1f %.1f", pos.X(), pos.Y(), pos.Z()))
	h.font.RenderLines(lines, margin, margin+13*textScale, lineStep, textScale, textColor)

	if !h.profiling {
		return
	}
	prof := []string{fmt.Sprintf("fps: %d  seed: %d", h.fps, ctx.World.Seed())}
	for _, s := range h.samples {
		prof = append(prof, fmt.Sprintf("%-24s %6.2fms x%d", s.Name, float64(s.Total.Microseconds())/1000, s.Calls))
	}
	y := float32(margin + 13*textScale + lineStep*(len(lines)+1))
	h.font.RenderLines(prof, margin, y, lineStep, textScale, profileColor)
}

func (h *HUD) Dispose() {
	if h.font != nil {
		h.font.Dispose()
		h.font = nil
	}
}
