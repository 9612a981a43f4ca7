package graphics

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const fontVertexShader = `#version 410 core
layout (location = 0) in vec4 vertex; // xy position, zw uv
out vec2 TexCoords;
uniform mat4 projection;
void main() {
    gl_Position = projection * vec4(vertex.xy, 0.0, 1.0);
    TexCoords = vertex.zw;
}
`

const fontFragmentShader = `#version 410 core
in vec2 TexCoords;
out vec4 color;
uniform sampler2D text;
uniform vec3 textColor;
void main() {
    color = vec4(textColor, texture(text, TexCoords).r);
}
`

// FontCharacter is one glyph's place in the atlas and its metrics, in pixels.
type FontCharacter struct {
	AtlasX, AtlasY     float32
	Width, Height      float32
	BearingX, BearingY float32
	Advance            int
}

// FontAtlas is a single-channel glyph sheet. TextureID is zero until Upload.
type FontAtlas struct {
	Image      *image.Alpha
	Characters map[rune]FontCharacter
	TextureID  uint32
}

// PackFontAtlas rasterises printable ASCII from face into rows of the given
// width. The sheet height is whatever the rows need.
func PackFontAtlas(face font.Face, width int) *FontAtlas {
	const padding = 1

	type placed struct {
		r      rune
		dr     image.Rectangle
		mask   image.Image
		maskp  image.Point
		adv    fixed.Int26_6
		x, y   int
		hidden bool
	}

	var glyphs []placed
	x, y, rowH := 0, 0, 0
	for r := rune(32); r <= 126; r++ {
		dr, mask, maskp, adv, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		g := placed{r: r, dr: dr, mask: mask, maskp: maskp, adv: adv}
		if mask == nil || dr.Empty() {
			g.hidden = true
			glyphs = append(glyphs, g)
			continue
		}
		if x+dr.Dx() > width {
			x = 0
			y += rowH + padding
			rowH = 0
		}
		g.x, g.y = x, y
		glyphs = append(glyphs, g)
		x += dr.Dx() + padding
		rowH = max(rowH, dr.Dy())
	}

	img := image.NewAlpha(image.Rect(0, 0, width, max(y+rowH, 1)))
	chars := make(map[rune]FontCharacter, len(glyphs))
	for _, g := range glyphs {
		fc := FontCharacter{
			AtlasX:   float32(g.x),
			AtlasY:   float32(g.y),
			BearingX: float32(g.dr.Min.X),
			BearingY: float32(-g.dr.Min.Y),
			Advance:  int(math.Round(float64(g.adv) / 64.0)),
		}
		if !g.hidden {
			fc.Width = float32(g.dr.Dx())
			fc.Height = float32(g.dr.Dy())
			dst := image.Rect(g.x, g.y, g.x+g.dr.Dx(), g.y+g.dr.Dy())
			draw.Draw(img, dst, g.mask, g.maskp, draw.Src)
		}
		chars[g.r] = fc
	}
	return &FontAtlas{Image: img, Characters: chars}
}

// Upload copies the sheet into a GL_RED texture.
func (a *FontAtlas) Upload() {
	b := a.Image.Bounds()
	gl.GenTextures(1, &a.TextureID)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, a.TextureID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(b.Dx()), int32(b.Dy()), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(a.Image.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	// Bitmap faces stay crisp with nearest filtering
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
}

// FontRenderer draws text in screen pixels with a top-left origin.
type FontRenderer struct {
	atlas      *FontAtlas
	shader     *Shader
	projection mgl32.Mat4
	vao        uint32
	vbo        uint32
}

// NewFontRenderer uploads atlas if needed and compiles the text shader.
func NewFontRenderer(atlas *FontAtlas) (*FontRenderer, error) {
	if atlas == nil || len(atlas.Characters) == 0 {
		return nil, fmt.Errorf("invalid font atlas")
	}
	if atlas.TextureID == 0 {
		atlas.Upload()
	}
	shader, err := NewShader(fontVertexShader, fontFragmentShader)
	if err != nil {
		return nil, err
	}
	fr := &FontRenderer{atlas: atlas, shader: shader}
	fr.SetViewport(WinWidth, WinHeight)

	gl.GenVertexArrays(1, &fr.vao)
	gl.GenBuffers(1, &fr.vbo)
	gl.BindVertexArray(fr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, fr.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 4, gl.FLOAT, false, 4*4, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return fr, nil
}

// SetViewport rebuilds the pixel projection for a resized window.
func (fr *FontRenderer) SetViewport(width, height int) {
	fr.projection = mgl32.Ortho(0, float32(width), float32(height), 0, 0, 1)
}

// RenderLines draws lines top to bottom starting at baseline (x, yStart),
// lineStep pixels apart, in one draw call.
func (fr *FontRenderer) RenderLines(lines []string, x, yStart, lineStep, scale float32, color mgl32.Vec3) {
	var vertices []float32
	y := yStart
	for _, line := range lines {
		vertices = fr.appendVertices(vertices, line, x, y, scale)
		y += lineStep
	}
	if len(vertices) == 0 {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	fr.shader.Use()
	fr.shader.SetVector3("textColor", color.X(), color.Y(), color.Z())
	fr.shader.SetMatrix4("projection", &fr.projection[0])
	fr.shader.SetInt("text", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, fr.atlas.TextureID)
	gl.BindVertexArray(fr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, fr.vbo)

	// Orphan then fill to avoid stalling on the previous frame's draw
	size := len(vertices) * 4
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(vertices))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)/4))

	gl.BindVertexArray(0)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
}

// Measure returns the pixel width and tallest glyph height of text.
func (fr *FontRenderer) Measure(text string, scale float32) (float32, float32) {
	var width, height float32
	for _, r := range text {
		fc, ok := fr.atlas.Characters[r]
		if !ok {
			fc = fr.atlas.Characters[' ']
		}
		width += float32(fc.Advance) * scale
		height = max(height, fc.Height*scale)
	}
	return width, height
}

// Dispose frees the GL objects including the atlas texture.
func (fr *FontRenderer) Dispose() {
	if fr.vao != 0 {
		gl.DeleteVertexArrays(1, &fr.vao)
	}
	if fr.vbo != 0 {
		gl.DeleteBuffers(1, &fr.vbo)
	}
	if fr.atlas.TextureID != 0 {
		gl.DeleteTextures(1, &fr.atlas.TextureID)
		fr.atlas.TextureID = 0
	}
	fr.shader.Delete()
}

func (fr *FontRenderer) appendVertices(dst []float32, text string, x, y, scale float32) []float32 {
	b := fr.atlas.Image.Bounds()
	aw, ah := float32(b.Dx()), float32(b.Dy())
	for _, r := range text {
		fc, ok := fr.atlas.Characters[r]
		if !ok {
			x += float32(fr.atlas.Characters[' '].Advance) * scale
			continue
		}
		if fc.Width > 0 {
			xPos := x + fc.BearingX*scale
			yPos := y - fc.BearingY*scale
			w, h := fc.Width*scale, fc.Height*scale
			u0, v0 := fc.AtlasX/aw, fc.AtlasY/ah
			u1, v1 := (fc.AtlasX+fc.Width)/aw, (fc.AtlasY+fc.Height)/ah
			dst = append(dst,
				xPos, yPos+h, u0, v1,
				xPos, yPos, u0, v0,
				xPos+w, yPos, u1, v0,
				xPos, yPos+h, u0, v1,
				xPos+w, yPos, u1, v0,
				xPos+w, yPos+h, u1, v1,
			)
		}
		x += float32(fc.Advance) * scale
	}
	return dst
}
