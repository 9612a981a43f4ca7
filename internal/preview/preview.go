// Package preview renders top-down PNG maps of a world without a GPU.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"blockworld/internal/registry"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Source is the read side of a world.
type Source interface {
	Dimensions() (width, height, depth int)
	GetBlock(x, y, z int) uint8
	GetSurfaceHeight(x, z int) int
	Catalog() *registry.Catalog
}

const (
	captionHeight = 18
	minShade      = 0.55
)

var (
	background = color.NRGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}
	captionBG  = color.NRGBA{R: 16, G: 16, B: 24, A: 0xff}
)

// Map returns a width × depth image with one pixel per column: the surface
// block's color, darker the lower the surface sits.
func Map(src Source) *image.NRGBA {
	w, h, d := src.Dimensions()
	img := image.NewNRGBA(image.Rect(0, 0, w, d))
	cat := src.Catalog()

	for x := 0; x < w; x++ {
		for z := 0; z < d; z++ {
			y := src.GetSurfaceHeight(x, z)
			bt, ok := cat.Lookup(src.GetBlock(x, y, z))
			if !ok || !bt.Solid() {
				img.SetNRGBA(x, z, background)
				continue
			}
			shade := minShade + (1-minShade)*float32(y)/float32(max(h-1, 1))
			rgb := bt.Color.RGB().Mul(shade)
			img.SetNRGBA(x, z, color.NRGBA{
				R: uint8(rgb.X()*255 + 0.5),
				G: uint8(rgb.Y()*255 + 0.5),
				B: uint8(rgb.Z()*255 + 0.5),
				A: 0xff,
			})
		}
	}
	return img
}

// Render scales the map by scale (nearest neighbour, so blocks stay crisp)
// and adds a caption strip below it when caption is non-empty.
func Render(src Source, scale int, caption string) *image.NRGBA {
	if scale < 1 {
		scale = 1
	}
	m := Map(src)
	mw, md := m.Bounds().Dx()*scale, m.Bounds().Dy()*scale

	total := md
	if caption != "" {
		total += captionHeight
	}
	out := image.NewNRGBA(image.Rect(0, 0, mw, total))
	draw.NearestNeighbor.Scale(out, image.Rect(0, 0, mw, md), m, m.Bounds(), draw.Src, nil)

	if caption != "" {
		strip := image.Rect(0, md, mw, total)
		draw.Draw(out, strip, &image.Uniform{C: captionBG}, image.Point{}, draw.Src)
		dr := &font.Drawer{
			Dst:  out,
			Src:  image.White,
			Face: basicfont.Face7x13,
			Dot:  fixed.P(4, md+13),
		}
		dr.DrawString(caption)
	}
	return out
}

// Save writes img as PNG.
func Save(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode preview: %w", err)
	}
	return f.Close()
}
