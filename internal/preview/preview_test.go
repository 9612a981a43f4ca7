package preview

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"blockworld/internal/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// column is a fake world where every column has one block at a fixed height.
type column struct {
	w, h, d int
	id      uint8
	top     map[[2]int]int
}

func (c column) Dimensions() (int, int, int) { return c.w, c.h, c.d }
func (c column) Catalog() *registry.Catalog   { return registry.Default() }

func (c column) GetSurfaceHeight(x, z int) int {
	if y, ok := c.top[[2]int{x, z}]; ok {
		return y
	}
	return 0
}

func (c column) GetBlock(x, y, z int) uint8 {
	if y, ok := c.top[[2]int{x, z}]; ok && y >= 0 {
		return c.id
	}
	return 0
}

func TestMapColors(t *testing.T) {
	src := column{w: 3, h: 11, d: 2, id: registry.BlockStone, top: map[[2]int]int{{0, 0}: 10, {1, 0}: 0}}
	img := Map(src)
	require.Equal(t, 3, img.Bounds().Dx())
	require.Equal(t, 2, img.Bounds().Dy())

	// Highest surface is drawn at full brightness.
	assert.Equal(t, color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}, img.NRGBAAt(0, 0))
	// Lowest surface is darkened.
	low := img.NRGBAAt(1, 0)
	assert.Less(t, low.R, uint8(0x88))
	// Empty column shows the sky.
	assert.Equal(t, background, img.NRGBAAt(2, 1))
}

func TestRenderScalesAndCaptions(t *testing.T) {
	src := column{w: 8, h: 16, d: 4, id: registry.BlockGrass, top: map[[2]int]int{{1, 1}: 5}}

	plain := Render(src, 3, "")
	assert.Equal(t, 24, plain.Bounds().Dx())
	assert.Equal(t, 12, plain.Bounds().Dy())
	assert.Equal(t, plain.NRGBAAt(3, 3), plain.NRGBAAt(5, 5), "scaled block keeps one color")

	captioned := Render(src, 3, "seed 1")
	assert.Equal(t, 12+captionHeight, captioned.Bounds().Dy())
	assert.Equal(t, captionBG, captioned.NRGBAAt(23, 12+captionHeight-1))
}

func TestSave(t *testing.T) {
	src := column{w: 4, h: 8, d: 4, id: registry.BlockSand, top: map[[2]int]int{{2, 2}: 3}}
	path := filepath.Join(t.TempDir(), "map.png")
	require.NoError(t, Save(path, Render(src, 2, "")))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
}
