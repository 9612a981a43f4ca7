package world

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Grid is a dense width × height × depth volume of block ids laid out as
// x + width*(z + depth*y), so a horizontal layer is contiguous.
type Grid struct {
	width, height, depth int
	cells                []uint8
}

// NewGrid allocates an all-air grid. Dimensions must be positive.
func NewGrid(width, height, depth int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		depth:  depth,
		cells:  make([]uint8, width*height*depth),
	}
}

// Dimensions returns width, height and depth.
func (g *Grid) Dimensions() (int, int, int) {
	return g.width, g.height, g.depth
}

func (g *Grid) index(x, y, z int) int {
	return x + g.width*(z+g.depth*y)
}

// InBounds reports whether (x,y,z) addresses a cell.
func (g *Grid) InBounds(x, y, z int) bool {
	return x >= 0 && x < g.width &&
		y >= 0 && y < g.height &&
		z >= 0 && z < g.depth
}

// Get returns the id at (x,y,z) or 0 (air) when out of range.
func (g *Grid) Get(x, y, z int) uint8 {
	if !g.InBounds(x, y, z) {
		return 0
	}
	return g.cells[g.index(x, y, z)]
}

// Set writes id at (x,y,z). It returns false and changes nothing when the
// coordinates are out of range.
func (g *Grid) Set(x, y, z int, id uint8) bool {
	if !g.InBounds(x, y, z) {
		return false
	}
	g.cells[g.index(x, y, z)] = id
	return true
}

// Solid reports whether (x,y,z) holds a non-air block.
func (g *Grid) Solid(x, y, z int) bool {
	return g.Get(x, y, z) != 0
}

// CountSolid returns the number of non-air cells.
func (g *Grid) CountSolid() int {
	n := 0
	for _, c := range g.cells {
		if c != 0 {
			n++
		}
	}
	return n
}

// Histogram counts cells per block id.
func (g *Grid) Histogram() [256]int {
	var h [256]int
	for _, c := range g.cells {
		h[c]++
	}
	return h
}

// Checksum is an xxhash64 digest of the dimensions and every cell. Two grids
// with equal checksums hold the same world.
func (g *Grid) Checksum() uint64 {
	d := xxhash.New()
	var hdr [12]byte
	binary.LittleEndian.PutUint32(hdr[0:], uint32(g.width))
	binary.LittleEndian.PutUint32(hdr[4:], uint32(g.height))
	binary.LittleEndian.PutUint32(hdr[8:], uint32(g.depth))
	_, _ = d.Write(hdr[:])
	_, _ = d.Write(g.cells)
	return d.Sum64()
}

// Bytes returns a copy of the raw cell storage.
func (g *Grid) Bytes() []byte {
	out := make([]byte, len(g.cells))
	copy(out, g.cells)
	return out
}
