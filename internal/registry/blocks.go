package registry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// BlockID identifies a block type inside a voxel grid.
type BlockID = uint8

const (
	BlockAir BlockID = iota
	BlockGrass
	BlockDirt
	BlockStone
	BlockWood
	BlockLeaves
	BlockSand
)

// Color is a 0xRRGGBB render color.
type Color uint32

// RGB returns the color as components in [0,1].
func (c Color) RGB() mgl32.Vec3 {
	return mgl32.Vec3{
		float32((c>>16)&0xFF) / 255,
		float32((c>>8)&0xFF) / 255,
		float32(c&0xFF) / 255,
	}
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xFFFFFF)
}

// BlockType defines the material of a voxel.
type BlockType struct {
	ID    BlockID
	Name  string
	Color Color
}

// Solid reports whether the block occupies space. Only air is non-solid.
func (b BlockType) Solid() bool {
	return b.ID != BlockAir
}

// Catalog is an immutable, dense table of block types indexed by id.
// The zero value is an empty catalog in which every id is unknown.
type Catalog struct {
	types []BlockType
}

// NewCatalog builds a catalog from types. Ids must be dense and start at zero
// (types[i].ID == i) and the first entry must be air.
func NewCatalog(types ...BlockType) (*Catalog, error) {
	if len(types) == 0 {
		return nil, fmt.Errorf("catalog: no block types")
	}
	if len(types) > 256 {
		return nil, fmt.Errorf("catalog: %d block types exceed id range", len(types))
	}
	for i, t := range types {
		if int(t.ID) != i {
			return nil, fmt.Errorf("catalog: block %q has id %d at position %d", t.Name, t.ID, i)
		}
	}
	if types[0].ID != BlockAir {
		return nil, fmt.Errorf("catalog: first entry must be air")
	}
	c := &Catalog{types: make([]BlockType, len(types))}
	copy(c.types, types)
	return c, nil
}

var defaultTypes = []BlockType{
	{ID: BlockAir, Name: "air", Color: 0x000000},
	{ID: BlockGrass, Name: "grass", Color: 0x52a535},
	{ID: BlockDirt, Name: "dirt", Color: 0x8a5a2a},
	{ID: BlockStone, Name: "stone", Color: 0x888888},
	{ID: BlockWood, Name: "wood", Color: 0x9d7b4a},
	{ID: BlockLeaves, Name: "leaves", Color: 0x2f8f2f},
	{ID: BlockSand, Name: "sand", Color: 0xd7c97f},
}

// Default returns a fresh copy of the standard seven block catalog.
func Default() *Catalog {
	c, err := NewCatalog(defaultTypes...)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the block type for id.
func (c *Catalog) Lookup(id BlockID) (BlockType, bool) {
	if c == nil || int(id) >= len(c.types) {
		return BlockType{}, false
	}
	return c.types[id], true
}

// Label returns the display name of id, or "" if id is unknown.
func (c *Catalog) Label(id BlockID) string {
	t, ok := c.Lookup(id)
	if !ok {
		return ""
	}
	return t.Name
}

// Len is the number of block types including air.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.types)
}

// Types returns a copy of all block types in id order.
func (c *Catalog) Types() []BlockType {
	out := make([]BlockType, c.Len())
	if c != nil {
		copy(out, c.types)
	}
	return out
}

// Cycle steps from id by delta over the placeable ids 1..Len()-1, wrapping at
// both ends. It mirrors scrolling through the block selector.
func (c *Catalog) Cycle(id BlockID, delta int) BlockID {
	n := c.Len()
	if n < 2 {
		return BlockAir
	}
	next := int(id) + delta
	if next >= n {
		next = 1
	}
	if next <= 0 {
		next = n - 1
	}
	return BlockID(next)
}
