package meshing

import (
	"blockworld/internal/profiling"
	"blockworld/internal/registry"
)

// Volume is the read side of a voxel grid. Get must return 0 (air) for
// out-of-range coordinates.
type Volume interface {
	Dimensions() (width, height, depth int)
	Get(x, y, z int) uint8
}

// Mesh is an indexed triangle list with per-vertex attributes. Positions,
// Normals and Colors carry 3 floats per vertex, UVs 2, and Indices 6 per quad.
type Mesh struct {
	Positions []float32
	Normals   []float32
	Colors    []float32
	UVs       []float32
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	if m == nil {
		return 0
	}
	return len(m.Positions) / 3
}

// QuadCount returns the number of emitted faces.
func (m *Mesh) QuadCount() int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 6
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 3
}

// Empty reports whether the mesh has no geometry.
func (m *Mesh) Empty() bool {
	return m.QuadCount() == 0
}

type face struct {
	dir     [3]int
	corners [4][3]float32
	shade   float32
}

// Face order is part of the output layout: +Z, -Z, +X, -X, +Y, -Y.
var faces = [6]face{
	{dir: [3]int{0, 0, 1}, corners: [4][3]float32{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}, shade: 0.95},
	{dir: [3]int{0, 0, -1}, corners: [4][3]float32{{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}}, shade: 0.95},
	{dir: [3]int{1, 0, 0}, corners: [4][3]float32{{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}}, shade: 0.8},
	{dir: [3]int{-1, 0, 0}, corners: [4][3]float32{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}, shade: 0.8},
	{dir: [3]int{0, 1, 0}, corners: [4][3]float32{{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}}, shade: 1},
	{dir: [3]int{0, -1, 0}, corners: [4][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}, shade: 0.6},
}

var cornerUV = [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// Build extracts every block face that borders air or the grid boundary.
// Air and ids the catalog does not know are skipped. The result depends only
// on the volume contents and the catalog.
func Build(v Volume, catalog *registry.Catalog) *Mesh {
	defer profiling.Track("meshing.Build")()

	m := &Mesh{}
	w, h, d := v.Dimensions()
	var o uint32

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			for z := 0; z < d; z++ {
				id := v.Get(x, y, z)
				if id == registry.BlockAir {
					continue
				}
				block, ok := catalog.Lookup(id)
				if !ok {
					continue
				}
				base := block.Color.RGB()

				for i := range faces {
					f := &faces[i]
					if v.Get(x+f.dir[0], y+f.dir[1], z+f.dir[2]) != registry.BlockAir {
						continue
					}
					c := base.Mul(f.shade)
					for k, corner := range f.corners {
						m.Positions = append(m.Positions,
							float32(x)+corner[0], float32(y)+corner[1], float32(z)+corner[2])
						m.Normals = append(m.Normals,
							float32(f.dir[0]), float32(f.dir[1]), float32(f.dir[2]))
						m.Colors = append(m.Colors, c.X(), c.Y(), c.Z())
						m.UVs = append(m.UVs, cornerUV[k][0], cornerUV[k][1])
					}
					m.Indices = append(m.Indices, o, o+1, o+2, o, o+2, o+3)
					o += 4
				}
			}
		}
	}
	return m
}
