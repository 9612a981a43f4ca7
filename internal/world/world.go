package world

import (
	"log/slog"
	"math"
	"time"

	"blockworld/internal/meshing"
	"blockworld/internal/metrics"
	"blockworld/internal/noise"
	"blockworld/internal/physics"
	"blockworld/internal/registry"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Scene receives the world's renderable mesh. Detach must release whatever
// resources Attach acquired for that mesh.
type Scene interface {
	Attach(m *meshing.Mesh)
	Detach(m *meshing.Mesh)
}

type nopScene struct{}

func (nopScene) Attach(*meshing.Mesh) {}
func (nopScene) Detach(*meshing.Mesh) {}

// Intersection is a ray hit on the rendered surface.
type Intersection = physics.Intersection

// BlockHit identifies the block behind an Intersection.
type BlockHit struct {
	Position [3]int
	ID       uint8
	Normal   mgl32.Vec3
}

// Stats summarises a generated world.
type Stats struct {
	Solid   int
	Trees   int
	Quads   int
	ByBlock map[string]int
}

// World owns the voxel grid and keeps exactly one mesh of it attached to the
// scene. It is not safe for concurrent use.
type World struct {
	id      uuid.UUID
	seed    int64
	kind    NoiseKind
	grid    *Grid
	catalog *registry.Catalog
	scene   Scene
	mesh    *meshing.Mesh
	trees   int

	log      *slog.Logger
	metrics  *metrics.Recorder
	disposed bool
}

// New generates a world from opts, builds its mesh and attaches it to scene.
// A nil scene discards meshes.
func New(scene Scene, opts Options) *World {
	opts = opts.withDefaults()
	if scene == nil {
		scene = nopScene{}
	}

	seed := noise.RandomSeed()
	if opts.Seed != nil {
		seed = *opts.Seed
	}

	w := &World{
		id:      uuid.New(),
		seed:    seed,
		kind:    opts.Noise,
		grid:    NewGrid(opts.Width, opts.Height, opts.Depth),
		catalog: registry.Default(),
		scene:   scene,
		metrics: opts.Metrics,
	}
	w.log = opts.Log.With("world", w.id.String())

	rng := opts.Rand
	if rng == nil {
		rng = noise.NewMulberry32(seed)
	}
	var field noise.Field
	switch opts.Noise {
	case NoiseFractal:
		field = noise.NewFractal(seed, int32(opts.Octaves))
	default:
		field = noise.NewPerlin(rng)
	}

	start := time.Now()
	w.trees = NewGenerator(field, rng, opts.terrain()).Populate(w.grid)
	elapsed := time.Since(start)
	solid := w.grid.CountSolid()
	w.metrics.ObserveGeneration(elapsed, solid)

	w.rebuildMesh()

	w.log.Info("World generated",
		"seed", seed,
		"noise", opts.Noise.String(),
		"width", opts.Width, "height", opts.Height, "depth", opts.Depth,
		"solid", solid,
		"trees", w.trees,
		"quads", w.mesh.QuadCount(),
		"checksum", w.grid.Checksum(),
		"took", elapsed,
	)
	return w
}

// rebuildMesh replaces the mesh wholesale. The old mesh is detached before
// the new one is attached.
func (w *World) rebuildMesh() {
	if w.disposed {
		return
	}
	if w.mesh != nil {
		w.scene.Detach(w.mesh)
		w.mesh = nil
	}
	start := time.Now()
	m := meshing.Build(w.grid, w.catalog)
	elapsed := time.Since(start)
	w.mesh = m
	w.scene.Attach(m)

	w.metrics.ObserveMeshBuild(elapsed, m.QuadCount())
	w.log.Debug("Mesh rebuilt", "quads", m.QuadCount(), "took", elapsed)
}

// Mesh returns the currently attached mesh, or nil after Dispose.
func (w *World) Mesh() *meshing.Mesh {
	return w.mesh
}

// Dispose detaches the current mesh. Later edits still change the grid but
// no longer produce meshes. Calling Dispose twice is a no-op.
func (w *World) Dispose() {
	if w.disposed {
		return
	}
	if w.mesh != nil {
		w.scene.Detach(w.mesh)
		w.mesh = nil
	}
	w.disposed = true
	w.log.Debug("World disposed")
}

func (w *World) ID() uuid.UUID               { return w.id }
func (w *World) Seed() int64                 { return w.seed }
func (w *World) Noise() NoiseKind            { return w.kind }
func (w *World) Catalog() *registry.Catalog  { return w.catalog }
func (w *World) Dimensions() (int, int, int) { return w.grid.Dimensions() }
func (w *World) Checksum() uint64            { return w.grid.Checksum() }

// Grid exposes the voxel storage for read-only consumers such as previews.
func (w *World) Grid() *Grid { return w.grid }

// GetBlockLabel returns the display name of id, or "" for unknown ids.
func (w *World) GetBlockLabel(id uint8) string {
	return w.catalog.Label(id)
}

// GetBlock returns the id at integer coordinates; out of range is air.
func (w *World) GetBlock(x, y, z int) uint8 {
	return w.grid.Get(x, y, z)
}

// SetBlock writes id without rebuilding the mesh. Use PlaceBlock or
// RemoveBlock for edits that must become visible.
func (w *World) SetBlock(x, y, z int, id uint8) bool {
	return w.grid.Set(x, y, z, id)
}

// GetSurfaceHeight returns the highest non-air y in column x,z, or 0.
func (w *World) GetSurfaceHeight(x, z int) int {
	_, h, _ := w.grid.Dimensions()
	return physics.SurfaceHeight(x, z, h, w.grid.Solid)
}

// IsSolid floors each coordinate and reports whether that cell is non-air.
func (w *World) IsSolid(x, y, z float64) bool {
	return w.grid.Solid(floor(x), floor(y), floor(z))
}

// Collides reports whether an upright box with its top centre at pos
// overlaps any solid cell.
func (w *World) Collides(pos mgl32.Vec3, radius, height float32) bool {
	return physics.Collides(pos, radius, height, w.grid.Solid)
}

// Raycast finds the first solid cell along a ray from origin.
func (w *World) Raycast(origin, dir mgl32.Vec3, maxDist float32) physics.RaycastResult {
	return physics.Raycast(origin, dir, physics.MinReachDistance, maxDist, w.grid.Solid)
}

// GetIntersectedBlock resolves a surface hit to the block behind it by
// stepping half a cell against the face normal.
func (w *World) GetIntersectedBlock(hit *Intersection) *BlockHit {
	if hit == nil {
		return nil
	}
	p := hit.Point.Sub(hit.Normal.Mul(0.5))
	x := floor(float64(p.X()))
	y := floor(float64(p.Y()))
	z := floor(float64(p.Z()))
	if !w.grid.InBounds(x, y, z) {
		return nil
	}
	return &BlockHit{
		Position: [3]int{x, y, z},
		ID:       w.grid.Get(x, y, z),
		Normal:   hit.Normal,
	}
}

// PlaceBlock writes id at the floored position and rebuilds the mesh.
// It reports false, leaving everything untouched, when out of range.
func (w *World) PlaceBlock(x, y, z float64, id uint8) bool {
	return w.edit("place", x, y, z, id)
}

// RemoveBlock sets the floored position to air and rebuilds the mesh.
func (w *World) RemoveBlock(x, y, z float64) bool {
	return w.edit("remove", x, y, z, registry.BlockAir)
}

func (w *World) edit(kind string, x, y, z float64, id uint8) bool {
	bx, by, bz := floor(x), floor(y), floor(z)
	ok := w.grid.Set(bx, by, bz, id)
	w.metrics.ObserveEdit(kind, ok)
	if !ok {
		return false
	}
	w.log.Debug("Block edited", "kind", kind, "x", bx, "y", by, "z", bz, "id", id)
	w.rebuildMesh()
	return true
}

// SpawnPoint is the centre of the middle column, six blocks above its surface.
func (w *World) SpawnPoint() mgl32.Vec3 {
	width, _, depth := w.grid.Dimensions()
	sx, sz := width/2, depth/2
	sy := w.GetSurfaceHeight(sx, sz) + 6
	return mgl32.Vec3{float32(sx) + 0.5, float32(sy), float32(sz) + 0.5}
}

// Stats counts blocks by name along with trees and mesh size.
func (w *World) Stats() Stats {
	hist := w.grid.Histogram()
	s := Stats{
		Solid:   w.grid.CountSolid(),
		Trees:   w.trees,
		Quads:   w.mesh.QuadCount(),
		ByBlock: make(map[string]int, w.catalog.Len()),
	}
	for _, t := range w.catalog.Types() {
		s.ByBlock[t.Name] = hist[t.ID]
	}
	return s
}

func floor(v float64) int {
	return int(math.Floor(v))
}
