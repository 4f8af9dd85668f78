// Package terrain rewrites loaded terrain meshes from their source frame
// into geocentric ECEF coordinates and recomputes the attributes that
// depend on vertex positions.
package terrain

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/terravista/internal/engine/scene"
	"github.com/Faultbox/terravista/internal/logger"
)

// Projector maps a world-space coordinate triple into the target frame.
// Satisfied by geodesy.Converter.
type Projector interface {
	Forward(x, y, z float64) mgl64.Vec3
}

// ErrUnsupportedTopology marks meshes the rewriter cannot transform:
// indexed geometry or position buffers that are not 3 components per
// vertex. Such meshes are skipped, not mistransformed.
var ErrUnsupportedTopology = errors.New("terrain: unsupported mesh topology")

// Material is the surface description attached to rewritten tiles.
type Material struct {
	Diffuse  [3]float32
	Specular float32
}

// DebugMaterial is the fixed material applied to every rewritten tile.
// Original materials and textures are discarded during the rewrite.
var DebugMaterial = Material{
	Diffuse:  [3]float32{0.55, 0.58, 0.62},
	Specular: 0.1,
}

// Tile is one geo-referenced terrain unit after rewriting: a non-indexed
// triangle soup in the target frame with flat per-vertex normals and an
// axis-aligned bounding box over the rewritten positions.
type Tile struct {
	Name      string
	Positions []mgl64.Vec3 // length is a multiple of 3
	Normals   []mgl64.Vec3 // one per position
	Bounds    Bounds
	Material  Material
}

// RewriteTile converts every supported mesh under root into a single tile:
// each vertex is taken local -> world via the accumulated node transform,
// then world -> ECEF via the converter. Meshes with indexed geometry or
// non-3-component positions are skipped with a warning and contribute
// nothing. Returns nil if no supported geometry was found.
//
// Normals are recomputed from sequential vertex triples, which assumes the
// source winding is consistent.
func RewriteTile(name string, root scene.Node, proj Projector) *Tile {
	tile := &Tile{
		Name:     name,
		Bounds:   EmptyBounds(),
		Material: DebugMaterial,
	}

	err := scene.WalkMeshes(root, mgl64.Ident4(), func(m *scene.Mesh, world mgl64.Mat4) error {
		if m.Indices != nil || m.Components != 3 {
			logger.Warn("skipping mesh with unsupported topology",
				zap.String("tile", name),
				zap.String("mesh", m.Name),
				zap.Bool("indexed", m.Indices != nil),
				zap.Int("components", m.Components),
				zap.Error(ErrUnsupportedTopology),
			)
			return nil
		}

		count := m.VertexCount()
		// Drop a trailing partial triangle rather than emit one.
		count -= count % 3

		for i := 0; i < count; i++ {
			local := mgl64.Vec3{
				m.Positions[i*3+0],
				m.Positions[i*3+1],
				m.Positions[i*3+2],
			}
			w := world.Mul4x1(local.Vec4(1)).Vec3()
			p := proj.Forward(w.X(), w.Y(), w.Z())

			tile.Positions = append(tile.Positions, p)
			tile.Bounds.Extend(p)
		}
		return nil
	})
	if err != nil {
		// Unknown node kinds are a programming error in the loader, but a
		// broken tile must not take the whole set down here.
		logger.Warn("tile traversal aborted", zap.String("tile", name), zap.Error(err))
	}

	if len(tile.Positions) == 0 {
		return nil
	}

	tile.Normals = computeNormals(tile.Positions)
	return tile
}

// ApplyRotation rotates all positions and normals of the tile and
// recomputes its bounding box.
func (t *Tile) ApplyRotation(q mgl64.Quat) {
	t.Bounds = EmptyBounds()
	for i, p := range t.Positions {
		rp := q.Rotate(p)
		t.Positions[i] = rp
		t.Bounds.Extend(rp)
	}
	for i, n := range t.Normals {
		t.Normals[i] = q.Rotate(n)
	}
}

// computeNormals derives flat per-vertex normals from sequential vertex
// triples. Degenerate triangles get a zero normal.
func computeNormals(positions []mgl64.Vec3) []mgl64.Vec3 {
	normals := make([]mgl64.Vec3, len(positions))
	for i := 0; i+2 < len(positions); i += 3 {
		e1 := positions[i+1].Sub(positions[i])
		e2 := positions[i+2].Sub(positions[i])
		n := e1.Cross(e2)

		if length := n.Len(); length > 1e-12 {
			n = n.Mul(1 / length)
		} else {
			n = mgl64.Vec3{}
		}

		normals[i] = n
		normals[i+1] = n
		normals[i+2] = n
	}
	return normals
}
