// Package scene defines the node tree handed over by the model-loading
// collaborator. Node kinds form a closed set: adding a kind means touching
// every switch over the sealed Node interface, so a new kind cannot be
// silently skipped during traversal.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Node is the sealed interface over the closed set of scene node kinds.
// Only Group and Mesh implement it.
type Node interface {
	isNode()
	LocalTransform() mgl64.Mat4
}

// Group is an interior node that only positions its children.
type Group struct {
	Name      string
	Transform mgl64.Mat4
	Children  []Node
}

// Mesh is a leaf node carrying a vertex position buffer.
//
// Positions holds Components values per vertex, tightly packed. A non-nil
// Indices slice marks the mesh as indexed geometry.
type Mesh struct {
	Name       string
	Transform  mgl64.Mat4
	Positions  []float64
	Components int
	Indices    []uint32
}

func (*Group) isNode() {}
func (*Mesh) isNode()  {}

// LocalTransform returns the group's local transform.
func (g *Group) LocalTransform() mgl64.Mat4 { return g.Transform }

// LocalTransform returns the mesh's local transform.
func (m *Mesh) LocalTransform() mgl64.Mat4 { return m.Transform }

// VertexCount returns the number of vertices in the position buffer, or 0
// if the component count is unset.
func (m *Mesh) VertexCount() int {
	if m.Components <= 0 {
		return 0
	}
	return len(m.Positions) / m.Components
}

// WalkMeshes visits every mesh under root in depth-first order, passing the
// accumulated local-to-world transform. The switch over node kinds is
// exhaustive; an unknown implementation of Node is an error, not a skip.
func WalkMeshes(root Node, parent mgl64.Mat4, fn func(*Mesh, mgl64.Mat4) error) error {
	world := parent.Mul4(root.LocalTransform())

	switch n := root.(type) {
	case *Mesh:
		return fn(n, world)
	case *Group:
		for _, child := range n.Children {
			if err := WalkMeshes(child, world, fn); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("scene: unhandled node kind %T", root)
	}
}
