package terrain

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Bounds is an axis-aligned bounding box in the target frame.
type Bounds struct {
	Min, Max mgl64.Vec3
}

// EmptyBounds returns a box that contains nothing. Extending it with any
// point yields that point; the union of anything with it is the other box.
func EmptyBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether the box contains no points.
func (b Bounds) IsEmpty() bool {
	return b.Min.X() > b.Max.X() || b.Min.Y() > b.Max.Y() || b.Min.Z() > b.Max.Z()
}

// Extend grows the box to include p.
func (b *Bounds) Extend(p mgl64.Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Union returns the smallest box containing both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	if b.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return b
	}
	out := b
	out.Extend(other.Min)
	out.Extend(other.Max)
	return out
}

// Center returns the box center point.
func (b Bounds) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the box extents along each axis.
func (b Bounds) Size() mgl64.Vec3 {
	if b.IsEmpty() {
		return mgl64.Vec3{}
	}
	return b.Max.Sub(b.Min)
}
