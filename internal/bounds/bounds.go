// Package bounds holds axis-aligned bounding boxes for actors and grid cells.
//
// Boxes never rotate: an actor's world box is its model-space box offset by
// position*scale, whatever its facing. The maze is grid-aligned, so this is
// enough for standing and pickup tests.
package bounds

import (
	"errors"
	"fmt"

	"tank-maze/internal/vmath"
)

var (
	// ErrNoGeometry is returned when extents are requested for an empty mesh.
	ErrNoGeometry = errors.New("bounds: no geometry")
	// ErrFaceIndex is returned when a face references a missing vertex.
	ErrFaceIndex = errors.New("bounds: face index out of range")
)

// Box is an axis-aligned box given by its minimum and maximum corners.
// All queries treat both bounds as inclusive.
type Box struct {
	Min, Max vmath.Vector3
}

// NewBox returns the box spanning min..max.
func NewBox(min, max vmath.Vector3) Box {
	return Box{Min: min, Max: max}
}

// Intersects reports whether all three axis intervals of b and o overlap.
func (b Box) Intersects(o Box) bool {
	return IntersectAABB(b, o.Max, o.Min)
}

// IntersectAABB reports whether box overlaps the query box given as (max, min).
func IntersectAABB(box Box, queryMax, queryMin vmath.Vector3) bool {
	return box.Min.X <= queryMax.X && box.Max.X >= queryMin.X &&
		box.Min.Y <= queryMax.Y && box.Max.Y >= queryMin.Y &&
		box.Min.Z <= queryMax.Z && box.Max.Z >= queryMin.Z
}

// ContainsPoint reports whether p lies inside b.
func (b Box) ContainsPoint(p vmath.Vector3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// ContainsPointXZ reports whether the ground-plane point p = (x, z) lies
// inside the box's x/z footprint. Height is ignored.
func (b Box) ContainsPointXZ(p vmath.Vector2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Z && p.Y <= b.Max.Z
}

// ContainsLine reports whether the ground-plane segment from a to b lies
// entirely within the box's x/z footprint. The footprint is convex, so both
// endpoints being inside is sufficient.
func (b Box) ContainsLine(from, to vmath.Vector2) bool {
	return b.ContainsPointXZ(from) && b.ContainsPointXZ(to)
}

// Center returns the midpoint of b.
func (b Box) Center() vmath.Vector3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns Max - Min.
func (b Box) Size() vmath.Vector3 {
	return b.Max.Sub(b.Min)
}

func (b Box) String() string {
	return fmt.Sprintf("[(%.2f %.2f %.2f) (%.2f %.2f %.2f)]",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
}
