package bounds

import (
	"fmt"

	"tank-maze/internal/vmath"
)

// Extents pairs a mesh's model-space box, fixed at load time, with its
// world-space box, overwritten once per frame by Update.
type Extents struct {
	Local       Box
	Transformed Box
}

// FromGeometry scans every vertex referenced by faces. The box starts at the
// first referenced vertex and widens from there. Unreferenced vertices do
// not contribute.
func FromGeometry(positions []vmath.Vector3, faces [][3]int) (Extents, error) {
	if len(positions) == 0 || len(faces) == 0 {
		return Extents{}, ErrNoGeometry
	}
	first := faces[0][0]
	if first < 0 || first >= len(positions) {
		return Extents{}, fmt.Errorf("%w: face 0 vertex %d", ErrFaceIndex, first)
	}
	min, max := positions[first], positions[first]
	for fi, f := range faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(positions) {
				return Extents{}, fmt.Errorf("%w: face %d vertex %d", ErrFaceIndex, fi, idx)
			}
			p := positions[idx]
			min.X, max.X = widen(min.X, max.X, p.X)
			min.Y, max.Y = widen(min.Y, max.Y, p.Y)
			min.Z, max.Z = widen(min.Z, max.Z, p.Z)
		}
	}
	local := NewBox(min, max)
	return Extents{Local: local, Transformed: local}, nil
}

func widen(lo, hi, v float32) (float32, float32) {
	if v < lo {
		lo = v
	}
	if v > hi {
		hi = v
	}
	return lo, hi
}

// Update recomputes the world box as Local + position*scale, component-wise.
// Rotation is not applied.
func (e *Extents) Update(position, scale vmath.Vector3) {
	offset := position.MulV(scale)
	e.Transformed = NewBox(e.Local.Min.Add(offset), e.Local.Max.Add(offset))
}
