// Package geometry supplies vertex positions and triangle faces for meshes.
// It reads the subset of Wavefront OBJ the game's models use (v and f lines)
// and generates the built-in cube.
package geometry

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"tank-maze/internal/bounds"
	"tank-maze/internal/vmath"
)

// ErrFaceIndex is returned for a face that references a vertex that does not exist.
var ErrFaceIndex = errors.New("geometry: face index out of range")

// Mesh is the geometry-provider output: positions and 0-based triangle indices.
type Mesh struct {
	Positions []vmath.Vector3
	Faces     [][3]int
}

// Extents computes the mesh's model-space bounding box.
func (m Mesh) Extents() (bounds.Extents, error) {
	return bounds.FromGeometry(m.Positions, m.Faces)
}

// LoadOBJ opens path and parses it with ParseOBJ.
func LoadOBJ(path string) (Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return Mesh{}, err
	}
	defer f.Close()
	m, err := ParseOBJ(f)
	if err != nil {
		return Mesh{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseOBJ reads v and f records. Face corners may be "i", "i/t", "i//n" or
// "i/t/n"; indices are 1-based, negative ones count back from the last vertex
// read so far. Polygons are fan-triangulated. Other records are skipped.
func ParseOBJ(r io.Reader) (Mesh, error) {
	var m Mesh
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return Mesh{}, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var c [3]float32
			for i := 0; i < 3; i++ {
				v, err := strconv.ParseFloat(fields[i+1], 32)
				if err != nil {
					return Mesh{}, fmt.Errorf("line %d: %w", lineNo, err)
				}
				c[i] = float32(v)
			}
			m.Positions = append(m.Positions, vmath.V3(c[0], c[1], c[2]))
		case "f":
			if len(fields) < 4 {
				return Mesh{}, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			corners := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				idx, err := faceIndex(tok, len(m.Positions))
				if err != nil {
					return Mesh{}, fmt.Errorf("line %d: %w", lineNo, err)
				}
				corners = append(corners, idx)
			}
			for i := 1; i+1 < len(corners); i++ {
				m.Faces = append(m.Faces, [3]int{corners[0], corners[i], corners[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Mesh{}, err
	}
	return m, nil
}

func faceIndex(tok string, count int) (int, error) {
	if i := strings.IndexByte(tok, '/'); i >= 0 {
		tok = tok[:i]
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, err
	}
	var idx int
	switch {
	case n > 0:
		idx = n - 1
	case n < 0:
		idx = count + n
	default:
		return 0, fmt.Errorf("%w: 0", ErrFaceIndex)
	}
	if idx < 0 || idx >= count {
		return 0, fmt.Errorf("%w: %d", ErrFaceIndex, n)
	}
	return idx, nil
}

// Cube returns an axis-aligned cube centered at the origin with the given
// half-extent: 8 corners, 12 triangles.
func Cube(half float32) Mesh {
	return Box(vmath.V3(half, half, half))
}

// Box returns an axis-aligned box centered at the origin with half-extents h.
func Box(h vmath.Vector3) Mesh {
	p := make([]vmath.Vector3, 0, 8)
	for i := 0; i < 8; i++ {
		x, y, z := -h.X, -h.Y, -h.Z
		if i&1 != 0 {
			x = h.X
		}
		if i&2 != 0 {
			y = h.Y
		}
		if i&4 != 0 {
			z = h.Z
		}
		p = append(p, vmath.V3(x, y, z))
	}
	faces := [][3]int{
		{0, 2, 3}, {0, 3, 1}, // -z
		{4, 5, 7}, {4, 7, 6}, // +z
		{0, 4, 6}, {0, 6, 2}, // -x
		{1, 3, 7}, {1, 7, 5}, // +x
		{0, 1, 5}, {0, 5, 4}, // -y
		{2, 6, 7}, {2, 7, 3}, // +y
	}
	return Mesh{Positions: p, Faces: faces}
}

// Hull returns a box with half-extents h whose base rests on y=0, so a model
// placed at a standing height sits on the surface instead of sinking into it.
func Hull(h vmath.Vector3) Mesh {
	m := Box(h)
	for i := range m.Positions {
		m.Positions[i].Y += h.Y
	}
	return m
}
