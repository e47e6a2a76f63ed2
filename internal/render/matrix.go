package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"tank-maze/internal/bounds"
	"tank-maze/internal/vmath"
)

// Matrix converts m to raylib's layout. Both are column-major, so element
// (col c, row r) lands in field M(c*4+r).
func Matrix(m vmath.Matrix4) rl.Matrix {
	f := m.Floats()
	return rl.Matrix{
		M0: f[0], M1: f[1], M2: f[2], M3: f[3],
		M4: f[4], M5: f[5], M6: f[6], M7: f[7],
		M8: f[8], M9: f[9], M10: f[10], M11: f[11],
		M12: f[12], M13: f[13], M14: f[14], M15: f[15],
	}
}

func Vector3(v vmath.Vector3) rl.Vector3 {
	return rl.NewVector3(v.X, v.Y, v.Z)
}

// BoundingBox converts b for rl.DrawBoundingBox.
func BoundingBox(b bounds.Box) rl.BoundingBox {
	return rl.NewBoundingBox(Vector3(b.Min), Vector3(b.Max))
}
