package vmath

import (
	"errors"

	"github.com/chewxy/math32"
)

// singularEpsilon is the |determinant| below which Inverse refuses to divide.
const singularEpsilon = 1e-7

// ErrSingularMatrix is returned by Inverse when the determinant is (near) zero.
var ErrSingularMatrix = errors.New("vmath: singular matrix")

// Matrix4 is a column-major 4x4 matrix addressed as m[column][row].
// Cells laid out in this order are directly consumable as a column-major
// uniform buffer (see Floats).
//
// Matrices are meant to be built only through Identity and the builders in
// transform.go; gameplay code never edits single cells.
type Matrix4 [4][4]float32

// Identity returns the identity matrix.
func Identity() Matrix4 {
	var m Matrix4
	m.ToIdentity()
	return m
}

// ToIdentity resets m to the identity matrix in place.
func (m *Matrix4) ToIdentity() {
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			if c == r {
				m[c][r] = 1
			} else {
				m[c][r] = 0
			}
		}
	}
}

// Mul returns lhs * rhs. Column c of the result is the sum over k of
// lhs[k][row] * rhs[c][k].
func (lhs Matrix4) Mul(rhs Matrix4) Matrix4 {
	var out Matrix4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += lhs[k][r] * rhs[c][k]
			}
			out[c][r] = sum
		}
	}
	return out
}

// Transpose swaps [c][r] and [r][c].
func (m Matrix4) Transpose() Matrix4 {
	var out Matrix4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[r][c] = m[c][r]
		}
	}
	return out
}

// minor is the determinant of the 3x3 matrix left after removing column col and row row.
func (m Matrix4) minor(col, row int) float32 {
	var s [3][3]float32
	ci := 0
	for c := 0; c < 4; c++ {
		if c == col {
			continue
		}
		ri := 0
		for r := 0; r < 4; r++ {
			if r == row {
				continue
			}
			s[ci][ri] = m[c][r]
			ri++
		}
		ci++
	}
	return s[0][0]*(s[1][1]*s[2][2]-s[2][1]*s[1][2]) -
		s[1][0]*(s[0][1]*s[2][2]-s[2][1]*s[0][2]) +
		s[2][0]*(s[0][1]*s[1][2]-s[1][1]*s[0][2])
}

func (m Matrix4) cofactor(col, row int) float32 {
	c := m.minor(col, row)
	if (col+row)%2 == 1 {
		return -c
	}
	return c
}

// Determinant expands along row 0.
func (m Matrix4) Determinant() float32 {
	var det float32
	for c := 0; c < 4; c++ {
		det += m[c][0] * m.cofactor(c, 0)
	}
	return det
}

// Inverse returns the adjugate divided by the determinant. When the
// determinant is within singularEpsilon of zero it returns the identity and
// ErrSingularMatrix.
func (m Matrix4) Inverse() (Matrix4, error) {
	det := m.Determinant()
	if math32.Abs(det) < singularEpsilon {
		return Identity(), ErrSingularMatrix
	}
	inv := 1 / det
	var out Matrix4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			// adjugate is the transposed cofactor matrix
			out[c][r] = m.cofactor(r, c) * inv
		}
	}
	return out, nil
}

// Floats returns the 16 cells in column-major order.
func (m Matrix4) Floats() [16]float32 {
	var f [16]float32
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			f[c*4+r] = m[c][r]
		}
	}
	return f
}

// Mul4 multiplies the homogeneous column vector v by m.
func (m Matrix4) Mul4(v [4]float32) [4]float32 {
	var out [4]float32
	for r := 0; r < 4; r++ {
		out[r] = m[0][r]*v[0] + m[1][r]*v[1] + m[2][r]*v[2] + m[3][r]*v[3]
	}
	return out
}

// TransformPoint applies m to p with w = 1 and drops the resulting w.
func (m Matrix4) TransformPoint(p Vector3) Vector3 {
	o := m.Mul4([4]float32{p.X, p.Y, p.Z, 1})
	return Vector3{o[0], o[1], o[2]}
}

// Project applies m to p with w = 1 and performs the perspective divide.
// A zero w yields the undivided result.
func (m Matrix4) Project(p Vector3) Vector3 {
	o := m.Mul4([4]float32{p.X, p.Y, p.Z, 1})
	if o[3] == 0 {
		return Vector3{o[0], o[1], o[2]}
	}
	return Vector3{o[0] / o[3], o[1] / o[3], o[2] / o[3]}
}

// ApproxEqual reports whether every cell of a and b differs by at most eps.
func (m Matrix4) ApproxEqual(b Matrix4, eps float32) bool {
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			if math32.Abs(m[c][r]-b[c][r]) > eps {
				return false
			}
		}
	}
	return true
}
