package vmath

import (
	"errors"

	"github.com/chewxy/math32"
)

// ErrDegenerateBasis is returned by LookAt when eye equals center or the
// view direction is parallel to up.
var ErrDegenerateBasis = errors.New("vmath: degenerate look-at basis")

const basisEpsilon = 1e-6

// Translation returns the elementary translation matrix.
func Translation(x, y, z float32) Matrix4 {
	m := Identity()
	m[3][0] = x
	m[3][1] = y
	m[3][2] = z
	return m
}

// Scaling returns the elementary scale matrix.
func Scaling(x, y, z float32) Matrix4 {
	m := Identity()
	m[0][0] = x
	m[1][1] = y
	m[2][2] = z
	return m
}

// Rotation returns the axis-angle (Rodrigues) rotation of angleDeg degrees
// about (x, y, z). The axis is normalised here; a zero axis yields identity.
func Rotation(angleDeg, x, y, z float32) Matrix4 {
	axis := V3(x, y, z)
	if axis.Length() == 0 {
		return Identity()
	}
	axis = Normalise(axis)
	x, y, z = axis.X, axis.Y, axis.Z

	rad := Radians(angleDeg)
	c := math32.Cos(rad)
	s := math32.Sin(rad)
	t := 1 - c

	m := Identity()
	m[0][0] = t*x*x + c
	m[0][1] = t*x*y + s*z
	m[0][2] = t*x*z - s*y

	m[1][0] = t*x*y - s*z
	m[1][1] = t*y*y + c
	m[1][2] = t*y*z + s*x

	m[2][0] = t*x*z + s*y
	m[2][1] = t*y*z - s*x
	m[2][2] = t*z*z + c
	return m
}

// Translate right-multiplies a translation onto m (m = m * T).
//
// All composing builders share this rule, so calls compose in call order:
// after Translate then Rotate, a point is rotated first and translated second.
func (m *Matrix4) Translate(x, y, z float32) {
	*m = m.Mul(Translation(x, y, z))
}

// Scale right-multiplies a scale onto m.
func (m *Matrix4) Scale(x, y, z float32) {
	*m = m.Mul(Scaling(x, y, z))
}

// Rotate right-multiplies a rotation of angleDeg degrees about (x, y, z) onto m.
func (m *Matrix4) Rotate(angleDeg, x, y, z float32) {
	*m = m.Mul(Rotation(angleDeg, x, y, z))
}

// Ortho returns an OpenGL-style orthographic projection.
func Ortho(left, right, bottom, top, near, far float32) Matrix4 {
	m := Identity()
	m[0][0] = 2 / (right - left)
	m[1][1] = 2 / (top - bottom)
	m[2][2] = -2 / (far - near)
	m[3][0] = -(right + left) / (right - left)
	m[3][1] = -(top + bottom) / (top - bottom)
	m[3][2] = -(far + near) / (far - near)
	return m
}

// Perspective returns a symmetric-frustum projection. fovyDeg is the full
// vertical field of view in degrees.
func Perspective(fovyDeg, aspect, near, far float32) Matrix4 {
	f := 1 / math32.Tan(Radians(fovyDeg)/2)
	var m Matrix4
	m[0][0] = f / aspect
	m[1][1] = f
	m[2][2] = (far + near) / (near - far)
	m[2][3] = -1
	m[3][2] = 2 * far * near / (near - far)
	return m
}

// LookAt right-multiplies the camera rotation and eye translation onto m.
// It folds the camera into a running model-view matrix, so it must be the
// first composed operation after ToIdentity:
//
//	mv.ToIdentity()
//	mv.LookAt(eye, center, up)
//	mv.Scale(...)
//	mv.Translate(...)
//
// On a degenerate basis m is left unchanged.
func (m *Matrix4) LookAt(eye, center, up Vector3) error {
	dir := center.Sub(eye)
	if dir.Length() < basisEpsilon {
		return ErrDegenerateBasis
	}
	forward := Normalise(dir)
	side := Cross(forward, up)
	if side.Length() < basisEpsilon {
		return ErrDegenerateBasis
	}
	side = Normalise(side)
	u := Cross(side, forward)

	r := Identity()
	r[0][0], r[1][0], r[2][0] = side.X, side.Y, side.Z
	r[0][1], r[1][1], r[2][1] = u.X, u.Y, u.Z
	r[0][2], r[1][2], r[2][2] = -forward.X, -forward.Y, -forward.Z

	*m = m.Mul(r)
	m.Translate(-eye.X, -eye.Y, -eye.Z)
	return nil
}

// View returns Identity with LookAt applied.
func View(eye, center, up Vector3) (Matrix4, error) {
	m := Identity()
	if err := m.LookAt(eye, center, up); err != nil {
		return m, err
	}
	return m, nil
}
