package vmath

import "github.com/chewxy/math32"

// Vector2 is a 2D value (x, y). Used for ground-plane (x, z) queries.
type Vector2 struct {
	X, Y float32
}

// Vector3 is a 3D value (x, y, z). All operations return new values.
type Vector3 struct {
	X, Y, Z float32
}

// V2 returns a Vector2.
func V2(x, y float32) Vector2 { return Vector2{X: x, Y: y} }

// V3 returns a Vector3.
func V3(x, y, z float32) Vector3 { return Vector3{X: x, Y: y, Z: z} }

func (a Vector2) Add(b Vector2) Vector2 { return Vector2{a.X + b.X, a.Y + b.Y} }
func (a Vector2) Sub(b Vector2) Vector2 { return Vector2{a.X - b.X, a.Y - b.Y} }
func (a Vector2) Mul(s float32) Vector2 { return Vector2{a.X * s, a.Y * s} }
func (a Vector2) Div(s float32) Vector2 { return Vector2{a.X / s, a.Y / s} }
func (a Vector2) Dot(b Vector2) float32 { return a.X*b.X + a.Y*b.Y }
func (a Vector2) Length() float32 { return math32.Sqrt(a.X*a.X + a.Y*a.Y) }

// Normalise returns a/|a|. A zero-length vector normalises to the zero vector.
func (a Vector2) Normalise() Vector2 {
	l := a.Length()
	if l == 0 {
		return Vector2{}
	}
	return a.Div(l)
}

func (a Vector3) Add(b Vector3) Vector3 { return Vector3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vector3) Sub(b Vector3) Vector3 { return Vector3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vector3) Mul(s float32) Vector3 { return Vector3{a.X * s, a.Y * s, a.Z * s} }
func (a Vector3) Div(s float32) Vector3 { return Vector3{a.X / s, a.Y / s, a.Z / s} }

// MulV is the component-wise product.
func (a Vector3) MulV(b Vector3) Vector3 { return Vector3{a.X * b.X, a.Y * b.Y, a.Z * b.Z} }

// Length is sqrt(x²+y²+z²).
func (a Vector3) Length() float32 { return math32.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z) }

// XZ projects onto the ground plane.
func (a Vector3) XZ() Vector2 { return Vector2{a.X, a.Z} }

// Normalise returns a/|a|. A zero-length vector normalises to the zero vector;
// callers that must reject that case check Length first.
func Normalise(a Vector3) Vector3 {
	l := a.Length()
	if l == 0 {
		return Vector3{}
	}
	return a.Div(l)
}

// Dot returns ax·bx + ay·by + az·bz.
func Dot(a, b Vector3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross is the right-handed cross product a × b.
func Cross(a, b Vector3) Vector3 {
	return Vector3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math32.Pi / 180
}
