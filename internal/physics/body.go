package physics

import (
	"github.com/chewxy/math32"

	"tank-maze/internal/vmath"
)

// Body is a dynamic actor: position, velocity, accumulated force, mass and
// facing. Inactive bodies are skipped by World.Step.
type Body struct {
	Position vmath.Vector3
	Velocity vmath.Vector3
	Force    vmath.Vector3
	Scale    vmath.Vector3
	Mass     float32
	// RotationDeg is the facing about +Y in degrees. Horizontal motion is
	// along (sin, cos) of this angle.
	RotationDeg float32
	// Threshold is the height the body rests at when standing on a cube.
	Threshold float32
	State     State
	Active    bool
}

// NewBody returns an active body at rest. mass <= 0 becomes 1; a zero scale
// component becomes 1.
func NewBody(position, scale vmath.Vector3, mass, threshold float32) *Body {
	if mass <= 0 {
		mass = 1
	}
	if scale.X == 0 {
		scale.X = 1
	}
	if scale.Y == 0 {
		scale.Y = 1
	}
	if scale.Z == 0 {
		scale.Z = 1
	}
	return &Body{
		Position:  position,
		Scale:     scale,
		Mass:      mass,
		Threshold: threshold,
		State:     Grounded,
		Active:    true,
	}
}

// AddForce accumulates f until ResetForce.
func (b *Body) AddForce(f vmath.Vector3) {
	b.Force = b.Force.Add(f)
}

// Integrate runs one explicit Euler step of dt (milliseconds):
//
//	force    += mass * gravity
//	velocity += dt * force / mass
//	x        += dt * velocity.x * sin(rotation)
//	z        += dt * velocity.z * cos(rotation)
//	y        += dt * velocity.y
//
// The force is left in place; call ResetForce at the end of the frame.
func (b *Body) Integrate(gravity vmath.Vector3, dt float32) {
	b.Force = b.Force.Add(gravity.Mul(b.Mass))
	b.Velocity = b.Velocity.Add(b.Force.Div(b.Mass).Mul(dt))

	rad := vmath.Radians(b.RotationDeg)
	b.Position.X += dt * b.Velocity.X * math32.Sin(rad)
	b.Position.Z += dt * b.Velocity.Z * math32.Cos(rad)
	b.Position.Y += dt * b.Velocity.Y
}

// ResetForce zeroes the accumulated force.
func (b *Body) ResetForce() {
	b.Force = vmath.Vector3{}
}

// Damp removes fraction of the horizontal velocity.
func (b *Body) Damp(fraction float32) {
	b.Velocity.X -= b.Velocity.X * fraction
	b.Velocity.Z -= b.Velocity.Z * fraction
}

// Facing is the unit ground-plane direction the body points at.
func (b *Body) Facing() vmath.Vector3 {
	rad := vmath.Radians(b.RotationDeg)
	return vmath.V3(math32.Sin(rad), 0, math32.Cos(rad))
}

// Turn adds deg to the facing, wrapped to [0, 360).
func (b *Body) Turn(deg float32) {
	r := math32.Mod(b.RotationDeg+deg, 360)
	if r < 0 {
		r += 360
	}
	b.RotationDeg = r
}
