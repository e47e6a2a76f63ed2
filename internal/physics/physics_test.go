package physics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tank-maze/internal/grid"
	"tank-maze/internal/vmath"
)

const eps = 1e-5

func floor(t *testing.T, src string) *grid.Grid {
	t.Helper()
	rows, err := grid.ParseText(strings.NewReader(src))
	require.NoError(t, err)
	g, err := grid.New(rows)
	require.NoError(t, err)
	return g
}

func TestNewBodyDefaults(t *testing.T) {
	b := NewBody(vmath.V3(1, 2, 3), vmath.Vector3{}, 0, 14.5)
	assert.Equal(t, float32(1), b.Mass)
	assert.Equal(t, vmath.V3(1, 1, 1), b.Scale)
	assert.True(t, b.Active)
	assert.Equal(t, Grounded, b.State)
}

func TestIntegrateGravity(t *testing.T) {
	gravity := vmath.V3(0, -0.0001, 0)
	b := NewBody(vmath.Vector3{}, vmath.V3(1, 1, 1), 48000, 14.5)

	b.Integrate(gravity, 10)
	assert.InDelta(t, 48000*-0.0001, b.Force.Y, eps)
	assert.InDelta(t, 10*(b.Force.Y/b.Mass), b.Velocity.Y, eps)
	assert.InDelta(t, gravity.Y*10, b.Velocity.Y, eps)
	assert.InDelta(t, 10*b.Velocity.Y, b.Position.Y, eps)

	b.ResetForce()
	assert.Equal(t, vmath.Vector3{}, b.Force)
}

func TestIntegrateFollowsFacing(t *testing.T) {
	b := NewBody(vmath.Vector3{}, vmath.V3(1, 1, 1), 1, 0)
	b.RotationDeg = 90
	b.Velocity = vmath.V3(0.5, 0, 0.5)

	b.Integrate(vmath.Vector3{}, 2)
	assert.InDelta(t, 1, b.Position.X, eps)
	assert.InDelta(t, 0, b.Position.Z, eps)

	b.Position = vmath.Vector3{}
	b.RotationDeg = 0
	b.Integrate(vmath.Vector3{}, 2)
	assert.InDelta(t, 0, b.Position.X, eps)
	assert.InDelta(t, 1, b.Position.Z, eps)
}

func TestIntegrateZeroDt(t *testing.T) {
	b := NewBody(vmath.V3(1, 2, 3), vmath.V3(1, 1, 1), 5, 0)
	b.Integrate(vmath.V3(0, -1, 0), 0)
	assert.Equal(t, vmath.V3(1, 2, 3), b.Position)
	assert.Equal(t, vmath.Vector3{}, b.Velocity)
}

func TestDamp(t *testing.T) {
	b := NewBody(vmath.Vector3{}, vmath.V3(1, 1, 1), 1, 0)
	b.Velocity = vmath.V3(20, 3, -40)
	b.Damp(1.0 / 20)
	assert.InDelta(t, 19, b.Velocity.X, eps)
	assert.InDelta(t, -38, b.Velocity.Z, eps)
	assert.Equal(t, float32(3), b.Velocity.Y, "vertical velocity is not damped")
}

func TestTurnWraps(t *testing.T) {
	b := NewBody(vmath.Vector3{}, vmath.V3(1, 1, 1), 1, 0)
	b.RotationDeg = 350
	b.Turn(20)
	assert.InDelta(t, 10, b.RotationDeg, eps)
	b.Turn(-15)
	assert.InDelta(t, 355, b.RotationDeg, eps)
}

func TestFacing(t *testing.T) {
	b := NewBody(vmath.Vector3{}, vmath.V3(1, 1, 1), 1, 0)
	b.RotationDeg = 90
	f := b.Facing()
	assert.InDelta(t, 1, f.X, eps)
	assert.InDelta(t, 0, f.Z, eps)
}

func TestResolve(t *testing.T) {
	g := floor(t, "1\n1\n")
	tests := []struct {
		name  string
		pos   vmath.Vector3
		want  State
		wantY float32
	}{
		{"sunk into cube snaps up", vmath.V3(0, 10, 0), Grounded, 14.5},
		{"exactly on top", vmath.V3(0, 14.5, 30), Grounded, 14.5},
		{"footprint edge is inclusive", vmath.V3(15, 14, 45), Grounded, 14.5},
		{"above the cube", vmath.V3(0, 20, 0), Falling, 20},
		{"off the map", vmath.V3(100, 10, 0), Falling, 10},
		{"over an empty cell", vmath.V3(30, 14, 0), Falling, 14},
		{"sank below the cube in one step", vmath.V3(0, -20, 0), Grounded, 14.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBody(tt.pos, vmath.V3(1, 1, 1), 10, 14.5)
			b.Velocity = vmath.V3(1, -2, 1)
			b.Force = vmath.V3(0, -5, 0)

			got := Resolve(b, g)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, b.State)
			assert.Equal(t, tt.wantY, b.Position.Y)
			if got == Grounded {
				assert.Equal(t, float32(0), b.Velocity.Y)
				assert.Equal(t, float32(0), b.Force.Y)
				assert.Equal(t, float32(1), b.Velocity.X)
			} else {
				assert.Equal(t, float32(-2), b.Velocity.Y)
			}
		})
	}
}

func TestWorldStep(t *testing.T) {
	g := floor(t, "1\n")
	w := NewWorld(vmath.V3(0, -0.0001, 0))
	tank := NewBody(vmath.V3(0, 14.5, 0), vmath.V3(1, 1, 1), 48000, 14.5)
	ball := NewBody(vmath.V3(0, 100, 0), vmath.V3(1, 1, 1), 1000, 15.5)
	parked := NewBody(vmath.V3(0, 100, 0), vmath.V3(1, 1, 1), 1, 15.5)
	parked.Active = false
	w.AddBody(tank)
	w.AddBody(ball)
	w.AddBody(parked)

	w.Step(g, 10)
	assert.Equal(t, Grounded, tank.State)
	assert.Equal(t, float32(14.5), tank.Position.Y)
	assert.Equal(t, Falling, ball.State)
	assert.Less(t, ball.Position.Y, float32(100))
	assert.InDelta(t, 1000*-0.0001, ball.Force.Y, eps)
	assert.Equal(t, float32(100), parked.Position.Y)

	w.EndFrame()
	for _, b := range w.Bodies {
		assert.Equal(t, vmath.Vector3{}, b.Force)
	}
}
