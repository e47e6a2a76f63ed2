package physics

import (
	"tank-maze/internal/grid"
	"tank-maze/internal/vmath"
)

// State is the standing state of a body relative to the grid.
type State int

const (
	Grounded State = iota
	Falling
)

func (s State) String() string {
	switch s {
	case Grounded:
		return "grounded"
	case Falling:
		return "falling"
	default:
		return "unknown"
	}
}

// World integrates active bodies under a constant gravity and resolves them
// against a grid of floor cubes.
type World struct {
	Gravity vmath.Vector3
	Bodies  []*Body
}

// NewWorld returns a world with the given gravity.
func NewWorld(gravity vmath.Vector3) *World {
	return &World{Gravity: gravity}
}

// AddBody appends b. Bodies are stepped in insertion order.
func (w *World) AddBody(b *Body) {
	w.Bodies = append(w.Bodies, b)
}

// Step integrates every active body by dt and, when g is not nil, resolves
// standing against it. Forces are kept until EndFrame.
func (w *World) Step(g *grid.Grid, dt float32) {
	for _, b := range w.Bodies {
		if !b.Active {
			continue
		}
		b.Integrate(w.Gravity, dt)
		if g != nil {
			Resolve(b, g)
		}
	}
}

// EndFrame zeroes the force of every body, active or not.
func (w *World) EndFrame() {
	for _, b := range w.Bodies {
		b.ResetForce()
	}
}

// Resolve runs the standing state machine for b over every occupied cell.
// A body whose (x, z) lies on a cube's footprint and whose height is at or
// below b.Threshold snaps to the threshold with vertical force and velocity
// cleared, however far it sank in one step. Anything else is falling.
func Resolve(b *Body, g *grid.Grid) State {
	if OnCell(g, b.Position.XZ()) && b.Position.Y <= b.Threshold {
		b.Position.Y = b.Threshold
		b.Force.Y = 0
		b.Velocity.Y = 0
		b.State = Grounded
		return Grounded
	}
	b.State = Falling
	return Falling
}

// OnCell reports whether the ground-plane point p lies on any occupied
// cell's footprint.
func OnCell(g *grid.Grid, p vmath.Vector2) bool {
	found := false
	g.Occupied(func(x, z int, _ grid.Cell) {
		if !found && grid.Footprint(x, z).ContainsPointXZ(p) {
			found = true
		}
	})
	return found
}
