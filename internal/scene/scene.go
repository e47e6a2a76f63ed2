// Package scene draws the maze, coins, tank and ball from a sim.State.
package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"tank-maze/internal/bounds"
	"tank-maze/internal/grid"
	"tank-maze/internal/render"
	"tank-maze/internal/sim"
	"tank-maze/internal/vmath"
)

// Registry keys of the tank parts.
const (
	tankMesh   = "tank"
	turretMesh = "turret"
	barrelMesh = "barrel"
)

// coinRadius is the drawn radius of a coin, well inside its pickup box.
const coinRadius = 6

var (
	floorColor = rl.NewColor(120, 124, 132, 255)
	coinColor  = rl.NewColor(240, 196, 40, 255)
	tankColor  = rl.NewColor(70, 130, 70, 255)
	gunColor   = rl.NewColor(50, 96, 50, 255)
	ballColor  = rl.NewColor(200, 60, 50, 255)
	skyColor   = rl.NewColor(24, 28, 40, 255)

	lightDir = [3]float32{0.4, 1, 0.25}
)

// Scene owns the mesh registry. The raylib camera only exists so
// BeginMode3D sets up 3D state; the projection and view come from the
// simulation's own matrices.
type Scene struct {
	reg    *render.Registry
	camera rl.Camera3D
}

// New returns a scene whose tank hull fills the tank's local extents, with a
// turret and barrel on top.
func New(st *sim.State) *Scene {
	s := &Scene{reg: render.NewRegistry()}
	hull := st.Tank.Extents.Local
	turret, barrel := TurretBoxes(hull)
	s.reg.AddBox(tankMesh, hull)
	s.reg.AddBox(turretMesh, turret)
	s.reg.AddBox(barrelMesh, barrel)
	s.camera.Up = rl.NewVector3(0, 1, 0)
	s.camera.Fovy = 60
	s.camera.Projection = rl.CameraPerspective
	return s
}

// Background is the clear color.
func Background() rl.Color { return skyColor }

// Draw renders the 3D world. Call after ClearBackground and before any 2D
// overlay.
func (s *Scene) Draw(st *sim.State) {
	cam := st.Camera
	s.camera.Position = render.Vector3(cam.Eye)
	s.camera.Target = render.Vector3(cam.Center)

	rl.BeginMode3D(s.camera)
	rl.SetMatrixProjection(render.Matrix(cam.Projection))
	rl.SetMatrixModelview(render.Matrix(cam.View))
	s.reg.SetView(cam.Eye, lightDir)

	st.Grid.Occupied(func(x, z int, c grid.Cell) {
		s.reg.Draw(render.Cube, sim.CellModel(x, z), floorColor)
		if c == grid.Coin {
			s.reg.Draw(render.Disc, CoinModel(x, z, st.CoinSpin), coinColor)
		}
	})

	s.reg.Draw(tankMesh, st.Tank.Model(), tankColor)
	turretModel := st.TurretModel()
	s.reg.Draw(turretMesh, turretModel, gunColor)
	s.reg.Draw(barrelMesh, turretModel, gunColor)
	if st.Ball.Active {
		s.reg.Draw(render.Sphere, BallModel(st.Ball), ballColor)
	}

	if st.ShowBoxes {
		s.drawBoxes(st)
	}
	rl.EndMode3D()
}

func (s *Scene) drawBoxes(st *sim.State) {
	rl.DrawBoundingBox(render.BoundingBox(st.Tank.Extents.Transformed), rl.Green)
	if st.Ball.Active {
		rl.DrawBoundingBox(render.BoundingBox(st.Ball.Extents.Transformed), rl.Red)
	}
	st.Grid.Occupied(func(x, z int, c grid.Cell) {
		if c == grid.Coin {
			rl.DrawBoundingBox(render.BoundingBox(grid.CoinBox(x, z)), rl.Yellow)
		}
	})
}

// Unload frees GPU resources.
func (s *Scene) Unload() {
	s.reg.Unload()
}

// TurretBoxes sizes the turret block and its barrel from the hull's local
// box. The turret sits on the hull's top face; the barrel points along +Z
// past the hull's front.
func TurretBoxes(hull bounds.Box) (turret, barrel bounds.Box) {
	size := hull.Size()
	c := hull.Center()
	top := hull.Max.Y
	h := size.Y / 2
	turret = bounds.NewBox(
		vmath.V3(c.X-size.X/4, top, c.Z-size.Z/4),
		vmath.V3(c.X+size.X/4, top+h, c.Z+size.Z/4))
	r := h / 4
	barrel = bounds.NewBox(
		vmath.V3(c.X-r, top+h/2-r, c.Z),
		vmath.V3(c.X+r, top+h/2+r, hull.Max.Z+size.Z/4))
	return turret, barrel
}

// CoinModel stands a coin disc upright halfway up the pickup space above its
// cube, spun spin degrees about +Y.
func CoinModel(x, z int, spin float32) vmath.Matrix4 {
	c := grid.World(x, z, grid.HalfExtent+grid.CoinHeight/2)
	m := vmath.Translation(c.X, c.Y, c.Z)
	m.Rotate(spin, 0, 1, 0)
	m.Rotate(90, 1, 0, 0)
	m.Scale(coinRadius, coinRadius, coinRadius)
	return m
}

// BallModel scales the unit sphere to the ball's local extents.
func BallModel(b *sim.Actor) vmath.Matrix4 {
	size := b.Extents.Local.Size()
	r := max(size.X, size.Y, size.Z) / 2
	c := b.Extents.Local.Center()
	m := b.Model()
	m.Translate(c.X, c.Y, c.Z)
	m.Scale(r, r, r)
	return m
}
