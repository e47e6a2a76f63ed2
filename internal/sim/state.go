// Package sim owns the game state and advances it once per rendered frame.
package sim

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"tank-maze/internal/bounds"
	"tank-maze/internal/gameconfig"
	"tank-maze/internal/geometry"
	"tank-maze/internal/grid"
	"tank-maze/internal/logger"
	"tank-maze/internal/physics"
	"tank-maze/internal/vmath"
)

// ErrNoStart is returned when the map has no occupied cell to start on.
var ErrNoStart = errors.New("sim: map has no floor to start on")

// launchOffset lifts a new ball above the tank's origin.
var launchOffset = vmath.V3(0, 3, 0)

// launchAhead moves a new ball out along the turret.
const launchAhead = 5

// maxTilt keeps the free camera short of looking straight down.
const maxTilt = 89

// Actor is a dynamic body with its bounding box.
type Actor struct {
	*physics.Body
	Extents bounds.Extents
}

// UpdateBounds recomputes the world box from the current position and scale.
func (a *Actor) UpdateBounds() {
	a.Extents.Update(a.Position, a.Scale)
}

// Model is the actor's model matrix: Scale, Translate, then Rotate about +Y.
func (a *Actor) Model() vmath.Matrix4 {
	m := vmath.Identity()
	m.Scale(a.Scale.X, a.Scale.Y, a.Scale.Z)
	m.Translate(a.Position.X, a.Position.Y, a.Position.Z)
	m.Rotate(a.RotationDeg, 0, 1, 0)
	return m
}

// State is the whole simulation. It is owned by one goroutine and mutated
// only through Step and Reset.
type State struct {
	cfg gameconfig.Config
	log *logger.Logger

	Grid  *grid.Grid
	World *physics.World
	Tank  *Actor
	Ball  *Actor

	Mode      CameraMode
	Camera    Camera
	Aspect    float32
	ShowBoxes bool

	// Turret is the turret heading about +Y in degrees, independent of the
	// hull.
	Turret float32
	Orbit  Orbit
	// CoinSpin is the shared rotation of every coin in degrees.
	CoinSpin float32

	Collected int
	Outcome   Outcome
	Resets    int
	// TimeRemaining counts down in seconds while coins are left.
	TimeRemaining float32

	clock  Clock
	startX int
	startZ int
}

// Orbit is the free camera's placement around the tank.
type Orbit struct {
	Pan      float32
	Tilt     float32
	Distance float32
}

// New builds a state on g with the tank and ball meshes' extents. The tank
// starts on the first floor cell.
func New(cfg gameconfig.Config, g *grid.Grid, tankMesh, ballMesh geometry.Mesh, log *logger.Logger) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tankExt, err := tankMesh.Extents()
	if err != nil {
		return nil, fmt.Errorf("tank mesh: %w", err)
	}
	ballExt, err := ballMesh.Extents()
	if err != nil {
		return nil, fmt.Errorf("ball mesh: %w", err)
	}
	sx, sz, ok := g.Start()
	if !ok {
		return nil, ErrNoStart
	}

	p := cfg.Physics
	unit := vmath.V3(1, 1, 1)
	s := &State{
		cfg:       cfg,
		log:       log,
		Grid:      g,
		World:     physics.NewWorld(vmath.V3(p.Gravity[0], p.Gravity[1], p.Gravity[2])),
		Tank:      &Actor{Body: physics.NewBody(vmath.Vector3{}, unit, p.TankMass, p.TankThreshold), Extents: tankExt},
		Ball:      &Actor{Body: physics.NewBody(vmath.Vector3{}, unit, p.BallMass, p.BallThreshold), Extents: ballExt},
		Aspect:    float32(cfg.Window.Width) / float32(max(cfg.Window.Height, 1)),
		ShowBoxes: cfg.Debug.ShowBoxes,
		clock:     Clock{Period: p.TickMs},
		startX:    sx,
		startZ:    sz,

		TimeRemaining: cfg.Rules.TimeLimit,
	}
	s.World.AddBody(s.Tank.Body)
	s.World.AddBody(s.Ball.Body)
	s.place()
	return s, nil
}

// place puts the tank at rest on the start cell and parks the ball.
func (s *State) place() {
	t := s.Tank
	t.Position = grid.World(s.startX, s.startZ, t.Threshold)
	t.Velocity = vmath.Vector3{}
	t.ResetForce()
	t.RotationDeg = 0
	t.State = physics.Grounded
	t.Active = true
	t.UpdateBounds()
	s.Turret = 0
	s.Orbit = Orbit{Distance: s.cfg.Camera.FreeDistance}

	b := s.Ball
	b.Active = false
	b.Position = t.Position
	b.Velocity = vmath.Vector3{}
	b.ResetForce()
	b.UpdateBounds()

	s.clock.Reset()
	s.updateCamera()
}

// Reset reloads the grid from its source and restarts the run.
func (s *State) Reset() error {
	if err := s.Grid.Reset(); err != nil {
		return err
	}
	s.Collected = 0
	s.Outcome = Playing
	s.TimeRemaining = s.cfg.Rules.TimeLimit
	s.Resets++
	s.place()
	s.log.Info("game reset", zap.Int("resets", s.Resets), zap.Int("coins", s.Grid.Coins()))
	return nil
}

// Elapsed is how many seconds of the time limit have been used.
func (s *State) Elapsed() float32 {
	return s.cfg.Rules.TimeLimit - s.TimeRemaining
}

// TurretFacing is the unit ground-plane direction the turret points at.
func (s *State) TurretFacing() vmath.Vector3 {
	rad := vmath.Radians(s.Turret)
	return vmath.V3(math32.Sin(rad), 0, math32.Cos(rad))
}

// TurretModel places the turret on the tank: Scale, Translate, then Rotate
// about +Y by the turret heading.
func (s *State) TurretModel() vmath.Matrix4 {
	t := s.Tank
	m := vmath.Identity()
	m.Scale(t.Scale.X, t.Scale.Y, t.Scale.Z)
	m.Translate(t.Position.X, t.Position.Y, t.Position.Z)
	m.Rotate(s.Turret, 0, 1, 0)
	return m
}

// Launch fires the ball from the turret along its heading.
func (s *State) Launch() {
	t, b := s.Tank, s.Ball
	b.Position = t.Position.Add(s.TurretFacing().Mul(launchAhead)).Add(launchOffset)
	b.RotationDeg = s.Turret
	p := s.cfg.Physics
	b.Velocity = vmath.V3(p.LaunchSpeed, p.LaunchLift, p.LaunchSpeed)
	b.ResetForce()
	b.State = physics.Falling
	b.Active = true
	b.UpdateBounds()
	s.log.Debug("ball launched", zap.Float32("heading", b.RotationDeg))
}

// Step advances one frame of dt milliseconds:
//
//  1. discrete input (reset after game over, camera, launch, debug boxes)
//  2. hull turn and thrust from held keys, turret and free camera motion
//  3. integration and standing resolution for tank and ball
//  4. fixed ticks: countdown, coin spin and tank damping
//  5. bounding boxes, coin pickup, fall, timeout and win checks
//  6. force reset, camera and projection rebuild
//
// Once the run is over the tank is frozen and only a reset restarts it.
func (s *State) Step(in Input, dt float32) error {
	if in.Reset {
		if s.Outcome.Over() {
			return s.Reset()
		}
		s.log.Debug("reset ignored while playing")
	}
	if in.CycleCamera {
		s.Mode = s.Mode.Next()
		s.log.Info("camera mode", zap.Stringer("mode", s.Mode))
	}
	if in.ToggleBoxes {
		s.ShowBoxes = !s.ShowBoxes
	}
	playing := !s.Outcome.Over()
	if in.Launch && playing {
		s.Launch()
	}

	p := s.cfg.Physics
	t := s.Tank
	if playing {
		if in.Left {
			t.Turn(p.TurnStep)
		}
		if in.Right {
			t.Turn(-p.TurnStep)
		}
		if in.Forward {
			t.AddForce(vmath.V3(p.Thrust, 0, p.Thrust))
		}
		if in.Backward {
			t.AddForce(vmath.V3(-p.Thrust, 0, -p.Thrust))
		}
	}
	s.Turret = wrapDegrees(s.Turret + in.Turret)
	s.moveOrbit(in)

	s.World.Step(s.Grid, dt)

	for n := s.clock.Advance(dt); n > 0; n-- {
		s.tick()
	}

	t.UpdateBounds()
	if playing {
		s.collect(t, "tank")
	}
	if s.Ball.Active {
		s.Ball.UpdateBounds()
		if playing && s.collect(s.Ball, "ball") > 0 {
			s.Ball.Active = false
		}
		if s.Ball.Position.Y < p.BallFallLimit {
			s.Ball.Active = false
			s.log.Debug("ball lost")
		}
	}

	if s.Outcome == Playing {
		switch {
		case s.Grid.Coins() == 0:
			s.finish(Won)
		case t.Position.Y < p.TankFallLimit:
			s.finish(Fell)
		}
	}

	s.World.EndFrame()
	s.updateCamera()
	return nil
}

// tick is one fixed-period timer step.
func (s *State) tick() {
	if s.Outcome == Playing && s.Grid.Coins() > 0 {
		s.TimeRemaining -= s.cfg.Physics.TickMs / 1000
		if s.TimeRemaining <= 0 {
			s.TimeRemaining = 0
			s.finish(OutOfTime)
		}
	}
	s.CoinSpin = wrapDegrees(s.CoinSpin + s.cfg.Rules.CoinSpin)

	t := s.Tank
	if t.State == physics.Falling {
		t.Damp(s.cfg.Physics.FallingDamping)
	} else {
		t.Damp(s.cfg.Physics.Damping)
	}
}

// finish ends the run and freezes the tank where it is.
func (s *State) finish(o Outcome) {
	s.Outcome = o
	s.Tank.Active = false
	s.Tank.Velocity = vmath.Vector3{}
	s.log.Info("game over",
		zap.Stringer("outcome", o),
		zap.Int("collected", s.Collected),
		zap.Int("coins_left", s.Grid.Coins()),
		zap.Float32("time_remaining", s.TimeRemaining))
}

// moveOrbit applies free camera input. Pan wraps, tilt stays between level
// and just short of overhead, distance stays in the configured range.
func (s *State) moveOrbit(in Input) {
	cc := s.cfg.Camera
	o := &s.Orbit
	o.Pan = wrapDegrees(o.Pan + in.Pan)
	o.Tilt = min(max(o.Tilt+in.Tilt, 0), maxTilt)
	o.Distance = min(max(o.Distance+in.Zoom, cc.FreeMinDistance), cc.FreeMaxDistance)
}

func wrapDegrees(d float32) float32 {
	r := math32.Mod(d, 360)
	if r < 0 {
		r += 360
	}
	return r
}

// collect picks up every coin a overlaps and returns how many it took.
func (s *State) collect(a *Actor, who string) int {
	coins := s.Grid.CollectCoins(a.Extents.Transformed)
	for _, c := range coins {
		s.Collected++
		s.log.Info("coin collected",
			zap.String("by", who),
			zap.Int("x", c.X),
			zap.Int("z", c.Z),
			zap.Int("remaining", s.Grid.Coins()))
	}
	return len(coins)
}

// SetAspect changes the projection aspect ratio, e.g. on window resize.
func (s *State) SetAspect(width, height int) {
	if height <= 0 {
		return
	}
	s.Aspect = float32(width) / float32(height)
	s.updateCamera()
}

// CellModel is the model matrix of the floor cube at (x, z): a unit
// half-extent cube scaled by grid.HalfExtent and moved to (2x, 0, 2z).
func CellModel(x, z int) vmath.Matrix4 {
	m := vmath.Identity()
	m.Scale(grid.HalfExtent, grid.HalfExtent, grid.HalfExtent)
	m.Translate(2*float32(x), 0, 2*float32(z))
	return m
}
