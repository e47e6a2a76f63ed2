package sim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tank-maze/internal/bounds"
	"tank-maze/internal/gameconfig"
	"tank-maze/internal/geometry"
	"tank-maze/internal/grid"
	"tank-maze/internal/logger"
	"tank-maze/internal/physics"
	"tank-maze/internal/vmath"
)

const eps = 1e-4

func newState(t *testing.T, src string) *State {
	t.Helper()
	rows, err := grid.ParseText(strings.NewReader(src))
	require.NoError(t, err)
	g, err := grid.New(rows)
	require.NoError(t, err)
	s, err := New(gameconfig.Default(), g, geometry.Box(vmath.V3(10, 6, 12)), geometry.Cube(5), logger.NewNop())
	require.NoError(t, err)
	return s
}

func TestNewPlacesTankOnStart(t *testing.T) {
	s := newState(t, "00\n01\n02\n")
	assert.Equal(t, vmath.V3(30, 14.5, 30), s.Tank.Position)
	assert.False(t, s.Ball.Active)
	assert.Equal(t, bounds.NewBox(vmath.V3(20, 8.5, 18), vmath.V3(40, 20.5, 42)), s.Tank.Extents.Transformed)
	assert.Equal(t, CameraFollow, s.Mode)
}

func TestNewErrors(t *testing.T) {
	rows := [][]grid.Cell{{grid.Empty}}
	g, err := grid.New(rows)
	require.NoError(t, err)
	_, err = New(gameconfig.Default(), g, geometry.Cube(1), geometry.Cube(1), logger.NewNop())
	assert.ErrorIs(t, err, ErrNoStart)

	g, err = grid.New([][]grid.Cell{{grid.Floor}})
	require.NoError(t, err)
	_, err = New(gameconfig.Default(), g, geometry.Mesh{}, geometry.Cube(1), logger.NewNop())
	assert.ErrorIs(t, err, bounds.ErrNoGeometry)
}

func TestIdleStepStaysGrounded(t *testing.T) {
	s := newState(t, "1\n")
	for i := 0; i < 50; i++ {
		require.NoError(t, s.Step(Input{}, 10))
	}
	assert.Equal(t, float32(14.5), s.Tank.Position.Y)
	assert.Equal(t, physics.Grounded, s.Tank.State)
	assert.Equal(t, vmath.Vector3{}, s.Tank.Force, "force is cleared every frame")
}

func TestDriveForward(t *testing.T) {
	s := newState(t, "1\n1\n1\n1\n")
	for i := 0; i < 20; i++ {
		require.NoError(t, s.Step(Input{Forward: true}, 16))
	}
	assert.Greater(t, s.Tank.Position.Z, float32(0))
	assert.InDelta(t, 0, s.Tank.Position.X, eps)
	assert.Equal(t, physics.Grounded, s.Tank.State)
}

func TestTurnChangesHeading(t *testing.T) {
	s := newState(t, "1\n")
	require.NoError(t, s.Step(Input{Left: true}, 10))
	assert.InDelta(t, 0.3, s.Tank.RotationDeg, eps)
	require.NoError(t, s.Step(Input{Right: true}, 10))
	require.NoError(t, s.Step(Input{Right: true}, 10))
	assert.InDelta(t, 359.7, s.Tank.RotationDeg, 1e-3)
	assert.Zero(t, s.Turret, "the turret turns on its own")
}

func TestDampingPerTick(t *testing.T) {
	s := newState(t, "1\n")
	s.Tank.Velocity = vmath.V3(0.02, 0, 0.02)

	require.NoError(t, s.Step(Input{}, 10))
	assert.InDelta(t, 0.019, s.Tank.Velocity.Z, 1e-6)

	// half a tick: no damping yet
	require.NoError(t, s.Step(Input{}, 5))
	assert.InDelta(t, 0.019, s.Tank.Velocity.Z, 1e-6)
	require.NoError(t, s.Step(Input{}, 5))
	assert.InDelta(t, 0.01805, s.Tank.Velocity.Z, 1e-6)
}

func TestFallingDampsHarder(t *testing.T) {
	s := newState(t, "1\n")
	s.Tank.Position = vmath.V3(300, 14.5, 0)
	s.Tank.Velocity = vmath.V3(0.02, 0, 0.02)
	require.NoError(t, s.Step(Input{}, 10))
	assert.Equal(t, physics.Falling, s.Tank.State)
	assert.InDelta(t, 0.01, s.Tank.Velocity.Z, 1e-6)
}

func TestCoinPickupOnce(t *testing.T) {
	s := newState(t, "1\n2\n")
	require.Equal(t, 1, s.Grid.Coins())

	s.Tank.Position = grid.World(0, 1, 14.5)
	require.NoError(t, s.Step(Input{}, 0))
	assert.Equal(t, 0, s.Grid.Coins())
	assert.Equal(t, 1, s.Collected)
	assert.Equal(t, Won, s.Outcome)
	c, err := s.Grid.Cell(0, 1)
	require.NoError(t, err)
	assert.Equal(t, grid.Floor, c)

	require.NoError(t, s.Step(Input{}, 0))
	assert.Equal(t, 1, s.Collected)
}

func TestBallCollectsCoins(t *testing.T) {
	s := newState(t, "1\n1\n1\n2\n")
	s.Launch()
	require.True(t, s.Ball.Active)
	s.Ball.Position = grid.World(0, 3, 20)
	s.Ball.Velocity = vmath.Vector3{}
	require.NoError(t, s.Step(Input{}, 0))
	assert.Equal(t, 0, s.Grid.Coins())
	assert.Equal(t, 1, s.Collected)
	assert.False(t, s.Ball.Active, "a ball that takes a coin is used up")
}

func TestLaunch(t *testing.T) {
	s := newState(t, "1\n1\n1\n1\n")
	require.NoError(t, s.Step(Input{Launch: true}, 10))

	b := s.Ball
	assert.True(t, b.Active)
	assert.Greater(t, b.Position.Y, s.Tank.Position.Y+3)
	assert.Greater(t, b.Position.Z, s.Tank.Position.Z+5)
	assert.InDelta(t, 0.15-0.001, b.Velocity.Y, eps)
}

func TestLaunchFollowsTurret(t *testing.T) {
	s := newState(t, "1111\n")
	s.Tank.RotationDeg = 45
	require.NoError(t, s.Step(Input{Turret: 90}, 0))
	require.NoError(t, s.Step(Input{Launch: true}, 10))

	b := s.Ball
	assert.Equal(t, float32(90), b.RotationDeg)
	assert.Greater(t, b.Position.X, s.Tank.Position.X+5)
	assert.InDelta(t, s.Tank.Position.Z, b.Position.Z, 1e-3)
}

func TestBallLostBelowFallLimit(t *testing.T) {
	s := newState(t, "1\n")
	s.Launch()
	s.Ball.Position = vmath.V3(1000, -499, 1000)
	s.Ball.Velocity = vmath.Vector3{}
	require.NoError(t, s.Step(Input{}, 1000))
	assert.False(t, s.Ball.Active)
}

func TestTankFallEndsGame(t *testing.T) {
	s := newState(t, "1\n2\n")
	s.Tank.Position = vmath.V3(300, 14.5, 0)
	for i := 0; i < 10 && s.Outcome == Playing; i++ {
		require.NoError(t, s.Step(Input{}, 1000))
	}
	require.Equal(t, Fell, s.Outcome)
	assert.False(t, s.Tank.Active)
	assert.Equal(t, 0, s.Resets)

	frozen := s.Tank.Position
	require.NoError(t, s.Step(Input{Forward: true, Left: true}, 1000))
	assert.Equal(t, frozen, s.Tank.Position)

	require.NoError(t, s.Step(Input{Reset: true}, 10))
	assert.Equal(t, Playing, s.Outcome)
	assert.Equal(t, 1, s.Resets)
	assert.True(t, s.Tank.Active)
	assert.Equal(t, vmath.V3(0, 14.5, 0), s.Tank.Position)
	assert.Equal(t, 1, s.Grid.Coins())
}

func TestLongStallStaysOnFloor(t *testing.T) {
	s := newState(t, "1\n")
	require.NoError(t, s.Step(Input{}, 10))
	require.NoError(t, s.Step(Input{}, 600))
	assert.Equal(t, float32(14.5), s.Tank.Position.Y)
	assert.Equal(t, physics.Grounded, s.Tank.State)
	assert.Equal(t, Playing, s.Outcome)
}

func TestResetIgnoredWhilePlaying(t *testing.T) {
	s := newState(t, "1\n1\n2\n")
	s.Tank.Position = grid.World(0, 1, 14.5)
	require.NoError(t, s.Step(Input{Reset: true}, 10))
	assert.Equal(t, 0, s.Resets)
	assert.Equal(t, Playing, s.Outcome)
	assert.InDelta(t, 30, s.Tank.Position.Z, eps)
}

func TestResetAfterWin(t *testing.T) {
	s := newState(t, "1\n2\n")
	s.Tank.Position = grid.World(0, 1, 14.5)
	require.NoError(t, s.Step(Input{}, 0))
	require.Equal(t, Won, s.Outcome)

	require.NoError(t, s.Step(Input{Reset: true}, 10))
	assert.Equal(t, 1, s.Grid.Coins())
	assert.Equal(t, 0, s.Collected)
	assert.Equal(t, Playing, s.Outcome)
	assert.Equal(t, float32(60), s.TimeRemaining)
	assert.Equal(t, grid.World(0, 0, 14.5), s.Tank.Position)
}

func TestCountdown(t *testing.T) {
	s := newState(t, "1\n2\n")
	require.Equal(t, float32(60), s.TimeRemaining)
	require.NoError(t, s.Step(Input{}, 25))
	assert.InDelta(t, 59.98, s.TimeRemaining, eps)
	assert.InDelta(t, 0.02, s.Elapsed(), eps)
}

func TestTimeRunsOut(t *testing.T) {
	s := newState(t, "1\n1\n2\n")
	for i := 0; i < 70 && s.Outcome == Playing; i++ {
		require.NoError(t, s.Step(Input{}, 1000))
	}
	require.Equal(t, OutOfTime, s.Outcome)
	assert.Equal(t, float32(0), s.TimeRemaining)
	assert.Equal(t, 1, s.Grid.Coins())

	// coins are out of reach once time is up
	s.Tank.Position = grid.World(0, 2, 14.5)
	require.NoError(t, s.Step(Input{Forward: true}, 100))
	assert.Equal(t, 1, s.Grid.Coins())
	assert.Equal(t, OutOfTime, s.Outcome)
	assert.Equal(t, float32(0), s.TimeRemaining)
	assert.Equal(t, grid.World(0, 2, 14.5), s.Tank.Position)
}

func TestClockStopsOnceWon(t *testing.T) {
	s := newState(t, "1\n2\n")
	require.NoError(t, s.Step(Input{}, 500))
	s.Tank.Position = grid.World(0, 1, 14.5)
	require.NoError(t, s.Step(Input{}, 0))
	require.Equal(t, Won, s.Outcome)
	left := s.TimeRemaining

	require.NoError(t, s.Step(Input{}, 1000))
	assert.Equal(t, left, s.TimeRemaining)
	assert.InDelta(t, 0.5, s.Elapsed(), 1e-3)
}

func TestCoinSpin(t *testing.T) {
	s := newState(t, "1\n")
	require.NoError(t, s.Step(Input{}, 25))
	assert.InDelta(t, 2, s.CoinSpin, eps)

	s.CoinSpin = 359.5
	require.NoError(t, s.Step(Input{}, 10))
	assert.InDelta(t, 0.5, s.CoinSpin, 1e-3)
}

func TestTurretWraps(t *testing.T) {
	s := newState(t, "1\n")
	require.NoError(t, s.Step(Input{Turret: -30}, 10))
	assert.InDelta(t, 330, s.Turret, 1e-3)
	assert.Zero(t, s.Tank.RotationDeg)
}

func TestTurretModel(t *testing.T) {
	s := newState(t, "1\n")
	s.Turret = 90
	tip := s.TurretModel().TransformPoint(vmath.V3(0, 0, 1))
	want := s.Tank.Position.Add(vmath.V3(1, 0, 0))
	assert.InDelta(t, want.X, tip.X, 1e-3)
	assert.InDelta(t, want.Y, tip.Y, 1e-3)
	assert.InDelta(t, want.Z, tip.Z, 1e-3)
}

func TestCamerasFollowTurret(t *testing.T) {
	s := newState(t, "1\n")
	require.NoError(t, s.Step(Input{Turret: 90}, 0))
	tank := s.Tank.Position
	assert.InDelta(t, tank.X-10, s.Camera.Eye.X, 1e-3)
	assert.InDelta(t, tank.Y+10, s.Camera.Eye.Y, 1e-3)
	assert.InDelta(t, tank.Z, s.Camera.Eye.Z, 1e-3)
	assert.Equal(t, tank, s.Camera.Center)

	s.Mode = CameraFirstPerson
	require.NoError(t, s.Step(Input{}, 0))
	assert.InDelta(t, tank.Y+3.5, s.Camera.Eye.Y, 1e-3)
	look := s.Camera.Center.Sub(s.Camera.Eye)
	assert.Greater(t, look.X, float32(0))
	assert.InDelta(t, 0, look.Y, 1e-3)
	assert.InDelta(t, 0, look.Z, 1e-3)
}

func TestFreeCameraLimits(t *testing.T) {
	s := newState(t, "1\n")
	s.Mode = CameraFree
	require.NoError(t, s.Step(Input{}, 0))
	assert.Equal(t, Orbit{Distance: 20}, s.Orbit)
	assert.InDelta(t, s.Tank.Position.Z-20, s.Camera.Eye.Z, 1e-3)

	require.NoError(t, s.Step(Input{Pan: -90, Tilt: 200, Zoom: 100}, 0))
	assert.InDelta(t, 270, s.Orbit.Pan, 1e-3)
	assert.Equal(t, float32(89), s.Orbit.Tilt)
	assert.Equal(t, float32(20), s.Orbit.Distance)
	assert.Greater(t, s.Camera.Eye.Y, s.Tank.Position.Y+19)

	require.NoError(t, s.Step(Input{Tilt: -500, Zoom: -100}, 0))
	assert.Equal(t, float32(0), s.Orbit.Tilt)
	assert.Equal(t, float32(5), s.Orbit.Distance)
	tank := s.Tank.Position
	assert.InDelta(t, tank.X+5, s.Camera.Eye.X, 1e-3)
	assert.InDelta(t, tank.Y, s.Camera.Eye.Y, 1e-3)
	assert.InDelta(t, tank.Z, s.Camera.Eye.Z, 1e-3)
	assert.Equal(t, tank, s.Camera.Center)
}

func TestCameraModes(t *testing.T) {
	s := newState(t, "111\n111\n")
	modes := []CameraMode{CameraOverhead, CameraFirstPerson, CameraFree, CameraFollow}
	for _, want := range modes {
		require.NoError(t, s.Step(Input{CycleCamera: true}, 10))
		assert.Equal(t, want, s.Mode)
		assert.NotEqual(t, s.Camera.Eye, s.Camera.Center)
		// the center of view lands on the view axis
		c := s.Camera.View.TransformPoint(s.Camera.Center)
		assert.InDelta(t, 0, c.X, 1e-3, want.String())
		assert.InDelta(t, 0, c.Y, 1e-3, want.String())
		assert.Less(t, c.Z, float32(0), want.String())
	}
}

func TestToggleBoxes(t *testing.T) {
	s := newState(t, "1\n")
	require.NoError(t, s.Step(Input{ToggleBoxes: true}, 10))
	assert.True(t, s.ShowBoxes)
	require.NoError(t, s.Step(Input{ToggleBoxes: true}, 10))
	assert.False(t, s.ShowBoxes)
}

func TestModelViewMatchesViewTimesModel(t *testing.T) {
	s := newState(t, "11\n")
	s.Tank.RotationDeg = 30
	s.Tank.Position = vmath.V3(5, 14.5, 7)
	mv := s.ModelView(s.Tank)
	assert.True(t, mv.ApproxEqual(s.Camera.View.Mul(s.Tank.Model()), 1e-3))
}

func TestCellModel(t *testing.T) {
	m := CellModel(1, 2)
	center := m.TransformPoint(vmath.V3(0, 0, 0))
	assert.Equal(t, grid.World(1, 2, 0), center)
	corner := m.TransformPoint(vmath.V3(1, 1, 1))
	assert.Equal(t, grid.Footprint(1, 2).Max, corner)
}

func TestProjectionTracksAspect(t *testing.T) {
	s := newState(t, "1\n")
	s.SetAspect(800, 400)
	assert.InDelta(t, 2, s.Aspect, eps)
	assert.InDelta(t, s.Camera.Projection[1][1]/2, s.Camera.Projection[0][0], eps)
	s.SetAspect(800, 0)
	assert.InDelta(t, 2, s.Aspect, eps)
}

func TestClock(t *testing.T) {
	c := Clock{Period: 10}
	assert.Equal(t, 2, c.Advance(25))
	assert.Equal(t, 0, c.Advance(4))
	assert.Equal(t, 1, c.Advance(1))
	assert.Equal(t, 0, c.Advance(-3))
	c.Reset()
	assert.Equal(t, 0, c.Advance(9))

	var zero Clock
	assert.Equal(t, 0, zero.Advance(100))
}

func TestCameraModeNext(t *testing.T) {
	assert.Equal(t, CameraOverhead, CameraFollow.Next())
	assert.Equal(t, CameraFree, CameraFirstPerson.Next())
	assert.Equal(t, CameraFollow, CameraFree.Next())
	assert.Equal(t, "first-person", CameraFirstPerson.String())
	assert.Equal(t, "free", CameraFree.String())
}

func TestOutcome(t *testing.T) {
	assert.False(t, Playing.Over())
	for _, o := range []Outcome{Won, OutOfTime, Fell} {
		assert.True(t, o.Over(), o.String())
	}
	assert.Equal(t, "out of time", OutOfTime.String())
}
