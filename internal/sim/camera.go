package sim

import (
	"github.com/chewxy/math32"

	"tank-maze/internal/vmath"
)

// CameraMode selects how the eye follows the tank.
type CameraMode int

const (
	CameraFollow CameraMode = iota
	CameraOverhead
	CameraFirstPerson
	CameraFree
	cameraModeCount
)

func (m CameraMode) String() string {
	switch m {
	case CameraFollow:
		return "follow"
	case CameraOverhead:
		return "overhead"
	case CameraFirstPerson:
		return "first-person"
	case CameraFree:
		return "free"
	default:
		return "unknown"
	}
}

// Next cycles follow -> overhead -> first-person -> free -> follow.
func (m CameraMode) Next() CameraMode {
	return (m + 1) % cameraModeCount
}

// lookAhead is how far in front of the tank the first-person eye aims.
const lookAhead = 100

// Camera is the per-frame eye and the matrices built from it.
type Camera struct {
	Eye, Center, Up vmath.Vector3
	View            vmath.Matrix4
	Projection      vmath.Matrix4
}

// updateCamera places the eye for the current mode and rebuilds View and
// Projection. The follow and first-person eyes look along the turret. A
// degenerate placement keeps the previous view.
func (s *State) updateCamera() {
	cc := s.cfg.Camera
	tank := s.Tank.Position
	facing := s.TurretFacing()

	cam := &s.Camera
	cam.Up = vmath.V3(0, 1, 0)
	switch s.Mode {
	case CameraOverhead:
		cam.Center = s.Grid.Center(0)
		cam.Eye = cam.Center.Add(vmath.V3(0, cc.OverheadHeight, cc.OverheadHeight/4))
	case CameraFirstPerson:
		cam.Eye = tank.Add(vmath.V3(0, cc.FirstPersonHeight, 0))
		cam.Center = cam.Eye.Add(facing.Mul(lookAhead))
	case CameraFree:
		cam.Eye = tank.Add(s.Orbit.offset())
		cam.Center = tank
	default:
		cam.Eye = tank.Sub(facing.Mul(cc.FollowDistance)).Add(vmath.V3(0, cc.FollowHeight, 0))
		cam.Center = tank
	}

	if view, err := vmath.View(cam.Eye, cam.Center, cam.Up); err == nil {
		cam.View = view
	}
	cam.Projection = vmath.Perspective(cc.Fovy, s.Aspect, cc.Near, cc.Far)
}

// ModelView composes the camera with an actor's placement, camera first:
// LookAt, then Scale, Translate and Rotate.
func (s *State) ModelView(a *Actor) vmath.Matrix4 {
	mv := vmath.Identity()
	if err := mv.LookAt(s.Camera.Eye, s.Camera.Center, s.Camera.Up); err != nil {
		mv = s.Camera.View
	}
	mv.Scale(a.Scale.X, a.Scale.Y, a.Scale.Z)
	mv.Translate(a.Position.X, a.Position.Y, a.Position.Z)
	mv.Rotate(a.RotationDeg, 0, 1, 0)
	return mv
}

// offset is the eye position relative to the tank: Distance away, opposite
// the pan heading, raised by the tilt.
func (o Orbit) offset() vmath.Vector3 {
	pan, tilt := vmath.Radians(o.Pan), vmath.Radians(o.Tilt)
	flat := o.Distance * math32.Cos(tilt)
	return vmath.V3(-flat*math32.Sin(pan), o.Distance*math32.Sin(tilt), -flat*math32.Cos(pan))
}
