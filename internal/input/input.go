// Package input maps keyboard and mouse state to sim.Input.
package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"tank-maze/internal/sim"
)

// Keys reports key state for the current frame.
type Keys interface {
	Down(key int32) bool
	Pressed(key int32) bool
}

// Mouse reports pointer motion for the current frame.
type Mouse interface {
	Delta() (dx, dy float32)
	Wheel() float32
	Held(button rl.MouseButton) bool
}

// Raylib reads keys and the mouse from the open window.
type Raylib struct{}

func (Raylib) Down(key int32) bool    { return rl.IsKeyDown(key) }
func (Raylib) Pressed(key int32) bool { return rl.IsKeyPressed(key) }

func (Raylib) Delta() (float32, float32) {
	d := rl.GetMouseDelta()
	return d.X, d.Y
}

func (Raylib) Wheel() float32                  { return rl.GetMouseWheelMove() }
func (Raylib) Held(button rl.MouseButton) bool { return rl.IsMouseButtonDown(button) }

// Bindings lists the keys for each action. Movement is held; the rest
// trigger once per press. Mouse drags and the wheel scale with the frame
// time.
type Bindings struct {
	Forward, Backward, Left, Right []int32

	Launch, CycleCamera, Reset, ToggleBoxes []int32

	// TurretButton drags the turret, OrbitButton drags the free camera.
	TurretButton rl.MouseButton
	OrbitButton  rl.MouseButton
	// Sensitivity is degrees per pixel per millisecond of drag.
	Sensitivity float32
	// ZoomStep is distance per wheel notch per millisecond.
	ZoomStep float32
}

// DefaultBindings: WASD or arrows to drive, Space to fire, C camera,
// R reset, B bounding boxes, right drag to aim, left drag and the wheel to
// move the free camera.
func DefaultBindings() Bindings {
	return Bindings{
		Forward:     []int32{rl.KeyW, rl.KeyUp},
		Backward:    []int32{rl.KeyS, rl.KeyDown},
		Left:        []int32{rl.KeyA, rl.KeyLeft},
		Right:       []int32{rl.KeyD, rl.KeyRight},
		Launch:      []int32{rl.KeySpace},
		CycleCamera: []int32{rl.KeyC},
		Reset:       []int32{rl.KeyR},
		ToggleBoxes: []int32{rl.KeyB},

		TurretButton: rl.MouseButtonRight,
		OrbitButton:  rl.MouseButtonLeft,
		Sensitivity:  0.1,
		ZoomStep:     0.2,
	}
}

// Read samples k and m for one frame of dtMs milliseconds.
func (b Bindings) Read(k Keys, m Mouse, dtMs float32) sim.Input {
	in := sim.Input{
		Forward:     anyKey(k.Down, b.Forward),
		Backward:    anyKey(k.Down, b.Backward),
		Left:        anyKey(k.Down, b.Left),
		Right:       anyKey(k.Down, b.Right),
		Launch:      anyKey(k.Pressed, b.Launch),
		CycleCamera: anyKey(k.Pressed, b.CycleCamera),
		Reset:       anyKey(k.Pressed, b.Reset),
		ToggleBoxes: anyKey(k.Pressed, b.ToggleBoxes),
	}

	dx, dy := m.Delta()
	scale := b.Sensitivity * dtMs
	if m.Held(b.TurretButton) {
		in.Turret = -dx * scale
	}
	if m.Held(b.OrbitButton) {
		in.Pan = -dx * scale
		in.Tilt = dy * scale
	}
	// wheel up brings the camera closer
	in.Zoom = -m.Wheel() * b.ZoomStep * dtMs
	return in
}

func anyKey(test func(int32) bool, keys []int32) bool {
	for _, k := range keys {
		if test(k) {
			return true
		}
	}
	return false
}
