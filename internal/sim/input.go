package sim

// Input is one frame of player intent. Held keys (movement, turning) act
// every frame they are set; the rest are edge-triggered presses.
type Input struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool

	Launch      bool
	CycleCamera bool
	Reset       bool
	ToggleBoxes bool

	// Turret turns the turret by this many degrees.
	Turret float32
	// Pan, Tilt (degrees) and Zoom (distance) move the free camera.
	Pan  float32
	Tilt float32
	Zoom float32
}
