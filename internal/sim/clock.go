package sim

// Clock turns variable frame deltas into whole fixed-period ticks, the way a
// periodic timer callback would fire between frames.
type Clock struct {
	Period float32
	acc    float32
}

// Advance adds dt and returns how many ticks elapsed. Negative deltas and a
// non-positive period yield none.
func (c *Clock) Advance(dt float32) int {
	if c.Period <= 0 || dt <= 0 {
		return 0
	}
	c.acc += dt
	n := int(c.acc / c.Period)
	c.acc -= float32(n) * c.Period
	return n
}

// Reset drops any partial tick.
func (c *Clock) Reset() {
	c.acc = 0
}
