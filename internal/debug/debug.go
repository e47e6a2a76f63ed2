package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"tank-maze/internal/sim"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// only refresh FPS/Mem text every N frames to reduce allocations
	updateInterval = 30
	// logLines is how many recent log messages the overlay shows
	logLines = 6
)

var (
	statusColor = rl.RayWhite
	winColor    = rl.Gold
	loseColor   = rl.Red
	logColor    = rl.NewColor(180, 180, 180, 255)
)

// Debug draws the HUD: game status at the top-left, FPS and memory at the
// top-right, recent log lines at the bottom-left.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowLog      bool
	font         rl.Font // optional; zero texture ID uses the raylib default
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a HUD with the log overlay on and the FPS counter per showFPS.
func New(showFPS bool) *Debug {
	return &Debug{ShowFPS: showFPS, ShowLog: true}
}

// SetFont sets the HUD font. Zero texture ID = use raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// Status is the status text for st, one entry per line.
func Status(st *sim.State) []string {
	lines := []string{
		fmt.Sprintf("Time: %.2f", st.TimeRemaining),
		fmt.Sprintf("Coins Remaining: %d", st.Grid.Coins()),
		fmt.Sprintf("Camera: %s (C)", st.Mode),
	}
	if st.Resets > 0 {
		lines = append(lines, fmt.Sprintf("Resets: %d", st.Resets))
	}
	if st.ShowBoxes {
		lines = append(lines, "Bounding boxes on (B)")
	}
	return lines
}

// Banner is the centered end-of-run message for st, title first. It is nil
// while the run is in progress.
func Banner(st *sim.State) []string {
	switch st.Outcome {
	case sim.Won:
		return []string{"YOU WON!", fmt.Sprintf("You collected all the coins in %.2f seconds", st.Elapsed()), "Press R to restart"}
	case sim.OutOfTime:
		return []string{"GAME OVER", fmt.Sprintf("You ran out of time and had %d coins left", st.Grid.Coins()), "Press R to restart"}
	case sim.Fell:
		return []string{"GAME OVER", "You fell off the maze", "Press R to restart"}
	default:
		return nil
	}
}

// Tail returns the last n entries of lines.
func Tail(lines []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if len(lines) > n {
		return lines[len(lines)-n:]
	}
	return lines
}

// Draw renders the overlays. Call after the scene in the draw loop.
func (d *Debug) Draw(st *sim.State, log []string) {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	if (d.ShowFPS && d.lastFpsText == "") || (d.ShowMemAlloc && d.lastMemText == "") {
		update = true
	}

	y := float32(padding)
	for _, line := range Status(st) {
		d.text(line, padding, y, statusColor)
		y += lineHeight
	}
	if banner := Banner(st); banner != nil {
		c := loseColor
		if st.Outcome == sim.Won {
			c = winColor
		}
		y := float32(rl.GetScreenHeight()) / 3
		for i, msg := range banner {
			size := int32(fontSize)
			if i == 0 {
				size = fontSize * 2
			}
			x := (float32(rl.GetScreenWidth()) - d.measure(msg, size)) / 2
			d.textSized(msg, x, y, size, c)
			y += float32(size) + 4
		}
	}

	screenW := float32(rl.GetScreenWidth())
	y = padding
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		d.text(d.lastFpsText, screenW-d.measure(d.lastFpsText, fontSize)-padding, y, rl.Green)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(d.lastMemStats.Alloc)/(1024*1024))
		}
		d.text(d.lastMemText, screenW-d.measure(d.lastMemText, fontSize)-padding, y, rl.Green)
	}

	if d.ShowLog {
		tail := Tail(log, logLines)
		y = float32(rl.GetScreenHeight()) - padding - float32(len(tail))*lineHeight
		for _, line := range tail {
			d.text(line, padding, y, logColor)
			y += lineHeight
		}
	}
}

func (d *Debug) text(s string, x, y float32, c rl.Color) {
	d.textSized(s, x, y, fontSize, c)
}

func (d *Debug) textSized(s string, x, y float32, size int32, c rl.Color) {
	if s == "" {
		return
	}
	if d.font.Texture.ID != 0 {
		rl.DrawTextEx(d.font, s, rl.NewVector2(x, y), float32(size), 1, c)
		return
	}
	rl.DrawText(s, int32(x), int32(y), size, c)
}

func (d *Debug) measure(s string, size int32) float32 {
	if d.font.Texture.ID != 0 {
		return rl.MeasureTextEx(d.font, s, float32(size), 1).X
	}
	return float32(rl.MeasureText(s, size))
}
