package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"tank-maze/internal/gameconfig"
)

// Run opens the window and runs the main loop until it is closed. Each
// frame it calls update with the frame time in milliseconds and the current
// screen size, then clears to background and calls draw. ESC closes the
// window.
func Run(win gameconfig.WindowConfig, background rl.Color, update func(dtMs float32, width, height int), draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(win.Width), int32(win.Height), win.Title)
	defer rl.CloseWindow()

	if win.FPS > 0 {
		rl.SetTargetFPS(int32(win.FPS))
	}

	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime()*1000, rl.GetScreenWidth(), rl.GetScreenHeight())

		rl.BeginDrawing()
		rl.ClearBackground(background)
		draw()
		rl.EndDrawing()
	}
}
