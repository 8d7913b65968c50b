package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DrawHUD renders the corner status line.
func DrawHUD(tick int32, particleCount int, paused bool) {
	text := fmt.Sprintf("FPS %d | tick %d | particles %d", rl.GetFPS(), tick, particleCount)
	if paused {
		text += " | PAUSED"
	}
	rl.DrawText(text, 10, 10, 18, rl.RayWhite)
	rl.DrawText("space pause | tab panel | drag pan | wheel zoom | home reset", 10, 32, 12, rl.Gray)
}
