package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// zoomStepBase converts wheel clicks to a multiplicative zoom factor.
const zoomStepBase = 1.1

// handleInput processes keyboard and mouse input for the windowed mode.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		g.cam.Reset()
		g.pipeline.ClearScene()
	}

	// Panning and zooming invalidate accumulated trails; they were drawn
	// under the old projection.
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) && !g.panel.IsVisible() {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			g.cam.Pan(float64(delta.X), float64(delta.Y))
			g.pipeline.ClearScene()
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.cam.ZoomBy(math.Pow(zoomStepBase, float64(-wheel)))
		g.pipeline.ClearScene()
	}
}

// resize reacts to a window size change: new render targets, new blur step
// sizes, re-letterboxed camera, trails restarted.
func (g *Game) resize() {
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	if w <= 0 || h <= 0 {
		return
	}

	if err := g.pipeline.Resize(w, h); err != nil {
		g.err = err
		return
	}
	g.cam.Resize(int(w), int(h))
}
