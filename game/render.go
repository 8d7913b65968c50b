package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/adri326/vector-fields/telemetry"
	"github.com/adri326/vector-fields/ui"
)

// Update runs input handling and one simulation tick for the windowed mode.
func (g *Game) Update() {
	g.perf.StartTick()
	g.perf.RecordFrame()

	g.handleInput()
	if rl.IsWindowResized() {
		g.resize()
	}
	if g.err != nil {
		return
	}

	g.perf.StartPhase(telemetry.PhaseSimulation)
	if !g.paused {
		g.step()
	}
}

// Draw renders a frame: particle trails into the scene target, the bloom
// chain, then presentation with the HUD on top.
func (g *Game) Draw() {
	if g.err != nil {
		return
	}

	g.perf.StartPhase(telemetry.PhaseScene)
	if !g.paused {
		g.pipeline.BeginScene()
		g.scene.Draw(g.pool, g.cam)
		g.pipeline.EndScene()
	}

	g.perf.StartPhase(telemetry.PhasePostFX)
	g.pipeline.SetThreshold(g.panelState.Threshold)
	g.pipeline.Run()

	g.perf.StartPhase(telemetry.PhasePresent)
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	g.pipeline.Present()

	ui.DrawHUD(g.tick, g.pool.Len(), g.paused)
	g.panelState.Paused = g.paused
	g.panel.Draw(&g.panelState, g.lastStats)
	g.paused = g.panelState.Paused

	rl.EndDrawing()

	if g.recorder != nil {
		g.recorder.Capture(g.pipeline.Output())
	}

	g.perf.EndTick()
}
