// Package ui draws the HUD and the control panel on top of the composited
// frame.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/adri326/vector-fields/telemetry"
)

// PanelState is the mutable state the panel edits in place.
type PanelState struct {
	Threshold float32
	Paused    bool
}

// Panel is the Tab-toggled control panel: bloom threshold slider, pause
// checkbox, and a live stats readout.
type Panel struct {
	x, y    float32
	width   float32
	visible bool
}

// NewPanel creates the panel at a fixed screen position.
func NewPanel(x, y, width float32) *Panel {
	return &Panel{x: x, y: y, width: width}
}

// Toggle switches panel visibility.
func (p *Panel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// IsVisible returns whether the panel is shown.
func (p *Panel) IsVisible() bool {
	return p.visible
}

// Draw renders the panel and applies any edits to state.
func (p *Panel) Draw(state *PanelState, stats telemetry.WindowStats) {
	if !p.visible {
		return
	}

	const lineHeight = 35
	x := p.x
	y := p.y

	rl.DrawRectangle(int32(x)-10, int32(y)-10, int32(p.width)+20, 190, rl.NewColor(0, 0, 0, 180))

	rl.DrawText("Controls", int32(x), int32(y), 20, rl.White)
	y += lineHeight

	rl.DrawText("Bloom threshold", int32(x), int32(y), 14, rl.Gray)
	y += 18
	state.Threshold = gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: p.width - 60, Height: 20},
		"0.0", "1.0",
		state.Threshold, 0.0, 1.0,
	)
	rl.DrawText(fmt.Sprintf("%.2f", state.Threshold), int32(x+p.width-50), int32(y+2), 16, rl.White)
	y += lineHeight

	state.Paused = gui.CheckBox(
		rl.Rectangle{X: x, Y: y, Width: 20, Height: 20},
		"Paused", state.Paused,
	)
	y += lineHeight

	rl.DrawText(fmt.Sprintf("respawns/s: %.0f", stats.RespawnRate), int32(x), int32(y), 14, rl.LightGray)
	y += 20
	rl.DrawText(fmt.Sprintf("mean speed: %.3f", stats.SpeedMean), int32(x), int32(y), 14, rl.LightGray)
}
