// Field preview tool - interactive magnitude visualization with sliders.
//
// Usage: go run ./cmd/fieldpreview
package main

import (
	"fmt"
	"math"
	"math/cmplx"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/adri326/vector-fields/field"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 640
	panelWidth   = windowWidth - previewSize - 30
	gridSize     = 320
)

// PreviewParams holds the field parameters under slider control.
type PreviewParams struct {
	Depth    int
	Scale    float32
	CenterRe float32
	CenterIm float32
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := PreviewParams{
		Depth:    11,
		Scale:    5.0,
		CenterRe: -3.75,
		CenterIm: 0,
	}

	magnitudes := make([]float64, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			generateMagnitudes(magnitudes, params)
			updateTexture(texture, magnitudes)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(20, 22, 31, 255))

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(gridSize), Height: float32(gridSize)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("depth %d  scale %.1f  center (%.2f, %.2f)",
			params.Depth, params.Scale, params.CenterRe, params.CenterIm), 15, statsY, 16, rl.Gray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Field Parameters", int32(panelX), int32(panelY), 20, rl.RayWhite)
		panelY += 35

		rl.DrawText("Depth (composed terms)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newDepth := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"2", "24",
			float32(params.Depth), 2, 24,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Depth), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.RayWhite)
		if int(newDepth) != params.Depth {
			params.Depth = int(newDepth)
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Scale (plane units across)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newScale := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.5", "20.0",
			params.Scale, 0.5, 20.0,
		)
		rl.DrawText(fmt.Sprintf("%.1f", params.Scale), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.RayWhite)
		if newScale != params.Scale {
			params.Scale = newScale
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Center (real part)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newRe := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"-10", "10",
			params.CenterRe, -10, 10,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.CenterRe), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.RayWhite)
		if newRe != params.CenterRe {
			params.CenterRe = newRe
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Center (imaginary part)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newIm := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"-10", "10",
			params.CenterIm, -10, 10,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.CenterIm), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.RayWhite)
		if newIm != params.CenterIm {
			params.CenterIm = newIm
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset") {
			params = PreviewParams{Depth: 11, Scale: 5.0, CenterRe: -3.75, CenterIm: 0}
			needsRegen = true
		}

		rl.EndDrawing()
	}
}

// generateMagnitudes evaluates |F(z)| over the preview grid.
func generateMagnitudes(out []float64, p PreviewParams) {
	scale := float64(p.Scale)
	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			re := float64(p.CenterRe) + (float64(x)/gridSize-0.5)*scale*2
			im := float64(p.CenterIm) + (float64(y)/gridSize-0.5)*scale*2
			v := field.Evaluate(complex(re, im), p.Depth)
			if !field.IsFinite(v) {
				out[y*gridSize+x] = math.Inf(1)
				continue
			}
			out[y*gridSize+x] = cmplx.Abs(v)
		}
	}
}

// updateTexture maps magnitudes to a blue-to-warm ramp and uploads them.
func updateTexture(texture rl.Texture2D, magnitudes []float64) {
	pixels := make([]rl.Color, len(magnitudes))
	for i, m := range magnitudes {
		if math.IsInf(m, 0) {
			pixels[i] = rl.NewColor(255, 255, 255, 255)
			continue
		}
		t := field.Sigmoid(m)
		pixels[i] = rl.NewColor(
			uint8(40+t*215),
			uint8(30+t*120),
			uint8(90*(1-t)+30),
			255,
		)
	}
	rl.UpdateTexture(texture, pixels)
}
