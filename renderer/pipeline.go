package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PipelineParams configure the post-process chain at creation time.
// Threshold can change afterwards via SetThreshold; the rest are fixed.
type PipelineParams struct {
	Width, Height int32
	Threshold     float32
	Sigma         float32
	Support       int
	Background    rl.Color
	TrailFade     float32
}

// Pipeline owns the render targets and shaders of the bloom chain:
// scene -> bright pass -> horizontal blur -> vertical blur -> composite.
// The scene target persists between frames so trails accumulate; the bright
// target doubles as the ping-pong buffer for the second blur axis and ends
// each frame holding the final composite.
type Pipeline struct {
	params PipelineParams

	scene  rl.RenderTexture2D
	bright rl.RenderTexture2D
	blur   rl.RenderTexture2D

	bloomShader  rl.Shader
	thresholdLoc int32

	blurShader    rl.Shader
	stepSizeLoc   int32
	horizontalLoc int32
	sigmaLoc      int32
	supportLoc    int32
}

// NewPipeline compiles the shaders and allocates the render targets.
// Must be called after the raylib window exists. Any failure is returned as
// an error; the pipeline is unusable and needs no Unload in that case.
func NewPipeline(p PipelineParams) (*Pipeline, error) {
	pl := &Pipeline{params: p}

	pl.bloomShader = rl.LoadShaderFromMemory("", bloomShaderFS)
	if !rl.IsShaderValid(pl.bloomShader) {
		return nil, fmt.Errorf("compiling bloom shader")
	}
	pl.thresholdLoc = rl.GetShaderLocation(pl.bloomShader, "threshold")

	pl.blurShader = rl.LoadShaderFromMemory("", blurShaderFS)
	if !rl.IsShaderValid(pl.blurShader) {
		rl.UnloadShader(pl.bloomShader)
		return nil, fmt.Errorf("compiling blur shader")
	}
	pl.stepSizeLoc = rl.GetShaderLocation(pl.blurShader, "stepSize")
	pl.horizontalLoc = rl.GetShaderLocation(pl.blurShader, "horizontal")
	pl.sigmaLoc = rl.GetShaderLocation(pl.blurShader, "sigma")
	pl.supportLoc = rl.GetShaderLocation(pl.blurShader, "support")

	rl.SetShaderValue(pl.blurShader, pl.sigmaLoc, []float32{p.Sigma}, rl.ShaderUniformFloat)
	rl.SetShaderValue(pl.blurShader, pl.supportLoc, []float32{float32(p.Support)}, rl.ShaderUniformFloat)

	if err := pl.allocTargets(p.Width, p.Height); err != nil {
		rl.UnloadShader(pl.bloomShader)
		rl.UnloadShader(pl.blurShader)
		return nil, err
	}
	return pl, nil
}

func (pl *Pipeline) allocTargets(w, h int32) error {
	pl.scene = rl.LoadRenderTexture(w, h)
	if !rl.IsRenderTextureValid(pl.scene) {
		return fmt.Errorf("allocating %dx%d scene target", w, h)
	}
	pl.bright = rl.LoadRenderTexture(w, h)
	if !rl.IsRenderTextureValid(pl.bright) {
		rl.UnloadRenderTexture(pl.scene)
		return fmt.Errorf("allocating %dx%d bright target", w, h)
	}
	pl.blur = rl.LoadRenderTexture(w, h)
	if !rl.IsRenderTextureValid(pl.blur) {
		rl.UnloadRenderTexture(pl.scene)
		rl.UnloadRenderTexture(pl.bright)
		return fmt.Errorf("allocating %dx%d blur target", w, h)
	}

	pl.params.Width = w
	pl.params.Height = h

	// Texel step per blur tap, resolution dependent.
	step := []float32{1 / float32(w), 1 / float32(h)}
	rl.SetShaderValue(pl.blurShader, pl.stepSizeLoc, step, rl.ShaderUniformVec2)

	pl.ClearScene()
	return nil
}

// Resize reallocates every target for the new window size. Trail
// accumulation restarts from the background color.
func (pl *Pipeline) Resize(w, h int32) error {
	rl.UnloadRenderTexture(pl.scene)
	rl.UnloadRenderTexture(pl.bright)
	rl.UnloadRenderTexture(pl.blur)
	return pl.allocTargets(w, h)
}

// SetThreshold updates the bright-pass cutoff.
func (pl *Pipeline) SetThreshold(v float32) {
	pl.params.Threshold = v
}

// Threshold returns the current bright-pass cutoff.
func (pl *Pipeline) Threshold() float32 {
	return pl.params.Threshold
}

// ClearScene resets the scene target to the background color, dropping all
// accumulated trails.
func (pl *Pipeline) ClearScene() {
	rl.BeginTextureMode(pl.scene)
	rl.ClearBackground(pl.params.Background)
	rl.EndTextureMode()
}

// BeginScene opens the scene target for drawing and applies the per-frame
// trail fade: the background color overlaid at low alpha so old trails
// decay instead of persisting forever. A fade of 1 is a plain clear.
func (pl *Pipeline) BeginScene() {
	rl.BeginTextureMode(pl.scene)
	fade := pl.params.Background
	fade.A = uint8(pl.params.TrailFade * 255)
	rl.DrawRectangle(0, 0, pl.params.Width, pl.params.Height, fade)
}

// EndScene closes the scene target.
func (pl *Pipeline) EndScene() {
	rl.EndTextureMode()
}

// flipped is the source rectangle for drawing a render texture; the
// negative height compensates for OpenGL's bottom-up texture storage.
func (pl *Pipeline) flipped() rl.Rectangle {
	return rl.NewRectangle(0, 0, float32(pl.params.Width), -float32(pl.params.Height))
}

// Run executes the post-process chain. After it returns, the bright target
// holds the final composite ready for presentation.
func (pl *Pipeline) Run() {
	origin := rl.NewVector2(0, 0)

	// Bright pass: scene -> bright.
	rl.BeginTextureMode(pl.bright)
	rl.ClearBackground(rl.Black)
	rl.SetShaderValue(pl.bloomShader, pl.thresholdLoc, []float32{pl.params.Threshold}, rl.ShaderUniformFloat)
	rl.BeginShaderMode(pl.bloomShader)
	rl.DrawTextureRec(pl.scene.Texture, pl.flipped(), origin, rl.White)
	rl.EndShaderMode()
	rl.EndTextureMode()

	// Horizontal blur: bright -> blur.
	rl.BeginTextureMode(pl.blur)
	rl.ClearBackground(rl.Black)
	rl.SetShaderValue(pl.blurShader, pl.horizontalLoc, []float32{1}, rl.ShaderUniformFloat)
	rl.BeginShaderMode(pl.blurShader)
	rl.DrawTextureRec(pl.bright.Texture, pl.flipped(), origin, rl.White)
	rl.EndShaderMode()
	rl.EndTextureMode()

	// Vertical blur: blur -> bright, reusing the bright target.
	rl.BeginTextureMode(pl.bright)
	rl.ClearBackground(rl.Black)
	rl.SetShaderValue(pl.blurShader, pl.horizontalLoc, []float32{0}, rl.ShaderUniformFloat)
	rl.BeginShaderMode(pl.blurShader)
	rl.DrawTextureRec(pl.blur.Texture, pl.flipped(), origin, rl.White)
	rl.EndShaderMode()
	rl.EndTextureMode()

	// Composite: add the scene on top of its blurred bright regions.
	rl.BeginTextureMode(pl.bright)
	rl.BeginBlendMode(rl.BlendAdditive)
	rl.DrawTextureRec(pl.scene.Texture, pl.flipped(), origin, rl.White)
	rl.EndBlendMode()
	rl.EndTextureMode()
}

// Present draws the composited frame to the screen. The caller must be
// inside BeginDrawing/EndDrawing.
func (pl *Pipeline) Present() {
	rl.DrawTextureRec(pl.bright.Texture, pl.flipped(), rl.NewVector2(0, 0), rl.White)
}

// Output exposes the target holding the final composite, for frame capture.
func (pl *Pipeline) Output() rl.RenderTexture2D {
	return pl.bright
}

// Unload releases all GPU resources.
func (pl *Pipeline) Unload() {
	rl.UnloadRenderTexture(pl.scene)
	rl.UnloadRenderTexture(pl.bright)
	rl.UnloadRenderTexture(pl.blur)
	rl.UnloadShader(pl.bloomShader)
	rl.UnloadShader(pl.blurShader)
}
