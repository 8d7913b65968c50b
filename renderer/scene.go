package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/adri326/vector-fields/camera"
	"github.com/adri326/vector-fields/components"
	"github.com/adri326/vector-fields/field"
	"github.com/adri326/vector-fields/particles"
)

// SceneRenderer draws the particle pool as additive trail segments, one
// thick line per particle from its previous projected position to its
// current one.
type SceneRenderer struct {
	particleSize float32
	fadeIn       float64
	fadeOut      float64
}

// NewSceneRenderer creates a scene renderer. fadeIn and fadeOut are the
// lifetime fractions (in seconds) over which a particle ramps in and out.
func NewSceneRenderer(particleSize float32, fadeIn, fadeOut float64) *SceneRenderer {
	return &SceneRenderer{
		particleSize: particleSize,
		fadeIn:       fadeIn,
		fadeOut:      fadeOut,
	}
}

// Draw renders every particle into the current render target. The caller
// is responsible for being inside the scene target's texture mode.
func (r *SceneRenderer) Draw(pool *particles.Pool, cam *camera.Camera) {
	rl.BeginBlendMode(rl.BlendAdditive)

	pool.Visit(func(pos *components.Position, trail *components.Trail, life *components.Lifetime, tint *components.Tint) {
		alpha := r.alpha(life.Age, life.Max)
		if alpha < 1.0/255.0 {
			return
		}

		x0, y0 := cam.PlaneToScreen(complex(trail.Re, trail.Im))
		x1, y1 := cam.PlaneToScreen(complex(pos.Re, pos.Im))
		color := tintColor(tint, alpha)

		if x0 == x1 && y0 == y1 {
			// Fresh spawn, no segment yet.
			rl.DrawCircleV(rl.NewVector2(x1, y1), r.particleSize/2, color)
			return
		}
		rl.DrawLineEx(rl.NewVector2(x0, y0), rl.NewVector2(x1, y1), r.particleSize, color)
	})

	rl.EndBlendMode()
}

// alpha ramps a particle in over fadeIn seconds and out over the fadeOut
// seconds before expiry.
func (r *SceneRenderer) alpha(age, max float64) float64 {
	a := 1.0
	if r.fadeIn > 0 {
		a *= field.Sigmoid(age / r.fadeIn)
	}
	if r.fadeOut > 0 {
		a *= field.Sigmoid((max - age) / r.fadeOut)
	}
	if a < 0 {
		return 0
	}
	return a
}

func tintColor(t *components.Tint, alpha float64) rl.Color {
	return rl.NewColor(
		uint8(clampChan(t.R)*255),
		uint8(clampChan(t.G)*255),
		uint8(clampChan(t.B)*255),
		uint8(alpha*255),
	)
}

func clampChan(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
