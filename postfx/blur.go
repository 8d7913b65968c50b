package postfx

import "math"

// BlurParams configures one axis of the separable Gaussian blur. StepX/StepY
// are the per-tap offset in pixels (the shader equivalent is texel units);
// they must be recomputed whenever the target resolution changes.
type BlurParams struct {
	StepX, StepY float32
	Horizontal   bool
	Sigma        float64 // Gaussian sigma
	Support      int     // symmetric tap pairs; taps total 2*Support+1
}

// Blur applies one 1D Gaussian pass. Running it twice, horizontal then
// vertical, approximates a 2D Gaussian via separability.
//
// Weights follow the incremental Gaussian recurrence: seed
// g.x = 1/(sqrt(2*pi)*sigma), g.y = exp(-0.5/sigma^2), g.z = g.y^2, then
// g.xy *= g.yz after the center tap and after each pair, so tap i carries
// the Gaussian weight at distance i without re-evaluating the exponential.
// The final avg/sum renormalizes for edge clamping.
func Blur(src *Image, p BlurParams) *Image {
	dirX, dirY := float32(0), float32(1)
	if p.Horizontal {
		dirX, dirY = 1, 0
	}

	gx := 1 / (math.Sqrt(2*math.Pi) * p.Sigma)
	gy := math.Exp(-0.5 / (p.Sigma * p.Sigma))
	gz := gy * gy

	// Per-tap weights are position-independent; compute the sequence once.
	weights := make([]float32, p.Support+1)
	sum := float32(0)
	for i := 0; i <= p.Support; i++ {
		weights[i] = float32(gx)
		if i == 0 {
			sum += weights[i]
		} else {
			sum += 2 * weights[i]
		}
		gx *= gy
		gy *= gz
	}

	out := NewImage(src.W, src.H)
	for y := 0; y < src.H; y++ {
		for x := 0; x < src.W; x++ {
			cx := float32(x) + 0.5
			cy := float32(y) + 0.5

			r, g, b, a := src.sample(cx, cy)
			avgR := r * weights[0]
			avgG := g * weights[0]
			avgB := b * weights[0]
			avgA := a * weights[0]

			for i := 1; i <= p.Support; i++ {
				ox := float32(i) * p.StepX * dirX
				oy := float32(i) * p.StepY * dirY

				r, g, b, a = src.sample(cx-ox, cy-oy)
				avgR += r * weights[i]
				avgG += g * weights[i]
				avgB += b * weights[i]
				avgA += a * weights[i]

				r, g, b, a = src.sample(cx+ox, cy+oy)
				avgR += r * weights[i]
				avgG += g * weights[i]
				avgB += b * weights[i]
				avgA += a * weights[i]
			}

			out.Set(x, y, avgR/sum, avgG/sum, avgB/sum, avgA/sum)
		}
	}
	return out
}
