package postfx

import "math"

// Composite additively blends the blurred bright-pass over the scene,
// clamped to the displayable range. Output alpha is 1.
func Composite(scene, bloom *Image) *Image {
	out := NewImage(scene.W, scene.H)
	for i := 0; i < len(scene.Pix); i += 4 {
		out.Pix[i] = clamp01(scene.Pix[i] + bloom.Pix[i])
		out.Pix[i+1] = clamp01(scene.Pix[i+1] + bloom.Pix[i+1])
		out.Pix[i+2] = clamp01(scene.Pix[i+2] + bloom.Pix[i+2])
		out.Pix[i+3] = 1
	}
	return out
}

// FadeOver overlays a solid color at the given alpha, the per-frame trail
// decay used between clears.
func FadeOver(img *Image, r, g, b, alpha float32) {
	inv := 1 - alpha
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = img.Pix[i]*inv + r*alpha
		img.Pix[i+1] = img.Pix[i+1]*inv + g*alpha
		img.Pix[i+2] = img.Pix[i+2]*inv + b*alpha
		img.Pix[i+3] = 1
	}
}

// AddLine additively draws a line segment of the given thickness by
// splatting evenly spaced samples along it. Intended for the offline
// renderer; the windowed path draws through the GPU instead.
func AddLine(img *Image, x0, y0, x1, y1 float32, thickness float32, r, g, b, alpha float32) {
	dx := x1 - x0
	dy := y1 - y0
	length := sqrt32(dx*dx + dy*dy)

	steps := int(length) + 1
	// Perpendicular unit vector for thickness offsets.
	px, py := float32(0), float32(0)
	if length > 0 {
		px = -dy / length
		py = dx / length
	}
	lanes := int(thickness)
	if lanes < 1 {
		lanes = 1
	}

	for lane := 0; lane < lanes; lane++ {
		off := (float32(lane) - float32(lanes-1)/2)
		for s := 0; s <= steps; s++ {
			t := float32(s) / float32(steps)
			x := int(x0 + dx*t + px*off)
			y := int(y0 + dy*t + py*off)
			if x < 0 || x >= img.W || y < 0 || y >= img.H {
				continue
			}
			i := (y*img.W + x) * 4
			img.Pix[i] += r * alpha
			img.Pix[i+1] += g * alpha
			img.Pix[i+2] += b * alpha
			img.Pix[i+3] = 1
		}
	}
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
