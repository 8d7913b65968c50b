package postfx

// Perceptual luma weights shared with the bloom fragment shader.
const (
	LumaR = 0.2125
	LumaG = 0.7154
	LumaB = 0.0721
)

// BloomParams configures the bright-pass extraction.
type BloomParams struct {
	Threshold float32 // luminance cutoff
}

// Extract keeps only pixels whose luminance exceeds the threshold and zeroes
// the rest. Surviving pixels keep their original color unscaled: the gate is
// sign(max(0, luma-threshold)), a hard cutoff rather than a soft knee.
// Output alpha is forced to 1.
func Extract(src *Image, p BloomParams) *Image {
	out := NewImage(src.W, src.H)
	for i := 0; i < len(src.Pix); i += 4 {
		r, g, b := src.Pix[i], src.Pix[i+1], src.Pix[i+2]
		luma := r*LumaR + g*LumaG + b*LumaB
		luma -= p.Threshold
		if luma < 0 {
			luma = 0
		}
		gate := sign(luma)
		out.Pix[i] = r * gate
		out.Pix[i+1] = g * gate
		out.Pix[i+2] = b * gate
		out.Pix[i+3] = 1
	}
	return out
}

func sign(v float32) float32 {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
