// Package postfx implements the post-process passes (bright-pass extraction,
// separable Gaussian blur, additive composite) as pure functions over CPU
// images. The GPU shaders in the renderer package run the same algorithms;
// this package is the reference used by tests and the offline renderer.
package postfx

// Image is a float32 RGBA buffer. Pixel (x, y) occupies Pix[(y*W+x)*4 : +4].
type Image struct {
	W, H int
	Pix  []float32
}

// NewImage allocates a zeroed image.
func NewImage(w, h int) *Image {
	return &Image{W: w, H: h, Pix: make([]float32, w*h*4)}
}

// At returns the RGBA value at (x, y), clamping coordinates to the edge.
func (m *Image) At(x, y int) (r, g, b, a float32) {
	x = clampInt(x, 0, m.W-1)
	y = clampInt(y, 0, m.H-1)
	i := (y*m.W + x) * 4
	return m.Pix[i], m.Pix[i+1], m.Pix[i+2], m.Pix[i+3]
}

// Set stores an RGBA value at (x, y). Out-of-bounds writes are dropped.
func (m *Image) Set(x, y int, r, g, b, a float32) {
	if x < 0 || x >= m.W || y < 0 || y >= m.H {
		return
	}
	i := (y*m.W + x) * 4
	m.Pix[i], m.Pix[i+1], m.Pix[i+2], m.Pix[i+3] = r, g, b, a
}

// Fill sets every pixel to the given color.
func (m *Image) Fill(r, g, b, a float32) {
	for i := 0; i < len(m.Pix); i += 4 {
		m.Pix[i], m.Pix[i+1], m.Pix[i+2], m.Pix[i+3] = r, g, b, a
	}
}

// Clone returns a deep copy.
func (m *Image) Clone() *Image {
	out := NewImage(m.W, m.H)
	copy(out.Pix, m.Pix)
	return out
}

// sample reads the image at a fractional pixel position with bilinear
// filtering and clamp-to-edge addressing, matching GPU texture sampling.
func (m *Image) sample(x, y float32) (r, g, b, a float32) {
	x -= 0.5
	y -= 0.5
	x0 := floorInt(x)
	y0 := floorInt(y)
	fx := x - float32(x0)
	fy := y - float32(y0)

	r00, g00, b00, a00 := m.At(x0, y0)
	r10, g10, b10, a10 := m.At(x0+1, y0)
	r01, g01, b01, a01 := m.At(x0, y0+1)
	r11, g11, b11, a11 := m.At(x0+1, y0+1)

	lerp := func(p, q, t float32) float32 { return p + (q-p)*t }
	r = lerp(lerp(r00, r10, fx), lerp(r01, r11, fx), fy)
	g = lerp(lerp(g00, g10, fx), lerp(g01, g11, fx), fy)
	b = lerp(lerp(b00, b10, fx), lerp(b01, b11, fx), fy)
	a = lerp(lerp(a00, a10, fx), lerp(a01, a11, fx), fy)
	return r, g, b, a
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floorInt(v float32) int {
	i := int(v)
	if v < 0 && float32(i) != v {
		i--
	}
	return i
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
