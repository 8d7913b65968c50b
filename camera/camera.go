// Package camera maps the complex plane to screen coordinates.
package camera

// Camera positions the viewport over the complex plane. The shorter window
// axis spans 2*Scale plane units centered on (CenterRe, CenterIm); the longer
// axis extends the view symmetrically, so resizing never distorts the field.
type Camera struct {
	CenterRe, CenterIm float64
	Scale              float64

	ViewportW, ViewportH float64

	// Zoom constraints
	MinScale, MaxScale float64

	homeRe, homeIm, homeScale float64
}

// New creates a camera over the plane with the given viewport size.
func New(viewportW, viewportH int, scale, centerRe, centerIm float64) *Camera {
	return &Camera{
		CenterRe:  centerRe,
		CenterIm:  centerIm,
		Scale:     scale,
		ViewportW: float64(viewportW),
		ViewportH: float64(viewportH),
		MinScale:  scale / 64,
		MaxScale:  scale * 64,
		homeRe:    centerRe,
		homeIm:    centerIm,
		homeScale: scale,
	}
}

// square returns the side of the letterboxed square view and its offsets.
func (c *Camera) square() (wh, dx, dy float64) {
	wh = c.ViewportW
	if c.ViewportH < wh {
		wh = c.ViewportH
	}
	dx = (c.ViewportW - wh) / 2
	dy = (c.ViewportH - wh) / 2
	return wh, dx, dy
}

// PlaneToScreen converts a plane coordinate to screen pixels.
func (c *Camera) PlaneToScreen(z complex128) (sx, sy float32) {
	wh, dx, dy := c.square()
	sx = float32(((real(z)-c.CenterRe)/c.Scale/2+0.5)*wh + dx)
	sy = float32(((imag(z)-c.CenterIm)/c.Scale/2+0.5)*wh + dy)
	return sx, sy
}

// ScreenToPlane converts screen pixels to a plane coordinate.
func (c *Camera) ScreenToPlane(sx, sy float32) complex128 {
	wh, dx, dy := c.square()
	re := ((float64(sx)-dx)/wh-0.5)*2*c.Scale + c.CenterRe
	im := ((float64(sy)-dy)/wh-0.5)*2*c.Scale + c.CenterIm
	return complex(re, im)
}

// UnitsPerPixel returns plane units per screen pixel on the short axis.
func (c *Camera) UnitsPerPixel() float64 {
	wh, _, _ := c.square()
	return 2 * c.Scale / wh
}

// Pan shifts the view center by a screen-pixel delta.
func (c *Camera) Pan(dxPx, dyPx float64) {
	upp := c.UnitsPerPixel()
	c.CenterRe -= dxPx * upp
	c.CenterIm -= dyPx * upp
}

// ZoomBy multiplies the view scale, clamped to [MinScale, MaxScale].
// Factors below 1 zoom in.
func (c *Camera) ZoomBy(factor float64) {
	c.SetScale(c.Scale * factor)
}

// SetScale sets the view scale directly, clamped to the allowed range.
func (c *Camera) SetScale(scale float64) {
	if scale < c.MinScale {
		scale = c.MinScale
	}
	if scale > c.MaxScale {
		scale = c.MaxScale
	}
	c.Scale = scale
}

// Resize updates the viewport dimensions after a window resize.
func (c *Camera) Resize(viewportW, viewportH int) {
	c.ViewportW = float64(viewportW)
	c.ViewportH = float64(viewportH)
}

// Reset returns the camera to its startup position and scale.
func (c *Camera) Reset() {
	c.CenterRe = c.homeRe
	c.CenterIm = c.homeIm
	c.Scale = c.homeScale
}
