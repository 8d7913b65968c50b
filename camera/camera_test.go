package camera

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	cam := New(1280, 720, 5.0, -3.75, 0)

	if cam.CenterRe != -3.75 || cam.CenterIm != 0 {
		t.Errorf("expected center (-3.75, 0), got (%f, %f)", cam.CenterRe, cam.CenterIm)
	}
	if cam.Scale != 5.0 {
		t.Errorf("expected scale 5.0, got %f", cam.Scale)
	}
}

func TestCenterMapsToScreenCenter(t *testing.T) {
	cam := New(1280, 720, 5.0, -3.75, 0)

	sx, sy := cam.PlaneToScreen(complex(-3.75, 0))
	if math.Abs(float64(sx-640)) > 0.01 || math.Abs(float64(sy-360)) > 0.01 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestShortAxisSpan(t *testing.T) {
	// Short axis (height, 720px) spans 2*scale units: the point one scale
	// below center must land on the top edge of the letterboxed square.
	cam := New(1280, 720, 5.0, 0, 0)

	_, sy := cam.PlaneToScreen(complex(0, -5.0))
	if math.Abs(float64(sy)) > 0.01 {
		t.Errorf("expected top edge y=0, got %f", sy)
	}
	_, sy = cam.PlaneToScreen(complex(0, 5.0))
	if math.Abs(float64(sy-720)) > 0.01 {
		t.Errorf("expected bottom edge y=720, got %f", sy)
	}
}

func TestRoundtrip(t *testing.T) {
	cam := New(1280, 720, 5.0, -3.75, 0)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		z := cam.ScreenToPlane(tc.sx, tc.sy)
		sx, sy := cam.PlaneToScreen(z)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> %v -> (%f,%f)",
				tc.sx, tc.sy, z, sx, sy)
		}
	}
}

func TestPan(t *testing.T) {
	cam := New(1280, 720, 5.0, 0, 0)

	// A pan of half the short axis moves the center by one scale unit.
	cam.Pan(0, 360)
	if math.Abs(cam.CenterIm+5.0) > 1e-9 {
		t.Errorf("expected center_im -5.0 after pan, got %f", cam.CenterIm)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 5.0, 0, 0)

	cam.SetScale(1e-9)
	if cam.Scale != cam.MinScale {
		t.Errorf("expected scale clamped to %f, got %f", cam.MinScale, cam.Scale)
	}

	cam.SetScale(1e9)
	if cam.Scale != cam.MaxScale {
		t.Errorf("expected scale clamped to %f, got %f", cam.MaxScale, cam.Scale)
	}
}

func TestResizeKeepsCenter(t *testing.T) {
	cam := New(1280, 720, 5.0, -3.75, 0)
	cam.Resize(1920, 1080)

	sx, sy := cam.PlaneToScreen(complex(-3.75, 0))
	if math.Abs(float64(sx-960)) > 0.01 || math.Abs(float64(sy-540)) > 0.01 {
		t.Errorf("expected screen center (960, 540) after resize, got (%f, %f)", sx, sy)
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720, 5.0, -3.75, 0)
	cam.Pan(200, -100)
	cam.ZoomBy(0.25)

	cam.Reset()

	if cam.CenterRe != -3.75 || cam.CenterIm != 0 || cam.Scale != 5.0 {
		t.Errorf("reset did not restore home view: center (%f, %f), scale %f",
			cam.CenterRe, cam.CenterIm, cam.Scale)
	}
}
