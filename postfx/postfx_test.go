package postfx

import (
	"math"
	"testing"
)

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func TestExtractAtThreshold(t *testing.T) {
	img := NewImage(2, 1)
	// Pure red has luma exactly LumaR, so a threshold of LumaR gates it out.
	img.Set(0, 0, 1, 0, 0, 1)
	img.Set(1, 0, 1, 1, 1, 1)

	out := Extract(img, BloomParams{Threshold: LumaR})

	r, g, b, a := out.At(0, 0)
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("pixel at threshold not gated out: got (%f, %f, %f)", r, g, b)
	}
	if a != 1 {
		t.Errorf("expected alpha 1, got %f", a)
	}

	r, g, b, a = out.At(1, 0)
	if r != 1 || g != 1 || b != 1 || a != 1 {
		t.Errorf("bright pixel altered: got (%f, %f, %f, %f)", r, g, b, a)
	}
}

func TestExtractKeepsColorUnscaled(t *testing.T) {
	img := NewImage(1, 1)
	img.Set(0, 0, 0.9, 0.5, 0.2, 0.4)

	out := Extract(img, BloomParams{Threshold: 0.3})

	r, g, b, a := out.At(0, 0)
	if r != 0.9 || g != 0.5 || b != 0.2 {
		t.Errorf("surviving pixel rescaled: got (%f, %f, %f)", r, g, b)
	}
	if a != 1 {
		t.Errorf("expected alpha forced to 1, got %f", a)
	}
}

func TestExtractBelowThreshold(t *testing.T) {
	img := NewImage(1, 1)
	img.Set(0, 0, 0.1, 0.1, 0.1, 1)

	out := Extract(img, BloomParams{Threshold: 0.3})

	r, g, b, _ := out.At(0, 0)
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("dim pixel survived bright pass: got (%f, %f, %f)", r, g, b)
	}
}

func TestBlurUniformUnchanged(t *testing.T) {
	img := NewImage(16, 16)
	img.Fill(0.4, 0.6, 0.8, 1)

	h := Blur(img, BlurParams{StepX: 1, StepY: 1, Horizontal: true, Sigma: 3.5, Support: 6})
	out := Blur(h, BlurParams{StepX: 1, StepY: 1, Horizontal: false, Sigma: 3.5, Support: 6})

	for i := 0; i < len(out.Pix); i++ {
		if absf(out.Pix[i]-img.Pix[i]) > 1e-5 {
			t.Fatalf("uniform image changed at index %d: %f != %f", i, out.Pix[i], img.Pix[i])
		}
	}
}

func TestBlurSinglePixelFalloff(t *testing.T) {
	img := NewImage(17, 17)
	img.Set(8, 8, 1, 1, 1, 1)

	h := Blur(img, BlurParams{StepX: 1, StepY: 1, Horizontal: true, Sigma: 3.5, Support: 6})
	out := Blur(h, BlurParams{StepX: 1, StepY: 1, Horizontal: false, Sigma: 3.5, Support: 6})

	peak, _, _, _ := out.At(8, 8)
	if peak <= 0 {
		t.Fatalf("blurred peak vanished: %f", peak)
	}
	if peak > 1 {
		t.Errorf("blur amplified the peak: %f", peak)
	}

	prev := peak
	for d := 1; d <= 6; d++ {
		v, _, _, _ := out.At(8+d, 8)
		if v > prev {
			t.Errorf("falloff not monotone at distance %d: %f > %f", d, v, prev)
		}
		left, _, _, _ := out.At(8-d, 8)
		if absf(left-v) > 1e-6 {
			t.Errorf("asymmetric falloff at distance %d: %f vs %f", d, left, v)
		}
		up, _, _, _ := out.At(8, 8-d)
		if absf(up-v) > 1e-6 {
			t.Errorf("axes disagree at distance %d: %f vs %f", d, up, v)
		}
		prev = v
	}
}

func TestBlurWeightsMatchGaussian(t *testing.T) {
	// Distance-1 to distance-0 ratio of the impulse response should match
	// exp(-0.5/sigma^2) after a single horizontal pass.
	sigma := 3.5
	img := NewImage(17, 1)
	img.Set(8, 0, 1, 0, 0, 1)

	out := Blur(img, BlurParams{StepX: 1, StepY: 1, Horizontal: true, Sigma: sigma, Support: 6})

	c, _, _, _ := out.At(8, 0)
	n, _, _, _ := out.At(9, 0)
	want := math.Exp(-0.5 / (sigma * sigma))
	got := float64(n) / float64(c)
	if math.Abs(got-want) > 1e-4 {
		t.Errorf("weight ratio %f, expected %f", got, want)
	}
}

func TestCompositeClampsAndAdds(t *testing.T) {
	scene := NewImage(2, 1)
	scene.Set(0, 0, 0.3, 0.3, 0.3, 1)
	scene.Set(1, 0, 0.9, 0.9, 0.9, 1)
	bloom := NewImage(2, 1)
	bloom.Set(0, 0, 0.2, 0.1, 0, 1)
	bloom.Set(1, 0, 0.5, 0.5, 0.5, 1)

	out := Composite(scene, bloom)

	r, g, b, a := out.At(0, 0)
	if absf(r-0.5) > 1e-6 || absf(g-0.4) > 1e-6 || absf(b-0.3) > 1e-6 {
		t.Errorf("additive blend wrong: got (%f, %f, %f)", r, g, b)
	}
	if a != 1 {
		t.Errorf("expected alpha 1, got %f", a)
	}

	r, g, b, _ = out.At(1, 0)
	if r != 1 || g != 1 || b != 1 {
		t.Errorf("composite did not clamp: got (%f, %f, %f)", r, g, b)
	}
}

func TestFadeOver(t *testing.T) {
	img := NewImage(1, 1)
	img.Set(0, 0, 1, 1, 1, 1)

	FadeOver(img, 0, 0, 0, 0.07)

	r, _, _, _ := img.At(0, 0)
	if absf(r-0.93) > 1e-6 {
		t.Errorf("fade left %f, expected 0.93", r)
	}

	// Repeated fades converge on the overlay color.
	for i := 0; i < 500; i++ {
		FadeOver(img, 0.1, 0.2, 0.3, 0.07)
	}
	r, g, b, _ := img.At(0, 0)
	if absf(r-0.1) > 1e-3 || absf(g-0.2) > 1e-3 || absf(b-0.3) > 1e-3 {
		t.Errorf("fade did not converge: got (%f, %f, %f)", r, g, b)
	}
}

func TestAddLineDeposits(t *testing.T) {
	img := NewImage(16, 16)
	AddLine(img, 2, 8, 13, 8, 1, 0.5, 0.25, 0.125, 1)

	r, g, b, _ := img.At(8, 8)
	if r <= 0 || g <= 0 || b <= 0 {
		t.Errorf("line deposited nothing at midpoint: got (%f, %f, %f)", r, g, b)
	}
	if g > r || b > g {
		t.Errorf("channel ratios lost: got (%f, %f, %f)", r, g, b)
	}

	r, _, _, _ = img.At(8, 2)
	if r != 0 {
		t.Errorf("line bled far off its path: got %f", r)
	}
}

func TestImageSampleBilinear(t *testing.T) {
	img := NewImage(2, 1)
	img.Set(0, 0, 0, 0, 0, 1)
	img.Set(1, 0, 1, 1, 1, 1)

	r, _, _, _ := img.sample(1.0, 0.5)
	if absf(r-0.5) > 1e-6 {
		t.Errorf("midpoint sample %f, expected 0.5", r)
	}

	// Clamp-to-edge outside the image.
	r, _, _, _ = img.sample(-3, 0.5)
	if r != 0 {
		t.Errorf("left clamp sample %f, expected 0", r)
	}
	r, _, _, _ = img.sample(5, 0.5)
	if r != 1 {
		t.Errorf("right clamp sample %f, expected 1", r)
	}
}
