package field

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestEvaluateDeterministic(t *testing.T) {
	inputs := []complex128{
		complex(0, 0),
		complex(0.5, -0.25),
		complex(-3.75, 0.01),
		complex(1.2, 1.2),
	}

	for _, z := range inputs {
		for depth := 2; depth <= 12; depth++ {
			a := Evaluate(z, depth)
			b := Evaluate(z, depth)
			if a != b {
				t.Errorf("Evaluate(%v, %d) not deterministic: %v vs %v", z, depth, a, b)
			}
		}
	}
}

func TestEvaluateBaseCase(t *testing.T) {
	inputs := []complex128{
		complex(0, 0),
		complex(1, 0),
		complex(0.3, -0.7),
		complex(-2, 1.5),
	}

	for _, z := range inputs {
		want := z + z*z*complex(math.Exp(-2), 0)
		got := Evaluate(z, 2)
		if got != want {
			t.Errorf("Evaluate(%v, 2) = %v, want %v", z, got, want)
		}
	}
}

func TestEvaluateComposition(t *testing.T) {
	// Depth n must equal depth n-1 followed by one more term.
	z := complex(0.4, 0.9)
	for depth := 3; depth <= 12; depth++ {
		prev := Evaluate(z, depth-1)
		want := prev + powi(prev, depth)*complex(math.Exp(-float64(depth)), 0)
		got := Evaluate(z, depth)
		if got != want {
			t.Errorf("depth %d: got %v, want composition %v", depth, got, want)
		}
	}
}

func TestEvaluateDepthBelowTwo(t *testing.T) {
	z := complex(1.5, -0.5)
	if got := Evaluate(z, 1); got != z {
		t.Errorf("Evaluate with depth 1 should be identity, got %v", got)
	}
}

func TestEvaluateOverflowIsNonFinite(t *testing.T) {
	// Large |z| overflows through the power terms; it must produce a
	// non-finite value rather than panic.
	z := complex(1e200, 1e200)
	got := Evaluate(z, 12)
	if IsFinite(got) {
		t.Errorf("expected non-finite result for huge input, got %v", got)
	}
}

func TestPowi(t *testing.T) {
	z := complex(0.8, -0.6)
	acc := complex(1, 0)
	for n := 0; n <= 12; n++ {
		got := powi(z, n)
		if cmplx.Abs(got-acc) > 1e-12*math.Max(1, cmplx.Abs(acc)) {
			t.Errorf("powi(%v, %d) = %v, want %v", z, n, got, acc)
		}
		acc *= z
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(complex(1, -2)) {
		t.Error("finite value reported non-finite")
	}
	if IsFinite(complex(math.NaN(), 0)) {
		t.Error("NaN reported finite")
	}
	if IsFinite(complex(0, math.Inf(1))) {
		t.Error("Inf reported finite")
	}
}

func TestSigmoid(t *testing.T) {
	if s := Sigmoid(0); math.Abs(s) > 1e-12 {
		t.Errorf("Sigmoid(0) = %f, want 0", s)
	}
	if s := Sigmoid(50); math.Abs(s-1) > 1e-6 {
		t.Errorf("Sigmoid(50) = %f, want ~1", s)
	}
	if s := Sigmoid(-50); math.Abs(s+1) > 1e-6 {
		t.Errorf("Sigmoid(-50) = %f, want ~-1", s)
	}
}
