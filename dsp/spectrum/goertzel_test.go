package spectrum

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-biosig/internal/testutil"
)

func TestGoertzelMatchesDFT(t *testing.T) {
	const (
		fs = 500.0
		f0 = 50.0
	)
	sig := testutil.Mixture(fs, 1000, testutil.Tone{FreqHz: f0, Amplitude: 1}, testutil.Tone{FreqHz: 12, Amplitude: 0.3})

	g, err := NewGoertzel(f0, fs)
	if err != nil {
		t.Fatalf("NewGoertzel: %v", err)
	}
	g.ProcessBlock(sig[:400])
	g.ProcessBlock(sig[400:])

	var dft complex128
	for n, x := range sig {
		angle := -2 * math.Pi * f0 / fs * float64(n)
		dft += complex(x, 0) * cmplx.Exp(complex(0, angle))
	}
	want := real(dft)*real(dft) + imag(dft)*imag(dft)

	if got := g.Power(); math.Abs(got-want) > 1e-7*want {
		t.Fatalf("Power = %v, want %v", got, want)
	}

	g.Reset()
	if g.Power() != 0 || g.Amplitude() != 0 {
		t.Fatal("state not cleared by Reset")
	}
}

func TestToneAmplitude(t *testing.T) {
	x := testutil.DeterministicSine(50, 500, 2, 1000)

	a, err := ToneAmplitude(x, 50, 500)
	if err != nil {
		t.Fatalf("ToneAmplitude: %v", err)
	}
	if math.Abs(a-2) > 1e-9 {
		t.Fatalf("amplitude = %v, want 2", a)
	}

	a, err = ToneAmplitude(x, 20, 500)
	if err != nil {
		t.Fatalf("ToneAmplitude: %v", err)
	}
	if a > 1e-9 {
		t.Fatalf("off-tone amplitude = %v, want 0", a)
	}
}

func TestToneAmplitudeSkipsNaN(t *testing.T) {
	x := append(testutil.DeterministicSine(50, 500, 1, 1000), math.NaN())
	a, err := ToneAmplitude(x, 50, 500)
	if err != nil {
		t.Fatalf("ToneAmplitude: %v", err)
	}
	if math.Abs(a-1) > 1e-9 {
		t.Fatalf("amplitude = %v, want 1", a)
	}
}

func TestGoertzelInvalid(t *testing.T) {
	for _, tc := range []struct{ f, fs float64 }{
		{50, 0},
		{-1, 500},
		{300, 500},
		{math.NaN(), 500},
	} {
		if _, err := NewGoertzel(tc.f, tc.fs); !errors.Is(err, ErrInput) {
			t.Errorf("NewGoertzel(%v, %v): err = %v, want ErrInput", tc.f, tc.fs, err)
		}
	}
}
