package design

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-biosig/dsp/filter/biquad"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestNotch_RejectsCenterPassesElsewhere(t *testing.T) {
	const sr = 500.0
	c, err := Notch(50, 30, sr)
	if err != nil {
		t.Fatalf("Notch: %v", err)
	}

	if db := c.MagnitudeDB(50, sr); db > -60 {
		t.Fatalf("50 Hz: %.2f dB, want deep rejection", db)
	}
	for _, f := range []float64{1, 10, 100, 200} {
		if db := c.MagnitudeDB(f, sr); math.Abs(db) > 0.1 {
			t.Fatalf("%v Hz: %.3f dB, want ~0", f, db)
		}
	}
	if !c.Stable() {
		t.Fatal("notch unstable")
	}
}

func TestNotch_KnownCoefficients(t *testing.T) {
	c, err := Notch(50, 30, 500)
	if err != nil {
		t.Fatal(err)
	}

	w0 := 2 * math.Pi * 50 / 500
	g := 1 / (1 + math.Tan(w0/60))
	if !almostEqual(c.B0, g, 1e-15) || !almostEqual(c.B2, g, 1e-15) {
		t.Fatalf("B0/B2 = %v/%v, want %v", c.B0, c.B2, g)
	}
	if !almostEqual(c.A2, 2*g-1, 1e-15) {
		t.Fatalf("A2 = %v, want %v", c.A2, 2*g-1)
	}
	if c.B1 != c.A1 {
		t.Fatalf("B1 %v != A1 %v", c.B1, c.A1)
	}
}

func TestNotch_BandwidthMatchesQ(t *testing.T) {
	const sr = 1000.0
	c, err := Notch(50, 10, sr)
	if err != nil {
		t.Fatal(err)
	}

	// -3 dB bandwidth ~ 5 Hz centered on 50 Hz.
	lower := c.MagnitudeDB(47.5, sr)
	upper := c.MagnitudeDB(52.5, sr)
	if !almostEqual(lower, -3.01, 0.3) || !almostEqual(upper, -3.01, 0.3) {
		t.Fatalf("edges: %.2f / %.2f dB, want ~-3", lower, upper)
	}
}

func TestNotch_InvalidInputs(t *testing.T) {
	cases := []struct {
		name        string
		freq, q, sr float64
	}{
		{"zero freq", 0, 30, 500},
		{"at nyquist", 250, 30, 500},
		{"zero q", 50, 0, 500},
		{"zero rate", 50, 30, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Notch(tc.freq, tc.q, tc.sr); !errors.Is(err, ErrInvalidParams) {
				t.Fatalf("err = %v, want ErrInvalidParams", err)
			}
		})
	}
}

func TestButterworthLP_Minus3dBAtCutoff(t *testing.T) {
	const sr = 500.0
	for _, order := range []int{1, 2, 3, 4, 6} {
		coeffs, err := ButterworthLP(10, order, sr)
		if err != nil {
			t.Fatalf("order %d: %v", order, err)
		}
		if len(coeffs) != (order+1)/2 {
			t.Fatalf("order %d: sections=%d", order, len(coeffs))
		}
		chain := biquad.NewChain(coeffs)
		if db := chain.MagnitudeDB(10, sr); !almostEqual(db, -3.0103, 0.01) {
			t.Fatalf("order %d: cutoff %.4f dB", order, db)
		}
		if db := chain.MagnitudeDB(0.1, sr); !almostEqual(db, 0, 0.01) {
			t.Fatalf("order %d: passband %.4f dB", order, db)
		}
	}
}

func TestButterworthBP_EdgesAndCenter(t *testing.T) {
	cases := []struct {
		low, high, sr float64
		order         int
	}{
		{1, 40, 500, 4},
		{50, 240, 500, 4},
		{20, 100, 1000, 3},
		{5, 15, 200, 2},
	}

	for _, tc := range cases {
		sections, gain, err := ButterworthBP(tc.low, tc.high, tc.order, tc.sr)
		if err != nil {
			t.Fatalf("%+v: %v", tc, err)
		}
		if len(sections) != tc.order {
			t.Fatalf("%+v: sections=%d, want %d", tc, len(sections), tc.order)
		}
		for i := range sections {
			if !sections[i].Stable() {
				t.Fatalf("%+v: section %d unstable", tc, i)
			}
		}

		chain := biquad.NewChain(sections, biquad.WithGain(gain))
		lowDB := chain.MagnitudeDB(tc.low, tc.sr)
		highDB := chain.MagnitudeDB(tc.high, tc.sr)
		if !almostEqual(lowDB, -3.0103, 0.01) || !almostEqual(highDB, -3.0103, 0.01) {
			t.Fatalf("%+v: edges %.4f / %.4f dB", tc, lowDB, highDB)
		}

		fs2 := 2 * tc.sr
		wl := fs2 * math.Tan(math.Pi*tc.low/tc.sr)
		wh := fs2 * math.Tan(math.Pi*tc.high/tc.sr)
		center := math.Atan(math.Sqrt(wl*wh)/fs2) * tc.sr / math.Pi
		if db := chain.MagnitudeDB(center, tc.sr); !almostEqual(db, 0, 1e-9) {
			t.Fatalf("%+v: center %.6f dB", tc, db)
		}
	}
}

func TestButterworthBP_StopBand(t *testing.T) {
	sections, gain, err := ButterworthBP(1, 40, 4, 500)
	if err != nil {
		t.Fatal(err)
	}
	chain := biquad.NewChain(sections, biquad.WithGain(gain))
	if db := chain.MagnitudeDB(200, 500); db > -60 {
		t.Fatalf("200 Hz: %.2f dB, want < -60", db)
	}
	if db := chain.MagnitudeDB(0.05, 500); db > -60 {
		t.Fatalf("0.05 Hz: %.2f dB, want < -60", db)
	}
}

func TestButterworthBP_Deterministic(t *testing.T) {
	a, ga, err := ButterworthBP(50, 240, 4, 500)
	if err != nil {
		t.Fatal(err)
	}
	b, gb, err := ButterworthBP(50, 240, 4, 500)
	if err != nil {
		t.Fatal(err)
	}
	if ga != gb {
		t.Fatalf("gain differs: %v vs %v", ga, gb)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("section %d differs", i)
		}
	}
}

func TestButterworth_InvalidInputs(t *testing.T) {
	if _, err := ButterworthLP(10, 0, 500); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("order 0: %v", err)
	}
	if _, err := ButterworthLP(300, 4, 500); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("above nyquist: %v", err)
	}
	if _, _, err := ButterworthBP(40, 1, 4, 500); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("inverted band: %v", err)
	}
	if _, _, err := ButterworthBP(0, 40, 4, 500); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("zero low: %v", err)
	}
	if _, _, err := ButterworthBP(1, 250, 4, 500); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("high at nyquist: %v", err)
	}
}

func TestButterworthQ_KnownValues(t *testing.T) {
	if got := butterworthQ(2, 0); !almostEqual(got, 1/math.Sqrt2, 1e-12) {
		t.Fatalf("order=2 index=0: Q=%.10f", got)
	}
}
