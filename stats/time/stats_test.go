package time

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-biosig/internal/testutil"
)

const eps = 1e-12

func TestCalculateSine(t *testing.T) {
	x := testutil.DeterministicSine(10, 500, 2, 500)
	s := Calculate(x)

	if s.Length != 500 || s.Missing != 0 || s.Valid() != 500 {
		t.Fatalf("counts = %d/%d", s.Length, s.Missing)
	}
	if math.Abs(s.Mean) > 1e-9 {
		t.Errorf("Mean = %v, want 0", s.Mean)
	}
	if math.Abs(s.RMS-math.Sqrt2) > 1e-9 {
		t.Errorf("RMS = %v, want %v", s.RMS, math.Sqrt2)
	}
	if math.Abs(s.Std-s.RMS) > 1e-9 {
		t.Errorf("Std = %v, want RMS for a zero-mean signal", s.Std)
	}
	if math.Abs(s.Peak-2) > 0.01 {
		t.Errorf("Peak = %v, want 2", s.Peak)
	}
	if math.Abs(s.CrestFactor-math.Sqrt2) > 0.01 {
		t.Errorf("CrestFactor = %v, want sqrt2", s.CrestFactor)
	}
	if math.Abs(s.Skewness) > 1e-6 {
		t.Errorf("Skewness = %v, want 0", s.Skewness)
	}
	if math.Abs(s.Kurtosis+1.5) > 1e-6 {
		t.Errorf("Kurtosis = %v, want -1.5", s.Kurtosis)
	}
	// 10 periods with a sample on every zero: crossings are strict sign
	// changes between neighbours, so exact zeros do not count.
	if s.ZeroCrossings > 20 {
		t.Errorf("ZeroCrossings = %d, want <= 20", s.ZeroCrossings)
	}
}

func TestCalculateSkipsNaN(t *testing.T) {
	s := Calculate([]float64{1, math.NaN(), -3, math.NaN()})

	if s.Length != 4 || s.Missing != 2 {
		t.Fatalf("counts = %d/%d, want 4/2", s.Length, s.Missing)
	}
	if s.MissingRatio() != 0.5 {
		t.Errorf("MissingRatio = %v", s.MissingRatio())
	}
	if math.Abs(s.Mean+1) > eps || s.Min != -3 || s.Max != 1 || s.Peak != 3 {
		t.Errorf("got mean=%v min=%v max=%v peak=%v", s.Mean, s.Min, s.Max, s.Peak)
	}
	if s.ZeroCrossings != 1 {
		t.Errorf("ZeroCrossings = %d, want 1 across the gap", s.ZeroCrossings)
	}
	if math.Abs(s.Std-2) > eps {
		t.Errorf("Std = %v, want 2", s.Std)
	}
}

func TestCalculateEmpty(t *testing.T) {
	for _, x := range [][]float64{nil, {math.NaN()}} {
		s := Calculate(x)
		if !math.IsNaN(s.Mean) || !math.IsNaN(s.RMS) || !math.IsNaN(s.Peak) {
			t.Errorf("Calculate(%v) = %+v, want NaN statistics", x, s)
		}
		if s.Valid() != 0 {
			t.Errorf("Valid = %d", s.Valid())
		}
	}
	if r := (Stats{}).MissingRatio(); r != 0 {
		t.Errorf("MissingRatio of empty = %v", r)
	}
}

func TestAccumulatorMatchesCalculate(t *testing.T) {
	x := testutil.DeterministicNoise(7, 1, 1000)
	x[100] = math.NaN()
	want := Calculate(x)

	var acc Accumulator
	acc.Update(x[:333])
	acc.Update(x[333:334])
	acc.Update(x[334:])
	got := acc.Result()

	if got != want {
		t.Fatalf("split result %+v != %+v", got, want)
	}

	acc.Reset()
	if acc.Result().Length != 0 {
		t.Fatal("Reset did not clear the accumulator")
	}
}

func TestRMS(t *testing.T) {
	if got := RMS([]float64{3, math.NaN(), -4, 0}); math.Abs(got-math.Sqrt(25.0/3)) > eps {
		t.Errorf("RMS = %v", got)
	}
	if RMS(nil) != 0 {
		t.Error("RMS(nil) != 0")
	}
}

func TestAmpToDB(t *testing.T) {
	if got := AmpToDB(-10); math.Abs(got-20) > eps {
		t.Errorf("AmpToDB(-10) = %v", got)
	}
	if !math.IsInf(AmpToDB(0), -1) {
		t.Error("AmpToDB(0) should be -Inf")
	}
}
