package frequency

import (
	"math"
	"testing"
)

func TestCalculateSymmetricBand(t *testing.T) {
	freqs := []float64{0, 10, 20, 30, 40, 50}
	power := []float64{100, 1, 2, 4, 2, 1}

	s := Calculate(freqs, power, 5, 60)
	if s.BandPower != 10 {
		t.Fatalf("BandPower = %v, want 10 (DC excluded)", s.BandPower)
	}
	if math.Abs(s.MeanFreq-30) > 1e-12 {
		t.Errorf("MeanFreq = %v, want 30", s.MeanFreq)
	}
	if s.MedianFreq != 30 {
		t.Errorf("MedianFreq = %v, want 30", s.MedianFreq)
	}
	if s.PeakFreq != 30 {
		t.Errorf("PeakFreq = %v, want 30", s.PeakFreq)
	}
	if s.EdgeFreq != 50 {
		t.Errorf("EdgeFreq = %v, want 50", s.EdgeFreq)
	}
}

func TestCalculateSkewedBand(t *testing.T) {
	freqs := []float64{10, 20, 30, 40}
	power := []float64{6, 2, 1, 1}

	s := Calculate(freqs, power, 0, 100)
	if s.MedianFreq != 10 {
		t.Errorf("MedianFreq = %v, want 10", s.MedianFreq)
	}
	if math.Abs(s.MeanFreq-17) > 1e-12 {
		t.Errorf("MeanFreq = %v, want 17", s.MeanFreq)
	}
	if s.MedianFreq > s.MeanFreq {
		t.Error("median should lie below mean for a low-heavy spectrum")
	}
}

func TestCalculateEmptyBand(t *testing.T) {
	s := Calculate([]float64{1, 2}, []float64{1, 1}, 10, 20)
	if !math.IsNaN(s.MeanFreq) || !math.IsNaN(s.MedianFreq) || !math.IsNaN(s.PeakFreq) {
		t.Fatalf("empty band = %+v, want NaN frequencies", s)
	}
	if s.BandPower != 0 {
		t.Errorf("BandPower = %v", s.BandPower)
	}
}
