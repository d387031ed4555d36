// Package frequency computes shape descriptors of a one-sided power
// spectrum: the mean and median frequency used to track EMG fatigue, peak
// frequency and spectral edge.
package frequency

import "math"

// Stats summarises a power spectrum over a frequency band.
type Stats struct {
	MeanFreq   float64 // power-weighted mean frequency (centroid), Hz
	MedianFreq float64 // frequency splitting band power in half, Hz
	PeakFreq   float64 // frequency of the strongest bin, Hz
	EdgeFreq   float64 // frequency below which EdgeFraction of power lies, Hz
	BandPower  float64
}

// EdgeFraction is the cumulative power fraction defining EdgeFreq.
const EdgeFraction = 0.95

// Calculate summarises bins with lo <= freqs[k] <= hi. freqs and power
// must have equal length and ascending freqs. A band without power gives
// NaN frequencies.
func Calculate(freqs, power []float64, lo, hi float64) Stats {
	var (
		total, weighted float64
		peak            = -1.0
		peakFreq        = math.NaN()
	)
	for k, f := range freqs {
		if f < lo || f > hi {
			continue
		}
		p := power[k]
		total += p
		weighted += p * f
		if p > peak {
			peak = p
			peakFreq = f
		}
	}

	s := Stats{BandPower: total, PeakFreq: peakFreq}
	if total <= 0 {
		nan := math.NaN()
		s.MeanFreq, s.MedianFreq, s.EdgeFreq, s.PeakFreq = nan, nan, nan, nan
		return s
	}

	s.MeanFreq = weighted / total
	s.MedianFreq = cumulativeFreq(freqs, power, lo, hi, 0.5*total)
	s.EdgeFreq = cumulativeFreq(freqs, power, lo, hi, EdgeFraction*total)

	return s
}

// cumulativeFreq returns the first in-band frequency at which the running
// power sum reaches target.
func cumulativeFreq(freqs, power []float64, lo, hi, target float64) float64 {
	var cum float64
	last := math.NaN()
	for k, f := range freqs {
		if f < lo || f > hi {
			continue
		}
		cum += power[k]
		last = f
		if cum >= target {
			return f
		}
	}
	return last
}
