// Package time computes time-domain statistics of sampled channels. Missing
// samples (NaN) are counted and excluded from every statistic.
package time

import "math"

// Stats holds time-domain channel statistics over the valid samples.
type Stats struct {
	Length        int // all samples, including missing ones
	Missing       int // NaN samples
	Mean          float64
	RMS           float64
	Std           float64 // population standard deviation
	Min           float64
	Max           float64
	Peak          float64 // max(|Min|, |Max|)
	CrestFactor   float64 // Peak / RMS, 0 when RMS is 0
	ZeroCrossings int
	Skewness      float64
	Kurtosis      float64 // excess kurtosis
}

// Valid returns the number of non-missing samples.
func (s Stats) Valid() int { return s.Length - s.Missing }

// MissingRatio returns the fraction of missing samples.
func (s Stats) MissingRatio() float64 {
	if s.Length == 0 {
		return 0
	}
	return float64(s.Missing) / float64(s.Length)
}

// Calculate computes all statistics in one pass using Welford's online
// algorithm for the moments.
func Calculate(signal []float64) Stats {
	var acc Accumulator
	acc.Update(signal)
	return acc.Result()
}

// Accumulator collects statistics incrementally across blocks. Feeding
// the same samples in any block split gives the same result as Calculate.
type Accumulator struct {
	n, missing     int
	mean           float64
	m2, m3, m4     float64
	sumSq          float64
	minVal, maxVal float64
	crossings      int
	last           float64
	hasLast        bool
}

// Update adds a block of samples.
func (a *Accumulator) Update(samples []float64) {
	for _, x := range samples {
		if math.IsNaN(x) {
			a.missing++
			continue
		}

		a.n++
		ni := float64(a.n)
		delta := x - a.mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(a.n-1)

		// M4 before M3 before M2.
		a.m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*a.m2 - 4*deltaN*a.m3
		a.m3 += term1*deltaN*(float64(a.n-1)-1) - 3*deltaN*a.m2
		a.m2 += term1
		a.mean += deltaN

		a.sumSq += x * x

		if a.n == 1 || x > a.maxVal {
			a.maxVal = x
		}
		if a.n == 1 || x < a.minVal {
			a.minVal = x
		}

		if a.hasLast && a.last*x < 0 {
			a.crossings++
		}
		a.last, a.hasLast = x, true
	}
}

// Reset clears all accumulated data.
func (a *Accumulator) Reset() { *a = Accumulator{} }

// Result returns the statistics of everything added so far. Without valid
// samples every statistic is NaN.
func (a *Accumulator) Result() Stats {
	s := Stats{Length: a.n + a.missing, Missing: a.missing}
	if a.n == 0 {
		nan := math.NaN()
		s.Mean, s.RMS, s.Std = nan, nan, nan
		s.Min, s.Max, s.Peak = nan, nan, nan
		s.CrestFactor, s.Skewness, s.Kurtosis = nan, nan, nan
		return s
	}

	nf := float64(a.n)
	s.Mean = a.mean
	s.RMS = mathSqrt(a.sumSq / nf)
	s.Min = a.minVal
	s.Max = a.maxVal
	s.Peak = math.Max(math.Abs(a.minVal), math.Abs(a.maxVal))
	s.ZeroCrossings = a.crossings
	if s.RMS > 0 {
		s.CrestFactor = s.Peak / s.RMS
	}

	variance := a.m2 / nf
	s.Std = mathSqrt(variance)
	if variance > 0 {
		s.Skewness = (a.m3 / nf) / (variance * mathSqrt(variance))
		s.Kurtosis = (a.m4/nf)/(variance*variance) - 3
	}

	return s
}

// RMS returns the root-mean-square over the valid samples, or 0.
func RMS(signal []float64) float64 {
	var sumSq float64
	n := 0
	for _, x := range signal {
		if math.IsNaN(x) {
			continue
		}
		sumSq += x * x
		n++
	}
	if n == 0 {
		return 0
	}
	return mathSqrt(sumSq / float64(n))
}

// AmpToDB converts an amplitude to decibels, -Inf for zero.
func AmpToDB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}
	return 20 * mathLog10(a)
}
