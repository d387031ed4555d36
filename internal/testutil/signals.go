// Package testutil holds deterministic signal generators, raw-recording
// builders and tolerance helpers shared by tests.
package testutil

import (
	"math"
	"math/rand"
)

// Tone is one sinusoidal component of a synthetic channel.
type Tone struct {
	FreqHz    float64
	Amplitude float64
}

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Mixture sums the given tones sampled at sampleRate.
func Mixture(sampleRate float64, length int, tones ...Tone) []float64 {
	out := make([]float64, length)
	for _, tone := range tones {
		step := 2 * math.Pi * tone.FreqHz / sampleRate
		for i := range out {
			out[i] += tone.Amplitude * math.Sin(step*float64(i))
		}
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return DC(1.0, n)
}

// PeakIndex returns the index of the largest value in x[from:to].
func PeakIndex(x []float64, from, to int) int {
	best := from
	for i := from + 1; i < to && i < len(x); i++ {
		if x[i] > x[best] {
			best = i
		}
	}
	return best
}
