package design

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-biosig/dsp/filter/biquad"
)

// ErrInvalidParams is returned when a designer receives a frequency,
// quality factor, order or sample rate it cannot realise.
var ErrInvalidParams = errors.New("design: invalid parameters")

const defaultQ = 1 / math.Sqrt2

// Lowpass designs a lowpass biquad at freq (Hz) with quality factor q.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	b0 := (1 - cw) / 2
	b1 := 1 - cw
	b2 := (1 - cw) / 2
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// Notch designs a second-order notch centered at freq (Hz). The -3 dB
// bandwidth is freq/q. Unlike the RBJ notch the bandwidth is set through
// tan(bw/2), so the stop band matches the classic line-noise notch used
// in electrophysiology toolkits.
func Notch(freq, q, sampleRate float64) (biquad.Coefficients, error) {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok || q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return biquad.Coefficients{}, ErrInvalidParams
	}

	bw := w0 / q
	beta := math.Tan(bw / 2)
	g := 1 / (1 + beta)
	cw := math.Cos(w0)

	return biquad.Coefficients{
		B0: g,
		B1: -2 * g * cw,
		B2: g,
		A1: -2 * g * cw,
		A2: 2*g - 1,
	}, nil
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, false
	}

	nyquist := sampleRate / 2
	if freq <= 0 || freq >= nyquist || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}

func normalizedQ(q float64) float64 {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return defaultQ
	}

	return q
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Coefficients{}
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
