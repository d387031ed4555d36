package bank

import (
	"math"

	"github.com/cwbudde/algo-biosig/dsp/filter/biquad"
	"github.com/cwbudde/algo-biosig/dsp/filter/design"
)

// Kind identifies the filter family of a Spec.
type Kind int

const (
	KindNotch Kind = iota
	KindBandpass
	KindLowpass
)

func (k Kind) String() string {
	switch k {
	case KindNotch:
		return "notch"
	case KindBandpass:
		return "bandpass"
	case KindLowpass:
		return "lowpass"
	default:
		return "unknown"
	}
}

// Spec is an immutable IIR filter design: second-order sections plus an
// input gain, together with the parameters it was designed from.
type Spec struct {
	kind       Kind
	sampleRate float64
	low, high  float64 // notch/lowpass use low only
	q          float64
	order      int
	sections   []biquad.Coefficients
	gain       float64
}

// DesignNotch designs a second-order notch at freq (Hz) with quality
// factor q for the given sample rate.
func DesignNotch(freq, q, sampleRate float64) (Spec, error) {
	if freq <= 0 || q <= 0 || sampleRate <= 0 {
		return Spec{}, designError(KindNotch, nil, "non-positive parameter (freq=%g q=%g fs=%g)", freq, q, sampleRate)
	}

	c, err := design.Notch(freq, q, sampleRate)
	if err != nil {
		return Spec{}, designError(KindNotch, err, "freq %g Hz not below Nyquist %g Hz", freq, sampleRate/2)
	}

	return Spec{
		kind:       KindNotch,
		sampleRate: sampleRate,
		low:        freq,
		q:          q,
		order:      2,
		sections:   []biquad.Coefficients{c},
		gain:       1,
	}, nil
}

// DesignBandpass designs a Butterworth band-pass of the given prototype
// order between low and high (Hz). A high cutoff at or above Nyquist is
// clamped to one unit below Nyquist before design.
func DesignBandpass(low, high float64, order int, sampleRate float64) (Spec, error) {
	if low <= 0 || high <= 0 || sampleRate <= 0 || order <= 0 {
		return Spec{}, designError(KindBandpass, nil, "non-positive parameter (low=%g high=%g order=%d fs=%g)", low, high, order, sampleRate)
	}

	nyquist := sampleRate / 2
	if high >= nyquist {
		high = nyquist - 1
	}
	if low >= high {
		return Spec{}, designError(KindBandpass, nil, "low cutoff %g Hz not below high cutoff %g Hz", low, high)
	}

	sections, gain, err := design.ButterworthBP(low, high, order, sampleRate)
	if err != nil {
		return Spec{}, designError(KindBandpass, err, "cannot realise [%g, %g] Hz at fs=%g", low, high, sampleRate)
	}

	return Spec{
		kind:       KindBandpass,
		sampleRate: sampleRate,
		low:        low,
		high:       high,
		order:      2 * order,
		sections:   sections,
		gain:       gain,
	}, nil
}

// DesignLowpass designs a Butterworth low-pass of the given order.
func DesignLowpass(cutoff float64, order int, sampleRate float64) (Spec, error) {
	if cutoff <= 0 || sampleRate <= 0 || order <= 0 {
		return Spec{}, designError(KindLowpass, nil, "non-positive parameter (cutoff=%g order=%d fs=%g)", cutoff, order, sampleRate)
	}

	sections, err := design.ButterworthLP(cutoff, order, sampleRate)
	if err != nil {
		return Spec{}, designError(KindLowpass, err, "cutoff %g Hz not below Nyquist %g Hz", cutoff, sampleRate/2)
	}

	return Spec{
		kind:       KindLowpass,
		sampleRate: sampleRate,
		low:        cutoff,
		order:      order,
		sections:   sections,
		gain:       1,
	}, nil
}

// Kind returns the filter family.
func (s Spec) Kind() Kind { return s.kind }

// SampleRate returns the design sample rate in Hz.
func (s Spec) SampleRate() float64 { return s.sampleRate }

// Band returns the cutoff frequencies. For notch and low-pass designs high
// is zero; for band-pass designs high is the value after Nyquist clamping.
func (s Spec) Band() (low, high float64) { return s.low, s.high }

// Order returns the order of the equivalent transfer function.
func (s Spec) Order() int { return s.order }

// Gain returns the input gain applied before the first section.
func (s Spec) Gain() float64 { return s.gain }

// Coefficients returns a copy of the second-order sections.
func (s Spec) Coefficients() []biquad.Coefficients {
	out := make([]biquad.Coefficients, len(s.sections))
	copy(out, s.sections)
	return out
}

// PadLen returns the edge padding Apply uses; sequences must be longer.
func (s Spec) PadLen() int {
	return 3 * (s.order + 1)
}

// MagnitudeDB returns the single-pass magnitude response at freq (Hz).
// The zero-phase response applied by Apply is twice this value.
func (s Spec) MagnitudeDB(freq float64) float64 {
	if len(s.sections) == 0 {
		return math.NaN()
	}
	return s.chain().MagnitudeDB(freq, s.sampleRate)
}

// Apply filters x with zero phase and returns a new slice of equal length.
// NaN samples propagate to the filtered output.
func (s Spec) Apply(x []float64) ([]float64, error) {
	if len(s.sections) == 0 {
		return nil, designError(s.kind, nil, "filter not designed")
	}

	padLen := s.PadLen()
	if len(x) <= padLen {
		return nil, designError(s.kind, nil, "sequence of %d samples too short for order %d (need > %d)", len(x), s.order, padLen)
	}

	y, err := s.chain().FiltFilt(x, padLen)
	if err != nil {
		return nil, designError(s.kind, err, "zero-phase filtering failed")
	}

	return y, nil
}

// chain builds fresh filter state so the Spec itself is never mutated.
func (s Spec) chain() *biquad.Chain {
	return biquad.NewChain(s.sections, biquad.WithGain(s.gain))
}

// Cascade applies specs in order, each to the previous output.
func Cascade(x []float64, specs ...Spec) ([]float64, error) {
	y := x
	for _, s := range specs {
		var err error
		if y, err = s.Apply(y); err != nil {
			return nil, err
		}
	}

	if len(specs) == 0 {
		y = append([]float64(nil), x...)
	}

	return y, nil
}
