package design

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-biosig/dsp/filter/biquad"
)

// ButterworthLP designs a lowpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthLP(freq float64, order int, sampleRate float64) ([]biquad.Coefficients, error) {
	if order <= 0 {
		return nil, ErrInvalidParams
	}
	if _, ok := normalizedW0(freq, sampleRate); !ok {
		return nil, ErrInvalidParams
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)
	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, Lowpass(freq, butterworthQ(order, i), sampleRate))
	}
	if order%2 != 0 {
		sections = append(sections, butterworthFirstOrderLP(freq, sampleRate))
	}

	return sections, nil
}

// ButterworthBP designs a band-pass Butterworth filter of the given
// prototype order between low and high (Hz). The result has 2*order poles
// split into order biquad sections, each with one zero at DC and one at
// Nyquist, plus the overall gain that makes the response exactly 0 dB at
// the geometric band center.
func ButterworthBP(low, high float64, order int, sampleRate float64) ([]biquad.Coefficients, float64, error) {
	if order <= 0 || low >= high {
		return nil, 0, ErrInvalidParams
	}
	if _, ok := normalizedW0(low, sampleRate); !ok {
		return nil, 0, ErrInvalidParams
	}
	if _, ok := normalizedW0(high, sampleRate); !ok {
		return nil, 0, ErrInvalidParams
	}

	fs2 := 2 * sampleRate
	wl := fs2 * math.Tan(math.Pi*low/sampleRate)
	wh := fs2 * math.Tan(math.Pi*high/sampleRate)
	bw := wh - wl
	w0sq := wl * wh

	sections := make([]biquad.Coefficients, 0, order)
	for k := 0; k < order; k++ {
		p := butterworthPole(order, k)

		switch {
		case imag(p) > 1e-12:
			// s^2 - p*bw*s + w0^2 = 0; each root pairs with the root of the
			// conjugate prototype pole.
			pb := p * complex(bw, 0)
			disc := cmplx.Sqrt(pb*pb - complex(4*w0sq, 0))
			for _, s := range [2]complex128{(pb + disc) / 2, (pb - disc) / 2} {
				z := bilinearPole(s, fs2)
				sections = append(sections, bandSection(-2*real(z), real(z)*real(z)+imag(z)*imag(z)))
			}
		case math.Abs(imag(p)) <= 1e-12:
			// Real prototype pole: s^2 + bw*s + w0^2 has real coefficients.
			disc := cmplx.Sqrt(complex(bw*bw-4*w0sq, 0))
			z1 := bilinearPole((complex(-bw, 0)+disc)/2, fs2)
			z2 := bilinearPole((complex(-bw, 0)-disc)/2, fs2)
			sum := z1 + z2
			prod := z1 * z2
			sections = append(sections, bandSection(-real(sum), real(prod)))
		}
	}

	center := math.Atan(math.Sqrt(w0sq)/fs2) * sampleRate / math.Pi
	h := biquad.NewChain(sections).Response(center, sampleRate)
	mag := cmplx.Abs(h)
	if mag == 0 || math.IsNaN(mag) || math.IsInf(mag, 0) {
		return nil, 0, ErrInvalidParams
	}

	return sections, 1 / mag, nil
}

// butterworthPole returns the k-th left-half-plane pole of the normalized
// analog Butterworth prototype.
func butterworthPole(order, k int) complex128 {
	theta := math.Pi * float64(2*k+order+1) / float64(2*order)
	return cmplx.Exp(complex(0, theta))
}

func bilinearPole(s complex128, fs2 float64) complex128 {
	k := complex(fs2, 0)
	return (k + s) / (k - s)
}

func bandSection(a1, a2 float64) biquad.Coefficients {
	return biquad.Coefficients{B0: 1, B1: 0, B2: -1, A1: a1, A2: a2}
}

// butterworthQ returns the quality factor for a Butterworth filter section.
// index ranges from 0 to (order/2 - 1) for the biquad sections.
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s == 0 {
		return defaultQ
	}

	return 1 / (2 * s)
}

func butterworthFirstOrderLP(freq, sampleRate float64) biquad.Coefficients {
	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return biquad.Coefficients{
		B0: k * norm,
		B1: k * norm,
		A1: (k - 1) * norm,
	}
}
