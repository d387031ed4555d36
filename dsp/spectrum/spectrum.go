package spectrum

import (
	"errors"
	"fmt"
	"math"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrInput is returned for empty input or a non-positive sample rate.
var ErrInput = errors.New("spectrum: invalid input")

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

// Spectrum is a one-sided power spectrum. Freqs[k] is the centre of bin k.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// Hann returns the symmetric Hann window of length n.
func Hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

// PowerSpectrum computes the Hann-windowed one-sided power spectrum of x.
// The input is zero-padded to the next power of two. NaN samples are
// treated as zero.
func PowerSpectrum(x []float64, sampleRate float64) (*Spectrum, error) {
	if len(x) == 0 || !(sampleRate > 0) {
		return nil, fmt.Errorf("%w: %d samples at %g Hz", ErrInput, len(x), sampleRate)
	}

	windowed := make([]float64, len(x))
	for i, v := range x {
		if !math.IsNaN(v) {
			windowed[i] = v
		}
	}
	vecmath.MulBlockInPlace(windowed, Hann(len(x)))

	fftSize := nextPow2(len(x))
	in := make([]complex128, fftSize)
	for i, v := range windowed {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan of size %d: %w", fftSize, err)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum: forward fft: %w", err)
	}

	bins := fftSize/2 + 1
	s := &Spectrum{
		Freqs: make([]float64, bins),
		Power: make([]float64, bins),
	}

	re, im, buf := getScratch(bins)
	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
		s.Freqs[k] = float64(k) * sampleRate / float64(fftSize)
	}
	vecmath.Power(s.Power, re, im)
	scratchPool.Put(buf)

	return s, nil
}

// BandPower sums the power of bins with lo <= f <= hi.
func (s *Spectrum) BandPower(lo, hi float64) float64 {
	var p float64
	for k, f := range s.Freqs {
		if f >= lo && f <= hi {
			p += s.Power[k]
		}
	}
	return p
}

// TotalPower sums every bin except DC.
func (s *Spectrum) TotalPower() float64 {
	var p float64
	for _, v := range s.Power[1:] {
		p += v
	}
	return p
}

// LineNoiseHalfWidth is the half width in Hz of the band attributed to
// mains interference.
const LineNoiseHalfWidth = 1.0

// LineNoiseRatio returns the fraction of non-DC power within
// LineNoiseHalfWidth of f0. A silent signal yields 0.
func LineNoiseRatio(x []float64, sampleRate, f0 float64) (float64, error) {
	s, err := PowerSpectrum(x, sampleRate)
	if err != nil {
		return 0, err
	}
	total := s.TotalPower()
	if total == 0 {
		return 0, nil
	}
	return s.BandPower(f0-LineNoiseHalfWidth, f0+LineNoiseHalfWidth) / total, nil
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
