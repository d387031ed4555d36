package spectrum

import (
	"fmt"
	"math"
)

// Goertzel evaluates a single DFT term over all samples processed since
// the last Reset.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
	n          int
}

// NewGoertzel creates an analyzer for frequency in [0, sampleRate/2].
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: goertzel sample rate %v", ErrInput, sampleRate)
	}
	if frequency < 0 || frequency > sampleRate/2 || math.IsNaN(frequency) {
		return nil, fmt.Errorf("%w: goertzel frequency %v outside [0, %v]", ErrInput, frequency, sampleRate/2)
	}

	return &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Reset clears the accumulated state.
func (g *Goertzel) Reset() {
	g.s0, g.s1, g.n = 0, 0, 0
}

// ProcessBlock feeds samples into the analyzer.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1
	coeff := g.coeff
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}
	g.s0, g.s1 = s0, s1
	g.n += len(input)
}

// Power returns |X[k]|^2 for the processed block.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Amplitude returns the peak amplitude of a sinusoid at the target
// frequency, 2|X[k]|/N. It is exact when the block holds a whole number
// of periods.
func (g *Goertzel) Amplitude() float64 {
	p := g.Power()
	if p <= 0 || g.n == 0 {
		return 0
	}
	return 2 * math.Sqrt(p) / float64(g.n)
}

// ToneAmplitude estimates the amplitude of the component of x at
// frequency in one shot. NaN samples are skipped.
func ToneAmplitude(x []float64, frequency, sampleRate float64) (float64, error) {
	g, err := NewGoertzel(frequency, sampleRate)
	if err != nil {
		return 0, err
	}

	clean := x
	for _, v := range x {
		if math.IsNaN(v) {
			clean = make([]float64, 0, len(x))
			for _, w := range x {
				if !math.IsNaN(w) {
					clean = append(clean, w)
				}
			}
			break
		}
	}

	g.ProcessBlock(clean)
	return g.Amplitude(), nil
}
