package biquad

import (
	"errors"
	"fmt"
)

// ErrTooShort is returned by FiltFilt when the input does not exceed the
// edge padding length.
var ErrTooShort = errors.New("biquad: sequence too short for zero-phase filtering")

// DefaultPadLen returns the edge padding used by FiltFilt callers that do
// not choose one: three times the length of the equivalent transfer
// function polynomial, 3*(order+1).
func (c *Chain) DefaultPadLen() int {
	return 3 * (c.Order() + 1)
}

// FiltFilt filters x forward and then backward through the cascade and
// returns a new slice of the same length with zero net phase.
//
// Both ends are extended by padLen samples of odd (point-reflected)
// extension and every section starts from its steady state for the first
// sample of each pass, which suppresses start-up transients. len(x) must
// be greater than padLen. NaN samples propagate.
//
// The chain state is saved and restored, so a Chain may be reused.
func (c *Chain) FiltFilt(x []float64, padLen int) ([]float64, error) {
	if padLen < 0 {
		return nil, fmt.Errorf("biquad: negative pad length %d", padLen)
	}

	n := len(x)
	if n <= padLen {
		return nil, fmt.Errorf("%w: need more than %d samples, got %d", ErrTooShort, padLen, n)
	}

	saved := c.State()
	defer c.SetState(saved)

	ext := oddExtend(x, padLen)

	c.settle(ext[0])
	c.ProcessBlock(ext)

	reverse(ext)
	c.settle(ext[0])
	c.ProcessBlock(ext)
	reverse(ext)

	out := make([]float64, n)
	copy(out, ext[padLen:padLen+n])

	return out, nil
}

// oddExtend returns x with p samples of odd extension on both sides.
func oddExtend(x []float64, p int) []float64 {
	n := len(x)
	ext := make([]float64, n+2*p)

	first, last := x[0], x[n-1]
	for i := 0; i < p; i++ {
		ext[i] = 2*first - x[p-i]
		ext[p+n+i] = 2*last - x[n-2-i]
	}
	copy(ext[p:], x)

	return ext
}

func reverse(buf []float64) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}
