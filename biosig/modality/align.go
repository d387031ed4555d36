package modality

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// AlignEnvelopes truncates every envelope to the shortest length, keeping
// the leading samples. Envelopes are never padded. The inputs are not
// modified; an empty input or any empty envelope yields nil.
func AlignEnvelopes(envs [][]float64) [][]float64 {
	if len(envs) == 0 {
		return nil
	}

	n := len(envs[0])
	for _, e := range envs[1:] {
		n = min(n, len(e))
	}
	if n == 0 {
		return nil
	}

	out := make([][]float64, len(envs))
	for i, e := range envs {
		out[i] = append([]float64(nil), e[:n]...)
	}
	return out
}

// EnvelopeBand returns the per-sample mean and population standard
// deviation over aligned envelopes of equal length.
func EnvelopeBand(aligned [][]float64) (mean, std []float64) {
	if len(aligned) == 0 {
		return nil, nil
	}

	n := len(aligned[0])
	inv := 1 / float64(len(aligned))

	sum := make([]float64, n)
	for _, e := range aligned {
		vecmath.AddBlockInPlace(sum, e[:n])
	}
	mean = make([]float64, n)
	vecmath.ScaleBlock(mean, sum, inv)

	negMean := make([]float64, n)
	vecmath.ScaleBlock(negMean, mean, -1)

	diff := make([]float64, n)
	sq := make([]float64, n)
	acc := make([]float64, n)
	for _, e := range aligned {
		copy(diff, e[:n])
		vecmath.AddBlockInPlace(diff, negMean)
		vecmath.MulBlock(sq, diff, diff)
		vecmath.AddBlockInPlace(acc, sq)
	}

	std = make([]float64, n)
	vecmath.ScaleBlock(std, acc, inv)
	for i, v := range std {
		std[i] = math.Sqrt(v)
	}

	return mean, std
}
