package spectrum_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-biosig/dsp/spectrum"
)

func ExampleToneAmplitude() {
	x := make([]float64, 500)
	for i := range x {
		x[i] = 3 * math.Sin(2*math.Pi*50*float64(i)/500)
	}
	a, _ := spectrum.ToneAmplitude(x, 50, 500)
	fmt.Printf("%.3f\n", a)
	// Output:
	// 3.000
}
