package design_test

import (
	"fmt"

	"github.com/cwbudde/algo-biosig/dsp/filter/biquad"
	"github.com/cwbudde/algo-biosig/dsp/filter/design"
)

func ExampleButterworthLP() {
	coeffs, err := design.ButterworthLP(10, 4, 500)
	if err != nil {
		fmt.Println(err)
		return
	}
	chain := biquad.NewChain(coeffs)

	fmt.Printf("sections=%d order=%d\n", len(coeffs), chain.Order())
	fmt.Printf("10 Hz: %.2f dB\n", chain.MagnitudeDB(10, 500))
	// Output:
	// sections=2 order=4
	// 10 Hz: -3.01 dB
}
