// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Multiple sections can be
// cascaded via [Chain] for higher-order filters (Butterworth band-pass,
// low-pass envelopes, notch + band-pass chains).
//
// [Chain.FiltFilt] runs a cascade forward and backward over a complete
// in-memory sequence, giving a zero-phase result of the same length.
//
// Coefficient design lives in dsp/filter/design.
package biquad
