// Package design provides digital IIR filter coefficient designers.
//
// The functions in this package produce biquad coefficients consumable by
// dsp/filter/biquad. Single-section designers (Lowpass, Notch)
// follow the RBJ cookbook and the classic second-order notch; the
// Butterworth designers return cascades of sections obtained from the
// analog prototype through the bilinear transform with frequency
// pre-warping.
package design
