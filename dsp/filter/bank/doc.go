// Package bank designs and applies the fixed filters of the biosignal
// pipeline: a line-frequency notch, a Butterworth band-pass and a
// Butterworth low-pass for envelope smoothing.
//
// A [Spec] is designed once and is immutable afterwards, so a single value
// may be applied to any number of channels, concurrently if desired.
// [Spec.Apply] filters forward and backward (zero phase) over a complete
// in-memory sequence; there is no streaming mode.
package bank
