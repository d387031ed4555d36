// Package spectrum provides the spectral measurements used for signal
// quality checks: a Hann-windowed power spectrum backed by algo-fft,
// band-power integration and single-tone estimation with the Goertzel
// algorithm.
package spectrum
