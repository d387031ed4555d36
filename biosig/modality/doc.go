// Package modality applies the per-modality processing chains to
// demultiplexed streams: notch plus band-pass for EEG and EMG, a
// rectified and smoothed envelope for one designated EMG channel, and
// passthrough for IMU. Filter specs are designed once per Processor and
// shared read-only across trials.
package modality
