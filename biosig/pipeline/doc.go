// Package pipeline orchestrates the batch steps over every subject: split
// raw recordings into per-device streams, preprocess the streams into
// filtered tables and envelopes, and export plot data with a quality
// summary. A failing trial is recorded and skipped; the batch continues.
package pipeline
