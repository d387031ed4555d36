// Package report builds per-channel quality summaries of processed trials
// and writes them as YAML next to the plot data.
package report

import (
	"fmt"
	"io"
	"math"

	"go.yaml.in/yaml/v3"

	"github.com/cwbudde/algo-biosig/biosig/config"
	"github.com/cwbudde/algo-biosig/biosig/demux"
	"github.com/cwbudde/algo-biosig/biosig/modality"
	"github.com/cwbudde/algo-biosig/dsp/spectrum"
	"github.com/cwbudde/algo-biosig/stats/frequency"
	timestats "github.com/cwbudde/algo-biosig/stats/time"
)

// ChannelSummary describes one channel of one trial before and after
// filtering.
type ChannelSummary struct {
	Trial   string `yaml:"trial"`
	Role    string `yaml:"role"`
	Channel string `yaml:"channel"`
	Samples int    `yaml:"samples"`
	Missing int    `yaml:"missing"`

	RawRMS      float64 `yaml:"raw_rms"`
	FilteredRMS float64 `yaml:"filtered_rms"`
	RawPeak     float64 `yaml:"raw_peak"`

	// Line amplitude is the Goertzel estimate at the mains frequency; the
	// ratio is the spectral share within one hertz of it.
	LineAmplitudeRaw      float64 `yaml:"line_amplitude_raw"`
	LineAmplitudeFiltered float64 `yaml:"line_amplitude_filtered"`
	LineRatioRaw          float64 `yaml:"line_ratio_raw"`
	LineRatioFiltered     float64 `yaml:"line_ratio_filtered"`

	MeanFreq   float64 `yaml:"mean_freq"`
	MedianFreq float64 `yaml:"median_freq"`
}

// EnvelopeSummary describes the aligned envelope stack of a subject.
type EnvelopeSummary struct {
	Trials   []string `yaml:"trials"`
	Samples  int      `yaml:"samples"`
	PeakMean float64  `yaml:"peak_mean"`
	PeakTime float64  `yaml:"peak_time"`
	MeanStd  float64  `yaml:"mean_std"`
}

// Report is the per-subject YAML document.
type Report struct {
	Subject  string           `yaml:"subject"`
	RunID    string           `yaml:"run_id,omitempty"`
	Channels []ChannelSummary `yaml:"channels"`
	Envelope *EnvelopeSummary `yaml:"envelope,omitempty"`
}

// Summarize computes one ChannelSummary per filtered channel. The
// frequency descriptors are taken over the configured band of the role.
func Summarize(trial string, raw *demux.Stream, filtered *modality.Filtered, cfg config.Config) ([]ChannelSummary, error) {
	band := cfg.EMGBand
	if raw.Role.IsEEG() {
		band = cfg.EEGBand
	}

	out := make([]ChannelSummary, 0, len(filtered.Source))
	for i, col := range filtered.Source {
		x := raw.Column(col)
		y := filtered.Data[i]
		if x == nil {
			return nil, fmt.Errorf("report: %s has no raw column %q", raw.Role, col)
		}

		rs := timestats.Calculate(x)
		cs := ChannelSummary{
			Trial:       trial,
			Role:        string(raw.Role),
			Channel:     col,
			Samples:     rs.Length,
			Missing:     rs.Missing,
			RawRMS:      rs.RMS,
			FilteredRMS: timestats.RMS(y),
			RawPeak:     rs.Peak,
		}

		var err error
		if cs.LineAmplitudeRaw, err = spectrum.ToneAmplitude(x, cfg.LineFreq, cfg.SampleRate); err != nil {
			return nil, fmt.Errorf("report: %s/%s: %w", raw.Role, col, err)
		}
		if cs.LineAmplitudeFiltered, err = spectrum.ToneAmplitude(y, cfg.LineFreq, cfg.SampleRate); err != nil {
			return nil, fmt.Errorf("report: %s/%s: %w", raw.Role, col, err)
		}
		if cs.LineRatioRaw, err = spectrum.LineNoiseRatio(x, cfg.SampleRate, cfg.LineFreq); err != nil {
			return nil, fmt.Errorf("report: %s/%s: %w", raw.Role, col, err)
		}

		spec, err := spectrum.PowerSpectrum(y, cfg.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("report: %s/%s: %w", raw.Role, col, err)
		}
		if total := spec.TotalPower(); total > 0 {
			cs.LineRatioFiltered = spec.BandPower(cfg.LineFreq-spectrum.LineNoiseHalfWidth, cfg.LineFreq+spectrum.LineNoiseHalfWidth) / total
		}
		fs := frequency.Calculate(spec.Freqs, spec.Power, band.Low, band.High)
		cs.MeanFreq = fs.MeanFreq
		cs.MedianFreq = fs.MedianFreq

		out = append(out, cs)
	}

	return out, nil
}

// SummarizeEnvelope describes an aligned envelope stack sampled at
// sampleRate. It returns nil for an empty stack.
func SummarizeEnvelope(trials []string, aligned [][]float64, sampleRate float64) *EnvelopeSummary {
	if len(aligned) == 0 {
		return nil
	}
	mean, std := modality.EnvelopeBand(aligned)

	s := &EnvelopeSummary{Trials: trials, Samples: len(mean), PeakMean: math.Inf(-1)}
	for i, v := range mean {
		if v > s.PeakMean {
			s.PeakMean = v
			s.PeakTime = float64(i) / sampleRate
		}
	}
	s.MeanStd = timestats.Calculate(std).Mean

	return s
}

// Write encodes r as YAML.
func (r *Report) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("report: encoding: %w", err)
	}
	return enc.Close()
}

// Read decodes a report written by Write.
func Read(r io.Reader) (*Report, error) {
	var rep Report
	if err := yaml.NewDecoder(r).Decode(&rep); err != nil {
		return nil, fmt.Errorf("report: decoding: %w", err)
	}
	return &rep, nil
}
