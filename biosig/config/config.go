// Package config holds the immutable processing configuration shared by
// every pipeline component. A Config is built once (defaults, optionally
// overlaid by a YAML file) and passed by value into constructors; nothing
// in the pipeline reads process-wide mutable settings.
package config

import (
	"errors"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Band is a [low, high] frequency range in Hz.
type Band struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

// SaveConfig toggles persistence of per-modality outputs.
type SaveConfig struct {
	EEG bool `json:"eeg" yaml:"eeg"`
	EMG bool `json:"emg" yaml:"emg"`
	IMU bool `json:"imu" yaml:"imu"`
}

// PathsConfig names the on-disk locations used by the orchestrator.
type PathsConfig struct {
	// DataRoot contains one directory per subject (S01, S02, ...).
	DataRoot string `json:"data_root" yaml:"data_root"`

	// StructuredRoot receives split raw streams under <subject>/by_device.
	StructuredRoot string `json:"structured_root" yaml:"structured_root"`

	// PreprocessedRoot receives filtered tables, plot data and summaries.
	PreprocessedRoot string `json:"preprocessed_root" yaml:"preprocessed_root"`

	// Ledger is the SQLite run ledger path. Empty disables the ledger.
	Ledger string `json:"ledger" yaml:"ledger"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // text or json
}

// Config is the full processing configuration.
type Config struct {
	// SampleRate is the EXG (EEG/EMG) sampling rate in Hz.
	SampleRate float64 `json:"sample_rate" yaml:"sample_rate"`

	// IMUSampleRate is the IMU sampling rate in Hz.
	IMUSampleRate float64 `json:"imu_sample_rate" yaml:"imu_sample_rate"`

	// LineFreq is the mains frequency removed by the notch filter.
	LineFreq float64 `json:"line_freq" yaml:"line_freq"`

	// NotchQ is the notch quality factor.
	NotchQ float64 `json:"notch_q" yaml:"notch_q"`

	EEGBand        Band    `json:"eeg_band" yaml:"eeg_band"`
	EMGBand        Band    `json:"emg_band" yaml:"emg_band"`
	EnvelopeCutoff float64 `json:"envelope_cutoff" yaml:"envelope_cutoff"`

	// BandpassOrder and LowpassOrder are Butterworth prototype orders.
	BandpassOrder int `json:"bandpass_order" yaml:"bandpass_order"`
	LowpassOrder  int `json:"lowpass_order" yaml:"lowpass_order"`

	// EnvelopeRole and EnvelopeChannel designate the one EMG channel whose
	// envelope is computed.
	EnvelopeRole    string `json:"envelope_role" yaml:"envelope_role"`
	EnvelopeChannel string `json:"envelope_channel" yaml:"envelope_channel"`

	// EEGDemoChannel is the channel kept as the raw/filtered EEG demo.
	EEGDemoChannel string `json:"eeg_demo_channel" yaml:"eeg_demo_channel"`

	// IMUDemoRole selects which IMU stream provides the demo trial.
	IMUDemoRole string `json:"imu_demo_role" yaml:"imu_demo_role"`

	// StrictColumns turns rows with a wrong field count into parse errors.
	StrictColumns bool `json:"strict_columns" yaml:"strict_columns"`

	// Subjects restricts processing to these IDs; empty means all.
	Subjects []string `json:"subjects,omitempty" yaml:"subjects,omitempty"`

	Save  SaveConfig  `json:"save" yaml:"save"`
	Paths PathsConfig `json:"paths" yaml:"paths"`
	Log   LogConfig   `json:"log" yaml:"log"`
}

// Default returns the recognised configuration constants.
func Default() Config {
	return Config{
		SampleRate:      500,
		IMUSampleRate:   50,
		LineFreq:        50,
		NotchQ:          30,
		EEGBand:         Band{Low: 1, High: 40},
		EMGBand:         Band{Low: 50, High: 240},
		EnvelopeCutoff:  10,
		BandpassOrder:   4,
		LowpassOrder:    4,
		EnvelopeRole:    "EMG_2",
		EnvelopeChannel: "Channel1",
		EEGDemoChannel:  "Channel1",
		IMUDemoRole:     "IMU_1",
		Save:            SaveConfig{EEG: false, EMG: true, IMU: false},
		Paths: PathsConfig{
			DataRoot:         "00_DATA/01_RAW",
			StructuredRoot:   "01_KHOA/DATA/STRUCTURED",
			PreprocessedRoot: "01_KHOA/DATA/PREPROCESSED",
			Ledger:           "01_KHOA/DATA/ledger.db",
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Validate checks every numeric option. Band-pass high cutoffs at or above
// Nyquist are accepted here; the filter bank clamps them at design time.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.SampleRate > 0, "sample_rate must be positive, got %g", c.SampleRate)
	check(c.IMUSampleRate > 0, "imu_sample_rate must be positive, got %g", c.IMUSampleRate)
	check(c.LineFreq > 0 && c.LineFreq < c.SampleRate/2, "line_freq %g must lie in (0, %g)", c.LineFreq, c.SampleRate/2)
	check(c.NotchQ > 0, "notch_q must be positive, got %g", c.NotchQ)
	check(c.EEGBand.Low > 0 && c.EEGBand.Low < c.EEGBand.High, "eeg_band [%g, %g] must be positive and ordered", c.EEGBand.Low, c.EEGBand.High)
	check(c.EMGBand.Low > 0 && c.EMGBand.Low < c.EMGBand.High, "emg_band [%g, %g] must be positive and ordered", c.EMGBand.Low, c.EMGBand.High)
	check(c.EnvelopeCutoff > 0 && c.EnvelopeCutoff < c.SampleRate/2, "envelope_cutoff %g must lie in (0, %g)", c.EnvelopeCutoff, c.SampleRate/2)
	check(c.BandpassOrder > 0, "bandpass_order must be positive, got %d", c.BandpassOrder)
	check(c.LowpassOrder > 0, "lowpass_order must be positive, got %d", c.LowpassOrder)
	check(c.EnvelopeRole != "" && c.EnvelopeChannel != "", "envelope_role and envelope_channel are required")

	return errors.Join(errs...)
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Marshal renders the configuration as YAML, as recorded in run ledgers.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(&c)
}

// Selected reports whether subject passes the Subjects allow-list.
func (c Config) Selected(subject string) bool {
	if len(c.Subjects) == 0 {
		return true
	}
	for _, s := range c.Subjects {
		if s == subject {
			return true
		}
	}
	return false
}
