package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 500.0, cfg.SampleRate)
	assert.Equal(t, 50.0, cfg.IMUSampleRate)
	assert.Equal(t, 50.0, cfg.LineFreq)
	assert.Equal(t, 30.0, cfg.NotchQ)
	assert.Equal(t, Band{1, 40}, cfg.EEGBand)
	assert.Equal(t, Band{50, 240}, cfg.EMGBand)
	assert.Equal(t, 10.0, cfg.EnvelopeCutoff)
	assert.Equal(t, SaveConfig{EEG: false, EMG: true, IMU: false}, cfg.Save)
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.SampleRate = 0
	cfg.EEGBand = Band{40, 1}
	cfg.NotchQ = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.Contains(t, err.Error(), "sample_rate")
	assert.Contains(t, err.Error(), "eeg_band")
	assert.Contains(t, err.Error(), "notch_q")
}

func TestValidate_AcceptsHighCutoffAboveNyquist(t *testing.T) {
	cfg := Default()
	cfg.EMGBand = Band{50, 300}
	assert.NoError(t, cfg.Validate())
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "algo-biosig.yaml")
	require.NoError(t, os.WriteFile(path, []byte("line_freq: 60\nsave:\n  eeg: true\nsubjects: [S04]\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 60.0, cfg.LineFreq)
	assert.True(t, cfg.Save.EEG)
	assert.Equal(t, 500.0, cfg.SampleRate)
	assert.True(t, cfg.Selected("S04"))
	assert.False(t, cfg.Selected("S01"))
}

func TestLoad_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sample_rate: -5\n"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "envelope_role: EMG_2")
}
