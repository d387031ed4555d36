package main

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-biosig/biosig/config"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	viper.SetEnvPrefix("ALGO_BIOSIG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	require.NoError(t, registerDefaults(config.Default()))
	t.Cleanup(viper.Reset)
}

func TestLoadConfigDefaults(t *testing.T) {
	resetViper(t)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("ALGO_BIOSIG_PATHS_DATA_ROOT", "/data/raw")
	t.Setenv("ALGO_BIOSIG_SAMPLE_RATE", "1000")
	t.Setenv("ALGO_BIOSIG_EMG_BAND_HIGH", "400")
	resetViper(t)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/data/raw", cfg.Paths.DataRoot)
	assert.Equal(t, 1000.0, cfg.SampleRate)
	assert.Equal(t, 400.0, cfg.EMGBand.High)
	assert.Equal(t, 50.0, cfg.EMGBand.Low)
}

func TestLoadConfigFile(t *testing.T) {
	resetViper(t)
	viper.SetConfigType("yaml")
	require.NoError(t, viper.ReadConfig(strings.NewReader(`
line_freq: 60
subjects: [S01, S04]
save:
  eeg: true
`)))

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 60.0, cfg.LineFreq)
	assert.Equal(t, []string{"S01", "S04"}, cfg.Subjects)
	assert.True(t, cfg.Save.EEG)
	assert.True(t, cfg.Save.EMG)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv("ALGO_BIOSIG_NOTCH_Q", "-1")
	resetViper(t)

	_, err := loadConfig()
	assert.ErrorIs(t, err, config.ErrInvalid)
}
