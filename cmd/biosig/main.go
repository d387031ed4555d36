// Package main is the entry point for the algo-biosig CLI: split raw
// multi-device recordings into per-device streams, filter them and export
// plot data, with every trial outcome recorded in a run ledger.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/cwbudde/algo-biosig/biosig/config"
	"github.com/cwbudde/algo-biosig/biosig/ledger"
	"github.com/cwbudde/algo-biosig/biosig/pipeline"
	"github.com/cwbudde/algo-biosig/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "biosig",
	Short: "Split and filter multi-device EEG/EMG/IMU recordings",
	Long: `biosig processes raw multi-device biosignal exports in batch.

Each step is a subcommand: split parses raw recordings and writes one table
per device stream, preprocess applies the notch and band-pass filters and
computes EMG envelopes, and visualize exports plot data with a quality
summary. run executes any combination of steps (1 split, 2 preprocess,
3 visualize, 0 all).`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./algo-biosig.yaml or ~/.config/algo-biosig/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("data-root", "", "directory with one folder per subject")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("paths.data_root", rootCmd.PersistentFlags().Lookup("data-root"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("algo-biosig")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "algo-biosig"))
		}
	}

	viper.SetEnvPrefix("ALGO_BIOSIG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := registerDefaults(config.Default()); err != nil {
		fmt.Fprintln(os.Stderr, "registering config defaults:", err)
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// registerDefaults makes every config key known to viper so environment
// variables such as ALGO_BIOSIG_PATHS_DATA_ROOT can override it.
func registerDefaults(cfg config.Config) error {
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return err
	}
	setDefaults("", tree)
	return nil
}

func setDefaults(prefix string, tree map[string]any) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			setDefaults(key, sub)
			continue
		}
		viper.SetDefault(key, v)
	}
}

// loadConfig decodes the merged viper settings over the defaults.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	err := viper.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	})
	if err != nil {
		return config.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	return logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
}

// runSteps loads the configuration, opens the ledger and runs steps.
func runSteps(ctx context.Context, steps []pipeline.Step) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	opts := []pipeline.Option{pipeline.WithLogger(log)}
	if cfg.Paths.Ledger != "" {
		led, err := ledger.Open(ctx, cfg.Paths.Ledger)
		if err != nil {
			return err
		}
		defer led.Close()
		opts = append(opts, pipeline.WithLedger(led))
	}

	runner, err := pipeline.NewRunner(cfg, opts...)
	if err != nil {
		return err
	}

	sum, err := runner.Run(ctx, steps)
	if err != nil {
		return err
	}

	log.Info("run finished",
		slog.String("run_id", sum.RunID),
		slog.Int("subjects", len(sum.Subjects)),
		slog.Int("succeeded", sum.Succeeded),
		slog.Int("skipped", sum.Skipped),
		slog.Int("failed", len(sum.Failed)),
	)
	for _, f := range sum.Failed {
		fmt.Fprintln(os.Stderr, "failed:", f)
	}
	if len(sum.Failed) > 0 {
		return fmt.Errorf("%d trial stage(s) failed", len(sum.Failed))
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
