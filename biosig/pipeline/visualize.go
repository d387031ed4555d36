package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-biosig/biosig/discover"
	"github.com/cwbudde/algo-biosig/biosig/modality"
	"github.com/cwbudde/algo-biosig/biosig/persist"
	"github.com/cwbudde/algo-biosig/biosig/report"
)

const plotsDir = "plots"

// Visualize exports the plot data of a preprocessed subject: the EEG demo
// channel raw and filtered, the envelope mean and standard deviation over
// aligned trials and the IMU demo axes, plus a YAML quality summary.
// Rendering is left to external tools. Missing demos are logged and
// skipped.
func (r *Runner) Visualize(ctx context.Context, res *SubjectResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sub := res.Subject
	dir := filepath.Join(discover.PreprocessedDir(r.cfg.Paths.PreprocessedRoot, sub.ID), plotsDir)
	log := r.log.With(slog.String("subject", sub.ID))

	if d := sub.EEGDemo; d != nil {
		err := writeFile(filepath.Join(dir, sub.ID+"_eeg_demo.csv"), func(fh *os.File) error {
			return persist.WriteSeries(fh,
				[]string{"Time", d.Channel + "_raw", d.Channel + "_filtered"},
				d.Time, d.Raw, d.Filtered)
		})
		if err != nil {
			return err
		}
	} else {
		log.Info("no EEG demo to plot")
	}

	rep := &report.Report{Subject: sub.ID, RunID: r.runID, Channels: res.Channels}

	if aligned := sub.Aligned(); aligned != nil {
		mean, std := modality.EnvelopeBand(aligned)
		t := sub.EnvelopeTime(len(mean))
		err := writeFile(filepath.Join(dir, sub.ID+"_emg_envelope.csv"), func(fh *os.File) error {
			return persist.WriteSeries(fh, []string{"Time", "Mean", "Std"}, t, mean, std)
		})
		if err != nil {
			return err
		}

		trials := make([]string, len(sub.Envelopes))
		for i, e := range sub.Envelopes {
			trials[i] = e.Trial
		}
		rep.Envelope = report.SummarizeEnvelope(trials, aligned, r.cfg.SampleRate)
	} else {
		log.Info("no EMG envelope to plot")
	}

	if d := sub.IMUDemo; d != nil {
		header := append([]string{"Time"}, d.Stream.Columns...)
		cols := append([][]float64{d.Time}, d.Stream.Data...)
		err := writeFile(filepath.Join(dir, sub.ID+"_imu_demo.csv"), func(fh *os.File) error {
			return persist.WriteSeries(fh, header, cols...)
		})
		if err != nil {
			return err
		}
	} else {
		log.Info("no IMU demo to plot")
	}

	err := writeFile(filepath.Join(dir, sub.ID+"_summary.yaml"), func(fh *os.File) error {
		return rep.Write(fh)
	})
	if err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	r.record(ctx, sub.ID, "", StageVisualize, len(res.Channels))
	return nil
}
