package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-biosig/biosig/discover"
	"github.com/cwbudde/algo-biosig/biosig/frame"
	"github.com/cwbudde/algo-biosig/biosig/persist"
)

// Split parses every raw recording of subject, demultiplexes it and writes
// one table per stream into the structured tree. The returned error is
// reserved for subject-level failures and cancellation.
func (r *Runner) Split(ctx context.Context, subject string) (Outcome, error) {
	var out Outcome

	files, err := discover.Trials(r.cfg.Paths.DataRoot, subject)
	if err != nil {
		return out, err
	}
	r.log.Info("split",
		slog.String("subject", subject),
		slog.Int("raw_trials", len(files.Raw)),
		slog.Int("trigger_trials", len(files.Triggers)),
	)

	dir := discover.StructuredDir(r.cfg.Paths.StructuredRoot, subject)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return out, fmt.Errorf("creating structured directory: %w", err)
	}

	var opts []frame.Option
	if r.cfg.StrictColumns {
		opts = append(opts, frame.WithStrictColumns())
	}

	for _, path := range files.Raw {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		trial := frame.TrialID(path)
		rows, missing, err := r.splitTrial(path, trial, dir, opts)
		if err != nil {
			se := &StageError{Subject: subject, Trial: trial, Stage: StageSplit, Err: err}
			r.fail(ctx, se)
			out.Failed = append(out.Failed, se)
			continue
		}

		r.record(ctx, subject, trial, StageSplit, rows)
		out.Succeeded++
		for _, id := range missing {
			roles, _ := r.roles.Roles(id)
			r.skip(ctx, subject, trial, StageSplit,
				fmt.Sprintf("device %d (%s, %s) has no samples", id, roles.EXG, roles.IMU))
			out.Skipped++
		}
	}

	return out, nil
}

// splitTrial writes the streams of one recording and returns its row
// count and the mapped devices that contributed no samples.
func (r *Runner) splitTrial(path, trial, dir string, opts []frame.Option) (int, []int, error) {
	r.log.Info("splitting", slog.String("trial", trial), slog.String("file", filepath.Base(path)))

	f, err := frame.ParseFile(path, opts...)
	if err != nil {
		return 0, nil, err
	}

	streams := r.demux.Split(f)
	for _, role := range streams.Roles() {
		s := streams[role]
		err := writeFile(filepath.Join(dir, persist.RawName(trial, role)), func(fh *os.File) error {
			return persist.WriteStream(fh, s)
		})
		if err != nil {
			return 0, nil, err
		}
	}

	var missing []int
	for _, id := range r.roles.Devices() {
		roles, _ := r.roles.Roles(id)
		if _, ok := streams[roles.EXG]; !ok {
			missing = append(missing, id)
		}
	}

	return f.Len(), missing, nil
}
