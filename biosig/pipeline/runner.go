package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-biosig/biosig/config"
	"github.com/cwbudde/algo-biosig/biosig/demux"
	"github.com/cwbudde/algo-biosig/biosig/discover"
	"github.com/cwbudde/algo-biosig/biosig/ledger"
	"github.com/cwbudde/algo-biosig/biosig/modality"
	"github.com/cwbudde/algo-biosig/internal/logging"
)

// Runner executes batch steps with one configuration. It is not safe for
// concurrent use.
type Runner struct {
	cfg    config.Config
	log    *slog.Logger
	ledger *ledger.Ledger
	roles  demux.RoleMap
	demux  *demux.Demultiplexer
	proc   *modality.Processor

	runID string
}

// Option configures a Runner.
type Option func(*Runner)

// WithLedger records every stage outcome in l.
func WithLedger(l *ledger.Ledger) Option {
	return func(r *Runner) { r.ledger = l }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.log = l }
}

// NewRunner validates cfg and designs the filters once for the run.
func NewRunner(cfg config.Config, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Runner{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.log = logging.OrDefault(r.log)

	proc, err := modality.NewProcessor(cfg)
	if err != nil {
		return nil, err
	}
	r.proc = proc
	r.roles = demux.DefaultRoleMap()
	r.demux = demux.New(r.roles, r.log)

	return r, nil
}

// RunID returns the ledger run identifier, empty before Run or without a
// ledger.
func (r *Runner) RunID() string { return r.runID }

// Outcome counts the trials a stage handled for one subject. Skipped
// counts devices that recorded no samples in a split trial.
type Outcome struct {
	Succeeded int
	Skipped   int
	Failed    []*StageError
}

func (o *Outcome) merge(other Outcome) {
	o.Succeeded += other.Succeeded
	o.Skipped += other.Skipped
	o.Failed = append(o.Failed, other.Failed...)
}

// Summary is the result of Run.
type Summary struct {
	RunID    string
	Subjects []string
	Outcome
}

// Run executes the selected steps for every subject under the data root
// that passes the configured allow-list. Visualizing without
// preprocessing recomputes the products in memory without saving them.
func (r *Runner) Run(ctx context.Context, steps []Step) (Summary, error) {
	sel := Select(steps)

	subjects, err := r.subjects(sel)
	if err != nil {
		return Summary{}, err
	}

	if r.ledger != nil && r.runID == "" {
		snapshot, err := r.cfg.Marshal()
		if err != nil {
			return Summary{}, fmt.Errorf("snapshotting config: %w", err)
		}
		run, err := r.ledger.BeginRun(ctx, string(snapshot))
		if err != nil {
			return Summary{}, err
		}
		r.runID = run.ID
	}

	sum := Summary{RunID: r.runID}
	for _, subject := range subjects {
		if !r.cfg.Selected(subject) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		sum.Subjects = append(sum.Subjects, subject)
		r.log.Info("processing subject", slog.String("subject", subject))

		if sel.Split {
			out, err := r.Split(ctx, subject)
			sum.merge(out)
			if err != nil {
				return sum, err
			}
		}

		if !sel.Preprocess && !sel.Visualize {
			continue
		}

		res, err := r.preprocess(ctx, subject, sel.Preprocess)
		sum.merge(res.Outcome)
		if err != nil {
			return sum, err
		}

		if sel.Visualize {
			if err := r.Visualize(ctx, res); err != nil {
				se := &StageError{Subject: subject, Stage: StageVisualize, Err: err}
				r.fail(ctx, se)
				sum.Failed = append(sum.Failed, se)
			}
		}
	}

	return sum, nil
}

func (r *Runner) subjects(sel Selection) ([]string, error) {
	subjects, err := discover.Subjects(r.cfg.Paths.DataRoot)
	if err == nil || sel.Split {
		return subjects, err
	}
	// Later steps only need the structured tree.
	return discover.Subjects(r.cfg.Paths.StructuredRoot)
}

func (r *Runner) record(ctx context.Context, subject, trial string, stage Stage, rows int) {
	r.log.Debug("trial done",
		slog.String("subject", subject),
		slog.String("trial", trial),
		slog.String("stage", string(stage)),
		slog.Int("rows", rows),
	)
	if r.ledger == nil || r.runID == "" {
		return
	}
	err := r.ledger.Record(ctx, ledger.Result{
		RunID:   r.runID,
		Subject: subject,
		Trial:   trial,
		Stage:   string(stage),
		Status:  ledger.StatusOK,
		Rows:    rows,
	})
	if err != nil {
		r.log.Error("recording ledger result", slog.Any("error", err))
	}
}

func (r *Runner) skip(ctx context.Context, subject, trial string, stage Stage, detail string) {
	if r.ledger == nil || r.runID == "" {
		return
	}
	err := r.ledger.Record(ctx, ledger.Result{
		RunID:   r.runID,
		Subject: subject,
		Trial:   trial,
		Stage:   string(stage),
		Status:  ledger.StatusSkipped,
		Detail:  detail,
	})
	if err != nil {
		r.log.Error("recording ledger result", slog.Any("error", err))
	}
}

func (r *Runner) fail(ctx context.Context, se *StageError) {
	r.log.Error("trial failed",
		slog.String("subject", se.Subject),
		slog.String("trial", se.Trial),
		slog.String("stage", string(se.Stage)),
		slog.String("modality", se.Modality),
		slog.Any("error", se.Err),
	)
	if r.ledger == nil || r.runID == "" {
		return
	}
	detail := se.Err.Error()
	if se.Modality != "" {
		detail = se.Modality + ": " + detail
	}
	err := r.ledger.Record(ctx, ledger.Result{
		RunID:   r.runID,
		Subject: se.Subject,
		Trial:   se.Trial,
		Stage:   string(se.Stage),
		Status:  ledger.StatusFailed,
		Detail:  detail,
	})
	if err != nil {
		r.log.Error("recording ledger result", slog.Any("error", err))
	}
}

func writeFile(path string, write func(f *os.File) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return write(f)
}
