package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/cwbudde/algo-biosig/biosig/demux"
	"github.com/cwbudde/algo-biosig/biosig/discover"
	"github.com/cwbudde/algo-biosig/biosig/modality"
	"github.com/cwbudde/algo-biosig/biosig/persist"
	"github.com/cwbudde/algo-biosig/biosig/report"
)

// SubjectResult carries the in-memory products of preprocessing one
// subject to the visualize step.
type SubjectResult struct {
	Subject  *modality.Subject
	Channels []report.ChannelSummary
	Outcome
}

// Preprocess filters every split trial of subject and saves the outputs
// enabled by the save toggles. Modalities of a trial fail independently:
// each failure becomes its own StageError while the other modalities are
// still filtered and saved. A trial counts as succeeded only when none of
// its modalities failed.
func (r *Runner) Preprocess(ctx context.Context, subject string) (*SubjectResult, error) {
	return r.preprocess(ctx, subject, true)
}

func (r *Runner) preprocess(ctx context.Context, subject string, save bool) (*SubjectResult, error) {
	res := &SubjectResult{Subject: r.proc.NewSubject(subject)}

	inDir := discover.StructuredDir(r.cfg.Paths.StructuredRoot, subject)
	trials, err := structuredTrials(inDir)
	if err != nil {
		return res, err
	}
	if len(trials) == 0 {
		r.log.Warn("no split trials found", slog.String("subject", subject), slog.String("dir", inDir))
	}

	outDir := discover.PreprocessedDir(r.cfg.Paths.PreprocessedRoot, subject)
	for _, trial := range trials {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		streams, err := loadStreams(inDir, trial)
		if err != nil {
			se := &StageError{Subject: subject, Trial: trial, Stage: StagePreprocess, Err: err}
			r.fail(ctx, se)
			res.Failed = append(res.Failed, se)
			continue
		}

		tr := &trialRun{runner: r, subject: subject, trial: trial, outDir: outDir, save: save, sub: res.Subject}
		tr.process(streams)
		for _, se := range tr.failed {
			r.fail(ctx, se)
		}
		res.Channels = append(res.Channels, tr.channels...)
		res.Failed = append(res.Failed, tr.failed...)
		if len(tr.failed) == 0 {
			r.record(ctx, subject, trial, StagePreprocess, rowCount(streams))
			res.Succeeded++
		}
	}

	return res, nil
}

// trialRun processes the modalities of one trial independently: a failure
// in one modality is collected and the remaining modalities still run.
type trialRun struct {
	runner  *Runner
	subject string
	trial   string
	outDir  string
	save    bool
	sub     *modality.Subject

	channels []report.ChannelSummary
	failed   []*StageError
}

func (tr *trialRun) fail(role demux.Role, err error) {
	tr.failed = append(tr.failed, &StageError{
		Subject:  tr.subject,
		Trial:    tr.trial,
		Stage:    StagePreprocess,
		Modality: string(role),
		Err:      err,
	})
}

func (tr *trialRun) process(streams demux.Streams) {
	if raw, ok := streams[demux.EEG1]; ok {
		if err := tr.eeg(raw); err != nil {
			tr.fail(demux.EEG1, err)
		}
	}
	tr.emg(streams)
	tr.imu(streams)
}

func (tr *trialRun) eeg(raw *demux.Stream) error {
	r := tr.runner
	f, err := r.proc.EEG(raw)
	if err != nil {
		return err
	}
	tr.sub.AddEEG(tr.trial, raw, f)

	cs, err := report.Summarize(tr.trial, raw, f, r.cfg)
	if err != nil {
		return err
	}
	tr.channels = append(tr.channels, cs...)

	if tr.save && r.cfg.Save.EEG {
		return saveFiltered(tr.outDir, tr.trial, f)
	}
	return nil
}

func (tr *trialRun) emg(streams demux.Streams) {
	r := tr.runner
	res, _ := r.proc.EMG(streams)

	for _, role := range modality.EMGRoles {
		if err, ok := res.Failed[role]; ok {
			tr.fail(role, err)
			continue
		}
		f, ok := res.Filtered[role]
		if !ok {
			continue
		}
		cs, err := report.Summarize(tr.trial, streams[role], f, r.cfg)
		if err != nil {
			tr.fail(role, err)
			continue
		}
		tr.channels = append(tr.channels, cs...)

		if tr.save && r.cfg.Save.EMG {
			if err := saveFiltered(tr.outDir, tr.trial, f); err != nil {
				tr.fail(role, err)
			}
		}
	}

	role := demux.Role(r.cfg.EnvelopeRole)
	if res.EnvelopeErr != nil {
		tr.fail(role, res.EnvelopeErr)
		return
	}
	if res.Envelope == nil {
		return
	}
	tr.sub.AddEnvelope(tr.trial, res.Envelope)
	if tr.save && r.cfg.Save.EMG {
		path := filepath.Join(tr.outDir, persist.EnvelopeName(tr.trial, role))
		err := writeFile(path, func(fh *os.File) error {
			return persist.WriteSeries(fh,
				[]string{persist.TimestampColumn, r.cfg.EnvelopeChannel + "_envelope"},
				res.Timestamps, res.Envelope)
		})
		if err != nil {
			tr.fail(role, err)
		}
	}
}

func (tr *trialRun) imu(streams demux.Streams) {
	r := tr.runner
	imu := r.proc.IMU(streams)
	tr.sub.AddIMU(tr.trial, imu)
	if !tr.save || !r.cfg.Save.IMU {
		return
	}
	for _, role := range allRoles {
		s, ok := imu[role]
		if !ok {
			continue
		}
		err := writeFile(filepath.Join(tr.outDir, persist.RawName(tr.trial, role)), func(fh *os.File) error {
			return persist.WriteStream(fh, s)
		})
		if err != nil {
			tr.fail(role, err)
		}
	}
}

func rowCount(streams demux.Streams) int {
	n := 0
	for _, s := range streams {
		n += s.Len()
	}
	return n
}

func saveFiltered(dir, trial string, f *modality.Filtered) error {
	return writeFile(filepath.Join(dir, persist.FilteredName(trial, f.Role)), func(fh *os.File) error {
		return persist.WriteFiltered(fh, f)
	})
}

var allRoles = []demux.Role{demux.EEG1, demux.EMG2, demux.EMG3, demux.IMU1, demux.IMU2, demux.IMU3}

// structuredTrials lists the trial IDs with at least one split stream.
func structuredTrials(dir string) ([]string, error) {
	seen := make(map[string]struct{})
	for _, role := range allRoles {
		ids, err := discover.StructuredTrials(dir, string(role))
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			seen[id] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

// loadStreams reads every split stream of trial present in dir.
func loadStreams(dir, trial string) (demux.Streams, error) {
	streams := make(demux.Streams)
	for _, role := range allRoles {
		path := filepath.Join(dir, persist.RawName(trial, role))
		fh, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}

		s, err := persist.ReadStream(fh, role)
		fh.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		streams[role] = s
	}
	return streams, nil
}
