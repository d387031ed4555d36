package modality

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-biosig/biosig/config"
	"github.com/cwbudde/algo-biosig/biosig/demux"
	"github.com/cwbudde/algo-biosig/dsp/filter/bank"
)

// FilteredSuffix is appended to every processed column name.
const FilteredSuffix = "_filtered"

// ErrMissingStream is returned when a required role is absent.
var ErrMissingStream = errors.New("modality: missing stream")

// Filtered is the zero-phase filtered version of one EXG stream. It holds
// its own copy of the source timestamps.
type Filtered struct {
	Role       demux.Role
	Source     []string // original column names
	Columns    []string // Source with FilteredSuffix
	Timestamps []float64
	Data       [][]float64
}

// Len returns the number of samples.
func (f *Filtered) Len() int { return len(f.Timestamps) }

// Column returns the filtered samples for an original or suffixed name.
func (f *Filtered) Column(name string) []float64 {
	for i := range f.Columns {
		if f.Columns[i] == name || f.Source[i] == name {
			return f.Data[i]
		}
	}
	return nil
}

// EMGResult holds the filtered EMG streams of one trial and the envelope
// of the designated channel. A role whose filtering failed is listed in
// Failed and absent from Filtered. Envelope is nil when the designated
// role is absent, failed, or the envelope itself failed (EnvelopeErr).
type EMGResult struct {
	Filtered    map[demux.Role]*Filtered
	Failed      map[demux.Role]error
	Envelope    []float64
	Timestamps  []float64 // timestamps of Envelope
	EnvelopeErr error
}

// Err joins every failure of the result in role order, nil if none.
func (r *EMGResult) Err() error {
	var errs []error
	for _, role := range EMGRoles {
		if err, ok := r.Failed[role]; ok {
			errs = append(errs, err)
		}
	}
	if r.EnvelopeErr != nil {
		errs = append(errs, r.EnvelopeErr)
	}
	return errors.Join(errs...)
}

// EMGRoles lists the EMG roles processed, in order.
var EMGRoles = []demux.Role{demux.EMG2, demux.EMG3}

// Processor runs the modality chains with specs designed from one
// configuration. It holds no per-trial state and may be reused.
type Processor struct {
	cfg config.Config

	notch    bank.Spec
	eegBand  bank.Spec
	emgBand  bank.Spec
	envelope bank.Spec
}

// NewProcessor designs every filter for cfg.SampleRate.
func NewProcessor(cfg config.Config) (*Processor, error) {
	p := &Processor{cfg: cfg}
	fs := cfg.SampleRate

	var err error
	if p.notch, err = bank.DesignNotch(cfg.LineFreq, cfg.NotchQ, fs); err != nil {
		return nil, fmt.Errorf("designing notch: %w", err)
	}
	if p.eegBand, err = bank.DesignBandpass(cfg.EEGBand.Low, cfg.EEGBand.High, cfg.BandpassOrder, fs); err != nil {
		return nil, fmt.Errorf("designing EEG band-pass: %w", err)
	}
	if p.emgBand, err = bank.DesignBandpass(cfg.EMGBand.Low, cfg.EMGBand.High, cfg.BandpassOrder, fs); err != nil {
		return nil, fmt.Errorf("designing EMG band-pass: %w", err)
	}
	if p.envelope, err = bank.DesignLowpass(cfg.EnvelopeCutoff, cfg.LowpassOrder, fs); err != nil {
		return nil, fmt.Errorf("designing envelope low-pass: %w", err)
	}

	return p, nil
}

// Config returns the configuration the processor was built from.
func (p *Processor) Config() config.Config { return p.cfg }

// EEG filters every channel of s with the notch then the EEG band-pass.
func (p *Processor) EEG(s *demux.Stream) (*Filtered, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingStream, demux.EEG1)
	}
	return filterStream(s, p.notch, p.eegBand)
}

// EMG filters every channel of each EMG role present in streams and
// computes the envelope of the configured role and channel: the absolute
// value of the filtered signal, smoothed by the envelope low-pass.
//
// A failing role does not stop the others. The result is never nil and
// the returned error is res.Err().
func (p *Processor) EMG(streams demux.Streams) (*EMGResult, error) {
	res := &EMGResult{
		Filtered: make(map[demux.Role]*Filtered, len(EMGRoles)),
		Failed:   make(map[demux.Role]error),
	}

	for _, role := range EMGRoles {
		s, ok := streams[role]
		if !ok {
			continue
		}
		f, err := filterStream(s, p.notch, p.emgBand)
		if err != nil {
			res.Failed[role] = err
			continue
		}
		res.Filtered[role] = f
	}

	f, ok := res.Filtered[demux.Role(p.cfg.EnvelopeRole)]
	if !ok {
		return res, res.Err()
	}
	x := f.Column(p.cfg.EnvelopeChannel)
	if x == nil {
		res.EnvelopeErr = fmt.Errorf("%w: %s has no column %q", ErrMissingStream, p.cfg.EnvelopeRole, p.cfg.EnvelopeChannel)
		return res, res.Err()
	}

	env, err := p.Envelope(x)
	if err != nil {
		res.EnvelopeErr = fmt.Errorf("envelope %s/%s: %w", p.cfg.EnvelopeRole, p.cfg.EnvelopeChannel, err)
		return res, res.Err()
	}
	res.Envelope = env
	res.Timestamps = f.Timestamps

	return res, nil
}

// Envelope rectifies an already band-passed signal and smooths it with
// the envelope low-pass.
func (p *Processor) Envelope(filtered []float64) ([]float64, error) {
	rect := make([]float64, len(filtered))
	for i, v := range filtered {
		rect[i] = math.Abs(v)
	}
	return p.envelope.Apply(rect)
}

// IMU returns the IMU streams of a trial unchanged.
func (p *Processor) IMU(streams demux.Streams) map[demux.Role]*demux.Stream {
	out := make(map[demux.Role]*demux.Stream)
	for role, s := range streams {
		if role.IsIMU() {
			out[role] = s
		}
	}
	return out
}

func filterStream(s *demux.Stream, specs ...bank.Spec) (*Filtered, error) {
	f := &Filtered{
		Role:       s.Role,
		Source:     append([]string(nil), s.Columns...),
		Columns:    make([]string, len(s.Columns)),
		Timestamps: append([]float64(nil), s.Timestamps...),
		Data:       make([][]float64, len(s.Columns)),
	}

	for i, col := range s.Columns {
		y, err := bank.Cascade(s.Data[i], specs...)
		if err != nil {
			return nil, fmt.Errorf("%s/%s: %w", s.Role, col, err)
		}
		f.Columns[i] = col + FilteredSuffix
		f.Data[i] = y
	}

	return f, nil
}
