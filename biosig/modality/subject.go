package modality

import (
	"github.com/cwbudde/algo-biosig/biosig/demux"
)

// Demo is one channel kept for plotting: raw and filtered samples over a
// time axis in seconds from the first sample.
type Demo struct {
	Trial    string
	Channel  string
	Time     []float64
	Raw      []float64
	Filtered []float64
}

// IMUDemo is the representative IMU trial kept for plotting.
type IMUDemo struct {
	Trial  string
	Role   demux.Role
	Time   []float64
	Stream *demux.Stream
}

// Envelope is one trial's envelope of the designated EMG channel.
type Envelope struct {
	Trial  string
	Values []float64
}

// Subject accumulates the per-trial products that only make sense across
// a subject's trials: the EEG and IMU demo trials and the envelope stack.
// The first trial offered for each demo wins.
type Subject struct {
	ID        string
	EEGDemo   *Demo
	IMUDemo   *IMUDemo
	Envelopes []Envelope

	eegRate float64
	imuRate float64
	channel string
	imuRole demux.Role
}

// NewSubject returns an empty accumulator for subject id using the
// processor's demo designations and sample rates.
func (p *Processor) NewSubject(id string) *Subject {
	return &Subject{
		ID:      id,
		eegRate: p.cfg.SampleRate,
		imuRate: p.cfg.IMUSampleRate,
		channel: p.cfg.EEGDemoChannel,
		imuRole: demux.Role(p.cfg.IMUDemoRole),
	}
}

// AddEEG keeps the demo channel of the first EEG trial offered.
func (s *Subject) AddEEG(trial string, raw *demux.Stream, filtered *Filtered) {
	if s.EEGDemo != nil || raw == nil || filtered == nil {
		return
	}
	x := raw.Column(s.channel)
	y := filtered.Column(s.channel)
	if x == nil || y == nil {
		return
	}
	s.EEGDemo = &Demo{
		Trial:    trial,
		Channel:  s.channel,
		Time:     TimeAxis(raw.Timestamps, s.eegRate),
		Raw:      x,
		Filtered: y,
	}
}

// AddEnvelope appends one trial's envelope. Nil envelopes are ignored.
func (s *Subject) AddEnvelope(trial string, env []float64) {
	if env == nil {
		return
	}
	s.Envelopes = append(s.Envelopes, Envelope{Trial: trial, Values: env})
}

// AddIMU keeps the designated IMU stream of the first trial that has it.
func (s *Subject) AddIMU(trial string, streams map[demux.Role]*demux.Stream) {
	if s.IMUDemo != nil {
		return
	}
	st, ok := streams[s.imuRole]
	if !ok || st.Len() == 0 {
		return
	}
	s.IMUDemo = &IMUDemo{
		Trial:  trial,
		Role:   s.imuRole,
		Time:   TimeAxis(st.Timestamps, s.imuRate),
		Stream: st,
	}
}

// Aligned returns the envelope stack truncated to the shortest trial.
func (s *Subject) Aligned() [][]float64 {
	envs := make([][]float64, len(s.Envelopes))
	for i, e := range s.Envelopes {
		envs[i] = e.Values
	}
	return AlignEnvelopes(envs)
}

// EnvelopeTime returns the time axis of an aligned stack of n samples.
func (s *Subject) EnvelopeTime(n int) []float64 {
	t := make([]float64, n)
	for i := range t {
		t[i] = float64(i) / s.eegRate
	}
	return t
}

// TimeAxis converts device ticks to seconds from the first tick.
func TimeAxis(ts []float64, rate float64) []float64 {
	if len(ts) == 0 {
		return nil
	}
	t := make([]float64, len(ts))
	for i, v := range ts {
		t[i] = (v - ts[0]) / rate
	}
	return t
}
