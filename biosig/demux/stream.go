package demux

import "sort"

// Stream is one modality of one device over one trial. Data holds one
// slice per entry in Columns, each as long as Timestamps.
type Stream struct {
	Role       Role
	Kind       Kind
	Device     int
	Columns    []string
	Timestamps []float64
	Data       [][]float64
}

// Len returns the number of samples.
func (s *Stream) Len() int { return len(s.Timestamps) }

// Column returns the samples of the named column, or nil.
func (s *Stream) Column(name string) []float64 {
	for i, c := range s.Columns {
		if c == name {
			return s.Data[i]
		}
	}
	return nil
}

// Streams maps roles to the streams produced for one trial.
type Streams map[Role]*Stream

// Roles returns the present roles in sorted order.
func (s Streams) Roles() []Role {
	out := make([]Role, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
