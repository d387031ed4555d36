package demux

import (
	"log/slog"
	"math"

	"github.com/cwbudde/algo-biosig/biosig/frame"
	"github.com/cwbudde/algo-biosig/internal/logging"
)

// EEGChannels is the number of electrode channels wired on EEG devices.
const EEGChannels = 6

// Demultiplexer splits frames by device using a RoleMap.
type Demultiplexer struct {
	roles RoleMap
	log   *slog.Logger
}

// New returns a Demultiplexer. A nil logger falls back to slog.Default.
func New(roles RoleMap, log *slog.Logger) *Demultiplexer {
	return &Demultiplexer{roles: roles, log: logging.OrDefault(log)}
}

// Split partitions f by device identifier, in ascending device order.
//
// A mapped device with no rows is logged and omitted, so the result holds
// only roles whose device appeared. EEG roles carry Channel1..Channel6,
// EMG roles Channel1..Channel8 and IMU roles the six inertial axes. Rows
// with a missing timestamp are dropped from both streams of the device.
func (d *Demultiplexer) Split(f *frame.Frame) Streams {
	out := make(Streams)

	for _, id := range d.roles.devices {
		roles := d.roles.roles[id]

		rows := selectDevice(f, id)
		if len(rows) == 0 {
			d.log.Warn("device has no samples",
				slog.Int("device", id),
				slog.String("role", string(roles.EXG)),
			)
			continue
		}

		out[roles.EXG] = build(f, rows, id, roles.EXG, exgColumns(roles.EXG))
		out[roles.IMU] = build(f, rows, id, roles.IMU, frame.IMUColumns())
	}

	return out
}

func selectDevice(f *frame.Frame, id int) []int {
	var rows []int
	want := float64(id)
	for i := range f.Rows {
		if f.Rows[i][frame.DeviceNumber] == want {
			rows = append(rows, i)
		}
	}
	return rows
}

func exgColumns(role Role) []frame.Column {
	n := frame.NumChannels
	if role.IsEEG() {
		n = EEGChannels
	}
	cols := make([]frame.Column, n)
	for i := range cols {
		cols[i] = frame.ChannelColumn(i + 1)
	}
	return cols
}

func build(f *frame.Frame, rows []int, device int, role Role, cols []frame.Column) *Stream {
	s := &Stream{
		Role:       role,
		Kind:       role.Kind(),
		Device:     device,
		Columns:    make([]string, len(cols)),
		Timestamps: make([]float64, 0, len(rows)),
		Data:       make([][]float64, len(cols)),
	}
	for i, c := range cols {
		s.Columns[i] = c.String()
		s.Data[i] = make([]float64, 0, len(rows))
	}

	for _, r := range rows {
		ts := f.Rows[r][frame.Timestamp]
		if math.IsNaN(ts) {
			continue
		}
		s.Timestamps = append(s.Timestamps, ts)
		for i, c := range cols {
			s.Data[i] = append(s.Data[i], f.Rows[r][c])
		}
	}

	return s
}
