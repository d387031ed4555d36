package demux

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-biosig/biosig/frame"
	"github.com/cwbudde/algo-biosig/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, rec *testutil.Recording) *frame.Frame {
	t.Helper()
	f, err := frame.Parse(strings.NewReader(rec.String()))
	require.NoError(t, err)
	return f
}

func TestSplitMissingDevice(t *testing.T) {
	rec := testutil.NewRecording()
	for i := 0; i < 5; i++ {
		rec.Sample(1, 10, float64(100+i))
		rec.Sample(2, 20, float64(100+i))
	}

	var logs bytes.Buffer
	d := New(DefaultRoleMap(), slog.New(slog.NewTextHandler(&logs, nil)))
	streams := d.Split(parse(t, rec))

	assert.Equal(t, []Role{EEG1, EMG2, IMU1, IMU2}, streams.Roles())
	assert.NotContains(t, streams, EMG3)
	assert.NotContains(t, streams, IMU3)

	assert.Contains(t, logs.String(), "device has no samples")
	assert.Contains(t, logs.String(), "device=3")
}

func TestSplitColumns(t *testing.T) {
	rec := testutil.NewRecording().
		Sample(1, 10, 1).
		Sample(2, 20, 1).
		Sample(3, 30, 1)

	streams := New(DefaultRoleMap(), slog.New(slog.DiscardHandler)).Split(parse(t, rec))
	require.Len(t, streams, 6)

	eeg := streams[EEG1]
	assert.Equal(t, KindEXG, eeg.Kind)
	assert.Equal(t, 1, eeg.Device)
	assert.Equal(t, []string{"Channel1", "Channel2", "Channel3", "Channel4", "Channel5", "Channel6"}, eeg.Columns)
	assert.Equal(t, []float64{15}, eeg.Column("Channel6"))
	assert.Nil(t, eeg.Column("Channel7"))

	emg := streams[EMG3]
	assert.Len(t, emg.Columns, 8)
	assert.Equal(t, []float64{37}, emg.Column("Channel8"))

	imu := streams[IMU2]
	assert.Equal(t, KindIMU, imu.Kind)
	assert.Equal(t, []string{"GyroX", "GyroY", "GyroZ", "AccX", "AccY", "AccZ"}, imu.Columns)
	assert.Equal(t, []float64{28}, imu.Column("GyroX"))
	assert.Equal(t, []float64{33}, imu.Column("AccZ"))
}

func TestSplitPartition(t *testing.T) {
	rec := testutil.NewRecording()
	want := map[int][]float64{}
	for i := 0; i < 30; i++ {
		dev := i%3 + 1
		ts := float64(1000 + i)
		rec.Sample(dev, float64(i), ts)
		want[dev] = append(want[dev], ts)
	}
	// Missing timestamp and an unmapped device.
	rec.Raw("2\t1\t2\t3\t4\t5\t6\t7\t8\t9\t10\t11\t12\t13\t14\t")
	rec.Sample(7, 0, 5000)

	f := parse(t, rec)
	streams := New(DefaultRoleMap(), slog.New(slog.DiscardHandler)).Split(f)

	seen := map[float64]Role{}
	total := 0
	for _, role := range []Role{EEG1, EMG2, EMG3} {
		s := streams[role]
		require.NotNil(t, s)
		assert.Equal(t, want[s.Device], s.Timestamps)
		for _, ts := range s.Timestamps {
			_, dup := seen[ts]
			assert.False(t, dup, "timestamp %v appears in more than one stream", ts)
			seen[ts] = role
		}
		total += s.Len()

		imu := streams[Role("IMU_"+string(role)[4:])]
		assert.Equal(t, s.Timestamps, imu.Timestamps)
		for _, col := range s.Data {
			assert.Len(t, col, s.Len())
		}
	}
	assert.Equal(t, 30, total)

	raw := 0
	for i := range f.Rows {
		if f.Rows[i].Device() == 2 {
			raw++
		}
	}
	assert.Less(t, streams[EMG2].Len(), raw)
}

func TestSplitKeepsNaNCells(t *testing.T) {
	rec := testutil.NewRecording().Raw("1\tbad\t2\t3\t4\t5\t6\t7\t8\t9\t10\t11\t12\t13\t14\t42")
	streams := New(DefaultRoleMap(), slog.New(slog.DiscardHandler)).Split(parse(t, rec))

	eeg := streams[EEG1]
	require.Equal(t, 1, eeg.Len())
	assert.True(t, math.IsNaN(eeg.Column("Channel1")[0]))
}

func TestSplitEmptyFrame(t *testing.T) {
	streams := New(DefaultRoleMap(), nil).Split(&frame.Frame{})
	assert.Empty(t, streams)
}

func TestRoleMap(t *testing.T) {
	m := NewRoleMap(map[int]DeviceRoles{
		5: {EXG: EMG2, IMU: IMU2},
		4: {EXG: EEG1, IMU: IMU1},
	})
	assert.Equal(t, []int{4, 5}, m.Devices())

	r, ok := m.Roles(5)
	require.True(t, ok)
	assert.Equal(t, EMG2, r.EXG)

	_, ok = m.Roles(1)
	assert.False(t, ok)
}

func TestRoleKind(t *testing.T) {
	assert.True(t, EEG1.IsEEG())
	assert.True(t, EMG3.IsEMG())
	assert.Equal(t, KindIMU, IMU3.Kind())
	assert.Equal(t, KindEXG, EMG2.Kind())
	assert.Equal(t, "imu", KindIMU.String())
}
