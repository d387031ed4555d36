package modality

import (
	"testing"

	"github.com/cwbudde/algo-biosig/biosig/demux"
	"github.com/cwbudde/algo-biosig/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectKeepsFirstDemos(t *testing.T) {
	p := newProcessor(t)
	sub := p.NewSubject("S04")

	const n = 600
	gen := func(c int) []float64 { return testutil.DeterministicNoise(int64(c), 1, n) }

	for _, trial := range []string{"S04_T01", "S04_T02"} {
		raw := newStream(demux.EEG1, channels(6), n, gen)
		f, err := p.EEG(raw)
		require.NoError(t, err)
		sub.AddEEG(trial, raw, f)

		sub.AddIMU(trial, map[demux.Role]*demux.Stream{
			demux.IMU1: newStream(demux.IMU1, []string{"GyroX", "AccX"}, 50, func(int) []float64 { return testutil.Ones(50) }),
		})
	}

	require.NotNil(t, sub.EEGDemo)
	assert.Equal(t, "S04_T01", sub.EEGDemo.Trial)
	assert.Equal(t, "Channel1", sub.EEGDemo.Channel)
	assert.Len(t, sub.EEGDemo.Raw, n)
	assert.Len(t, sub.EEGDemo.Filtered, n)
	assert.Equal(t, 0.0, sub.EEGDemo.Time[0])
	assert.InDelta(t, 0.002, sub.EEGDemo.Time[1], 1e-12)

	require.NotNil(t, sub.IMUDemo)
	assert.Equal(t, "S04_T01", sub.IMUDemo.Trial)
	assert.Equal(t, demux.IMU1, sub.IMUDemo.Role)
	assert.InDelta(t, 0.02, sub.IMUDemo.Time[1], 1e-12)
}

func TestSubjectIMUWrongRole(t *testing.T) {
	sub := newProcessor(t).NewSubject("S01")
	sub.AddIMU("S01_T01", map[demux.Role]*demux.Stream{
		demux.IMU2: newStream(demux.IMU2, []string{"GyroX"}, 10, func(int) []float64 { return testutil.Ones(10) }),
	})
	assert.Nil(t, sub.IMUDemo)
}

func TestSubjectEnvelopes(t *testing.T) {
	sub := newProcessor(t).NewSubject("S01")
	sub.AddEnvelope("S01_T01", ramp(980, 0))
	sub.AddEnvelope("S01_T02", nil)
	sub.AddEnvelope("S01_T03", ramp(1005, 0))

	require.Len(t, sub.Envelopes, 2)
	aligned := sub.Aligned()
	require.Len(t, aligned, 2)
	assert.Len(t, aligned[1], 980)

	tm := sub.EnvelopeTime(3)
	assert.InDeltaSlice(t, []float64{0, 0.002, 0.004}, tm, 1e-12)
}

func TestTimeAxis(t *testing.T) {
	assert.Nil(t, TimeAxis(nil, 500))
	assert.InDeltaSlice(t, []float64{0, 0.5, 1}, TimeAxis([]float64{10, 35, 60}, 50), 1e-12)
}
