package persist

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-biosig/biosig/demux"
	"github.com/cwbudde/algo-biosig/biosig/modality"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, "S04_T01_EEG_1_raw.csv", RawName("S04_T01", demux.EEG1))
	assert.Equal(t, "S04_T01_EMG_2_filtered.csv", FilteredName("S04_T01", demux.EMG2))
	assert.Equal(t, "S04_T01_EMG_2_envelope.csv", EnvelopeName("S04_T01", demux.EMG2))
}

func TestWriteReadStream(t *testing.T) {
	s := &demux.Stream{
		Role:       demux.IMU3,
		Kind:       demux.KindIMU,
		Device:     3,
		Columns:    []string{"GyroX", "AccZ"},
		Timestamps: []float64{100, 101, 102},
		Data: [][]float64{
			{0.5, math.NaN(), -1e-7},
			{9.81, 9.8, 1234567.25},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteStream(&buf, s))
	assert.Equal(t, "Timestamp,GyroX,AccZ\n100,0.5,9.81\n101,,9.8\n102,-1e-07,1234567.25\n", buf.String())

	got, err := ReadStream(&buf, demux.IMU3)
	require.NoError(t, err)
	assert.Equal(t, demux.KindIMU, got.Kind)
	assert.Equal(t, 3, got.Device)
	assert.Equal(t, s.Columns, got.Columns)
	assert.Equal(t, s.Timestamps, got.Timestamps)
	assert.True(t, math.IsNaN(got.Data[0][1]))
	assert.Equal(t, s.Data[1], got.Data[1])
}

func TestWriteFiltered(t *testing.T) {
	f := &modality.Filtered{
		Role:       demux.EMG2,
		Source:     []string{"Channel1"},
		Columns:    []string{"Channel1_filtered"},
		Timestamps: []float64{1, 2},
		Data:       [][]float64{{0.25, -0.25}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteFiltered(&buf, f))
	assert.Equal(t, "Timestamp,Channel1_filtered\n1,0.25\n2,-0.25\n", buf.String())
}

func TestWriteSeriesMismatch(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSeries(&buf, []string{"t", "x"}, []float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, ErrFormat)

	err = WriteSeries(&buf, []string{"t"}, []float64{1}, []float64{1})
	assert.ErrorIs(t, err, ErrFormat)
}

func TestReadStreamErrors(t *testing.T) {
	_, err := ReadStream(strings.NewReader(""), demux.EEG1)
	assert.ErrorIs(t, err, ErrFormat)

	_, err = ReadStream(strings.NewReader("Time,Channel1\n1,2\n"), demux.EEG1)
	assert.ErrorIs(t, err, ErrFormat)

	_, err = ReadStream(strings.NewReader("Timestamp,Channel1\n1,2,3\n"), demux.EEG1)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestReadStreamHeaderOnly(t *testing.T) {
	s, err := ReadStream(strings.NewReader("Timestamp,Channel1\n"), demux.EEG1)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 1, s.Device)
}
