// Package persist reads and writes the comma-separated tables produced by
// the pipeline: split raw streams, filtered streams and plot series.
package persist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-biosig/biosig/demux"
	"github.com/cwbudde/algo-biosig/biosig/modality"
)

// TimestampColumn is the first column of every stream table.
const TimestampColumn = "Timestamp"

// ErrFormat is returned for tables that do not match the stream layout.
var ErrFormat = errors.New("persist: malformed table")

// RawName returns the file name of a split stream, e.g. S04_T01_EEG_1_raw.csv.
func RawName(trial string, role demux.Role) string {
	return fmt.Sprintf("%s_%s_raw.csv", trial, role)
}

// FilteredName returns the file name of a filtered stream.
func FilteredName(trial string, role demux.Role) string {
	return fmt.Sprintf("%s_%s_filtered.csv", trial, role)
}

// EnvelopeName returns the file name of an EMG envelope table.
func EnvelopeName(trial string, role demux.Role) string {
	return fmt.Sprintf("%s_%s_envelope.csv", trial, role)
}

// WriteStream writes s as Timestamp plus its columns.
func WriteStream(w io.Writer, s *demux.Stream) error {
	return WriteTable(w, s.Timestamps, s.Columns, s.Data)
}

// WriteFiltered writes f as Timestamp plus one {col}_filtered column per
// processed channel.
func WriteFiltered(w io.Writer, f *modality.Filtered) error {
	return WriteTable(w, f.Timestamps, f.Columns, f.Data)
}

// WriteTable writes a Timestamp column followed by cols. Every data slice
// must be as long as ts. NaN cells are written empty.
func WriteTable(w io.Writer, ts []float64, cols []string, data [][]float64) error {
	header := append([]string{TimestampColumn}, cols...)
	return WriteSeries(w, header, append([][]float64{ts}, data...)...)
}

// WriteSeries writes equally long columns under header.
func WriteSeries(w io.Writer, header []string, cols ...[]float64) error {
	if len(header) != len(cols) {
		return fmt.Errorf("%w: %d header names for %d columns", ErrFormat, len(header), len(cols))
	}
	n := 0
	if len(cols) > 0 {
		n = len(cols[0])
	}
	for i, c := range cols {
		if len(c) != n {
			return fmt.Errorf("%w: column %q has %d rows, want %d", ErrFormat, header[i], len(c), n)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	record := make([]string, len(cols))
	for row := 0; row < n; row++ {
		for i, c := range cols {
			record[i] = formatCell(c[row])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row %d: %w", row, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadStream reads a stream table written by WriteStream. The device is
// taken from the role's numeric suffix.
func ReadStream(r io.Reader, role demux.Role) (*demux.Stream, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrFormat, err)
	}
	if len(header) == 0 || strings.TrimPrefix(header[0], "\ufeff") != TimestampColumn {
		return nil, fmt.Errorf("%w: first column must be %s", ErrFormat, TimestampColumn)
	}

	s := &demux.Stream{
		Role:    role,
		Kind:    role.Kind(),
		Device:  deviceOf(role),
		Columns: append([]string(nil), header[1:]...),
		Data:    make([][]float64, len(header)-1),
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrFormat, line, err)
		}
		s.Timestamps = append(s.Timestamps, parseCell(rec[0]))
		for i := range s.Data {
			s.Data[i] = append(s.Data[i], parseCell(rec[i+1]))
		}
	}

	return s, nil
}

func deviceOf(role demux.Role) int {
	str := string(role)
	i := strings.LastIndexByte(str, '_')
	if i < 0 {
		return 0
	}
	n, err := strconv.Atoi(str[i+1:])
	if err != nil {
		return 0
	}
	return n
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	if a := math.Abs(v); a != 0 && (a < 1e-4 || a >= 1e21) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseCell(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
