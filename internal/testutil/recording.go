package testutil

import (
	"fmt"
	"strconv"
	"strings"
)

// Recording builds raw device-export text for parser and pipeline tests:
// metadata lines, a label row and tab-separated data rows.
type Recording struct {
	meta   []string
	header string
	rows   []string
}

// NewRecording returns a builder with one metadata line and the device's
// own label row.
func NewRecording() *Recording {
	return &Recording{
		meta:   []string{"ID: 1234"},
		header: "Dev\tCh1\tCh2\tCh3\tCh4\tCh5\tCh6\tCh7\tCh8\tGx\tGy\tGz\tAx\tAy\tAz\tTs",
	}
}

// Meta appends a metadata line; the "Device " prefix is added.
func (r *Recording) Meta(s string) *Recording {
	r.meta = append(r.meta, s)
	return r
}

// Header replaces the label row.
func (r *Recording) Header(s string) *Recording {
	r.header = s
	return r
}

// Sample appends one row for device with every channel and IMU axis set
// to value and the given timestamp.
func (r *Recording) Sample(device int, value, timestamp float64) *Recording {
	fields := make([]string, 0, 16)
	fields = append(fields, strconv.Itoa(device))
	for i := 0; i < 14; i++ {
		fields = append(fields, strconv.FormatFloat(value+float64(i), 'g', -1, 64))
	}
	fields = append(fields, strconv.FormatFloat(timestamp, 'g', -1, 64))
	r.rows = append(r.rows, strings.Join(fields, "\t"))
	return r
}

// Raw appends a literal data line.
func (r *Recording) Raw(line string) *Recording {
	r.rows = append(r.rows, line)
	return r
}

// String renders the recording text.
func (r *Recording) String() string {
	var b strings.Builder
	for _, m := range r.meta {
		fmt.Fprintf(&b, "Device %s\n", m)
	}
	b.WriteString(r.header)
	b.WriteByte('\n')
	for _, row := range r.rows {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	return b.String()
}
