package frame

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// MetadataPrefix marks device metadata lines preceding the label row.
const MetadataPrefix = "Device "

// ErrParse matches every ParseError via errors.Is.
var ErrParse = errors.New("parse error")

// ParseError reports a raw file that cannot be turned into a table.
type ParseError struct {
	Path   string // empty when parsing from a reader
	Line   int    // 1-based, 0 when not tied to a line
	Reason string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse")
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

// Is makes errors.Is(err, ErrParse) true.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

type parseConfig struct {
	strict bool
}

// Option configures Parse.
type Option func(*parseConfig)

// WithStrictColumns rejects data rows whose field count differs from the
// canonical header instead of padding or truncating them.
func WithStrictColumns() Option {
	return func(cfg *parseConfig) { cfg.strict = true }
}

// Parse reads a raw export from r.
//
// Leading "Device " lines are skipped and the next line is taken as the
// label row and replaced by the canonical header. Every cell is coerced
// to float64 with NaN for anything unparseable; rows that end up entirely
// NaN are dropped. By default rows with fewer fields are padded with NaN
// and surplus fields are ignored.
func Parse(r io.Reader, opts ...Option) (*Frame, error) {
	cfg := parseConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading raw recording: %w", err)
	}

	lines := strings.Split(string(data), "\n")

	start := 0
	for start < len(lines) && strings.HasPrefix(lines[start], MetadataPrefix) {
		start++
	}
	if start >= len(lines) || (start == len(lines)-1 && strings.TrimSpace(lines[start]) == "") {
		return nil, &ParseError{Reason: "no header line found"}
	}

	f := &Frame{Rows: make([]Sample, 0, len(lines)-start-1)}
	for i := start + 1; i < len(lines); i++ {
		line := strings.TrimSuffix(lines[i], "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if cfg.strict && len(fields) != NumColumns {
			return nil, &ParseError{
				Line:   i + 1,
				Reason: fmt.Sprintf("expected %d fields, got %d", NumColumns, len(fields)),
			}
		}

		var s Sample
		for c := range s {
			s[c] = math.NaN()
			if c < len(fields) {
				s[c] = coerce(fields[c])
			}
		}
		if s.Empty() {
			continue
		}
		f.Rows = append(f.Rows, s)
	}

	return f, nil
}

// ParseFile opens path and parses it. ParseErrors carry the path.
func ParseFile(path string, opts ...Option) (*Frame, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening raw recording: %w", err)
	}
	defer fh.Close()

	f, err := Parse(fh, opts...)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}

	return f, nil
}

func coerce(field string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
