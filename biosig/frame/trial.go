package frame

import (
	"path/filepath"
	"strings"
)

// Trial identifies one recording by subject and trial tokens.
type Trial struct {
	Subject string // e.g. "S04"
	Name    string // e.g. "T01"; empty for unconventional names
	ID      string // e.g. "S04_T01"
}

// TrialID derives the trial identifier from a raw filename: the first two
// underscore-separated tokens of the base name without extension, or the
// whole base name when there are fewer than two tokens.
//
//	S04_T01_29_11_25_19_27_24.csv -> S04_T01
//	weird                         -> weird
func TrialID(filename string) string {
	return ParseTrial(filename).ID
}

// ParseTrial is TrialID with the subject and trial tokens kept apart.
func ParseTrial(filename string) Trial {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	parts := strings.Split(base, "_")
	if len(parts) < 2 {
		return Trial{Subject: base, ID: base}
	}

	return Trial{
		Subject: parts[0],
		Name:    parts[1],
		ID:      parts[0] + "_" + parts[1],
	}
}
