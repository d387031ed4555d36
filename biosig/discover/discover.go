// Package discover walks the on-disk data layout: one directory per
// subject under the data root, each holding raw/ recordings and optional
// triggers/, and the structured by_device/ tree the split step writes.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// SubjectPrefix starts every subject directory name.
	SubjectPrefix = "S"

	rawDir      = "raw"
	triggersDir = "triggers"
	byDeviceDir = "by_device"
	rawSuffix   = "_raw.csv"
)

// Subjects returns the sorted subject directories under root.
func Subjects(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), SubjectPrefix) {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

// Paths are the input directories of one subject.
type Paths struct {
	Root     string
	Raw      string
	Triggers string
}

// SubjectPaths returns the input directories of subject under root.
func SubjectPaths(root, subject string) Paths {
	dir := filepath.Join(root, subject)
	return Paths{
		Root:     dir,
		Raw:      filepath.Join(dir, rawDir),
		Triggers: filepath.Join(dir, triggersDir),
	}
}

// TrialFiles lists a subject's raw recordings and trigger files.
type TrialFiles struct {
	Raw      []string
	Triggers []string
}

// Trials finds raw/{subject}_T*.csv and triggers/{subject}_T*triggers*.csv.
// Trigger-named files are never treated as recordings. Missing
// directories yield empty lists.
func Trials(root, subject string) (TrialFiles, error) {
	p := SubjectPaths(root, subject)

	raw, err := filepath.Glob(filepath.Join(p.Raw, subject+"_T*.csv"))
	if err != nil {
		return TrialFiles{}, fmt.Errorf("globbing raw trials: %w", err)
	}
	trig, err := filepath.Glob(filepath.Join(p.Triggers, subject+"_T*triggers*.csv"))
	if err != nil {
		return TrialFiles{}, fmt.Errorf("globbing trigger files: %w", err)
	}

	out := TrialFiles{Triggers: trig}
	for _, f := range raw {
		if !strings.Contains(filepath.Base(f), "triggers") {
			out.Raw = append(out.Raw, f)
		}
	}
	sort.Strings(out.Raw)
	sort.Strings(out.Triggers)

	return out, nil
}

// StructuredDir is where split streams of subject are written.
func StructuredDir(root, subject string) string {
	return filepath.Join(root, subject, byDeviceDir)
}

// PreprocessedDir is where filtered tables and plot data of subject are
// written.
func PreprocessedDir(root, subject string) string {
	return filepath.Join(root, subject)
}

// StructuredTrials returns the sorted trial IDs that have a split stream
// of role in dir, e.g. S04_T01 for S04_T01_EEG_1_raw.csv.
func StructuredTrials(dir, role string) ([]string, error) {
	suffix := "_" + role + rawSuffix
	matches, err := filepath.Glob(filepath.Join(dir, "*"+suffix))
	if err != nil {
		return nil, fmt.Errorf("globbing structured streams: %w", err)
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.TrimSuffix(filepath.Base(m), suffix))
	}
	sort.Strings(out)
	return out, nil
}
