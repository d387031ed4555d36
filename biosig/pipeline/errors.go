package pipeline

import "fmt"

// Stage names a pipeline stage in errors, logs and the ledger.
type Stage string

const (
	StageSplit      Stage = "split"
	StagePreprocess Stage = "preprocess"
	StageVisualize  Stage = "visualize"
)

// StageError identifies the subject, trial and stage of a failure.
// Modality names the stream role when only that modality of the trial
// failed, e.g. "EEG_1"; it is empty for whole-trial failures.
type StageError struct {
	Subject  string
	Trial    string
	Stage    Stage
	Modality string
	Err      error
}

func (e *StageError) Error() string {
	if e.Modality != "" {
		return fmt.Sprintf("%s %s %s %s: %v", e.Stage, e.Subject, e.Trial, e.Modality, e.Err)
	}
	return fmt.Sprintf("%s %s %s: %v", e.Stage, e.Subject, e.Trial, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
