package pipeline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Step is one selectable batch step.
type Step int

const (
	StepAll        Step = 0
	StepSplit      Step = 1
	StepPreprocess Step = 2
	StepVisualize  Step = 3
)

func (s Step) String() string {
	switch s {
	case StepAll:
		return "all"
	case StepSplit:
		return "split"
	case StepPreprocess:
		return "preprocess"
	case StepVisualize:
		return "visualize"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// ErrStep is returned for unknown step selections.
var ErrStep = errors.New("pipeline: invalid step")

// ParseSteps parses a comma-separated selection such as "1,2" or "0".
func ParseSteps(s string) ([]Step, error) {
	var out []Step
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n < int(StepAll) || n > int(StepVisualize) {
			return nil, fmt.Errorf("%w: %q", ErrStep, tok)
		}
		out = append(out, Step(n))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty selection", ErrStep)
	}
	return out, nil
}

// Selection is the resolved set of steps to run.
type Selection struct {
	Split, Preprocess, Visualize bool
}

// Select resolves steps; StepAll enables everything.
func Select(steps []Step) Selection {
	var sel Selection
	for _, s := range steps {
		switch s {
		case StepAll:
			return Selection{Split: true, Preprocess: true, Visualize: true}
		case StepSplit:
			sel.Split = true
		case StepPreprocess:
			sel.Preprocess = true
		case StepVisualize:
			sel.Visualize = true
		}
	}
	return sel
}
