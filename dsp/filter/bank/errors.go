package bank

import (
	"errors"
	"fmt"
)

// ErrFilterDesign matches every FilterDesignError via errors.Is.
var ErrFilterDesign = errors.New("filter design error")

// FilterDesignError reports invalid or infeasible filter parameters, or a
// sequence too short for the requested order.
type FilterDesignError struct {
	Filter string // "notch", "bandpass" or "lowpass"
	Reason string
	Err    error
}

func (e *FilterDesignError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Filter, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Filter, e.Reason)
}

// Is makes errors.Is(err, ErrFilterDesign) true.
func (e *FilterDesignError) Is(target error) bool {
	return target == ErrFilterDesign
}

func (e *FilterDesignError) Unwrap() error { return e.Err }

func designError(kind Kind, err error, format string, args ...any) error {
	return &FilterDesignError{Filter: kind.String(), Reason: fmt.Sprintf(format, args...), Err: err}
}
