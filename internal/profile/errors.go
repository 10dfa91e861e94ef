package profile

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset is returned when a table has zero rows or zero
// columns. There is nothing to profile, so the caller gets an error
// rather than an empty profile.
var ErrEmptyDataset = errors.New("dataset has no rows or columns")

// ProfilingError records a column that could not be read. The profiler
// absorbs it by marking the column degraded instead of aborting.
type ProfilingError struct {
	Column string
	Err    error
}

func (e *ProfilingError) Error() string {
	return fmt.Sprintf("failed to profile column %q: %v", e.Column, e.Err)
}

func (e *ProfilingError) Unwrap() error { return e.Err }
