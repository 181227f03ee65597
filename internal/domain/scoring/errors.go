package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrEmptyHistory = errors.New("empty rank history")
	ErrEmptyCohort  = errors.New("empty cohort")
)
