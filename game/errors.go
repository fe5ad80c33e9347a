package game

import "errors"

var (
	// ErrInvalidConfig is returned before any actor is created.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrSplitOutcome is returned by Play when actors disagree on the winner.
	ErrSplitOutcome = errors.New("actors disagree on the outcome")
)
