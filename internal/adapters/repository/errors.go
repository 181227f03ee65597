package repository

import "errors"

// Sentinel kinds for record store errors.
var (
	ErrUnknownPlayer = errors.New("unknown player")
	ErrEmptyHistory  = errors.New("empty rank history")
	ErrHistoryNotSet = errors.New("history not set")
	ErrNotScored     = errors.New("player not scored")
)
