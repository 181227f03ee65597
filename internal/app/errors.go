package service

import "errors"

// Sentinel kinds for run errors.
var (
	ErrNoSource     = errors.New("no rank history source configured")
	ErrPlayerFailed = errors.New("player processing failed")
)
