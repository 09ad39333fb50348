package models

import "errors"

// Custom errors
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrCircuitNotFound    = errors.New("circuit not found")
	ErrNoHistoricalData   = errors.New("no historical results provided")
	ErrRatingsUnavailable = errors.New("ratings unavailable")
)
