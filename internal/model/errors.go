package model

import "errors"

// Common errors used across the application
var (
	// Grid errors
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	ErrOutOfBounds       = errors.New("position out of bounds")

	// Turn errors
	ErrInvalidPosition = errors.New("invalid grid position")
	ErrNotAdjacent     = errors.New("cells are not adjacent")
	ErrNoMatch         = errors.New("no match")
	ErrGridNotStable   = errors.New("could not clean the grid of its matches")
	ErrNoMovesLeft     = errors.New("no valid swap left on the grid")

	// Input errors
	ErrNonASCIIKey     = errors.New("non-ASCII key")
	ErrUnrecognizedKey = errors.New("unrecognized key")

	// Summary errors
	ErrSummaryNotFound = errors.New("summary not found")
)
