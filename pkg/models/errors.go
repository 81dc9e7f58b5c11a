package models

import "errors"

// Engine error taxonomy. All of these are non-fatal: callers drop the
// offending quote or null the dependent fields and keep computing.
var (
	// ErrInvalidOdds marks American odds of zero or magnitude below 100.
	ErrInvalidOdds = errors.New("invalid american odds")

	// ErrMissingSide marks a two-sided computation attempted with zero
	// valid quotes on one side.
	ErrMissingSide = errors.New("missing market side")

	// ErrInsufficientBooks marks an EV baseline that could not exclude
	// the evaluated book because too few other books exist.
	ErrInsufficientBooks = errors.New("insufficient independent books")

	// ErrProviderUnavailable marks a book whose fetch failed or timed
	// out; the book is excluded from the current computation.
	ErrProviderUnavailable = errors.New("quote provider unavailable")

	// ErrMalformedHistory marks a hit-rate profile with no usable
	// recent games or histogram for the requested window.
	ErrMalformedHistory = errors.New("malformed hit-rate history")
)
