package model

import "errors"

// Error taxonomy shared across the engine. Callers wrap these with
// fmt.Errorf("...: %w", err) and test with errors.Is.
var (
	// ErrNoDataAvailable means no source criteria resolved to a result set.
	// Rendered as an empty state, not as an error.
	ErrNoDataAvailable = errors.New("no data available")

	// ErrFetchFailure is a transport or storage failure while fetching.
	ErrFetchFailure = errors.New("fetch failed")

	// ErrInvalidPayload means a tree payload lacks its root word.
	ErrInvalidPayload = errors.New("invalid tree payload")

	// ErrRenderFailed means drawing the tree panicked and was recovered.
	ErrRenderFailed = errors.New("render failed")
)
