package source

import "errors"

var (
	// ErrSubmission is returned by a Gateway that could not hand a number to
	// the pipeline.
	ErrSubmission = errors.New("source: submission failed")
	// ErrAlreadyStarted is returned when a source is started twice.
	ErrAlreadyStarted = errors.New("source: already started")
)
