package pipe

import "errors"

var (
	// ErrAlreadyStarted is returned when Pipe or ApplyMiddleware is called
	// on a pipe that has already been started.
	ErrAlreadyStarted = errors.New("pipe: already started")

	// ErrShutdownDropped is passed to the ErrorHandler for an input whose
	// outputs could not be forwarded because of a forced shutdown.
	ErrShutdownDropped = errors.New("pipe: dropped on shutdown")
)
