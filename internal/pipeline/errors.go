package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration wraps every invalid-parameter failure. It is always
	// reported before any tile is sampled.
	ErrConfiguration = errors.New("configuration error")

	// ErrMissingInput is returned when a run is requested without an image.
	ErrMissingInput = errors.New("no image loaded")

	// ErrSuperseded is returned by a run that finished after a newer run or
	// parameter change started. Its output is discarded.
	ErrSuperseded = errors.New("run superseded by a newer request")
)

func configError(err error) error {
	return fmt.Errorf("%w: %w", ErrConfiguration, err)
}
