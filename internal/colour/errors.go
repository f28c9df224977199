package colour

import "errors"

// Configuration errors reported by the reduction strategies.
var (
	ErrEmptyPalette    = errors.New("palette has no colours")
	ErrQuantumStep     = errors.New("quantum step must be at least 1")
	ErrLevel           = errors.New("colour level out of range")
	ErrUnknownPalette  = errors.New("unknown palette")
	ErrUnknownStrategy = errors.New("unknown reduction strategy")
	ErrUnknownMetric   = errors.New("unknown distance metric")
	ErrInvalidColour   = errors.New("invalid colour")
)
