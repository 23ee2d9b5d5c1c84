package curve

import "errors"

var (
	// ErrMissingHeader is returned when no line starts with the GraphicEQ token
	ErrMissingHeader = errors.New("no GraphicEQ line in document")
	// ErrNoSamples is returned when the GraphicEQ line has no valid pairs
	ErrNoSamples = errors.New("GraphicEQ line contains no valid frequency/gain pairs")
)
