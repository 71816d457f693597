// Package errs defines the sentinel error taxonomy shared across the
// vectorization pipeline. Stage code wraps one of these with fmt.Errorf's
// %w verb so callers can classify a failure with errors.Is while still
// seeing the concrete detail in the message.
package errs

import "errors"

var (
	// ErrInputNotFound is returned when the source raster cannot be located or opened.
	ErrInputNotFound = errors.New("input not found")

	// ErrUnsupportedFormat is returned when the decoded image format has no registered decoder.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrWrongChannelCount is returned when a stage receives a raster with an
	// unexpected number of channels (e.g. a binary-only stage fed color data).
	ErrWrongChannelCount = errors.New("wrong channel count")

	// ErrDegenerateComponent is returned when a connected component collapses
	// to an empty or otherwise unusable shape (zero area, zero-length MBR).
	ErrDegenerateComponent = errors.New("degenerate component")
)
