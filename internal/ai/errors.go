package ai

import "errors"

var (
	// ErrUnavailable means the provider has no usable credential or model.
	ErrUnavailable = errors.New("ai provider unavailable")
	// ErrBatchFailed means no text in an encode batch produced a vector, so
	// there is no dimension to zero-fill against.
	ErrBatchFailed = errors.New("no text in batch could be embedded")
)
