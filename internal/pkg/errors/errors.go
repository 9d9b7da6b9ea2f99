package errors

import "errors"

var (
	// ErrDataLoad means the corpus could not be fetched or is structurally
	// invalid (missing required column). Fatal for serving queries.
	ErrDataLoad = errors.New("corpus load failed")
	// ErrIndexUnavailable means the embedding provider could not produce a
	// single usable vector for the corpus, so semantic ranking is off the
	// table for this configuration.
	ErrIndexUnavailable = errors.New("embedding index unavailable")
	// ErrInvalid marks malformed request input.
	ErrInvalid = errors.New("invalid")
)

func IsDataLoad(err error) bool {
	return errors.Is(err, ErrDataLoad)
}

func IsIndexUnavailable(err error) bool {
	return errors.Is(err, ErrIndexUnavailable)
}
