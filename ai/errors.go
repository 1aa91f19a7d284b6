package ai

import "errors"

var (
	// ErrUnknownBackend indicates the configured backend is not supported.
	ErrUnknownBackend = errors.New("unknown ai backend")

	// ErrEmptyResponse indicates the model returned no usable output.
	ErrEmptyResponse = errors.New("empty model response")

	// ErrMalformedResponse indicates the model output could not be decoded.
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrEmbeddingCount indicates a batch embedding returned the wrong number of vectors.
	ErrEmbeddingCount = errors.New("embedding count mismatch")
)
