package roadmapper

import "errors"

var (
	// ErrConfigRequired is returned when Open is called without a configuration.
	ErrConfigRequired = errors.New("configuration required")

	// ErrReembedUnsupported is returned when the index cannot be read back for reembedding.
	ErrReembedUnsupported = errors.New("index does not support reembedding")

	// ErrEngineClosed is returned when a closed engine is used.
	ErrEngineClosed = errors.New("engine is closed")
)
