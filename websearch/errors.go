package websearch

import "errors"

var (
	// ErrUnexpectedStatus indicates the search endpoint returned a non-200 status.
	ErrUnexpectedStatus = errors.New("unexpected status from search endpoint")

	// ErrAPIKeyRequired indicates a provider that needs an API key was built without one.
	ErrAPIKeyRequired = errors.New("search api key is required")

	// ErrUnknownProvider indicates a provider name that is not supported.
	ErrUnknownProvider = errors.New("unknown web search provider")
)
