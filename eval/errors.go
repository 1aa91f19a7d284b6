package eval

import "errors"

var (
	// ErrNegativeGrade is returned when a graded judgment carries a grade below zero.
	ErrNegativeGrade = errors.New("relevance grade must not be negative")

	// ErrEmptyQuery is returned when an evaluation case has no query.
	ErrEmptyQuery = errors.New("evaluation case has no query")

	// ErrAmbiguousCase is returned when a case lists both binary and graded judgments.
	ErrAmbiguousCase = errors.New("evaluation case has both relevant_resource_ids and relevant_resources")

	// ErrRetrieverRequired is returned when a harness is built without a retriever.
	ErrRetrieverRequired = errors.New("retriever required")
)
