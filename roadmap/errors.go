package roadmap

import "errors"

var (
	// ErrPlannerRequired is returned when a topic planner is not provided.
	ErrPlannerRequired = errors.New("topic planner required")

	// ErrFinderRequired is returned when a resource finder is not provided.
	ErrFinderRequired = errors.New("resource finder required")

	// ErrEmptyGoal is returned when the learning goal is blank.
	ErrEmptyGoal = errors.New("learning goal is empty")

	// ErrNoTopics is returned when the planner produces no topics.
	ErrNoTopics = errors.New("planner returned no topics")
)
