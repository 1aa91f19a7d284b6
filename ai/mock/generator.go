package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/roadmapper/core"
)

// MockTextGenerator is a test double for ai.TextGenerator.
type MockTextGenerator struct {
	// GenerateTextFunc is called by GenerateText if set.
	GenerateTextFunc func(ctx context.Context, prompt string) (string, error)

	mu      sync.Mutex
	prompts []string
}

// NewMockTextGenerator creates a mock generator with default behavior.
func NewMockTextGenerator() *MockTextGenerator {
	return &MockTextGenerator{}
}

// GenerateText returns GenerateTextFunc's answer, or by default three
// comma-separated variants built from the prompt's last line.
func (m *MockTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, prompt)
	}

	lines := strings.Split(strings.TrimSpace(prompt), "\n")
	q := strings.TrimSpace(lines[len(lines)-1])
	return q + " tutorial, " + q + " course, introduction to " + q, nil
}

// CallCount returns the number of times GenerateText was called.
func (m *MockTextGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// Prompts returns a copy of the prompts received so far.
func (m *MockTextGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// Reset clears recorded prompts and custom functions.
func (m *MockTextGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = nil
	m.GenerateTextFunc = nil
}

// MockTopicPlanner is a test double for ai.TopicPlanner.
type MockTopicPlanner struct {
	// PlanTopicsFunc is called by PlanTopics if set.
	PlanTopicsFunc func(ctx context.Context, goal string) ([]core.TopicNode, error)

	mu        sync.Mutex
	callCount int
}

// NewMockTopicPlanner creates a mock planner with default behavior.
func NewMockTopicPlanner() *MockTopicPlanner {
	return &MockTopicPlanner{}
}

// PlanTopics returns PlanTopicsFunc's answer, or by default a three-node chain.
func (m *MockTopicPlanner) PlanTopics(ctx context.Context, goal string) ([]core.TopicNode, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.PlanTopicsFunc != nil {
		return m.PlanTopicsFunc(ctx, goal)
	}

	return []core.TopicNode{
		{ID: "fundamentals", Title: goal + " Fundamentals", Description: "Core ideas", Prerequisites: []string{}},
		{ID: "practice", Title: goal + " in Practice", Description: "Hands-on work", Prerequisites: []string{"fundamentals"}},
		{ID: "advanced", Title: "Advanced " + goal, Description: "Deeper topics", Prerequisites: []string{"practice"}},
	}, nil
}

// CallCount returns the number of times PlanTopics was called.
func (m *MockTopicPlanner) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockTopicPlanner) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.PlanTopicsFunc = nil
}
