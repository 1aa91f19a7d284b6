// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mock

import "github.com/poiesic/roadmapper/ai"

// MockProvider is a test double for ai.AIProvider.
// It aggregates mock embedder, generator and planner instances.
type MockProvider struct {
	embedder  *MockEmbedder
	generator *MockTextGenerator
	planner   *MockTopicPlanner
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.AIProvider interface for consistency with production constructors.
// Use GetMockEmbedder()/GetMockGenerator()/GetMockPlanner() to access
// concrete types for test assertions.
func NewMockProvider() ai.AIProvider {
	return &MockProvider{
		embedder:  NewMockEmbedder(),
		generator: NewMockTextGenerator(),
		planner:   NewMockTopicPlanner(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// Nil services are replaced with defaults.
func NewMockProviderWithServices(embedder *MockEmbedder, generator *MockTextGenerator, planner *MockTopicPlanner) ai.AIProvider {
	if embedder == nil {
		embedder = NewMockEmbedder()
	}
	if generator == nil {
		generator = NewMockTextGenerator()
	}
	if planner == nil {
		planner = NewMockTopicPlanner()
	}
	return &MockProvider{
		embedder:  embedder,
		generator: generator,
		planner:   planner,
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// TextGenerator returns the mock text generator.
func (p *MockProvider) TextGenerator() ai.TextGenerator {
	return p.generator
}

// TopicPlanner returns the mock topic planner.
func (p *MockProvider) TopicPlanner() ai.TopicPlanner {
	return p.planner
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockGenerator returns the underlying mock generator for test assertions.
func (p *MockProvider) GetMockGenerator() *MockTextGenerator {
	return p.generator
}

// GetMockPlanner returns the underlying mock planner for test assertions.
func (p *MockProvider) GetMockPlanner() *MockTopicPlanner {
	return p.planner
}
