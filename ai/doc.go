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


// Package ai provides abstractions for AI services used in roadmapper.
//
// This package defines interfaces for embeddings, single-prompt text
// generation and topic planning, so retrieval and roadmap assembly depend on
// abstractions rather than concrete model clients.
//
//   - Embedder: Generates vector embeddings from text
//   - TextGenerator: Answers a single prompt with free text (query rewording)
//   - TopicPlanner: Turns a learning goal into topic nodes
//   - AIProvider: Aggregates the services for convenient initialization
//
// # Implementation Packages
//
//   - ai/openai: OpenAI-compatible APIs through langchaingo
//   - ai/gemini: the Gemini API through google.golang.org/genai
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, gemini.NewProvider, etc.) return
// INTERFACE types. Test utility constructors (mock.NewMockEmbedder, ...)
// return CONCRETE types so tests can inject behavior and read call counts.
//
// # Usage Example
//
//	config := ai.DefaultConfig()
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vec, err := provider.Embedder().EmbedText(ctx, "goroutines and channels")
//	nodes, err := provider.TopicPlanner().PlanTopics(ctx, "Learn Go")
package ai
