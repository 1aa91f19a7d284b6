// Package roadmapper wires the retrieval stack together.
//
// An Engine owns the vector index, the AI provider and the web search
// provider built from a config.Config, and hands out the components that use
// them: resource finders, roadmap assemblers, ingestion pipelines and
// reembedders. Construction is explicit; WarmUp checks the collaborators
// eagerly instead of on first use.
package roadmapper
