// Package gemini provides AI service implementations backed by the Gemini API
// through google.golang.org/genai.
//
// # Usage
//
//	config := ai.NewConfig(
//	    ai.WithBackend(ai.BackendGemini),
//	    ai.WithAPIKey(os.Getenv("GEMINI_API_KEY")),
//	    ai.WithEmbeddingModel("text-embedding-004"),
//	    ai.WithGeneratorModel("gemini-2.0-flash"),
//	)
//
//	provider, err := gemini.NewProvider(ctx, config)
package gemini
