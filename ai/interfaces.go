package ai

import "context"

// Embedder maps text to a fixed-dimension vector for semantic similarity
// search. Implementations must be thread-safe for concurrent use and must
// apply the same output normalization for every call, so that ingest-time
// and query-time vectors are directly comparable.
type Embedder interface {
	// Embed generates the embedding for a single text string.
	// An empty input returns an empty vector and no error; callers must not
	// index the result. Every component of a non-empty result is finite.
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Generator produces text from a prompt. Implementations must be thread-safe
// for concurrent use.
type Generator interface {
	// Generate invokes the generative model once with bounded output length
	// and the given sampling temperature, returning only newly generated
	// text (never the echoed prompt). An empty result is not an error.
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder and Generator instances,
// ensuring they share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Generator returns the text generation service.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	Close() error
}
