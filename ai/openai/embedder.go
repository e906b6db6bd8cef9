package openai

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/poiesic/curio/ai"
	"github.com/poiesic/curio/core"
)

// Embedder implements ai.Embedder using OpenAI-compatible embedding APIs.
// The underlying model client is loaded lazily exactly once; concurrent first
// callers share the same in-flight initialization.
type Embedder struct {
	config *ai.Config
	load   func() (*embeddings.EmbedderImpl, error)
	logger *slog.Logger
}

// newEmbedder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	e := &Embedder{
		config: config,
		logger: slog.Default().With("component", "openai-embedder"),
	}
	e.load = sync.OnceValues(e.buildClient)
	return e, nil
}

// NewEmbedder creates a new embedder using the provided configuration.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// buildClient constructs the langchaingo embedding client.
// Use "none" as token for local OpenAI-compatible services that don't require
// authentication.
func (e *Embedder) buildClient() (*embeddings.EmbedderImpl, error) {
	e.logger.Debug("loading embedding model client",
		"host", e.config.EmbeddingHost, "model", e.config.EmbeddingModel)

	client, err := openai.New(
		openai.WithBaseURL(e.config.EmbeddingHost),
		openai.WithToken("none"),
		openai.WithEmbeddingModel(e.config.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	return embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
}

// Embed generates a pooled, validated embedding for a single text string.
// An empty input returns an empty vector without touching the model.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return []float32{}, nil
	}

	client, err := e.load()
	if err != nil {
		e.logger.Error("failed to load embedding model", "err", err)
		return nil, err
	}

	raw, err := client.EmbedDocuments(ctx, []string{text})
	if err != nil {
		e.logger.Error("failed to generate embedding", "err", err)
		return nil, err
	}

	// The client returns a batch of vectors; Pool collapses it to one vector
	// using the same normalization applied everywhere else.
	vec, err := ai.Pool(raw, e.config.Dimension)
	if err != nil {
		e.logger.Error("embedding output not normalizable", "err", err)
		return nil, err
	}
	if err := core.ValidateEmbedding(vec, e.config.Dimension); err != nil {
		return nil, err
	}
	return vec, nil
}
