package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/curio/ai"
	"github.com/poiesic/curio/core"
	"github.com/poiesic/curio/store"
)

// Retriever answers semantic queries over the vector index: embed the
// question, find the k nearest stored chunks, and surface them with their
// provenance. It holds no per-request state and is safe for concurrent use.
type Retriever struct {
	store    store.VectorStore
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRetriever creates a new retriever.
func NewRetriever(st store.VectorStore, embedder ai.Embedder, opts ...Option) (*Retriever, error) {
	if st == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	r := &Retriever{
		store:    st,
		embedder: embedder,
		logger:   slog.Default().With("component", "retriever"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Retrieve returns up to k chunks relevant to the question, best match
// first. A blank question is rejected before any embedding work happens.
// An index with fewer than k vectors yields the available subset.
func (r *Retriever) Retrieve(ctx context.Context, question string, k int) ([]core.Source, error) {
	if strings.TrimSpace(question) == "" {
		return nil, core.ErrEmptyQuestion
	}

	embedding, err := r.embedder.Embed(ctx, question)
	if err != nil {
		r.logger.Error("error embedding question", "err", err)
		return nil, err
	}

	matches, err := r.store.Query(ctx, embedding, k)
	if err != nil {
		r.logger.Error("error querying for similar chunks", "err", err)
		return nil, err
	}

	sources := make([]core.Source, 0, len(matches))
	for _, m := range matches {
		sources = append(sources, core.Source{
			Text:       m.Record.Document,
			ObjectID:   m.Record.ObjectID,
			ChunkIndex: m.Record.ChunkIndex,
		})
	}
	r.logger.Debug("retrieved chunks", "requested", k, "found", len(sources))
	return sources, nil
}
