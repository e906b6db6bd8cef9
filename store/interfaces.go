package store

import (
	"context"

	"github.com/poiesic/curio/core"
)

// Match is one nearest-neighbour hit from a vector query.
type Match struct {
	Record     *core.IndexedVector
	Similarity float32
}

// VectorStore is the vector index boundary: store embeddings with their chunk
// metadata and answer k-nearest-neighbour queries. Implementations must be
// thread-safe and must order query results by descending similarity.
type VectorStore interface {
	// Upsert writes vectors keyed by their chunk id. Re-inserting an existing
	// id overwrites it in place.
	Upsert(ctx context.Context, vectors ...*core.IndexedVector) error

	// Query returns up to k matches for the given embedding, most similar
	// first. An index holding fewer than k vectors returns the available
	// subset, not an error.
	Query(ctx context.Context, embedding []float32, k int) ([]*Match, error)

	// Count returns the number of vectors in the collection.
	Count(ctx context.Context) (int, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
