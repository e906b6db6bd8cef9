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


// Package chromemdb implements store.VectorStore on embedded chromem-go
// collections, persisted to disk or held in memory for tests.
package chromemdb

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"

	chromem "github.com/philippgille/chromem-go"

	"github.com/poiesic/curio/core"
	"github.com/poiesic/curio/store"
)

const compress = false

// Store is a chromem-go backed vector store bound to one named collection.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	logger     *slog.Logger
}

var _ store.VectorStore = (*Store)(nil)

// Open opens (or creates) the named collection. Opening is idempotent: an
// existing collection with the same name is reused, otherwise it is created
// with the configured vector dimension recorded in its metadata.
func Open(path, collectionName string, dim int, inMemory bool) (*Store, error) {
	var db *chromem.DB
	var err error
	if inMemory {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(path, compress)
		if err != nil {
			return nil, fmt.Errorf("failed to open vector database: %w", err)
		}
	}

	// The embedding function is nil on purpose: embeddings are always
	// supplied by the caller, never computed by the store.
	collection, err := db.GetOrCreateCollection(collectionName,
		map[string]string{"dimension": strconv.Itoa(dim)}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create/get collection %q: %w", collectionName, err)
	}

	return &Store{
		db:         db,
		collection: collection,
		logger:     slog.Default().With("component", "chromem-store", "collection", collectionName),
	}, nil
}

// Upsert writes vectors into the collection. chromem-go replaces documents
// that share an id, which gives re-ingestion its overwrite semantics.
func (s *Store) Upsert(ctx context.Context, vectors ...*core.IndexedVector) error {
	if len(vectors) == 0 {
		return nil
	}

	docs := make([]chromem.Document, len(vectors))
	for i, v := range vectors {
		docs[i] = chromem.Document{
			ID:        v.Id,
			Content:   v.Document,
			Embedding: v.Embedding,
			Metadata: map[string]string{
				"objectId":   v.ObjectID,
				"chunkIndex": strconv.Itoa(v.ChunkIndex),
				"start":      strconv.Itoa(v.Start),
				"end":        strconv.Itoa(v.End),
			},
		}
	}

	if err := s.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}
	return nil
}

// Query returns up to k nearest neighbours by cosine similarity, most
// similar first. k is clamped to the collection size; an empty collection
// yields an empty result.
func (s *Store) Query(ctx context.Context, embedding []float32, k int) ([]*store.Match, error) {
	if len(embedding) == 0 || k <= 0 {
		return nil, store.ErrInvalidQuery
	}

	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := s.collection.QueryEmbedding(ctx, embedding, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %w", err)
	}

	matches := make([]*store.Match, 0, len(results))
	for _, r := range results {
		record, err := recordFromResult(r)
		if err != nil {
			s.logger.Warn("skipping result with malformed metadata", "id", r.ID, "err", err)
			continue
		}
		matches = append(matches, &store.Match{
			Record:     record,
			Similarity: r.Similarity,
		})
	}
	return matches, nil
}

// Count returns the number of vectors in the collection.
func (s *Store) Count(ctx context.Context) (int, error) {
	return s.collection.Count(), nil
}

// Close is a no-op; chromem-go persists on write.
func (s *Store) Close() error {
	return nil
}

func recordFromResult(r chromem.Result) (*core.IndexedVector, error) {
	chunkIndex, err := strconv.Atoi(r.Metadata["chunkIndex"])
	if err != nil {
		return nil, fmt.Errorf("chunkIndex: %w", err)
	}
	start, err := strconv.Atoi(r.Metadata["start"])
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := strconv.Atoi(r.Metadata["end"])
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}
	return &core.IndexedVector{
		Id:         r.ID,
		Embedding:  r.Embedding,
		Document:   r.Content,
		ObjectID:   r.Metadata["objectId"],
		ChunkIndex: chunkIndex,
		Start:      start,
		End:        end,
	}, nil
}
