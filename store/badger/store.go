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


// Package badger implements store.VectorStore on BadgerDB.
//
// Vectors live under a per-collection key prefix; queries are a brute-force
// prefix scan scoring every stored vector by cosine similarity. That is
// adequate for corpus sizes where an embedded store makes sense at all.
package badger

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"slices"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/poiesic/curio/core"
	"github.com/poiesic/curio/store"
)

// Store is a BadgerDB backed vector store bound to one named collection.
type Store struct {
	db     *badger.DB
	prefix []byte
	logger *slog.Logger
}

var _ store.VectorStore = (*Store)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// Open opens a BadgerDB database at the specified path and binds the store
// to the named collection. Creates the directory if it doesn't exist;
// collections need no explicit creation beyond their key prefix, so opening
// is naturally idempotent.
func Open(filePath, collectionName string, inMemory bool) (*Store, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:     db,
		prefix: makeCollectionPrefix(collectionName),
		logger: slog.Default().With("component", "badger-store", "collection", collectionName),
	}, nil
}

// Close closes the BadgerDB database.
func (s *Store) Close() error {
	return s.db.Close()
}

// withTx executes a function within a BadgerDB transaction.
// The transaction is automatically discarded if fn returns an error.
func (s *Store) withTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	tx := s.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}

// Upsert writes vectors keyed by the content hash of their chunk id, so a
// re-ingested chunk replaces its previous value.
func (s *Store) Upsert(ctx context.Context, vectors ...*core.IndexedVector) error {
	if len(vectors) == 0 {
		return nil
	}

	return s.withTx(func(tx *badger.Txn) error {
		for _, v := range vectors {
			key := makeVectorKey(s.prefix, v.Id)
			if err := tx.Set(key, store.MarshalIndexedVector(v)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Query scans the collection and returns up to k matches by descending
// cosine similarity. Fewer stored vectors than k yields the available subset.
func (s *Store) Query(ctx context.Context, embedding []float32, k int) ([]*store.Match, error) {
	if len(embedding) == 0 || k <= 0 {
		return nil, store.ErrInvalidQuery
	}

	var matches []*store.Match

	err := s.withTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = s.prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *core.IndexedVector
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = store.UnmarshalIndexedVector(val)
				return err
			})
			if err != nil {
				return err
			}

			// A dimension mismatch means the record was written with a
			// different model configuration; it cannot be scored.
			if len(record.Embedding) != len(embedding) {
				s.logger.Warn("skipping vector with mismatched dimension",
					"id", record.Id, "got", len(record.Embedding), "want", len(embedding))
				continue
			}

			matches = append(matches, &store.Match{
				Record:     record,
				Similarity: cosineSimilarity(embedding, record.Embedding),
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(matches, func(a, b *store.Match) int {
		if a.Similarity > b.Similarity {
			return -1
		}
		if a.Similarity < b.Similarity {
			return 1
		}
		return 0
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// Count returns the number of vectors in the collection.
func (s *Store) Count(ctx context.Context) (int, error) {
	count := 0
	err := s.withTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = s.prefix
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// cosineSimilarity calculates the cosine of the angle between two vectors.
// Zero vectors score 0.
func cosineSimilarity(a, b []float32) float32 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
