package ingest

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/curio/ai"
	"github.com/poiesic/curio/chunk"
	"github.com/poiesic/curio/core"
	"github.com/poiesic/curio/store"
)

// Ingestor walks a corpus of per-record documents and populates the vector
// index: composite text per record, overlapping token windows, one embedding
// per window, one upsert per embedding. Records are independent units of
// work and are processed concurrently; a bad record or chunk is logged and
// skipped, never fatal to the run.
type Ingestor struct {
	store     store.VectorStore
	embedder  ai.Embedder
	tokenizer chunk.Tokenizer
	dim       int
	pool      *ants.Pool
	logger    *slog.Logger
}

// Stats summarizes one ingestion run.
type Stats struct {
	Records        int64 // documents discovered
	Indexed        int64 // records that produced at least one chunk
	SkippedRecords int64 // malformed or empty documents
	Chunks         int64 // chunks written to the index
	FailedChunks   int64 // chunks skipped because embedding or upsert failed
}

// Option configures an Ingestor.
type Option func(*Ingestor) error

// WithPoolSize sets the worker pool size for concurrent record processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(ig *Ingestor) error {
		if size < 1 {
			size = 1
		}
		if ig.pool != nil {
			ig.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		ig.pool = pool
		return nil
	}
}

// WithTokenizer sets a custom tokenizer. Default is the process-wide
// subword tokenizer, loaded lazily on first run.
func WithTokenizer(tok chunk.Tokenizer) Option {
	return func(ig *Ingestor) error {
		ig.tokenizer = tok
		return nil
	}
}

// WithDimension sets the expected embedding dimension. Vectors of any other
// length are rejected before persistence. Zero disables the length check
// (non-finite components are still rejected).
func WithDimension(dim int) Option {
	return func(ig *Ingestor) error {
		ig.dim = dim
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ig *Ingestor) error {
		if logger == nil {
			logger = slog.Default()
		}
		ig.logger = logger
		return nil
	}
}

// NewIngestor creates a new corpus ingestor.
func NewIngestor(st store.VectorStore, embedder ai.Embedder, opts ...Option) (*Ingestor, error) {
	if st == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	ig := &Ingestor{
		store:    st,
		embedder: embedder,
		pool:     pool,
		logger:   slog.Default().With("component", "ingestor"),
	}

	for _, opt := range opts {
		if optErr := opt(ig); optErr != nil {
			ig.Release()
			return nil, optErr
		}
	}

	return ig, nil
}

// IngestDir discovers all leaf documents under dir and indexes them,
// returning run statistics. Only a failure to walk the directory or to load
// the tokenizer is fatal; per-record and per-chunk failures are logged and
// counted.
func (ig *Ingestor) IngestDir(ctx context.Context, dir string) (*Stats, error) {
	if ig.tokenizer == nil {
		tok, err := chunk.NewTokenizer()
		if err != nil {
			return nil, err
		}
		ig.tokenizer = tok
	}

	files, err := listDocuments(dir)
	if err != nil {
		return nil, err
	}
	ig.logger.Info("discovered corpus documents", "count", len(files))

	stats := &runStats{}
	var wg sync.WaitGroup
	for _, file := range files {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			ig.processDocument(ctx, file, stats)
		}
		if err := ig.pool.Submit(task); err != nil {
			// Pool unavailable; fall back to processing inline.
			task()
		}
	}
	wg.Wait()

	result := stats.snapshot()
	ig.logger.Info("ingestion complete",
		"records", result.Records,
		"indexed", result.Indexed,
		"skipped", result.SkippedRecords,
		"chunks", result.Chunks,
		"failedChunks", result.FailedChunks)
	return result, nil
}

// processDocument ingests one corpus document end to end.
func (ig *Ingestor) processDocument(ctx context.Context, path string, stats *runStats) {
	stats.records.Add(1)

	record, err := loadRecord(path)
	if err != nil {
		ig.logger.Error("skipping document", "path", path, "err", err)
		stats.skippedRecords.Add(1)
		return
	}

	composite := record.CompositeText()
	if composite == "" {
		// Nothing to embed; the record contributes no chunks.
		ig.logger.Debug("record has no text fields", "objectId", string(record.Id))
		return
	}

	indexed := false
	for i, c := range chunk.Split(ig.tokenizer, composite) {
		if err := ig.indexChunk(ctx, string(record.Id), i, c); err != nil {
			ig.logger.Error("skipping chunk",
				"objectId", string(record.Id), "chunkIndex", i, "err", err)
			stats.failedChunks.Add(1)
			continue
		}
		stats.chunks.Add(1)
		indexed = true
	}
	if indexed {
		stats.indexed.Add(1)
	}
}

// indexChunk embeds one chunk and upserts the resulting vector.
func (ig *Ingestor) indexChunk(ctx context.Context, objectID string, chunkIndex int, c chunk.Chunk) error {
	embedding, err := ig.embedder.Embed(ctx, c.Text)
	if err != nil {
		return err
	}

	vector := &core.IndexedVector{
		Id:         core.ChunkID(objectID, chunkIndex),
		Embedding:  embedding,
		Document:   c.Text,
		ObjectID:   objectID,
		ChunkIndex: chunkIndex,
		Start:      c.Start,
		End:        c.End,
	}
	if err := vector.Validate(ig.dim); err != nil {
		return err
	}

	return ig.store.Upsert(ctx, vector)
}

// Release releases the worker pool.
// The ingestor should not be used after calling Release.
func (ig *Ingestor) Release() {
	if ig.pool != nil {
		ig.pool.Release()
	}
}

// runStats accumulates counters across concurrent record workers.
type runStats struct {
	records        atomic.Int64
	indexed        atomic.Int64
	skippedRecords atomic.Int64
	chunks         atomic.Int64
	failedChunks   atomic.Int64
}

func (s *runStats) snapshot() *Stats {
	return &Stats{
		Records:        s.records.Load(),
		Indexed:        s.indexed.Load(),
		SkippedRecords: s.skippedRecords.Load(),
		Chunks:         s.chunks.Load(),
		FailedChunks:   s.failedChunks.Load(),
	}
}
