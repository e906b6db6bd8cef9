package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/curio/ai/mock"
	"github.com/poiesic/curio/core"
	"github.com/poiesic/curio/store/badger"
)

func seedStore(t *testing.T) *badger.Store {
	t.Helper()
	st, err := badger.NewMemoryStore("chunks")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	vectors := []*core.IndexedVector{
		{Id: "a_0", Embedding: []float32{1, 0, 0}, Document: "Olive Trees, painted in 1889", ObjectID: "a", Start: 0, End: 10},
		{Id: "b_0", Embedding: []float32{0.9, 0.1, 0}, Document: "A bronze vessel from the Shang dynasty", ObjectID: "b", Start: 0, End: 10},
		{Id: "c_0", Embedding: []float32{0, 0, 1}, Document: "A silk scroll", ObjectID: "c", Start: 0, End: 10},
	}
	require.NoError(t, st.Upsert(ctx, vectors...))
	return st
}

func TestRetrieve(t *testing.T) {
	ctx := context.Background()

	t.Run("returns sources in similarity order", func(t *testing.T) {
		st := seedStore(t)
		embedder := mock.NewMockEmbedder()
		embedder.EmbedFunc = func(ctx context.Context, text string) ([]float32, error) {
			return []float32{1, 0, 0}, nil
		}

		r, err := NewRetriever(st, embedder)
		require.NoError(t, err)

		sources, err := r.Retrieve(ctx, "When were the olive trees painted?", 2)
		require.NoError(t, err)
		require.Len(t, sources, 2)
		assert.Equal(t, "a", sources[0].ObjectID)
		assert.Equal(t, "Olive Trees, painted in 1889", sources[0].Text)
		assert.Equal(t, "b", sources[1].ObjectID)
	})

	t.Run("blank question is rejected before embedding", func(t *testing.T) {
		st := seedStore(t)
		embedder := mock.NewMockEmbedder()

		r, err := NewRetriever(st, embedder)
		require.NoError(t, err)

		for _, q := range []string{"", "   ", "\n\t"} {
			_, err := r.Retrieve(ctx, q, 5)
			assert.ErrorIs(t, err, core.ErrEmptyQuestion)
		}
		assert.Zero(t, embedder.CallCount())
	})

	t.Run("empty index yields empty non-nil sources", func(t *testing.T) {
		st, err := badger.NewMemoryStore("chunks")
		require.NoError(t, err)
		defer st.Close()

		embedder := mock.NewMockEmbedder()
		embedder.Dim = 3

		r, err := NewRetriever(st, embedder)
		require.NoError(t, err)

		sources, err := r.Retrieve(ctx, "anything", 5)
		require.NoError(t, err)
		assert.NotNil(t, sources)
		assert.Empty(t, sources)
	})

	t.Run("embedding failure propagates", func(t *testing.T) {
		st := seedStore(t)
		embedder := mock.NewMockEmbedder()
		embedder.EmbedFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("embedding service down")
		}

		r, err := NewRetriever(st, embedder)
		require.NoError(t, err)

		_, err = r.Retrieve(ctx, "anything", 5)
		assert.Error(t, err)
	})
}

func TestNewRetrieverValidation(t *testing.T) {
	st := seedStore(t)

	t.Run("nil store", func(t *testing.T) {
		_, err := NewRetriever(nil, mock.NewMockEmbedder())
		assert.ErrorIs(t, err, ErrStoreRequired)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewRetriever(st, nil)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})
}
