package ai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	t.Run("flat dim-length vector passes through", func(t *testing.T) {
		got, err := Pool([]float32{1, 2, 3}, 3)
		require.NoError(t, err)
		assert.Equal(t, []float32{1, 2, 3}, got)
	})

	t.Run("flat buffer of k rows is mean-pooled", func(t *testing.T) {
		// Two token rows [1,2,3] and [3,4,5] packed flat.
		got, err := Pool([]float32{1, 2, 3, 3, 4, 5}, 3)
		require.NoError(t, err)
		assert.Equal(t, []float32{2, 3, 4}, got)
	})

	t.Run("batch of vectors is mean-pooled", func(t *testing.T) {
		got, err := Pool([][]float32{{1, 2, 3}, {3, 4, 5}}, 3)
		require.NoError(t, err)
		assert.Equal(t, []float32{2, 3, 4}, got)
	})

	t.Run("float64 forms are accepted", func(t *testing.T) {
		got, err := Pool([]float64{1, 2, 3}, 3)
		require.NoError(t, err)
		assert.Equal(t, []float32{1, 2, 3}, got)

		got, err = Pool([][]float64{{1, 2, 3}, {3, 4, 5}}, 3)
		require.NoError(t, err)
		assert.Equal(t, []float32{2, 3, 4}, got)
	})

	t.Run("pooling pass-through does not alias the input", func(t *testing.T) {
		in := []float32{1, 2, 3}
		got, err := Pool(in, 3)
		require.NoError(t, err)
		got[0] = 99
		assert.Equal(t, float32(1), in[0])
	})

	t.Run("flat buffer not a multiple of dim fails", func(t *testing.T) {
		_, err := Pool([]float32{1, 2, 3, 4}, 3)
		assert.ErrorIs(t, err, ErrEmbeddingFormat)
	})

	t.Run("empty input fails", func(t *testing.T) {
		_, err := Pool([]float32{}, 3)
		assert.ErrorIs(t, err, ErrEmbeddingFormat)

		_, err = Pool([][]float32{}, 3)
		assert.ErrorIs(t, err, ErrEmbeddingFormat)
	})

	t.Run("ragged batch fails", func(t *testing.T) {
		_, err := Pool([][]float32{{1, 2, 3}, {1, 2}}, 3)
		assert.ErrorIs(t, err, ErrEmbeddingFormat)
	})

	t.Run("unsupported shape fails", func(t *testing.T) {
		_, err := Pool("not a vector", 3)
		assert.ErrorIs(t, err, ErrEmbeddingFormat)

		_, err = Pool(42, 3)
		assert.ErrorIs(t, err, ErrEmbeddingFormat)
	})

	t.Run("non-positive dimension fails", func(t *testing.T) {
		_, err := Pool([]float32{1, 2, 3}, 0)
		assert.ErrorIs(t, err, ErrEmbeddingFormat)
	})
}

func TestPoolJSONDecoded(t *testing.T) {
	decode := func(t *testing.T, s string) any {
		var v any
		require.NoError(t, json.Unmarshal([]byte(s), &v))
		return v
	}

	t.Run("flat json array", func(t *testing.T) {
		got, err := Pool(decode(t, `[1, 2, 3]`), 3)
		require.NoError(t, err)
		assert.Equal(t, []float32{1, 2, 3}, got)
	})

	t.Run("flat json token buffer", func(t *testing.T) {
		got, err := Pool(decode(t, `[1, 2, 3, 3, 4, 5]`), 3)
		require.NoError(t, err)
		assert.Equal(t, []float32{2, 3, 4}, got)
	})

	t.Run("nested json batch", func(t *testing.T) {
		got, err := Pool(decode(t, `[[1, 2, 3], [3, 4, 5]]`), 3)
		require.NoError(t, err)
		assert.Equal(t, []float32{2, 3, 4}, got)
	})

	t.Run("array of strings fails", func(t *testing.T) {
		_, err := Pool(decode(t, `["a", "b"]`), 3)
		assert.ErrorIs(t, err, ErrEmbeddingFormat)
	})

	t.Run("mixed array fails", func(t *testing.T) {
		_, err := Pool(decode(t, `[[1, 2, 3], "x"]`), 3)
		assert.ErrorIs(t, err, ErrEmbeddingFormat)
	})
}
