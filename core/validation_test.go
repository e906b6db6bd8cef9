package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmbedding(t *testing.T) {
	t.Run("finite vector passes", func(t *testing.T) {
		assert.NoError(t, ValidateEmbedding([]float32{0.1, -0.2, 0.3}, 3))
	})

	t.Run("zero dim skips length check", func(t *testing.T) {
		assert.NoError(t, ValidateEmbedding([]float32{0.1, 0.2}, 0))
	})

	t.Run("wrong length fails", func(t *testing.T) {
		err := ValidateEmbedding([]float32{0.1, 0.2}, 3)
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})

	t.Run("NaN component fails", func(t *testing.T) {
		err := ValidateEmbedding([]float32{0.1, float32(math.NaN()), 0.3}, 3)
		assert.ErrorIs(t, err, ErrInvalidEmbedding)
	})

	t.Run("Inf component fails", func(t *testing.T) {
		err := ValidateEmbedding([]float32{float32(math.Inf(1)), 0.2, 0.3}, 3)
		assert.ErrorIs(t, err, ErrInvalidEmbedding)

		err = ValidateEmbedding([]float32{float32(math.Inf(-1)), 0.2, 0.3}, 3)
		assert.ErrorIs(t, err, ErrInvalidEmbedding)
	})
}

func TestIndexedVectorValidate(t *testing.T) {
	valid := func() *IndexedVector {
		return &IndexedVector{
			Id:         "obj1_2",
			Embedding:  []float32{0.1, 0.2, 0.3},
			Document:   "some chunk text",
			ObjectID:   "obj1",
			ChunkIndex: 2,
			Start:      192,
			End:        250,
		}
	}

	t.Run("valid vector passes", func(t *testing.T) {
		require.NoError(t, valid().Validate(3))
	})

	t.Run("missing object id fails", func(t *testing.T) {
		v := valid()
		v.ObjectID = ""
		assert.ErrorIs(t, v.Validate(3), ErrMissingRecordID)
	})

	t.Run("id not derived from object and index fails", func(t *testing.T) {
		v := valid()
		v.Id = "obj1_99"
		assert.Error(t, v.Validate(3))
	})

	t.Run("empty token range fails", func(t *testing.T) {
		v := valid()
		v.Start, v.End = 10, 10
		assert.Error(t, v.Validate(3))
	})

	t.Run("empty embedding fails", func(t *testing.T) {
		v := valid()
		v.Embedding = nil
		assert.ErrorIs(t, v.Validate(3), ErrInvalidEmbedding)
	})

	t.Run("dimension mismatch fails", func(t *testing.T) {
		v := valid()
		assert.ErrorIs(t, v.Validate(4), ErrDimensionMismatch)
	})
}
