package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/curio/core"
)

func TestIndexedVectorSerialization(t *testing.T) {
	t.Run("round trip preserves every field", func(t *testing.T) {
		original := &core.IndexedVector{
			Id:         "obj42_3",
			Embedding:  []float32{0.25, -1.5, 3.75, 0},
			Document:   "Olive Trees\nVincent van Gogh\n1889",
			ObjectID:   "obj42",
			ChunkIndex: 3,
			Start:      288,
			End:        401,
		}

		data := MarshalIndexedVector(original)
		restored, err := UnmarshalIndexedVector(data)
		require.NoError(t, err)
		assert.Equal(t, original, restored)
	})

	t.Run("empty embedding survives", func(t *testing.T) {
		original := &core.IndexedVector{Id: "a_0", ObjectID: "a", End: 1}
		restored, err := UnmarshalIndexedVector(MarshalIndexedVector(original))
		require.NoError(t, err)
		assert.Equal(t, original.Id, restored.Id)
		assert.Empty(t, restored.Embedding)
	})

	t.Run("truncated data fails", func(t *testing.T) {
		data := MarshalIndexedVector(&core.IndexedVector{
			Id:        "obj1_0",
			Embedding: []float32{1, 2, 3},
			Document:  "text",
			ObjectID:  "obj1",
			End:       4,
		})
		_, err := UnmarshalIndexedVector(data[:len(data)/2])
		assert.Error(t, err)
	})

	t.Run("garbage data fails", func(t *testing.T) {
		_, err := UnmarshalIndexedVector([]byte{0xff, 0xff, 0xff, 0xff})
		assert.Error(t, err)
	})
}
