package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldTextUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected FieldText
	}{
		{"string", `{"title": "Bronze Vessel"}`, "Bronze Vessel"},
		{"integer", `{"title": 1889}`, "1889"},
		{"float", `{"title": 12.5}`, "12.5"},
		{"bool", `{"title": true}`, "true"},
		{"null", `{"title": null}`, ""},
		{"absent", `{}`, ""},
		{"array ignored", `{"title": ["a", "b"]}`, ""},
		{"object ignored", `{"title": {"x": 1}}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec Record
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &rec))
			assert.Equal(t, tt.expected, rec.Title)
		})
	}
}

func TestCompositeText(t *testing.T) {
	t.Run("joins present fields in fixed order", func(t *testing.T) {
		rec := Record{
			Id:      "123",
			Title:   "Olive Trees",
			Artist:  "Vincent van Gogh",
			Dated:   "1889",
			Country: "France",
		}
		assert.Equal(t, "Olive Trees\nVincent van Gogh\n1889\nFrance", rec.CompositeText())
	})

	t.Run("id is not part of the text", func(t *testing.T) {
		rec := Record{Id: "123", Title: "Olive Trees"}
		assert.Equal(t, "Olive Trees", rec.CompositeText())
	})

	t.Run("all fields empty yields empty string", func(t *testing.T) {
		rec := Record{Id: "123"}
		assert.Equal(t, "", rec.CompositeText())
	})

	t.Run("description precedes artist", func(t *testing.T) {
		rec := Record{
			Description: "A painting of olive trees.",
			Artist:      "Vincent van Gogh",
		}
		assert.Equal(t, "A painting of olive trees.\nVincent van Gogh", rec.CompositeText())
	})
}

func TestChunkID(t *testing.T) {
	assert.Equal(t, "obj1_0", ChunkID("obj1", 0))
	assert.Equal(t, "obj1_12", ChunkID("obj1", 12))
}
