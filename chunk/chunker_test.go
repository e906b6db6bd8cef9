package chunk

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wordTokenizer maps each whitespace-separated word "wN" to token N. It
// round-trips exactly, so chunk boundaries can be checked against token
// offsets without a real BPE vocabulary.
type wordTokenizer struct{}

func (wordTokenizer) Encode(text string) []int {
	if text == "" {
		return nil
	}
	words := strings.Fields(text)
	tokens := make([]int, len(words))
	for i, w := range words {
		n, _ := strconv.Atoi(strings.TrimPrefix(w, "w"))
		tokens[i] = n
	}
	return tokens
}

func (wordTokenizer) Decode(tokens []int) string {
	words := make([]string, len(tokens))
	for i, tok := range tokens {
		words[i] = "w" + strconv.Itoa(tok)
	}
	return strings.Join(words, " ")
}

// makeText produces a text of exactly n tokens under wordTokenizer.
func makeText(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = "w" + strconv.Itoa(i)
	}
	return strings.Join(words, " ")
}

func TestSplit(t *testing.T) {
	tok := wordTokenizer{}

	t.Run("empty text yields no chunks", func(t *testing.T) {
		assert.Empty(t, Split(tok, ""))
	})

	t.Run("short text yields single chunk", func(t *testing.T) {
		chunks := Split(tok, makeText(10))
		require.Len(t, chunks, 1)
		assert.Equal(t, 0, chunks[0].Start)
		assert.Equal(t, 10, chunks[0].End)
		assert.Equal(t, makeText(10), chunks[0].Text)
	})

	t.Run("exactly one window yields single chunk", func(t *testing.T) {
		chunks := Split(tok, makeText(Size))
		require.Len(t, chunks, 1)
		assert.Equal(t, 0, chunks[0].Start)
		assert.Equal(t, Size, chunks[0].End)
	})

	t.Run("one token past window yields second chunk", func(t *testing.T) {
		chunks := Split(tok, makeText(Size+1))
		require.Len(t, chunks, 2)
		assert.Equal(t, 0, chunks[0].Start)
		assert.Equal(t, Size, chunks[0].End)
		assert.Equal(t, Stride, chunks[1].Start)
		assert.Equal(t, Size+1, chunks[1].End)
	})

	t.Run("long text advances by stride with fixed overlap", func(t *testing.T) {
		const n = 320
		chunks := Split(tok, makeText(n))
		// ceil((n - Overlap) / Stride) full and partial windows.
		require.Len(t, chunks, 3)

		for i, c := range chunks {
			assert.Equal(t, i*Stride, c.Start)
			assert.LessOrEqual(t, c.TokenCount(), Size)
		}
		for i := 1; i < len(chunks); i++ {
			assert.Equal(t, Overlap, chunks[i-1].End-chunks[i].Start,
				"consecutive chunks share exactly Overlap tokens")
		}
		assert.Equal(t, n, chunks[len(chunks)-1].End)
	})

	t.Run("chunk text matches decoded token window", func(t *testing.T) {
		text := makeText(300)
		tokens := tok.Encode(text)
		for i, c := range Split(tok, text) {
			expected := tok.Decode(tokens[c.Start:c.End])
			assert.Equal(t, expected, c.Text, fmt.Sprintf("chunk %d", i))
		}
	})

	t.Run("same text chunks identically", func(t *testing.T) {
		text := makeText(500)
		assert.Equal(t, Split(tok, text), Split(tok, text))
	})
}

func TestChunksIsRestartable(t *testing.T) {
	tok := wordTokenizer{}
	seq := Chunks(tok, makeText(250))

	var first, second []Chunk
	for c := range seq {
		first = append(first, c)
	}
	for c := range seq {
		second = append(second, c)
	}
	assert.Equal(t, first, second)
}

func TestChunksEarlyStop(t *testing.T) {
	tok := wordTokenizer{}

	var got []Chunk
	for c := range Chunks(tok, makeText(400)) {
		got = append(got, c)
		if len(got) == 2 {
			break
		}
	}
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Start)
	assert.Equal(t, Stride, got[1].Start)
}
