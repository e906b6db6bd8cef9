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


package chunk

import "iter"

const (
	// Size is the maximum token count of a chunk.
	Size = 128
	// Overlap is the token overlap between consecutive chunks.
	Overlap = 32
	// Stride is the distance between consecutive chunk start offsets.
	Stride = Size - Overlap
)

// Chunk is a contiguous token-range window over a text.
// Start < End and End-Start <= Size.
type Chunk struct {
	Text  string
	Start int // start token offset
	End   int // end token offset (exclusive)
}

// TokenCount returns the number of tokens the chunk spans.
func (c Chunk) TokenCount() int {
	return c.End - c.Start
}

// Chunks returns a lazy, restartable sequence of overlapping token windows
// over text. Windows are Size tokens long with Overlap tokens shared between
// neighbours; the final window may be shorter. An empty text yields no chunks.
// Each chunk's text is the exact decoding of its own token range, so the
// window boundaries round-trip losslessly even when they split a sub-word
// unit at a chunk edge.
func Chunks(tok Tokenizer, text string) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		tokens := tok.Encode(text)
		n := len(tokens)
		for start := 0; start < n; start += Stride {
			end := min(start+Size, n)
			c := Chunk{
				Text:  tok.Decode(tokens[start:end]),
				Start: start,
				End:   end,
			}
			if !yield(c) {
				return
			}
			if end == n {
				return
			}
		}
	}
}

// Split collects the chunks of text into a slice.
func Split(tok Tokenizer, text string) []Chunk {
	var chunks []Chunk
	for c := range Chunks(tok, text) {
		chunks = append(chunks, c)
	}
	return chunks
}
