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

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// encodingName is the BPE vocabulary used for windowing. It matches the
// gpt-3.5-turbo tokenizer the corpus was originally chunked with.
const encodingName = "cl100k_base"

// Tokenizer converts between text and token ids. Decode(Encode(s)) must
// reproduce s for any s a single implementation produced the tokens from.
type Tokenizer interface {
	Encode(text string) []int
	Decode(tokens []int) string
}

// tiktokenTokenizer wraps a tiktoken BPE encoding.
type tiktokenTokenizer struct {
	enc *tiktoken.Tiktoken
}

func (t *tiktokenTokenizer) Encode(text string) []int {
	return t.enc.Encode(text, nil, nil)
}

func (t *tiktokenTokenizer) Decode(tokens []int) string {
	return t.enc.Decode(tokens)
}

// The BPE ranks are loaded once per process. Concurrent first callers share
// the same in-flight load.
var loadTokenizer = sync.OnceValues(func() (Tokenizer, error) {
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	return &tiktokenTokenizer{enc: enc}, nil
})

// NewTokenizer returns the process-wide subword tokenizer, loading its
// vocabulary on first use.
func NewTokenizer() (Tokenizer, error) {
	return loadTokenizer()
}
