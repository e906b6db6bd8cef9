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


package ai

import "fmt"

// Pool normalizes a model's raw output into one dim-length vector.
//
// Embedding models disagree about output shape. Three raw forms are accepted:
//
//  1. a flat numeric buffer of length k*dim (token-level output of one
//     sequence), mean-pooled across the k token positions per dimension;
//  2. a sequence of numeric vectors (a batch), mean-pooled across the batch;
//  3. a single flat dim-length vector, used as-is.
//
// Raw output that reaches us over HTTP is JSON, so the json-decoded forms
// ([]any of numbers or of nested arrays) are accepted alongside typed float
// slices. Any other shape is an ErrEmbeddingFormat.
//
// Every embed call in the system, ingest-time and query-time alike, goes
// through this one function. Splitting it would let the two sides drift and
// silently degrade retrieval quality.
func Pool(raw any, dim int) ([]float32, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: dimension must be positive, got %d", ErrEmbeddingFormat, dim)
	}

	switch v := raw.(type) {
	case []float32:
		return poolFlat(v, dim)
	case []float64:
		return poolFlat(toFloat32(v), dim)
	case [][]float32:
		return poolRows(v, dim)
	case [][]float64:
		rows := make([][]float32, len(v))
		for i, r := range v {
			rows[i] = toFloat32(r)
		}
		return poolRows(rows, dim)
	case []any:
		return poolDecoded(v, dim)
	default:
		return nil, fmt.Errorf("%w: %T", ErrEmbeddingFormat, raw)
	}
}

// poolFlat handles shapes 1 and 3: a flat buffer of k*dim components.
func poolFlat(buf []float32, dim int) ([]float32, error) {
	if len(buf) == dim {
		out := make([]float32, dim)
		copy(out, buf)
		return out, nil
	}
	if len(buf) == 0 || len(buf)%dim != 0 {
		return nil, fmt.Errorf("%w: flat buffer of %d components is not a multiple of %d",
			ErrEmbeddingFormat, len(buf), dim)
	}
	k := len(buf) / dim
	out := make([]float32, dim)
	for i := 0; i < k; i++ {
		row := buf[i*dim : (i+1)*dim]
		for j, c := range row {
			out[j] += c
		}
	}
	for j := range out {
		out[j] /= float32(k)
	}
	return out, nil
}

// poolRows handles shape 2: mean across a batch of equal-length vectors.
func poolRows(rows [][]float32, dim int) ([]float32, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty vector sequence", ErrEmbeddingFormat)
	}
	width := len(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("%w: empty vector in sequence", ErrEmbeddingFormat)
	}
	out := make([]float32, width)
	for _, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: ragged vector sequence (%d vs %d)",
				ErrEmbeddingFormat, len(row), width)
		}
		for j, c := range row {
			out[j] += c
		}
	}
	for j := range out {
		out[j] /= float32(len(rows))
	}
	return out, nil
}

// poolDecoded handles json-decoded output: either a flat array of numbers or
// an array of numeric arrays.
func poolDecoded(v []any, dim int) ([]float32, error) {
	if len(v) == 0 {
		return nil, fmt.Errorf("%w: empty array", ErrEmbeddingFormat)
	}
	switch v[0].(type) {
	case float64:
		flat := make([]float32, len(v))
		for i, e := range v {
			n, ok := e.(float64)
			if !ok {
				return nil, fmt.Errorf("%w: non-numeric component %T", ErrEmbeddingFormat, e)
			}
			flat[i] = float32(n)
		}
		return poolFlat(flat, dim)
	case []any:
		rows := make([][]float32, len(v))
		for i, e := range v {
			inner, ok := e.([]any)
			if !ok {
				return nil, fmt.Errorf("%w: mixed array shapes", ErrEmbeddingFormat)
			}
			row := make([]float32, len(inner))
			for j, c := range inner {
				n, ok := c.(float64)
				if !ok {
					return nil, fmt.Errorf("%w: non-numeric component %T", ErrEmbeddingFormat, c)
				}
				row[j] = float32(n)
			}
			rows[i] = row
		}
		return poolRows(rows, dim)
	default:
		return nil, fmt.Errorf("%w: array of %T", ErrEmbeddingFormat, v[0])
	}
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, c := range v {
		out[i] = float32(c)
	}
	return out
}
