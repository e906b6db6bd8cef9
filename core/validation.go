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


package core

import (
	"fmt"
	"math"
)

// ValidateEmbedding checks that every component of vec is a finite real
// number. dim > 0 additionally enforces the expected vector length.
func ValidateEmbedding(vec []float32, dim int) error {
	if dim > 0 && len(vec) != dim {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vec), dim)
	}
	for i, v := range vec {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: component %d", ErrInvalidEmbedding, i)
		}
	}
	return nil
}

// Validate checks the invariants of an IndexedVector before persistence.
func (v *IndexedVector) Validate(dim int) error {
	if v.ObjectID == "" {
		return ErrMissingRecordID
	}
	if v.Id != ChunkID(v.ObjectID, v.ChunkIndex) {
		return fmt.Errorf("indexed vector id %q does not match object %q chunk %d",
			v.Id, v.ObjectID, v.ChunkIndex)
	}
	if v.Start >= v.End {
		return fmt.Errorf("invalid token range [%d, %d) for %q", v.Start, v.End, v.Id)
	}
	if len(v.Embedding) == 0 {
		return fmt.Errorf("%w: empty embedding for %q", ErrInvalidEmbedding, v.Id)
	}
	return ValidateEmbedding(v.Embedding, dim)
}
