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


package store

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"

	"github.com/poiesic/curio/core"
)

// embeddingSer serializes the embedding as a length-prefixed sequence of
// fixed-width float32 components.
var embeddingSer = ord.NewSliceSer[float32](raw.Float32)

// indexedVectorSer is the MUS serializer for core.IndexedVector.
type indexedVectorSer struct{}

// IndexedVectorMUS serializes IndexedVector values in MUS format.
var IndexedVectorMUS = indexedVectorSer{}

func (indexedVectorSer) Marshal(v core.IndexedVector, bs []byte) (n int) {
	n = ord.String.Marshal(v.Id, bs)
	n += embeddingSer.Marshal(v.Embedding, bs[n:])
	n += ord.String.Marshal(v.Document, bs[n:])
	n += ord.String.Marshal(v.ObjectID, bs[n:])
	n += varint.Int.Marshal(v.ChunkIndex, bs[n:])
	n += varint.Int.Marshal(v.Start, bs[n:])
	n += varint.Int.Marshal(v.End, bs[n:])
	return
}

func (indexedVectorSer) Unmarshal(bs []byte) (v core.IndexedVector, n int, err error) {
	var n1 int
	if v.Id, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.Embedding, n1, err = embeddingSer.Unmarshal(bs[n:]); err != nil {
		n += n1
		return
	}
	n += n1
	if v.Document, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		n += n1
		return
	}
	n += n1
	if v.ObjectID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		n += n1
		return
	}
	n += n1
	if v.ChunkIndex, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		n += n1
		return
	}
	n += n1
	if v.Start, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		n += n1
		return
	}
	n += n1
	v.End, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return
}

func (indexedVectorSer) Size(v core.IndexedVector) (size int) {
	size = ord.String.Size(v.Id)
	size += embeddingSer.Size(v.Embedding)
	size += ord.String.Size(v.Document)
	size += ord.String.Size(v.ObjectID)
	size += varint.Int.Size(v.ChunkIndex)
	size += varint.Int.Size(v.Start)
	size += varint.Int.Size(v.End)
	return
}

// MarshalIndexedVector serializes an IndexedVector to bytes.
func MarshalIndexedVector(v *core.IndexedVector) []byte {
	buf := make([]byte, IndexedVectorMUS.Size(*v))
	IndexedVectorMUS.Marshal(*v, buf)
	return buf
}

// UnmarshalIndexedVector deserializes an IndexedVector from bytes.
func UnmarshalIndexedVector(data []byte) (*core.IndexedVector, error) {
	v, _, err := IndexedVectorMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &v, nil
}
