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
	"encoding/json"
	"strconv"
	"strings"
)

// FieldText is a free-text record field. Corpus files are not uniformly typed:
// the same field may arrive as a JSON string, a number, or null, so decoding
// coerces scalars to their string form instead of failing the whole record.
type FieldText string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FieldText) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*f = ""
	case string:
		*f = FieldText(t)
	case float64:
		*f = FieldText(strconv.FormatFloat(t, 'f', -1, 64))
	case bool:
		*f = FieldText(strconv.FormatBool(t))
	default:
		// Arrays and objects carry no usable free text.
		*f = ""
	}
	return nil
}

// Record is one catalogued museum object. All text fields are optional;
// only Id is required. Records are read-only inputs to ingestion.
type Record struct {
	Id          FieldText `json:"id"`
	Title       FieldText `json:"title"`
	Description FieldText `json:"description"`
	Text        FieldText `json:"text"`
	Artist      FieldText `json:"artist"`
	Culture     FieldText `json:"culture"`
	Style       FieldText `json:"style"`
	Dated       FieldText `json:"dated"`
	Country     FieldText `json:"country"`
	Medium      FieldText `json:"medium"`
}

// CompositeText returns the newline-joined concatenation of the record's
// present text fields, in fixed field order. Absent or empty fields are
// omitted. The result is deterministic for a given record.
func (r *Record) CompositeText() string {
	fields := []FieldText{
		r.Title,
		r.Description,
		r.Text,
		r.Artist,
		r.Culture,
		r.Style,
		r.Dated,
		r.Country,
		r.Medium,
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			parts = append(parts, string(f))
		}
	}
	return strings.Join(parts, "\n")
}

// ChunkID builds the index key for one chunk of one record.
func ChunkID(objectID string, chunkIndex int) string {
	return objectID + "_" + strconv.Itoa(chunkIndex)
}

// IndexedVector is the persisted unit of the vector index: one embedded chunk
// of a record's composite text together with its provenance metadata.
type IndexedVector struct {
	Id         string    // "<objectID>_<chunkIndex>"
	Embedding  []float32 // length fixed by the embedding model
	Document   string    // the chunk text
	ObjectID   string
	ChunkIndex int
	Start      int // start token offset within the composite text
	End        int // end token offset (exclusive)
}

// Source is one retrieved chunk as surfaced to callers.
type Source struct {
	Text       string `json:"text"`
	ObjectID   string `json:"objectId"`
	ChunkIndex int    `json:"chunkIndex"`
}

// Answer is the result of answering one question: the generated text plus the
// sources the prompt was grounded on, in retrieval order. Never persisted.
type Answer struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}
