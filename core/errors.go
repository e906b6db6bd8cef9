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

import "errors"

// Domain validation errors
var (
	// ErrEmptyQuestion indicates the caller supplied an empty or
	// whitespace-only question. Rejected before any pipeline work begins.
	ErrEmptyQuestion = errors.New("question cannot be empty")

	// ErrMissingRecordID indicates a corpus document without an id field.
	ErrMissingRecordID = errors.New("record id cannot be empty")

	// ErrInvalidEmbedding indicates an embedding with a non-finite component.
	// Such a vector must never be persisted.
	ErrInvalidEmbedding = errors.New("embedding contains non-finite component")

	// ErrDimensionMismatch indicates an embedding whose length does not match
	// the configured model dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
