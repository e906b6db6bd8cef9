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


// Package store defines the vector index boundary of Curio.
//
// The VectorStore interface covers the three operations retrieval needs:
// create-if-absent collection (implicit in opening a backend), upsert of
// embedding+metadata tuples, and k-nearest-neighbour query by embedding.
//
// Two backends implement it:
//
//   - store/chromemdb: embedded chromem-go collections (default)
//   - store/badger: BadgerDB with a brute-force cosine scan
//
// Both order query results by descending similarity and clamp k to the
// collection size.
package store
