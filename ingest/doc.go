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


// Package ingest populates the vector index from a corpus of per-record
// JSON documents.
//
// Ingestion is an offline batch: walk the corpus tree, build each record's
// composite text, window it into overlapping token chunks, embed each chunk
// and upsert the vector with its provenance metadata. Failures are isolated
// per record and per chunk so one bad document never aborts a run.
package ingest
