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


// Package ai provides abstractions for the AI services used in Curio.
//
// It defines the Embedder and Generator interfaces the retrieval pipeline
// depends on, plus the one shared output-normalization routine (Pool) that
// keeps ingest-time and query-time embeddings comparable. Retrieval quality
// depends on both sides pooling identically, so the normalization lives here
// once and implementations are not allowed to roll their own.
//
// Implementation sub-packages:
//
//   - ai/openai: production implementation for OpenAI-compatible APIs
//   - ai/mock: deterministic test doubles without external dependencies
//
// Public constructors in ai/openai return interface types to enforce
// abstraction; mock constructors return concrete types so tests can inject
// behavior and make assertions (call counts, recorded prompts).
package ai
