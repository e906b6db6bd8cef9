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


// Package curio answers natural-language questions about a museum object
// collection. Records are chunked, embedded and indexed into a vector store;
// questions are answered by retrieving the most similar chunks and handing
// them to a language model as grounded context.
package curio

import (
	"fmt"
	"log/slog"

	"github.com/poiesic/curio/ai"
	"github.com/poiesic/curio/ai/openai"
	"github.com/poiesic/curio/answer"
	"github.com/poiesic/curio/ingest"
	"github.com/poiesic/curio/search"
	"github.com/poiesic/curio/store"
	"github.com/poiesic/curio/store/badger"
	"github.com/poiesic/curio/store/chromemdb"
)

// DefaultCollection is the chunk collection name used when none is given.
const DefaultCollection = "artsmia_chunks"

// Backend selects the vector store implementation.
type Backend string

const (
	BackendChromem Backend = "chromem"
	BackendBadger  Backend = "badger"
)

type Service struct {
	store    store.VectorStore
	provider ai.Provider
	config   *ai.Config
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig   *ai.Config
	provider   ai.Provider
	backend    Backend
	collection string
	inMemory   bool
}

// WithAIConfig sets the model endpoints and embedding dimension.
func WithAIConfig(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects an AI provider, bypassing the default OpenAI-compatible
// client. Used by tests.
func WithProvider(provider ai.Provider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// WithBackend selects the vector store backend.
func WithBackend(backend Backend) ServiceOption {
	return func(o *serviceOptions) {
		o.backend = backend
	}
}

// WithCollection sets the chunk collection name.
func WithCollection(name string) ServiceOption {
	return func(o *serviceOptions) {
		o.collection = name
	}
}

// WithInMemory keeps the vector store off disk.
func WithInMemory() ServiceOption {
	return func(o *serviceOptions) {
		o.inMemory = true
	}
}

func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig:   ai.DefaultConfig(),
		backend:    BackendChromem,
		collection: DefaultCollection,
	}
	for _, opt := range opts {
		opt(options)
	}

	if err := options.aiConfig.Validate(); err != nil {
		return nil, err
	}

	var (
		st  store.VectorStore
		err error
	)
	switch options.backend {
	case BackendChromem:
		st, err = chromemdb.Open(filePath, options.collection, options.aiConfig.Dimension, options.inMemory)
	case BackendBadger:
		st, err = badger.Open(filePath, options.collection, options.inMemory)
	default:
		return nil, fmt.Errorf("unknown backend %q", options.backend)
	}
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			st.Close()
			return nil, err
		}
	}

	return &Service{
		store:    st,
		provider: provider,
		config:   options.aiConfig,
		logger:   slog.Default(),
	}, nil
}

func (s *Service) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}
	if err := s.store.Close(); err != nil {
		s.logger.Error("error closing vector store", "err", err)
		return err
	}
	return nil
}

func (s *Service) Store() store.VectorStore {
	return s.store
}

func (s *Service) NewIngestor(opts ...ingest.Option) (*ingest.Ingestor, error) {
	opts = append([]ingest.Option{ingest.WithDimension(s.config.Dimension)}, opts...)
	return ingest.NewIngestor(s.store, s.provider.Embedder(), opts...)
}

func (s *Service) NewRetriever(opts ...search.Option) (*search.Retriever, error) {
	return search.NewRetriever(s.store, s.provider.Embedder(), opts...)
}

func (s *Service) NewComposer(opts ...answer.Option) (*answer.Composer, error) {
	retriever, err := s.NewRetriever()
	if err != nil {
		return nil, err
	}
	return answer.NewComposer(retriever, s.provider.Generator(), opts...)
}
