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


// Package answer assembles grounded prompts from retrieved chunks and turns
// them into answers via the generation service.
package answer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/curio/ai"
	"github.com/poiesic/curio/core"
)

const (
	// DefaultTopK is the number of chunks retrieved per question.
	DefaultTopK = 5
	// DefaultMaxTokens bounds the generated answer length.
	DefaultMaxTokens = 512
	// DefaultTemperature favors determinism over creativity.
	DefaultTemperature = 0.2
)

const systemInstruction = "You are a helpful assistant for a museum collection. " +
	"Use the provided sources to answer the question. " +
	"If the answer is not in the sources, say you don't know."

// Retriever is the slice of search the composer depends on.
type Retriever interface {
	Retrieve(ctx context.Context, question string, k int) ([]core.Source, error)
}

// Composer answers questions by grounding a generation prompt on retrieved
// chunks. It holds no mutable state across requests.
type Composer struct {
	retriever   Retriever
	generator   ai.Generator
	topK        int
	maxTokens   int
	temperature float64
	logger      *slog.Logger
}

// Option configures a Composer.
type Option func(*Composer) error

// WithTopK sets the number of chunks retrieved per question.
func WithTopK(k int) Option {
	return func(c *Composer) error {
		if k < 1 {
			k = 1
		}
		c.topK = k
		return nil
	}
}

// WithMaxTokens sets the generated answer length bound.
func WithMaxTokens(n int) Option {
	return func(c *Composer) error {
		c.maxTokens = n
		return nil
	}
}

// WithTemperature sets the generation sampling temperature.
func WithTemperature(t float64) Option {
	return func(c *Composer) error {
		c.temperature = t
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Composer) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewComposer creates a new answer composer.
func NewComposer(retriever Retriever, generator ai.Generator, opts ...Option) (*Composer, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	c := &Composer{
		retriever:   retriever,
		generator:   generator,
		topK:        DefaultTopK,
		maxTokens:   DefaultMaxTokens,
		temperature: DefaultTemperature,
		logger:      slog.Default().With("component", "composer"),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// BuildPrompt renders the grounded prompt: the fixed instruction, each
// source labeled "Source [i]:" in retrieval order (1-indexed), the literal
// question and an "Answer:" cue.
func BuildPrompt(sources []core.Source, question string) string {
	var b strings.Builder
	b.WriteString(systemInstruction)
	b.WriteString("\n\n")
	for i, s := range sources {
		fmt.Fprintf(&b, "Source [%d]:\n%s\n\n", i+1, s.Text)
	}
	fmt.Fprintf(&b, "Question: %s\nAnswer:", question)
	return b.String()
}

// Answer retrieves grounding chunks for the question, invokes the generative
// model once, and returns the generated text verbatim together with the
// sources used, in prompt order. An empty generation yields an empty answer,
// not an error; upstream failures abort the question and propagate. Sources
// are never fabricated: a failed retrieval or generation returns no partial
// result.
func (c *Composer) Answer(ctx context.Context, question string) (*core.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, core.ErrEmptyQuestion
	}

	sources, err := c.retriever.Retrieve(ctx, question, c.topK)
	if err != nil {
		return nil, err
	}

	prompt := BuildPrompt(sources, question)
	c.logger.Debug("invoking generator", "sources", len(sources), "promptBytes", len(prompt))

	text, err := c.generator.Generate(ctx, prompt, c.maxTokens, c.temperature)
	if err != nil {
		c.logger.Error("error generating answer", "err", err)
		return nil, err
	}

	return &core.Answer{
		Answer:  text,
		Sources: sources,
	}, nil
}
