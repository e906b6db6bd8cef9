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


package openai

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/poiesic/curio/ai"
)

// Generator implements ai.Generator using OpenAI-compatible chat APIs.
type Generator struct {
	config *ai.Config
	load   func() (llms.Model, error)
	logger *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{
		config: config,
		logger: slog.Default().With("component", "openai-generator"),
	}
	g.load = sync.OnceValues(g.buildClient)
	return g, nil
}

// NewGenerator creates a new generator using the provided configuration.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.Generator, error) {
	return newGenerator(config)
}

func (g *Generator) buildClient() (llms.Model, error) {
	// Use "none" as token for local OpenAI-compatible services that don't
	// require authentication.
	return openai.New(
		openai.WithBaseURL(g.config.GenerationHost),
		openai.WithToken("none"),
		openai.WithModel(g.config.GenerationModel),
	)
}

// Generate invokes the chat model once and returns the newly generated text.
// An empty completion is returned as an empty string, not an error.
func (g *Generator) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	client, err := g.load()
	if err != nil {
		g.logger.Error("failed to load generation model", "err", err)
		return "", err
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := client.GenerateContent(ctx, content,
		llms.WithMaxTokens(maxTokens),
		llms.WithTemperature(temperature),
	)
	if err != nil {
		g.logger.Error("failed to generate content", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		g.logger.Debug("no choices returned from model")
		return "", nil
	}

	return response.Choices[0].Content, nil
}
