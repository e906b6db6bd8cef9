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


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	curio "github.com/poiesic/curio"
	"github.com/poiesic/curio/ai"
	"github.com/poiesic/curio/answer"
	"github.com/poiesic/curio/ingest"
	"github.com/poiesic/curio/server"
)

func main() {
	app := &cli.App{
		Name:  "curio",
		Usage: "Question answering over a museum object collection",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Chunk, embed and index object records from a directory",
				Action: ingestCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:     "objects",
						Aliases:  []string{"o"},
						Usage:    "Directory of object record JSON files",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent ingestion workers",
					},
				),
			},
			{
				Name:      "ask",
				Usage:     "Answer a question from the indexed collection",
				Action:    askCommand,
				ArgsUsage: "<question>",
				Flags: append(serviceFlags(),
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of chunks to retrieve as context",
						Value: 5,
					},
				),
			},
			{
				Name:   "serve",
				Usage:  "Serve the question answering API over HTTP",
				Action: serveCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
						Value: ":3000",
					},
					&cli.StringFlag{
						Name:  "public",
						Usage: "Directory of static web client files (optional)",
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// serviceFlags are shared by every command that opens the vector store and
// the model endpoints.
func serviceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to the vector store directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "collection",
			Usage: "Chunk collection name",
			Value: curio.DefaultCollection,
		},
		&cli.StringFlag{
			Name:  "backend",
			Usage: "Vector store backend (chromem, badger)",
			Value: string(curio.BackendChromem),
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "OpenAI-compatible service host URL for both models",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL (overrides --host)",
		},
		&cli.StringFlag{
			Name:  "generation-host",
			Usage: "Generation service host URL (overrides --host)",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "all-minilm",
		},
		&cli.StringFlag{
			Name:  "generation-model",
			Usage: "Generation model name",
			Value: "mistral",
		},
		&cli.IntFlag{
			Name:  "dimension",
			Usage: "Embedding dimension",
			Value: 384,
		},
	}
}

func openService(c *cli.Context) (*curio.Service, error) {
	opts := []ai.ConfigOption{
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithGenerationModel(c.String("generation-model")),
		ai.WithDimension(c.Int("dimension")),
	}
	if host := c.String("embedding-host"); host != "" {
		opts = append(opts, ai.WithEmbeddingHost(host))
	}
	if host := c.String("generation-host"); host != "" {
		opts = append(opts, ai.WithGenerationHost(host))
	}

	service, err := curio.NewService(c.String("db"),
		curio.WithAIConfig(ai.NewConfig(opts...)),
		curio.WithBackend(curio.Backend(c.String("backend"))),
		curio.WithCollection(c.String("collection")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open service: %w", err)
	}
	return service, nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	service, err := openService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	var ingestOpts []ingest.Option
	if size := c.Int("pool-size"); size > 0 {
		ingestOpts = append(ingestOpts, ingest.WithPoolSize(size))
	}

	ingestor, err := service.NewIngestor(ingestOpts...)
	if err != nil {
		return fmt.Errorf("failed to create ingestor: %w", err)
	}
	defer ingestor.Release()

	existing, err := service.Store().Count(ctx)
	if err == nil && existing > 0 {
		fmt.Fprintf(os.Stderr, "Collection already holds %d chunks\n", existing)
	}

	result, err := ingestor.IngestDir(ctx, c.String("objects"))
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Records: %d (skipped %d)\n", result.Records, result.SkippedRecords)
	fmt.Fprintf(os.Stderr, "Chunks indexed: %d (failed %d)\n", result.Indexed, result.FailedChunks)
	return nil
}

func askCommand(c *cli.Context) error {
	ctx := context.Background()

	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("question is required")
	}

	service, err := openService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	composer, err := service.NewComposer(answer.WithTopK(c.Int("top-k")))
	if err != nil {
		return fmt.Errorf("failed to create composer: %w", err)
	}

	result, err := composer.Answer(ctx, question)
	if err != nil {
		return fmt.Errorf("failed to answer question: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func serveCommand(c *cli.Context) error {
	service, err := openService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	composer, err := service.NewComposer()
	if err != nil {
		return fmt.Errorf("failed to create composer: %w", err)
	}

	router := server.NewRouter(composer, c.String("public"))

	slog.Info("listening", "addr", c.String("addr"))
	return router.Run(c.String("addr"))
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
