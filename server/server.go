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


// Package server exposes the question-answering pipeline over HTTP.
//
// The surface is deliberately thin: one POST /api/ask operation plus static
// file serving for the bundled web client. Caller errors (blank question)
// map to 400; internal failures map to an opaque 500 so upstream details
// never leak to clients.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/poiesic/curio/core"
)

// Answerer is the slice of the pipeline the HTTP layer depends on.
// answer.Composer satisfies it.
type Answerer interface {
	Answer(ctx context.Context, question string) (*core.Answer, error)
}

type askRequest struct {
	Question string `json:"question"`
}

// NewRouter builds the HTTP router. staticDir, when non-empty, is served for
// all routes the API does not claim (the web client).
func NewRouter(answerer Answerer, staticDir string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	router.POST("/api/ask", askHandler(answerer))

	if staticDir != "" {
		fileServer := http.FileServer(http.Dir(staticDir))
		router.NoRoute(gin.WrapH(fileServer))
	}

	return router
}

func askHandler(answerer Answerer) gin.HandlerFunc {
	logger := slog.Default().With("component", "server")

	return func(c *gin.Context) {
		var req askRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Question) == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Question is required and must be a non-empty string.",
			})
			return
		}

		result, err := answerer.Answer(c.Request.Context(), strings.TrimSpace(req.Question))
		if err != nil {
			if errors.Is(err, core.ErrEmptyQuestion) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": "Question is required and must be a non-empty string.",
				})
				return
			}
			logger.Error("error answering question", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error.",
			})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
