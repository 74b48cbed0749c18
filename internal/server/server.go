/*
 * Copyright 2025 Data Omni Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package server exposes the scoring engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/dataomni/schema-scoring/internal/scoring"
)

// Server wires the scoring engine behind the HTTP API.
type Server struct {
	engine *scoring.Engine
	logger *zap.Logger
	http   *http.Server
}

// New builds a Server listening on addr.
func New(engine *scoring.Engine, logger *zap.Logger, addr string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{engine: engine, logger: logger}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router builds the route tree. Exposed separately so tests can drive it
// through httptest without binding a port.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Post("/score_schema", s.handleScoreSchema)
	return r
}

// ListenAndServe blocks until the context is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("scoring API listening", zap.String("addr", s.http.Addr))
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

// scoreSchemaRequest is the body of POST /score_schema.
type scoreSchemaRequest struct {
	Schema              []scoring.ColumnRecord `json:"schema"`
	WeightsOverride     map[string]float64     `json:"weights_override"`
	SimilarityThreshold *float64               `json:"similarity_threshold"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScoreSchema(w http.ResponseWriter, r *http.Request) {
	var req scoreSchemaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && strings.HasPrefix(typeErr.Field, "schema") {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Error:   "Invalid Format",
				Message: `The "schema" field must be a list`,
			})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Bad Request",
			Message: "Request body must be valid JSON",
		})
		return
	}
	if len(req.Schema) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Bad Request",
			Message: "No schema provided in the request body",
		})
		return
	}

	engine := s.engine
	if req.SimilarityThreshold != nil {
		engine = engine.WithConfig(engine.Config().WithSimilarityThreshold(*req.SimilarityThreshold))
	}

	report, err := engine.Score(r.Context(), req.Schema, req.WeightsOverride)
	if err != nil {
		if scoring.IsValidationError(err) {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error:   "Bad Request",
				Message: err.Error(),
			})
			return
		}
		s.logger.Error("scoring request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Internal Server Error",
			Message: err.Error(),
		})
		return
	}

	s.logger.Info("schema scored",
		zap.Int("columns", len(req.Schema)),
		zap.Float64("total_score", report.TotalScore))
	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// corsMiddleware mirrors the permissive CORS policy of the scoring
// endpoint's consumers (browser dashboards on other origins).
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Max-Age", "3600")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
