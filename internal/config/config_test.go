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
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "text-embedding-004", cfg.EmbeddingModel)
	assert.Equal(t, 5*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 0.8, cfg.SimilarityThreshold)
	assert.Equal(t, 3, cfg.MinDescriptionLength)
	assert.Equal(t, "postgres", cfg.Database.Dialect)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("SCHEMA_SCORER_LISTEN_ADDR", ":9090")
	t.Setenv("SCHEMA_SCORER_SIMILARITY_THRESHOLD", "0.9")
	t.Setenv("SCHEMA_SCORER_DB_DIALECT", "mysql")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, 0.9, cfg.SimilarityThreshold)
	assert.Equal(t, "mysql", cfg.Database.Dialect)
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
}

func TestGetConfigLoadsLazily(t *testing.T) {
	SetConfig(nil)
	cfg := GetConfig()
	assert.NotNil(t, cfg)

	// Once set, the same instance comes back.
	assert.Same(t, cfg, GetConfig())
}
