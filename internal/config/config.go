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
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	ListenAddr string

	GeminiAPIKey    string
	EmbeddingModel  string
	ProviderTimeout time.Duration

	SimilarityThreshold  float64
	MinDescriptionLength int

	Database DatabaseConfig
}

// DatabaseConfig holds connection settings for a metadata source.
type DatabaseConfig struct {
	Dialect                        string
	Host                           string
	Port                           int
	User                           string
	Password                       string
	DBName                         string
	SSLMode                        string
	CloudSQLInstanceConnectionName string
	UsePrivateIP                   bool

	// BigQuery only.
	ProjectID       string
	CredentialsFile string
}

// Load reads configuration from the environment over the built-in
// defaults. Env keys are SCHEMA_SCORER_* (e.g. SCHEMA_SCORER_LISTEN_ADDR);
// the Gemini key additionally honors the conventional GEMINI_API_KEY.
// Command flags layer on top in cmd/root.go.
func Load() *Config {
	v := viper.New()
	v.SetEnvPrefix("SCHEMA_SCORER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("embedding_model", "text-embedding-004")
	v.SetDefault("provider_timeout", 5*time.Second)
	v.SetDefault("similarity_threshold", 0.8)
	v.SetDefault("min_description_length", 3)
	v.SetDefault("db.dialect", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.sslmode", "disable")

	apiKey := v.GetString("gemini_api_key")
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY") // unprefixed convention
	}

	return &Config{
		ListenAddr:           v.GetString("listen_addr"),
		GeminiAPIKey:         apiKey,
		EmbeddingModel:       v.GetString("embedding_model"),
		ProviderTimeout:      v.GetDuration("provider_timeout"),
		SimilarityThreshold:  v.GetFloat64("similarity_threshold"),
		MinDescriptionLength: v.GetInt("min_description_length"),
		Database: DatabaseConfig{
			Dialect:                        v.GetString("db.dialect"),
			Host:                           v.GetString("db.host"),
			Port:                           v.GetInt("db.port"),
			User:                           v.GetString("db.user"),
			Password:                       v.GetString("db.password"),
			DBName:                         v.GetString("db.name"),
			SSLMode:                        v.GetString("db.sslmode"),
			CloudSQLInstanceConnectionName: v.GetString("db.cloudsql_instance"),
			UsePrivateIP:                   v.GetBool("db.cloudsql_private_ip"),
			ProjectID:                      v.GetString("db.project_id"),
			CredentialsFile:                v.GetString("db.credentials_file"),
		},
	}
}

var globalConfig *Config

// SetConfig sets the global configuration.
func SetConfig(cfg *Config) {
	globalConfig = cfg
}

// GetConfig returns the global configuration, loading it from the
// environment if it was never set.
func GetConfig() *Config {
	if globalConfig == nil {
		globalConfig = Load()
	}
	return globalConfig
}
