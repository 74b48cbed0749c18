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
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dataomni/schema-scoring/internal/config"
	_ "github.com/dataomni/schema-scoring/internal/metadata/mysql"
	_ "github.com/dataomni/schema-scoring/internal/metadata/postgres"
	_ "github.com/dataomni/schema-scoring/internal/metadata/sqlserver"
	"github.com/dataomni/schema-scoring/internal/scoring"
	"github.com/dataomni/schema-scoring/internal/similarity"
)

var (
	debug        bool
	geminiAPIKey string
	simThreshold float64
	listenAddr   string

	// Metadata source connection flags
	dialect                        string
	host                           string
	port                           int
	username                       string
	password                       string
	dbName                         string
	projectID                      string
	credentialsFile                string
	cloudSQLInstanceConnectionName string
	cloudSQLUsePrivateIP           bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "schema_scorer",
	Short: "A tool to score the quality of database schemas",
	Long: `schema_scorer evaluates how understandable a relational or columnar
schema is to humans and generative consumers. It scores field naming,
descriptions, name similarity, data types and key presence, and reports a
weighted composite plus the offending columns.`,
	PersistentPreRunE: initFlagsAndConfig,
}

// initFlagsAndConfig layers command flags over the environment-backed
// configuration and sets up logging.
func initFlagsAndConfig(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	flags := cmd.Flags()
	if flags.Changed("dialect") {
		cfg.Database.Dialect = dialect
	}
	if flags.Changed("host") {
		cfg.Database.Host = host
	}
	if flags.Changed("port") {
		cfg.Database.Port = port
	}
	if flags.Changed("username") {
		cfg.Database.User = username
	}
	if flags.Changed("password") {
		cfg.Database.Password = password
	}
	if flags.Changed("database") {
		cfg.Database.DBName = dbName
	}
	if flags.Changed("project") {
		cfg.Database.ProjectID = projectID
	}
	if flags.Changed("credentials-file") {
		cfg.Database.CredentialsFile = credentialsFile
	}
	if flags.Changed("cloudsql-instance-connection-name") {
		cfg.Database.CloudSQLInstanceConnectionName = cloudSQLInstanceConnectionName
	}
	if flags.Changed("cloudsql-use-private-ip") {
		cfg.Database.UsePrivateIP = cloudSQLUsePrivateIP
	}
	if flags.Changed("gemini-api-key") {
		cfg.GeminiAPIKey = geminiAPIKey
	}
	if flags.Changed("similarity-threshold") {
		cfg.SimilarityThreshold = simThreshold
	}
	if flags.Changed("listen-addr") {
		cfg.ListenAddr = listenAddr
	}
	config.SetConfig(cfg)

	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	return nil
}

var supportedDialects = []string{
	"postgres", "cloudsqlpostgres",
	"mysql", "cloudsqlmysql",
	"sqlserver", "cloudsqlsqlserver",
	"bigquery",
}

func validateDialect(dialect string) error {
	for _, supported := range supportedDialects {
		if dialect == supported {
			return nil
		}
	}
	return fmt.Errorf("unsupported dialect: %s (only %s are supported)",
		dialect, strings.Join(supportedDialects, ", "))
}

// setupEngine builds the scoring engine with the configured similarity
// provider. The returned cleanup releases the Gemini client when one was
// created; without an API key the engine runs on the local measure only.
func setupEngine(ctx context.Context) (*scoring.Engine, func(), error) {
	cfg := config.GetConfig()

	scoreCfg := scoring.DefaultConfig()
	scoreCfg.SimilarityThreshold = cfg.SimilarityThreshold
	scoreCfg.MinDescriptionLength = cfg.MinDescriptionLength

	cleanup := func() {}
	var provider scoring.SimilarityProvider
	if cfg.GeminiAPIKey != "" {
		gemini, err := similarity.NewGemini(ctx, similarity.Config{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.EmbeddingModel,
			Timeout: cfg.ProviderTimeout,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create similarity provider: %w", err)
		}
		provider = gemini
		cleanup = func() { _ = gemini.Close() }
	} else {
		logger.Info("no Gemini API key configured, using local similarity measure")
	}

	engine := scoring.New(scoreCfg, provider, similarity.Local{}, logger)
	return engine, cleanup, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	// Metadata source connection flags
	rootCmd.PersistentFlags().StringVar(&dialect, "dialect", "postgres", fmt.Sprintf("Metadata source dialect (%s)", strings.Join(supportedDialects, ", ")))
	rootCmd.PersistentFlags().StringVar(&host, "host", "localhost", "Database host")
	rootCmd.PersistentFlags().IntVar(&port, "port", 5432, "Database port")
	rootCmd.PersistentFlags().StringVar(&username, "username", "", "Database username")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "Database password")
	rootCmd.PersistentFlags().StringVar(&dbName, "database", "", "Database name")
	rootCmd.PersistentFlags().StringVar(&projectID, "project", "", "BigQuery project ID (bigquery dialect)")
	rootCmd.PersistentFlags().StringVar(&credentialsFile, "credentials-file", "", "Service account credentials file (bigquery dialect)")
	rootCmd.PersistentFlags().StringVar(&cloudSQLInstanceConnectionName, "cloudsql-instance-connection-name", "", "Cloud SQL instance connection name (for Cloud SQL dialects)")
	rootCmd.PersistentFlags().BoolVar(&cloudSQLUsePrivateIP, "cloudsql-use-private-ip", false, "Use private IP for Cloud SQL connection")

	// Scoring flags
	rootCmd.PersistentFlags().StringVar(&geminiAPIKey, "gemini-api-key", "", "Gemini API key for semantic similarity (can also be set via GEMINI_API_KEY)")
	rootCmd.PersistentFlags().Float64Var(&simThreshold, "similarity-threshold", 0.8, "Similarity at or above which two column names are near-duplicates")
	rootCmd.PersistentFlags().StringVar(&listenAddr, "listen-addr", ":8080", "Address for the serve command to listen on")

	// Add subcommands
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(introspectCmd)
	rootCmd.AddCommand(serveCmd)
}
