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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dataomni/schema-scoring/internal/config"
	"github.com/dataomni/schema-scoring/internal/metadata"
	"github.com/dataomni/schema-scoring/internal/metadata/bigquery"
)

var scoreIntrospected bool

var introspectCmd = &cobra.Command{
	Use:   "introspect",
	Short: "Pull column metadata from a live database",
	Long: `Introspect connects to the configured database, reads every column
with its description and key constraints, and prints the result as JSON.
With --score the collected schema is scored instead of printed raw.`,
	RunE: runIntrospect,
}

func init() {
	introspectCmd.Flags().BoolVar(&scoreIntrospected, "score", false, "Score the introspected schema instead of printing it")
}

func newIntrospector(ctx context.Context, cfg config.DatabaseConfig) (metadata.Introspector, error) {
	if cfg.Dialect == "bigquery" {
		return bigquery.New(ctx, cfg, logger)
	}
	return metadata.New(cfg)
}

func runIntrospect(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	if err := validateDialect(cfg.Database.Dialect); err != nil {
		return err
	}

	ctx := context.Background()
	source, err := newIntrospector(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to metadata source: %w", err)
	}
	defer func() {
		if closeErr := source.Close(); closeErr != nil {
			logger.Warn("error closing metadata source", zap.Error(closeErr))
		}
	}()

	if err := source.Ping(ctx); err != nil {
		return err
	}

	records, err := source.ListSchema(ctx)
	if err != nil {
		return fmt.Errorf("failed to introspect schema: %w", err)
	}
	logger.Info("schema introspected",
		zap.String("dialect", cfg.Database.Dialect),
		zap.Int("columns", len(records)))

	if !scoreIntrospected {
		out, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal schema: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	engine, cleanup, err := setupEngine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := engine.Score(ctx, records, nil)
	if err != nil {
		return fmt.Errorf("scoring failed: %w", err)
	}
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
