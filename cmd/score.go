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
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dataomni/schema-scoring/internal/scoring"
)

var (
	schemaFile  string
	weightsJSON string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a schema described in a JSON file",
	Long: `Score reads column metadata from a JSON file and prints the quality
report. The file holds either a bare list of column objects or an object
with a "schema" list and an optional "weights_override" map.`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&schemaFile, "schema-file", "", "Path to the JSON schema description (required)")
	scoreCmd.Flags().StringVar(&weightsJSON, "weights", "", `Weight overrides as JSON, e.g. '{"field_names": 50}'`)
	_ = scoreCmd.MarkFlagRequired("schema-file")
}

// scoreFileEnvelope matches the request body of the HTTP endpoint so the
// same payloads work from the command line.
type scoreFileEnvelope struct {
	Schema          []scoring.ColumnRecord `json:"schema"`
	WeightsOverride map[string]float64     `json:"weights_override"`
}

func runScore(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(schemaFile)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	var envelope scoreFileEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		// Not an envelope; try the bare column list form.
		if listErr := json.Unmarshal(data, &envelope.Schema); listErr != nil {
			return fmt.Errorf("schema file is neither a column list nor a schema envelope: %w", err)
		}
	}

	if weightsJSON != "" {
		if err := json.Unmarshal([]byte(weightsJSON), &envelope.WeightsOverride); err != nil {
			return fmt.Errorf("invalid --weights value: %w", err)
		}
	}

	ctx := context.Background()
	engine, cleanup, err := setupEngine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := engine.Score(ctx, envelope.Schema, envelope.WeightsOverride)
	if err != nil {
		return fmt.Errorf("scoring failed: %w", err)
	}

	logger.Info("schema scored",
		zap.Int("columns", len(envelope.Schema)),
		zap.Float64("total_score", report.TotalScore))

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
