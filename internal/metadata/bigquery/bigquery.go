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
package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/dataomni/schema-scoring/internal/config"
	"github.com/dataomni/schema-scoring/internal/metadata"
	"github.com/dataomni/schema-scoring/internal/scoring"
)

// Introspector reads column metadata for every dataset of a BigQuery
// project from INFORMATION_SCHEMA.COLUMN_FIELD_PATHS, which flattens
// nested fields into one row per field path - exactly the ColumnRecord
// shape the scoring engine consumes.
type Introspector struct {
	client *bigquery.Client
	logger *zap.Logger
}

var _ metadata.Introspector = (*Introspector)(nil)

// New creates a BigQuery introspector. With no credentials file the
// client falls back to application default credentials.
func New(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*Introspector, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("bigquery introspection requires a project id")
	}
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := bigquery.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create BigQuery client: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Introspector{client: client, logger: logger}, nil
}

// ListSchema walks every dataset in the project and collects its column
// field paths plus PK/FK constraint flags.
func (in *Introspector) ListSchema(ctx context.Context) ([]scoring.ColumnRecord, error) {
	var records []scoring.ColumnRecord

	it := in.client.Datasets(ctx)
	for {
		ds, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error listing datasets: %w", err)
		}

		dsRecords, err := in.listDataset(ctx, ds.DatasetID)
		if err != nil {
			return nil, fmt.Errorf("dataset %s: %w", ds.DatasetID, err)
		}
		records = append(records, dsRecords...)
	}

	in.logger.Info("bigquery schema introspected",
		zap.String("project", in.client.Project()),
		zap.Int("columns", len(records)))
	return records, nil
}

type fieldPathRow struct {
	TableCatalog  string `bigquery:"table_catalog"`
	TableSchema   string `bigquery:"table_schema"`
	TableName     string `bigquery:"table_name"`
	ColumnName    string `bigquery:"column_name"`
	FieldPath     string `bigquery:"field_path"`
	DataType      string `bigquery:"data_type"`
	Description   string `bigquery:"description"`
	CollationName string `bigquery:"collation_name"`
	RoundingMode  string `bigquery:"rounding_mode"`
}

type constraintRow struct {
	TableName      string `bigquery:"table_name"`
	ColumnName     string `bigquery:"column_name"`
	ConstraintType string `bigquery:"constraint_type"`
}

func (in *Introspector) listDataset(ctx context.Context, datasetID string) ([]scoring.ColumnRecord, error) {
	view := func(name string) string {
		return fmt.Sprintf("`%s.%s.INFORMATION_SCHEMA.%s`", in.client.Project(), datasetID, name)
	}

	q := in.client.Query(fmt.Sprintf(`
		SELECT table_catalog, table_schema, table_name, column_name, field_path,
		       data_type,
		       IFNULL(description, '') AS description,
		       IFNULL(collation_name, '') AS collation_name,
		       IFNULL(rounding_mode, '') AS rounding_mode
		FROM %s
		ORDER BY table_name, field_path`, view("COLUMN_FIELD_PATHS")))

	rowIt, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("error querying column field paths: %w", err)
	}

	var records []scoring.ColumnRecord
	index := make(map[string]int)
	for {
		var row fieldPathRow
		err := rowIt.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading column field path row: %w", err)
		}
		records = append(records, scoring.ColumnRecord{
			TableCatalog:  row.TableCatalog,
			TableSchema:   row.TableSchema,
			TableName:     row.TableName,
			ColumnName:    row.ColumnName,
			FieldPath:     row.FieldPath,
			DataType:      row.DataType,
			Description:   row.Description,
			CollationName: row.CollationName,
			RoundingMode:  row.RoundingMode,
		})
		index[row.TableName+"\x00"+row.ColumnName] = len(records) - 1
	}

	kq := in.client.Query(fmt.Sprintf(`
		SELECT kcu.table_name, kcu.column_name, tc.constraint_type
		FROM %s tc
		JOIN %s kcu
		    ON tc.constraint_name = kcu.constraint_name
		WHERE tc.constraint_type IN ('PRIMARY KEY', 'FOREIGN KEY')`,
		view("TABLE_CONSTRAINTS"), view("KEY_COLUMN_USAGE")))

	keyIt, err := kq.Read(ctx)
	if err != nil {
		// Constraint views are unavailable on legacy datasets; key flags
		// just stay false.
		in.logger.Warn("constraint metadata unavailable for dataset",
			zap.String("dataset", datasetID), zap.Error(err))
		return records, nil
	}
	for {
		var row constraintRow
		err := keyIt.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading constraint row: %w", err)
		}
		i, ok := index[row.TableName+"\x00"+row.ColumnName]
		if !ok {
			continue
		}
		switch row.ConstraintType {
		case "PRIMARY KEY":
			records[i].PrimaryKey = true
		case "FOREIGN KEY":
			records[i].ForeignKey = true
		}
	}
	return records, nil
}

// Ping verifies the project is reachable by listing one dataset.
func (in *Introspector) Ping(ctx context.Context) error {
	_, err := in.client.Datasets(ctx).Next()
	if err != nil && err != iterator.Done {
		return fmt.Errorf("failed to reach BigQuery project %s: %w", in.client.Project(), err)
	}
	return nil
}

// Close releases the underlying client.
func (in *Introspector) Close() error {
	return in.client.Close()
}
