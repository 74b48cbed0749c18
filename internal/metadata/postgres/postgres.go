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
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"

	"github.com/dataomni/schema-scoring/internal/config"
	"github.com/dataomni/schema-scoring/internal/metadata"
	"github.com/dataomni/schema-scoring/internal/scoring"
)

// postgresHandler implements metadata.DialectHandler for PostgreSQL.
type postgresHandler struct{}

var _ metadata.DialectHandler = (*postgresHandler)(nil)

func init() {
	metadata.RegisterDialectHandler("postgres", postgresHandler{})
	metadata.RegisterDialectHandler("cloudsqlpostgres", postgresHandler{})
}

// CreateCloudSQLPool for PostgreSQL.
func (h postgresHandler) CreateCloudSQLPool(cfg config.DatabaseConfig) (*sql.DB, error) {
	if cfg.User == "" || cfg.Password == "" || cfg.DBName == "" || cfg.CloudSQLInstanceConnectionName == "" {
		return nil, fmt.Errorf("missing required Cloud SQL connection parameter (user, pass, db, instance)")
	}

	dsn := fmt.Sprintf("user=%s password=%s database=%s", cfg.User, cfg.Password, cfg.DBName)
	pgxCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	var opts []cloudsqlconn.Option
	if cfg.UsePrivateIP {
		opts = append(opts, cloudsqlconn.WithDefaultDialOptions(cloudsqlconn.WithPrivateIP()))
	}
	d, err := cloudsqlconn.NewDialer(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("cloudsqlconn.NewDialer: %w", err)
	}
	pgxCfg.DialFunc = func(ctx context.Context, network, instance string) (net.Conn, error) {
		return d.Dial(ctx, cfg.CloudSQLInstanceConnectionName)
	}

	dbURI := stdlib.RegisterConnConfig(pgxCfg)
	pool, err := sql.Open("pgx", dbURI)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	return pool, nil
}

// CreateStandardPool creates a standard PostgreSQL connection pool.
func (h postgresHandler) CreateStandardPool(cfg config.DatabaseConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)
	pool, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	return pool, nil
}

const columnsQuery = `
		SELECT c.table_catalog, c.table_schema, c.table_name, c.column_name,
		       c.data_type,
		       COALESCE(c.collation_name, '') AS collation_name,
		       COALESCE(pgd.description, '') AS description
		FROM information_schema.columns c
		JOIN information_schema.tables t
		    ON t.table_schema = c.table_schema AND t.table_name = c.table_name
		LEFT JOIN pg_catalog.pg_statio_all_tables st
		    ON st.schemaname = c.table_schema AND st.relname = c.table_name
		LEFT JOIN pg_catalog.pg_description pgd
		    ON pgd.objoid = st.relid AND pgd.objsubid = c.ordinal_position
		WHERE c.table_schema = 'public'
		    AND t.table_type = 'BASE TABLE'
		ORDER BY c.table_name, c.ordinal_position;`

const constraintsQuery = `
		SELECT kcu.table_name, kcu.column_name, tc.constraint_type
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		    ON tc.constraint_name = kcu.constraint_name
		    AND tc.table_schema = kcu.table_schema
		WHERE tc.table_schema = 'public'
		    AND tc.constraint_type IN ('PRIMARY KEY', 'FOREIGN KEY');`

// ListSchema reads every base-table column in the public schema along
// with its comment, then overlays PK/FK flags from constraint metadata.
func (h postgresHandler) ListSchema(ctx context.Context, db *metadata.DB) ([]scoring.ColumnRecord, error) {
	rows, err := db.Pool.QueryContext(ctx, columnsQuery)
	if err != nil {
		return nil, fmt.Errorf("error querying columns: %w", err)
	}
	defer rows.Close()

	var records []scoring.ColumnRecord
	for rows.Next() {
		var rec scoring.ColumnRecord
		if err := rows.Scan(&rec.TableCatalog, &rec.TableSchema, &rec.TableName,
			&rec.ColumnName, &rec.DataType, &rec.CollationName, &rec.Description); err != nil {
			return nil, fmt.Errorf("error scanning column row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column rows: %w", err)
	}

	keyRows, err := db.Pool.QueryContext(ctx, constraintsQuery)
	if err != nil {
		return nil, fmt.Errorf("error querying constraints: %w", err)
	}
	defer keyRows.Close()

	if err := metadata.ApplyKeyFlags(records, keyRows); err != nil {
		return nil, err
	}
	return records, nil
}
