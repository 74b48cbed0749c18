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

// Package metadata pulls live column metadata out of a data source's
// information schema and hands it to the scoring engine in the flat
// ColumnRecord shape. Relational dialects register themselves here; the
// BigQuery introspector lives in its own subpackage since it does not
// speak database/sql.
package metadata

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/dataomni/schema-scoring/internal/config"
	"github.com/dataomni/schema-scoring/internal/scoring"
)

// Introspector is the engine-facing contract of any metadata source.
type Introspector interface {
	ListSchema(ctx context.Context) ([]scoring.ColumnRecord, error)
	Ping(ctx context.Context) error
	Close() error
}

// DialectHandler implements the dialect-specific pieces of a relational
// introspector: building connection pools and reading the information
// schema.
type DialectHandler interface {
	CreateStandardPool(cfg config.DatabaseConfig) (*sql.DB, error)
	CreateCloudSQLPool(cfg config.DatabaseConfig) (*sql.DB, error)
	ListSchema(ctx context.Context, db *DB) ([]scoring.ColumnRecord, error)
}

// DB holds the connection pool and dialect handler for one source.
type DB struct {
	Pool    *sql.DB
	Handler DialectHandler
	Config  config.DatabaseConfig
}

var _ Introspector = (*DB)(nil)

var (
	dialectHandlers = make(map[string]DialectHandler)
	mu              sync.RWMutex
)

// RegisterDialectHandler registers a handler under a dialect name.
// Dialect packages call this from init; cmd blank-imports them.
func RegisterDialectHandler(dialect string, handler DialectHandler) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := dialectHandlers[dialect]; exists {
		zap.L().Warn("dialect handler is being overwritten", zap.String("dialect", dialect))
	}
	dialectHandlers[dialect] = handler
}

// GetDialectHandler looks up a registered handler.
func GetDialectHandler(dialect string) (DialectHandler, error) {
	mu.RLock()
	defer mu.RUnlock()
	handler, ok := dialectHandlers[dialect]
	if !ok {
		return nil, fmt.Errorf("unsupported metadata dialect: %s", dialect)
	}
	return handler, nil
}

// New opens a pool for the configured dialect. Dialects prefixed
// "cloudsql" connect through the Cloud SQL connector.
func New(cfg config.DatabaseConfig) (*DB, error) {
	handler, err := GetDialectHandler(cfg.Dialect)
	if err != nil {
		return nil, err
	}

	var pool *sql.DB
	if strings.HasPrefix(cfg.Dialect, "cloudsql") {
		pool, err = handler.CreateCloudSQLPool(cfg)
	} else {
		pool, err = handler.CreateStandardPool(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &DB{Pool: pool, Handler: handler, Config: cfg}, nil
}

// ListSchema reads the full column metadata of the source.
func (db *DB) ListSchema(ctx context.Context) ([]scoring.ColumnRecord, error) {
	return db.Handler.ListSchema(ctx, db)
}

func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.PingContext(ctx)
}

func (db *DB) Close() error {
	return db.Pool.Close()
}

// ApplyKeyFlags marks records whose (table, column) pair appears in the
// constraint rows. Shared by the relational dialects, which all expose
// constraint metadata through the same two information_schema views.
func ApplyKeyFlags(records []scoring.ColumnRecord, rows *sql.Rows) error {
	index := make(map[string]int, len(records))
	for i, rec := range records {
		index[rec.TableName+"\x00"+rec.ColumnName] = i
	}

	for rows.Next() {
		var table, column, constraintType string
		if err := rows.Scan(&table, &column, &constraintType); err != nil {
			return fmt.Errorf("error scanning constraint row: %w", err)
		}
		i, ok := index[table+"\x00"+column]
		if !ok {
			continue
		}
		switch constraintType {
		case "PRIMARY KEY":
			records[i].PrimaryKey = true
		case "FOREIGN KEY":
			records[i].ForeignKey = true
		}
	}
	return rows.Err()
}
