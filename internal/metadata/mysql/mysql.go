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
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"net"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/dataomni/schema-scoring/internal/config"
	"github.com/dataomni/schema-scoring/internal/metadata"
	"github.com/dataomni/schema-scoring/internal/scoring"
)

// mysqlHandler implements metadata.DialectHandler for MySQL.
type mysqlHandler struct{}

var _ metadata.DialectHandler = (*mysqlHandler)(nil)

func init() {
	metadata.RegisterDialectHandler("mysql", mysqlHandler{})
	metadata.RegisterDialectHandler("cloudsqlmysql", mysqlHandler{})
}

// CreateCloudSQLPool for MySQL.
func (h mysqlHandler) CreateCloudSQLPool(cfg config.DatabaseConfig) (*sql.DB, error) {
	if cfg.User == "" || cfg.Password == "" || cfg.DBName == "" || cfg.CloudSQLInstanceConnectionName == "" {
		return nil, fmt.Errorf("missing required Cloud SQL connection parameter (user, pass, db, instance)")
	}

	d, err := cloudsqlconn.NewDialer(context.Background())
	if err != nil {
		return nil, fmt.Errorf("cloudsqlconn.NewDialer: %w", err)
	}

	var opts []cloudsqlconn.DialOption
	if cfg.UsePrivateIP {
		opts = append(opts, cloudsqlconn.WithPrivateIP())
	}

	network := fmt.Sprintf("cloudsql-%s", cfg.CloudSQLInstanceConnectionName)
	mysql.RegisterDialContext(network,
		func(ctx context.Context, addr string) (net.Conn, error) {
			conn, dialErr := d.Dial(ctx, cfg.CloudSQLInstanceConnectionName, opts...)
			if dialErr != nil {
				zap.L().Error("Cloud SQL dial failed",
					zap.String("instance", cfg.CloudSQLInstanceConnectionName), zap.Error(dialErr))
			}
			return conn, dialErr
		})

	mysqlCfg := mysql.Config{
		User:                 cfg.User,
		Passwd:               cfg.Password,
		Net:                  network,
		Addr:                 cfg.CloudSQLInstanceConnectionName,
		DBName:               cfg.DBName,
		AllowNativePasswords: true,
		ParseTime:            true,
	}

	pool, err := sql.Open("mysql", mysqlCfg.FormatDSN())
	if err != nil {
		mysql.DeregisterDialContext(network)
		d.Close()
		return nil, fmt.Errorf("sql.Open failed for Cloud SQL MySQL: %w", err)
	}
	return pool, nil
}

// CreateStandardPool creates a standard MySQL connection pool.
func (h mysqlHandler) CreateStandardPool(cfg config.DatabaseConfig) (*sql.DB, error) {
	mysqlCfg := mysql.Config{
		User:                 cfg.User,
		Passwd:               cfg.Password,
		Net:                  "tcp",
		Addr:                 fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		DBName:               cfg.DBName,
		AllowNativePasswords: true,
		ParseTime:            true,
	}
	pool, err := sql.Open("mysql", mysqlCfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("sql.Open (standard mysql): %w", err)
	}
	return pool, nil
}

const columnsQuery = `
		SELECT c.TABLE_CATALOG, c.TABLE_SCHEMA, c.TABLE_NAME, c.COLUMN_NAME,
		       c.DATA_TYPE,
		       COALESCE(c.COLLATION_NAME, '') AS collation_name,
		       COALESCE(c.COLUMN_COMMENT, '') AS description
		FROM information_schema.COLUMNS c
		JOIN information_schema.TABLES t
		    ON t.TABLE_SCHEMA = c.TABLE_SCHEMA AND t.TABLE_NAME = c.TABLE_NAME
		WHERE c.TABLE_SCHEMA = DATABASE()
		    AND t.TABLE_TYPE = 'BASE TABLE'
		ORDER BY c.TABLE_NAME, c.ORDINAL_POSITION;`

const constraintsQuery = `
		SELECT kcu.TABLE_NAME, kcu.COLUMN_NAME, tc.CONSTRAINT_TYPE
		FROM information_schema.TABLE_CONSTRAINTS tc
		JOIN information_schema.KEY_COLUMN_USAGE kcu
		    ON tc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME
		    AND tc.TABLE_SCHEMA = kcu.TABLE_SCHEMA
		    AND tc.TABLE_NAME = kcu.TABLE_NAME
		WHERE tc.TABLE_SCHEMA = DATABASE()
		    AND tc.CONSTRAINT_TYPE IN ('PRIMARY KEY', 'FOREIGN KEY');`

// ListSchema reads every base-table column of the connected database
// (column comments double as descriptions), then overlays PK/FK flags.
func (h mysqlHandler) ListSchema(ctx context.Context, db *metadata.DB) ([]scoring.ColumnRecord, error) {
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
