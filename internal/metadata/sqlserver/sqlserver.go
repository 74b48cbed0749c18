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
package sqlserver

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"

	"cloud.google.com/go/cloudsqlconn"
	mssql "github.com/denisenkom/go-mssqldb"

	"github.com/dataomni/schema-scoring/internal/config"
	"github.com/dataomni/schema-scoring/internal/metadata"
	"github.com/dataomni/schema-scoring/internal/scoring"
)

// sqlServerHandler implements metadata.DialectHandler for SQL Server.
type sqlServerHandler struct{}

var _ metadata.DialectHandler = (*sqlServerHandler)(nil)

func init() {
	metadata.RegisterDialectHandler("sqlserver", sqlServerHandler{})
	metadata.RegisterDialectHandler("cloudsqlsqlserver", sqlServerHandler{})
}

type csqlDialer struct {
	dialer     *cloudsqlconn.Dialer
	connName   string
	usePrivate bool
}

// DialContext adheres to the mssql.Dialer interface.
func (c *csqlDialer) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	var opts []cloudsqlconn.DialOption
	if c.usePrivate {
		opts = append(opts, cloudsqlconn.WithPrivateIP())
	}
	return c.dialer.Dial(ctx, c.connName, opts...)
}

// CreateCloudSQLPool for SQL Server.
func (h sqlServerHandler) CreateCloudSQLPool(cfg config.DatabaseConfig) (*sql.DB, error) {
	if cfg.User == "" || cfg.Password == "" || cfg.DBName == "" || cfg.CloudSQLInstanceConnectionName == "" {
		return nil, fmt.Errorf("missing required Cloud SQL connection parameter (user, pass, db, instance)")
	}

	// Lazy refresh avoids background certificate refreshes from
	// throttling CPU in serverless environments.
	dialer, err := cloudsqlconn.NewDialer(context.Background(), cloudsqlconn.WithLazyRefresh())
	if err != nil {
		return nil, fmt.Errorf("cloudsqlconn.NewDialer: %w", err)
	}

	connector, err := mssql.NewConnector(fmt.Sprintf(
		"sqlserver://%s:%s@localhost:1433?database=%s",
		url.QueryEscape(cfg.User), url.QueryEscape(cfg.Password), url.QueryEscape(cfg.DBName)))
	if err != nil {
		return nil, fmt.Errorf("mssql.NewConnector: %w", err)
	}
	connector.Dialer = &csqlDialer{
		dialer:     dialer,
		connName:   cfg.CloudSQLInstanceConnectionName,
		usePrivate: cfg.UsePrivateIP,
	}

	return sql.OpenDB(connector), nil
}

// CreateStandardPool creates a standard SQL Server connection pool.
func (h sqlServerHandler) CreateStandardPool(cfg config.DatabaseConfig) (*sql.DB, error) {
	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		RawQuery: url.Values{"database": {cfg.DBName}}.Encode(),
	}
	pool, err := sql.Open("sqlserver", u.String())
	if err != nil {
		return nil, fmt.Errorf("sql.Open (sqlserver): %w", err)
	}
	return pool, nil
}

const columnsQuery = `
		SELECT c.TABLE_CATALOG, c.TABLE_SCHEMA, c.TABLE_NAME, c.COLUMN_NAME,
		       c.DATA_TYPE,
		       COALESCE(c.COLLATION_NAME, '') AS collation_name,
		       COALESCE(CAST(ep.value AS NVARCHAR(MAX)), '') AS description
		FROM INFORMATION_SCHEMA.COLUMNS c
		JOIN INFORMATION_SCHEMA.TABLES t
		    ON t.TABLE_SCHEMA = c.TABLE_SCHEMA AND t.TABLE_NAME = c.TABLE_NAME
		LEFT JOIN sys.extended_properties ep
		    ON ep.major_id = OBJECT_ID(c.TABLE_SCHEMA + '.' + c.TABLE_NAME)
		    AND ep.minor_id = c.ORDINAL_POSITION
		    AND ep.name = 'MS_Description'
		WHERE t.TABLE_TYPE = 'BASE TABLE'
		ORDER BY c.TABLE_NAME, c.ORDINAL_POSITION;`

const constraintsQuery = `
		SELECT kcu.TABLE_NAME, kcu.COLUMN_NAME, tc.CONSTRAINT_TYPE
		FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
		JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
		    ON tc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME
		    AND tc.TABLE_SCHEMA = kcu.TABLE_SCHEMA
		WHERE tc.CONSTRAINT_TYPE IN ('PRIMARY KEY', 'FOREIGN KEY');`

// ListSchema reads every base-table column (extended properties double as
// descriptions), then overlays PK/FK flags from constraint metadata.
func (h sqlServerHandler) ListSchema(ctx context.Context, db *metadata.DB) ([]scoring.ColumnRecord, error) {
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
