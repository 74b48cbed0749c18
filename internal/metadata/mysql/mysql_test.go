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
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dataomni/schema-scoring/internal/config"
	"github.com/dataomni/schema-scoring/internal/metadata"
)

func newMockMySQLDB(t *testing.T) (*metadata.DB, sqlmock.Sqlmock, mysqlHandler) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}

	handler := mysqlHandler{}
	db := &metadata.DB{
		Pool:    mockDb,
		Handler: handler,
		Config:  config.DatabaseConfig{Dialect: "mysql"},
	}
	return db, mock, handler
}

func TestMySQLListSchema(t *testing.T) {
	expectedColumns := regexp.QuoteMeta(columnsQuery)
	expectedConstraints := regexp.QuoteMeta(constraintsQuery)

	headers := []string{
		"TABLE_CATALOG", "TABLE_SCHEMA", "TABLE_NAME", "COLUMN_NAME",
		"DATA_TYPE", "collation_name", "description",
	}

	t.Run("Success", func(t *testing.T) {
		db, mock, handler := newMockMySQLDB(t)
		defer db.Close()

		rows := sqlmock.NewRows(headers).
			AddRow("def", "shop", "users", "id", "int", "", "Surrogate key").
			AddRow("def", "shop", "users", "email", "varchar", "utf8mb4_general_ci", "Contact address")
		mock.ExpectQuery(expectedColumns).WillReturnRows(rows)

		keyRows := sqlmock.NewRows([]string{"TABLE_NAME", "COLUMN_NAME", "CONSTRAINT_TYPE"}).
			AddRow("users", "id", "PRIMARY KEY")
		mock.ExpectQuery(expectedConstraints).WillReturnRows(keyRows)

		records, err := handler.ListSchema(context.Background(), db)
		if err != nil {
			t.Fatalf("ListSchema() unexpected error: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("ListSchema() got %d records, want 2", len(records))
		}
		if !records[0].PrimaryKey {
			t.Errorf("ListSchema() users.id should be flagged as primary key")
		}
		if records[1].CollationName != "utf8mb4_general_ci" {
			t.Errorf("ListSchema() users.email collation = %q, want utf8mb4_general_ci",
				records[1].CollationName)
		}

		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})

	t.Run("Column Query Error", func(t *testing.T) {
		db, mock, handler := newMockMySQLDB(t)
		defer db.Close()

		dbError := errors.New("access denied")
		mock.ExpectQuery(expectedColumns).WillReturnError(dbError)

		_, err := handler.ListSchema(context.Background(), db)
		if err == nil {
			t.Fatalf("ListSchema() expected error, got nil")
		}
		if !errors.Is(err, dbError) {
			t.Errorf("ListSchema() got error %v, want error containing %v", err, dbError)
		}
	})
}
