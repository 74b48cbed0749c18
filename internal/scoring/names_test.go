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
package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeaningfulName(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name       string
		columnName string
		tableName  string
		want       bool
	}{
		{"descriptive snake case", "user_id", "users", true},
		{"descriptive camel case", "createdAt", "orders", true},
		{"dotted nested path", "address.postal_code", "customers", true},
		{"short identifier", "id", "users", true},
		{"single character", "x", "metrics", false},
		{"single unicode rune", "é", "metrics", false},
		{"purely numeric", "123", "metrics", false},
		{"stoplisted token", "temp", "metrics", false},
		{"stoplisted uppercase", "TMP", "metrics", false},
		{"echoes table name", "orders", "orders", false},
		{"echoes table name mixed case", "Orders", "orders", false},
		{"all tokens generic", "tmp_val", "metrics", false},
		{"generic plus numeric tokens", "col_42", "metrics", false},
		{"one informative token rescues", "tmp_balance", "metrics", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := meaningfulName(tt.columnName, tt.tableName, cfg)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateNames(t *testing.T) {
	cfg := DefaultConfig()
	groups, err := Normalize([]ColumnRecord{
		{TableName: "users", ColumnName: "email"},
		{TableName: "users", ColumnName: "x"},
		{TableName: "orders", ColumnName: "order_total"},
		{TableName: "orders", ColumnName: "tmp"},
	})
	assert.NoError(t, err)

	ratio, meaningful := evaluateNames(groups, cfg)

	assert.InDelta(t, 0.5, ratio, 1e-9)
	assert.True(t, meaningful["users.email"])
	assert.False(t, meaningful["users.x"])
	assert.True(t, meaningful["orders.order_total"])
	assert.False(t, meaningful["orders.tmp"])
}

func TestDescribedColumn(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		col  ColumnRecord
		want bool
	}{
		{"informative description", ColumnRecord{ColumnName: "email", Description: "Customer contact address"}, true},
		{"missing description", ColumnRecord{ColumnName: "email"}, false},
		{"whitespace only", ColumnRecord{ColumnName: "email", Description: "   "}, false},
		{"below length floor", ColumnRecord{ColumnName: "email", Description: "ok"}, false},
		{"echoes column name", ColumnRecord{ColumnName: "email", Description: "EMAIL"}, false},
		{"echoes field path", ColumnRecord{ColumnName: "address", FieldPath: "address.city", Description: "address.city"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describedColumn(tt.col, cfg))
		})
	}
}

func TestEvaluateDescriptions(t *testing.T) {
	cfg := DefaultConfig()
	groups, err := Normalize([]ColumnRecord{
		{TableName: "users", ColumnName: "email", Description: "Customer contact address"},
		{TableName: "users", ColumnName: "name"},
	})
	assert.NoError(t, err)

	ratio, described := evaluateDescriptions(groups, cfg)

	assert.InDelta(t, 0.5, ratio, 1e-9)
	assert.True(t, described["users.email"])
	assert.False(t, described["users.name"])
}
