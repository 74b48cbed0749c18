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
	"github.com/stretchr/testify/require"
)

func TestNormalizeGroupsByTableIdentifier(t *testing.T) {
	groups, err := Normalize([]ColumnRecord{
		{TableCatalog: "shop", TableSchema: "public", TableName: "users", ColumnName: "id"},
		{TableCatalog: "shop", TableSchema: "public", TableName: "users", ColumnName: "email"},
		{TableName: "orders", ColumnName: "id"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"orders", "shop.public.users"}, groups.TableIDs())
	assert.Len(t, groups["shop.public.users"], 2)
	assert.Equal(t, 3, groups.TotalColumns())
}

func TestNormalizePrefersFieldPath(t *testing.T) {
	groups, err := Normalize([]ColumnRecord{
		{TableName: "events", ColumnName: "payload", FieldPath: "payload.user.id"},
	})
	require.NoError(t, err)

	assert.Equal(t, "payload.user.id", groups["events"][0].EffectiveName())
	assert.Equal(t, "events.payload.user.id", groups["events"][0].QualifiedName())
}

func TestNormalizeTrimsDescriptions(t *testing.T) {
	groups, err := Normalize([]ColumnRecord{
		{TableName: "users", ColumnName: "email", Description: "  Contact address \n"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Contact address", groups["users"][0].Description)
}

func TestNormalizeRejectsBadSchemas(t *testing.T) {
	tests := []struct {
		name   string
		schema []ColumnRecord
	}{
		{"empty schema", nil},
		{"missing table name", []ColumnRecord{{ColumnName: "id"}}},
		{"missing column name", []ColumnRecord{{TableName: "users"}}},
		{"duplicate column", []ColumnRecord{
			{TableName: "users", ColumnName: "id"},
			{TableName: "users", ColumnName: "id"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.schema)
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
		})
	}
}
