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
	"fmt"
	"sort"
	"strings"
)

// Normalize validates the incoming schema list and groups it by table
// identifier. Missing optional fields keep their zero values (empty
// description, false key flags), so downstream evaluators never see
// absent data as an error condition.
func Normalize(schema []ColumnRecord) (TableGroups, error) {
	if len(schema) == 0 {
		return nil, &ValidationError{Msg: "schema must be a non-empty list of column records"}
	}

	groups := make(TableGroups)
	seen := make(map[string]bool, len(schema))

	for i, rec := range schema {
		if strings.TrimSpace(rec.TableName) == "" {
			return nil, &ValidationError{Msg: fmt.Sprintf("schema entry %d is missing table_name", i)}
		}
		if rec.EffectiveName() == "" {
			return nil, &ValidationError{Msg: fmt.Sprintf("schema entry %d (table %s) is missing column_name", i, rec.TableID())}
		}

		id := rec.QualifiedName()
		if seen[id] {
			return nil, &ValidationError{Msg: fmt.Sprintf("duplicate column %s in schema", id)}
		}
		seen[id] = true

		rec.Description = strings.TrimSpace(rec.Description)
		groups[rec.TableID()] = append(groups[rec.TableID()], rec)
	}

	return groups, nil
}

// TableIDs returns the group keys in sorted order, so every pass over the
// groups is deterministic regardless of input ordering.
func (g TableGroups) TableIDs() []string {
	ids := make([]string, 0, len(g))
	for id := range g {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TotalColumns counts all columns across all groups.
func (g TableGroups) TotalColumns() int {
	n := 0
	for _, cols := range g {
		n += len(cols)
	}
	return n
}
