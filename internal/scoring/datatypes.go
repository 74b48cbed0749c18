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

import "strings"

// typeCredit returns the informativeness credit for a declared data type.
// A type declaring explicit precision or parameters ("NUMERIC(10,2)",
// "VARCHAR(64)") earns full credit; otherwise the base token is looked up
// in the configured credit table, with generic catch-alls earning partial
// credit and missing types earning nothing.
func typeCredit(dataType string, cfg Config) float64 {
	t := strings.ToUpper(strings.TrimSpace(dataType))
	if t == "" {
		return 0
	}
	if i := strings.IndexAny(t, "(<"); i >= 0 {
		return 1
	}
	if credit, ok := cfg.TypeCredits[t]; ok {
		return credit
	}
	return cfg.DefaultTypeCredit
}

// evaluateTypes averages the per-column type credit across the schema.
// Type issues never produce penalty-report entries; they show up only in
// the numeric score.
func evaluateTypes(groups TableGroups, cfg Config) float64 {
	total := groups.TotalColumns()
	if total == 0 {
		return 0
	}
	var sum float64
	for _, cols := range groups {
		for _, col := range cols {
			sum += typeCredit(col.DataType, cfg)
		}
	}
	return sum / float64(total)
}
