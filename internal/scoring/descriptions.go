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

// describedColumn reports whether the column carries a present,
// informative description: non-empty after trimming, at least the
// configured floor in length, and not just its own name echoed back.
func describedColumn(col ColumnRecord, cfg Config) bool {
	d := strings.TrimSpace(col.Description)
	if len(d) < cfg.MinDescriptionLength {
		return false
	}
	return !strings.EqualFold(d, col.EffectiveName())
}

// evaluateDescriptions returns the described fraction across the whole
// schema plus per-column verdicts keyed by qualified name.
func evaluateDescriptions(groups TableGroups, cfg Config) (ratio float64, described map[string]bool) {
	described = make(map[string]bool, groups.TotalColumns())
	count := 0
	for _, id := range groups.TableIDs() {
		for _, col := range groups[id] {
			ok := describedColumn(col, cfg)
			described[col.QualifiedName()] = ok
			if ok {
				count++
			}
		}
	}
	total := groups.TotalColumns()
	if total == 0 {
		return 0, described
	}
	return float64(count) / float64(total), described
}
