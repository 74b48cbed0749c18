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

// evaluateKeys scores key presence per table and averages across tables.
// A primary key is always expected. A foreign key only enters a table's
// denominator when one is actually flagged: not every table references
// another, so FK absence is never penalized, only presence rewarded.
func evaluateKeys(groups TableGroups) float64 {
	if len(groups) == 0 {
		return 0
	}

	var sum float64
	for _, cols := range groups {
		hasPK, hasFK := false, false
		for _, col := range cols {
			if col.PrimaryKey {
				hasPK = true
			}
			if col.ForeignKey {
				hasFK = true
			}
		}

		credit, parts := 0.0, 1.0
		if hasPK {
			credit++
		}
		if hasFK {
			credit++
			parts++
		}
		sum += credit / parts
	}
	return sum / float64(len(groups))
}
