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
	"strings"
	"unicode"
)

// meaningfulName judges whether a column name is informative. The rules
// are deterministic: purely numeric names, single-character names,
// stoplisted generic tokens, literal repeats of the table name, and names
// whose every token is generic or numeric all fail.
func meaningfulName(name, tableName string, cfg Config) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	if len([]rune(n)) <= 1 {
		return false
	}
	if isNumericToken(n) {
		return false
	}
	if cfg.Stoplist[n] {
		return false
	}
	if n == strings.ToLower(strings.TrimSpace(tableName)) {
		return false
	}

	for _, tok := range nameTokens(n) {
		if len(tok) > 1 && !cfg.Stoplist[tok] && !isNumericToken(tok) {
			return true
		}
	}
	return false
}

// nameTokens splits a column name on every non-letter-or-digit rune, so
// "user_id", "user.id" and "user-id" all tokenize the same way.
func nameTokens(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func isNumericToken(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// evaluateNames classifies every column and returns per-column verdicts
// keyed by qualified name. The raw sub-score ratio is the meaningful
// fraction across the whole schema, not per table.
func evaluateNames(groups TableGroups, cfg Config) (ratio float64, meaningful map[string]bool) {
	meaningful = make(map[string]bool, groups.TotalColumns())
	count := 0
	for _, id := range groups.TableIDs() {
		for _, col := range groups[id] {
			ok := meaningfulName(col.EffectiveName(), col.TableName, cfg)
			meaningful[col.QualifiedName()] = ok
			if ok {
				count++
			}
		}
	}
	total := groups.TotalColumns()
	if total == 0 {
		return 0, meaningful
	}
	return float64(count) / float64(total), meaningful
}
