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
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// SimilarityProvider supplies a similarity judgment in [0,1] for two
// column names. Production wiring injects a networked embedding backend;
// tests and offline runs use the deterministic local measure.
type SimilarityProvider interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// evaluateSimilarity compares every unordered pair of column names within
// each table. Pairs at or above the threshold are undifferentiated unless
// one side carries a present description that distinguishes it from the
// other side's. Comparison order is lexicographic by column name, so
// flagging is identical regardless of input ordering.
//
// A provider failure is not fatal: the evaluator switches to the local
// fallback for the remainder of the request and logs the degraded mode.
func (e *Engine) evaluateSimilarity(ctx context.Context, groups TableGroups, cfg Config) (ratio float64, offenders []string) {
	active := e.provider
	degraded := active == nil
	if degraded {
		active = e.fallback
	}

	flagged := make(map[string]bool)
	for _, id := range groups.TableIDs() {
		cols := append([]ColumnRecord(nil), groups[id]...)
		sort.Slice(cols, func(i, j int) bool {
			return cols[i].EffectiveName() < cols[j].EffectiveName()
		})

		for i := 0; i < len(cols); i++ {
			for j := i + 1; j < len(cols); j++ {
				a, b := cols[i], cols[j]

				sim, err := active.Similarity(ctx, a.EffectiveName(), b.EffectiveName())
				if err != nil && !degraded {
					e.logger.Warn("similarity provider failed, continuing with local fallback",
						zap.Error(err))
					active = e.fallback
					degraded = true
					sim, err = active.Similarity(ctx, a.EffectiveName(), b.EffectiveName())
				}
				if err != nil || sim < cfg.SimilarityThreshold {
					continue
				}
				if descriptionsDistinguish(a, b, cfg) {
					continue
				}
				flagged[a.QualifiedName()] = true
				flagged[b.QualifiedName()] = true
			}
		}
	}

	offenders = make([]string, 0, len(flagged))
	for name := range flagged {
		offenders = append(offenders, name)
	}
	sort.Strings(offenders)

	total := groups.TotalColumns()
	if total == 0 {
		return 1, offenders
	}
	return 1 - float64(len(flagged))/float64(total), offenders
}

// descriptionsDistinguish reports whether at least one of a near-duplicate
// pair carries a present description that sets it apart from the other.
func descriptionsDistinguish(a, b ColumnRecord, cfg Config) bool {
	da := strings.TrimSpace(a.Description)
	db := strings.TrimSpace(b.Description)
	if describedColumn(a, cfg) && da != db {
		return true
	}
	if describedColumn(b, cfg) && db != da {
		return true
	}
	return false
}
