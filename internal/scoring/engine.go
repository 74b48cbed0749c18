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
	"math"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Engine runs the five criterion evaluators over a normalized schema and
// aggregates their sub-scores into a ScoreReport. It is stateless between
// requests; the config and providers are fixed at construction.
type Engine struct {
	cfg      Config
	provider SimilarityProvider
	fallback SimilarityProvider
	logger   *zap.Logger
}

// New builds an Engine. provider may be nil, in which case fallback is
// used for all similarity judgments. fallback must be deterministic and
// must never fail; it is also the degraded-mode path when the provider
// errors mid-request.
func New(cfg Config, provider, fallback SimilarityProvider, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{cfg: cfg, provider: provider, fallback: fallback, logger: logger}
}

// WithConfig returns a shallow copy of the engine carrying a different
// config, sharing providers and logger. Used for per-request threshold
// overrides.
func (e *Engine) WithConfig(cfg Config) *Engine {
	return &Engine{cfg: cfg, provider: e.provider, fallback: e.fallback, logger: e.logger}
}

// Config returns the engine's config.
func (e *Engine) Config() Config {
	return e.cfg
}

// Score validates and scores a schema against the resolved weights.
// ValidationError rejects the request whole; no other input condition is
// an error. Output is deterministic for identical input.
func (e *Engine) Score(ctx context.Context, schema []ColumnRecord, weightsOverride map[string]float64) (*ScoreReport, error) {
	start := time.Now()

	groups, err := Normalize(schema)
	if err != nil {
		return nil, err
	}
	weights, err := ResolveWeights(weightsOverride)
	if err != nil {
		return nil, err
	}

	// The evaluators are mutually independent and share only read-only
	// access to the groups, so they fan out without locking. Each goroutine
	// writes to its own field.
	var (
		wg sync.WaitGroup

		namesRatio float64
		meaningful map[string]bool

		descRatio float64
		described map[string]bool

		simRatio     float64
		simOffenders []string

		typesRatio float64
		keysRatio  float64
	)

	wg.Add(5)
	go func() {
		defer wg.Done()
		namesRatio, meaningful = evaluateNames(groups, e.cfg)
	}()
	go func() {
		defer wg.Done()
		descRatio, described = evaluateDescriptions(groups, e.cfg)
	}()
	go func() {
		defer wg.Done()
		simRatio, simOffenders = e.evaluateSimilarity(ctx, groups, e.cfg)
	}()
	go func() {
		defer wg.Done()
		typesRatio = evaluateTypes(groups, e.cfg)
	}()
	go func() {
		defer wg.Done()
		keysRatio = evaluateKeys(groups)
	}()
	wg.Wait()

	report := &ScoreReport{
		FieldNamesScore:             round2(namesRatio * weights[CriterionFieldNames]),
		FieldNamesScorePct:          round2(namesRatio * 100),
		FieldDescriptionsScore:      round2(descRatio * weights[CriterionFieldDescriptions]),
		FieldDescriptionsScorePct:   round2(descRatio * 100),
		FieldNameSimilarityScore:    round2(simRatio * weights[CriterionFieldNameSimilarity]),
		FieldNameSimilarityScorePct: round2(simRatio * 100),
		FieldTypesScore:             round2(typesRatio * weights[CriterionFieldTypes]),
		FieldTypesScorePct:          round2(typesRatio * 100),
		KeysPresenceScore:           round2(keysRatio * weights[CriterionKeysPresence]),
		KeysPresenceScorePct:        round2(keysRatio * 100),
		PenalizedFields:             mergePenalties(meaningful, described, simOffenders),
	}

	total := namesRatio*weights[CriterionFieldNames] +
		descRatio*weights[CriterionFieldDescriptions] +
		simRatio*weights[CriterionFieldNameSimilarity] +
		typesRatio*weights[CriterionFieldTypes] +
		keysRatio*weights[CriterionKeysPresence]
	report.TotalScore = round2(total)
	report.TotalScorePct = round2(total / weights.Sum() * 100)

	e.logger.Debug("schema scored",
		zap.Int("tables", len(groups)),
		zap.Int("columns", groups.TotalColumns()),
		zap.Float64("total_score", report.TotalScore),
		zap.Duration("elapsed", time.Since(start)))
	return report, nil
}

// mergePenalties derives the penalty report from the per-column verdicts.
// NonMeaningful_NoDescription is the intersection of the two verdicts: a
// column failing meaningfulness that also lacks a present description.
// Categories are sorted lexicographically so output is order-independent.
func mergePenalties(meaningful, described map[string]bool, similar []string) PenaltyReport {
	report := PenaltyReport{
		NonMeaningful:              []string{},
		NonMeaningfulNoDescription: []string{},
		SimilarUndifferentiated:    []string{},
	}
	for name, ok := range meaningful {
		if ok {
			continue
		}
		report.NonMeaningful = append(report.NonMeaningful, name)
		if !described[name] {
			report.NonMeaningfulNoDescription = append(report.NonMeaningfulNoDescription, name)
		}
	}
	sort.Strings(report.NonMeaningful)
	sort.Strings(report.NonMeaningfulNoDescription)

	report.SimilarUndifferentiated = append(report.SimilarUndifferentiated, similar...)
	sort.Strings(report.SimilarUndifferentiated)
	return report
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
