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

// Config holds the engine's tunables. Built once at startup and never
// mutated; evaluators are pure functions of (data, config).
type Config struct {
	// SimilarityThreshold is the minimum similarity in [0,1] at which two
	// column names in the same table are considered near-duplicates.
	SimilarityThreshold float64

	// MinDescriptionLength is the smallest trimmed description length that
	// still counts as informative.
	MinDescriptionLength int

	// Stoplist holds lowercase generic tokens that make a column name
	// non-meaningful on their own.
	Stoplist map[string]bool

	// TypeCredits maps an uppercase base type token to its informativeness
	// credit in [0,1]. Tokens not listed earn DefaultTypeCredit. Types that
	// declare explicit precision always earn full credit.
	TypeCredits       map[string]float64
	DefaultTypeCredit float64
}

// DefaultConfig returns the engine defaults used by the CLI and the
// scoring endpoint.
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold:  0.8,
		MinDescriptionLength: 3,
		Stoplist: map[string]bool{
			"field":   true,
			"fields":  true,
			"col":     true,
			"column":  true,
			"value":   true,
			"val":     true,
			"data":    true,
			"x":       true,
			"y":       true,
			"temp":    true,
			"tmp":     true,
			"test":    true,
			"dummy":   true,
			"foo":     true,
			"bar":     true,
			"misc":    true,
			"unknown": true,
			"item":    true,
			"var":     true,
			"attr":    true,
		},
		TypeCredits: map[string]float64{
			"STRING":  0.5,
			"TEXT":    0.5,
			"VARCHAR": 0.5,
			"CHAR":    0.5,
			"BYTES":   0.5,
			"BLOB":    0.5,
			"OBJECT":  0.5,
			"VARIANT": 0.5,
			"ANY":     0.25,
			"":        0,
		},
		DefaultTypeCredit: 1.0,
	}
}

// WithSimilarityThreshold returns a copy of the config with the threshold
// replaced. Used for per-request overrides on the scoring endpoint.
func (c Config) WithSimilarityThreshold(t float64) Config {
	c.SimilarityThreshold = t
	return c
}
