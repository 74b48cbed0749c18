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

import "fmt"

// DefaultWeights returns the default weight distribution across the five
// criteria. The defaults sum to 100, but resolution rescales in any case,
// so overrides are free to use whatever relative scale they like.
func DefaultWeights() WeightSet {
	return WeightSet{
		CriterionFieldNames:          35,
		CriterionFieldDescriptions:   25,
		CriterionFieldNameSimilarity: 20,
		CriterionFieldTypes:          10,
		CriterionKeysPresence:        10,
	}
}

// ResolveWeights merges caller overrides into the defaults and rescales
// the merged set proportionally so the five bands sum to exactly 100.
// Unknown criterion names and negative weights are rejected.
func ResolveWeights(override map[string]float64) (WeightSet, error) {
	weights := DefaultWeights()

	for name, w := range override {
		if _, ok := weights[name]; !ok {
			return nil, &ValidationError{Msg: fmt.Sprintf("unknown weight criterion %q", name)}
		}
		if w < 0 {
			return nil, &ValidationError{Msg: fmt.Sprintf("weight for %q must be non-negative, got %v", name, w)}
		}
		weights[name] = w
	}

	var sum float64
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		return nil, &ValidationError{Msg: "resolved weights sum to zero, nothing to score against"}
	}

	for name, w := range weights {
		weights[name] = w * 100 / sum
	}
	return weights, nil
}

// Sum returns the total of all bands. After resolution it is 100 up to
// floating point error.
func (w WeightSet) Sum() float64 {
	var sum float64
	for _, v := range w {
		sum += v
	}
	return sum
}
