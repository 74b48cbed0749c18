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
package similarity

import (
	"context"
	"strings"

	"github.com/xrash/smetrics"
)

// Jaro-Winkler parameters: standard prefix boost, standard prefix cap.
const (
	jwBoostThreshold = 0.1
	jwPrefixSize     = 4
)

// Local is the deterministic, offline string-distance measure. It scores
// shared-prefix names like "amount"/"amount_value" high while unrelated
// names like "id"/"user_id" stay low, which is what the similarity
// criterion's default threshold expects.
type Local struct{}

// Similarity returns the Jaro-Winkler similarity of the two names,
// lowercased and trimmed. It never fails.
func (Local) Similarity(_ context.Context, a, b string) (float64, error) {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 1, nil
	}
	return smetrics.JaroWinkler(a, b, jwBoostThreshold, jwPrefixSize), nil
}
