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

// Package similarity supplies semantic similarity judgments for column
// names. The scoring engine consumes providers through a narrow
// capability interface; the Gemini embedding backend is the production
// wiring, and the local Jaro-Winkler measure is both the offline default
// and the degraded-mode fallback.
package similarity

import (
	"errors"
	"fmt"
)

// ProviderError represents a failure of a remote similarity backend
// (unreachable, unauthenticated, timed out). Callers recover from it by
// falling back to the local measure; it is never surfaced to the end
// caller of a scoring request.
type ProviderError struct {
	Msg string
	Err error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("similarity provider error: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("similarity provider error: %s", e.Msg)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsProviderError reports whether err is (or wraps) a ProviderError.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
