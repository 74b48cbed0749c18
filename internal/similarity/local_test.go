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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSimilarity(t *testing.T) {
	local := Local{}
	ctx := context.Background()

	t.Run("identical names", func(t *testing.T) {
		sim, err := local.Similarity(ctx, "amount", "amount")
		require.NoError(t, err)
		assert.Equal(t, 1.0, sim)
	})

	t.Run("case and whitespace insensitive", func(t *testing.T) {
		sim, err := local.Similarity(ctx, " Amount ", "amount")
		require.NoError(t, err)
		assert.Equal(t, 1.0, sim)
	})

	t.Run("shared prefix scores high", func(t *testing.T) {
		// amount / amount_value is the canonical near-duplicate pair; it
		// must land at or above the default 0.8 flagging threshold.
		sim, err := local.Similarity(ctx, "amount", "amount_value")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, sim, 0.8)
	})

	t.Run("suffix overlap alone scores low", func(t *testing.T) {
		// id / user_id share a suffix but mean different things; they must
		// stay below the flagging threshold.
		sim, err := local.Similarity(ctx, "id", "user_id")
		require.NoError(t, err)
		assert.Less(t, sim, 0.8)
	})

	t.Run("unrelated names score low", func(t *testing.T) {
		sim, err := local.Similarity(ctx, "email", "created_at")
		require.NoError(t, err)
		assert.Less(t, sim, 0.5)
	})

	t.Run("symmetric", func(t *testing.T) {
		ab, err := local.Similarity(ctx, "amount", "amount_value")
		require.NoError(t, err)
		ba, err := local.Similarity(ctx, "amount_value", "amount")
		require.NoError(t, err)
		assert.Equal(t, ab, ba)
	})
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical vectors", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal vectors", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite vectors", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero vector", []float32{0, 0}, []float32{1, 2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cosine(tt.a, tt.b), 1e-6)
		})
	}
}
