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
package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataomni/schema-scoring/internal/scoring"
	"github.com/dataomni/schema-scoring/internal/similarity"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	engine := scoring.New(scoring.DefaultConfig(), nil, similarity.Local{}, nil)
	return New(engine, nil, ":0")
}

func postJSON(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/score_schema", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestScoreSchemaSuccess(t *testing.T) {
	srv := newTestServer(t)

	body := `{"schema": [
		{"table_name": "orders", "column_name": "order_id", "data_type": "INT64",
		 "description": "Unique order identifier", "primary_key": true},
		{"table_name": "orders", "column_name": "customer_ref", "data_type": "INT64",
		 "description": "Buyer placing the order", "foreign_key": true}
	]}`
	rec := postJSON(t, srv.Router(), body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var report map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Contains(t, report, "Total Score")
	assert.Contains(t, report, "Penalized Fields")
	assert.Equal(t, 100.0, report["Total Score (%)"])
}

func TestScoreSchemaWeightsOverride(t *testing.T) {
	srv := newTestServer(t)

	body := `{
		"schema": [
			{"table_name": "users", "column_name": "customer_name", "data_type": "VARCHAR"}
		],
		"weights_override": {
			"field_names": 0, "field_descriptions": 0, "field_name_similarity": 0,
			"field_types": 100, "keys_presence": 0
		}
	}`
	rec := postJSON(t, srv.Router(), body)

	require.Equal(t, http.StatusOK, rec.Code)
	var report map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 50.0, report["Total Score"])
}

func TestScoreSchemaPerRequestThreshold(t *testing.T) {
	srv := newTestServer(t)

	schema := `[
		{"table_name": "payments", "column_name": "amount"},
		{"table_name": "payments", "column_name": "amount_value"}
	]`

	// With the default 0.8 threshold the pair is a near-duplicate.
	rec := postJSON(t, srv.Router(), `{"schema": `+schema+`}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var report struct {
		Penalized scoring.PenaltyReport `json:"Penalized Fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Len(t, report.Penalized.SimilarUndifferentiated, 2)

	// Raising the threshold for this request alone clears the flag.
	rec = postJSON(t, srv.Router(), `{"schema": `+schema+`, "similarity_threshold": 0.95}`)
	require.Equal(t, http.StatusOK, rec.Code)
	report.Penalized = scoring.PenaltyReport{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Empty(t, report.Penalized.SimilarUndifferentiated)
}

func TestScoreSchemaMissingSchema(t *testing.T) {
	srv := newTestServer(t)

	for _, body := range []string{`{}`, `{"schema": []}`} {
		rec := postJSON(t, srv.Router(), body)
		require.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "No schema provided in the request body", resp.Message)
	}
}

func TestScoreSchemaNotAList(t *testing.T) {
	srv := newTestServer(t)

	rec := postJSON(t, srv.Router(), `{"schema": {"table_name": "users"}}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, `The "schema" field must be a list`, resp.Message)
}

func TestScoreSchemaMalformedJSON(t *testing.T) {
	srv := newTestServer(t)

	rec := postJSON(t, srv.Router(), `{"schema": [`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScoreSchemaValidationError(t *testing.T) {
	srv := newTestServer(t)

	body := `{"schema": [
		{"table_name": "users", "column_name": "id"},
		{"table_name": "users", "column_name": "id"}
	]}`
	rec := postJSON(t, srv.Router(), body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "duplicate column")
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/score_schema", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}
