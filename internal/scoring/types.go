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

import "strings"

// ColumnRecord is one flat row of schema metadata, in the shape produced
// by an information-schema introspection (or hand-authored JSON).
type ColumnRecord struct {
	TableCatalog  string `json:"table_catalog,omitempty"`
	TableSchema   string `json:"table_schema,omitempty"`
	TableName     string `json:"table_name"`
	ColumnName    string `json:"column_name"`
	FieldPath     string `json:"field_path,omitempty"`
	DataType      string `json:"data_type,omitempty"`
	Description   string `json:"description,omitempty"`
	CollationName string `json:"collation_name,omitempty"`
	RoundingMode  string `json:"rounding_mode,omitempty"`
	PrimaryKey    bool   `json:"primary_key,omitempty"`
	ForeignKey    bool   `json:"foreign_key,omitempty"`
}

// TableID returns the grouping key for the record: the catalog, schema and
// table names joined with dots, empty parts skipped.
func (c ColumnRecord) TableID() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.TableCatalog, c.TableSchema, c.TableName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ".")
}

// EffectiveName returns the name the evaluators judge. Flattened nested
// columns carry their full dotted path in field_path; plain columns only
// have column_name.
func (c ColumnRecord) EffectiveName() string {
	if p := strings.TrimSpace(c.FieldPath); p != "" {
		return p
	}
	return strings.TrimSpace(c.ColumnName)
}

// QualifiedName is the table-qualified column identifier used in penalty
// reports.
func (c ColumnRecord) QualifiedName() string {
	return c.TableID() + "." + c.EffectiveName()
}

// TableGroups maps a table identifier to the columns belonging to it.
// Built once by Normalize and read-only afterwards.
type TableGroups map[string][]ColumnRecord

// Recognized criterion names.
const (
	CriterionFieldNames          = "field_names"
	CriterionFieldDescriptions   = "field_descriptions"
	CriterionFieldNameSimilarity = "field_name_similarity"
	CriterionFieldTypes          = "field_types"
	CriterionKeysPresence        = "keys_presence"
)

// CriterionNames lists the five criteria in their canonical order.
var CriterionNames = []string{
	CriterionFieldNames,
	CriterionFieldDescriptions,
	CriterionFieldNameSimilarity,
	CriterionFieldTypes,
	CriterionKeysPresence,
}

// WeightSet maps criterion names to their weight bands. After resolution
// all five keys are present and the values sum to 100.
type WeightSet map[string]float64

// PenaltyReport lists the table-qualified identifiers of offending
// columns, one ordered sequence per penalty category. A column may appear
// in more than one category.
type PenaltyReport struct {
	NonMeaningful              []string `json:"NonMeaningful"`
	NonMeaningfulNoDescription []string `json:"NonMeaningful_NoDescription"`
	SimilarUndifferentiated    []string `json:"Similar_Undifferentiated"`
}

// ScoreReport is the engine's output. Field names match the public JSON
// contract of the scoring endpoint, so they marshal as-is.
type ScoreReport struct {
	FieldNamesScore             float64       `json:"Field Names Score"`
	FieldNamesScorePct          float64       `json:"Field Names Score (%)"`
	FieldDescriptionsScore      float64       `json:"Field Descriptions Score"`
	FieldDescriptionsScorePct   float64       `json:"Field Descriptions Score (%)"`
	FieldNameSimilarityScore    float64       `json:"Field Name Similarity Score"`
	FieldNameSimilarityScorePct float64       `json:"Field Name Similarity Score (%)"`
	FieldTypesScore             float64       `json:"Field Types Score"`
	FieldTypesScorePct          float64       `json:"Field Types Score (%)"`
	KeysPresenceScore           float64       `json:"Keys Presence Score"`
	KeysPresenceScorePct        float64       `json:"Keys Presence Score (%)"`
	TotalScore                  float64       `json:"Total Score"`
	TotalScorePct               float64       `json:"Total Score (%)"`
	PenalizedFields             PenaltyReport `json:"Penalized Fields"`
}
