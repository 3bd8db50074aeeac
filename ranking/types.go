// Copyright 2025 The Resumatch Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ranking computes the hybrid candidate ordering from vector
// similarity, keyword coverage, and document quality.
package ranking

import "github.com/resumatch/resumatch/candidate"

// MatchedTerm is one profile term found in a document, kept for
// explainability in the response.
type MatchedTerm struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// RankedCandidate is the query-scoped view of one document with its
// computed scores. Created per query and never persisted.
type RankedCandidate struct {
	Document candidate.Document `json:"-"`

	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Summary     string `json:"summary"`

	// VectorScore is (1 - distance) rendered as a percentage with one
	// decimal place, e.g. "87.3%".
	VectorScore string `json:"vector_score"`

	// CompositeScore is the weighted blend of the three signals.
	CompositeScore float64 `json:"composite_score"`

	// KeywordScore and QualityScore are the normalized sub-signals.
	KeywordScore float64 `json:"keyword_score"`
	QualityScore float64 `json:"quality_score"`

	// MatchedRequired and MatchedBonus list the profile terms found in
	// the document text.
	MatchedRequired []MatchedTerm `json:"matched_required"`
	MatchedBonus    []MatchedTerm `json:"matched_bonus"`
}
