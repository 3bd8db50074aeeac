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

package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/resumatch/resumatch/candidate"
	"github.com/resumatch/resumatch/config"
	"github.com/resumatch/resumatch/profile"
)

// Engine computes the hybrid ordering of retrieved candidates.
//
// Rank is a pure function of its inputs. Scores are recomputed per query
// and never cached or persisted.
type Engine struct {
	weights       config.Weights
	summaryLength int
}

// NewEngine creates a ranking engine with the given signal weights and
// summary length.
func NewEngine(weights config.Weights, summaryLength int) (*Engine, error) {
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ranking weights: %w", err)
	}
	if summaryLength <= 0 {
		summaryLength = 200
	}
	return &Engine{weights: weights, summaryLength: summaryLength}, nil
}

// Rank scores every retrieved document and returns them ordered by
// descending composite score. distances[i] is the store distance of
// docs[i] (cosine, 0 = identical). The sort is stable, so equal composite
// scores keep their original retrieval order and repeated queries against
// unchanged data are deterministic.
//
// prof may be nil: keyword score is then 0 for every document and the
// composite degenerates to vector and quality signals.
func (e *Engine) Rank(docs []candidate.Document, distances []float32, prof *profile.Profile) []RankedCandidate {
	ranked := make([]RankedCandidate, 0, len(docs))

	for i, doc := range docs {
		vectorScore := 1 - float64(distances[i])
		if vectorScore < 0 {
			vectorScore = 0
		}

		keywordScore, matchedRequired, matchedBonus := keywordCoverage(doc.Content, prof)
		qualityScore := Quality(doc.Content)

		composite := vectorScore*e.weights.Vector +
			keywordScore*e.weights.Keyword +
			qualityScore*e.weights.Quality

		ranked = append(ranked, RankedCandidate{
			Document:        doc,
			ID:              doc.ID,
			DisplayName:     doc.DisplayName,
			Role:            doc.Role,
			Summary:         candidate.FormatSummary(doc.Content, e.summaryLength),
			VectorScore:     fmt.Sprintf("%.1f%%", vectorScore*100),
			CompositeScore:  composite,
			KeywordScore:    keywordScore,
			QualityScore:    qualityScore,
			MatchedRequired: matchedRequired,
			MatchedBonus:    matchedBonus,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CompositeScore > ranked[j].CompositeScore
	})
	return ranked
}

// keywordCoverage accumulates the weights of profile terms whose lowercase
// form occurs in the lowercased content, normalized by the profile's total
// weight. A nil or empty profile scores 0 without error.
func keywordCoverage(content string, prof *profile.Profile) (float64, []MatchedTerm, []MatchedTerm) {
	if prof == nil {
		return 0, nil, nil
	}
	total := prof.TotalWeight()
	if total == 0 {
		return 0, nil, nil
	}

	contentLower := strings.ToLower(content)

	var matched float64
	required := matchTerms(contentLower, prof.Required, &matched)
	bonus := matchTerms(contentLower, prof.Bonus, &matched)

	return matched / total, required, bonus
}

// matchTerms returns the terms found in content in sorted term order, so
// repeated runs produce identical responses.
func matchTerms(contentLower string, terms map[string]float64, matched *float64) []MatchedTerm {
	if len(terms) == 0 {
		return nil
	}

	sorted := make([]string, 0, len(terms))
	for term := range terms {
		sorted = append(sorted, term)
	}
	sort.Strings(sorted)

	var out []MatchedTerm
	for _, term := range sorted {
		if strings.Contains(contentLower, strings.ToLower(term)) {
			out = append(out, MatchedTerm{Term: term, Weight: terms[term]})
			*matched += terms[term]
		}
	}
	return out
}
