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

package ingest

import (
	"context"
	"log/slog"
	"sort"
	"strings"
)

// Triage picks the chunks most relevant to a target role. Selection order
// is score, output order is position: the top-N chunks by score are
// concatenated in their original relative order to preserve narrative flow
// for the embedding provider.
type Triage struct {
	judge     RelevanceJudge
	topN      int
	counter   TokenEstimator
	maxTokens int
}

// TokenEstimator counts the tokens a text costs against the selection
// budget. *TokenCounter satisfies it.
type TokenEstimator interface {
	Count(text string) int
}

// NewTriage creates a triage stage. judge may be nil: chunks are then
// taken in document order (first-N). counter may be nil to disable the
// token budget.
func NewTriage(judge RelevanceJudge, topN int, counter TokenEstimator, maxTokens int) *Triage {
	if topN <= 0 {
		topN = 5
	}
	return &Triage{judge: judge, topN: topN, counter: counter, maxTokens: maxTokens}
}

type scoredChunk struct {
	index int
	text  string
	score float64
}

// Select scores every chunk against the role and returns the selected text
// along with the number of chunks it kept. A judge failure scores that
// chunk 0 rather than failing the document. Zero input chunks yield an
// empty string.
func (t *Triage) Select(ctx context.Context, role string, chunks []string) (string, int) {
	if len(chunks) == 0 {
		return "", 0
	}

	scored := make([]scoredChunk, len(chunks))
	for i, chunk := range chunks {
		score := float64(len(chunks) - i) // document order fallback
		if t.judge != nil && role != "" {
			s, err := t.judge.Score(ctx, role, chunk)
			if err != nil {
				slog.Warn("Chunk scoring failed, scoring 0", "chunk", i, "error", err)
				s = 0
			}
			score = s
		}
		scored[i] = scoredChunk{index: i, text: chunk, score: score}
	}

	// Top-N by score, ties broken by original order.
	byScore := make([]scoredChunk, len(scored))
	copy(byScore, scored)
	sort.SliceStable(byScore, func(i, j int) bool {
		return byScore[i].score > byScore[j].score
	})
	selected := byScore[:min(t.topN, len(byScore))]

	selected = t.fitBudget(selected)

	// Back to document order for output.
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].index < selected[j].index
	})

	parts := make([]string, len(selected))
	for i, c := range selected {
		parts[i] = c.text
	}
	return strings.Join(parts, "\n"), len(selected)
}

// fitBudget drops the lowest-scoring selected chunks until the total token
// count fits. The highest-scoring chunk is never dropped, even when it
// alone exceeds the budget.
func (t *Triage) fitBudget(selected []scoredChunk) []scoredChunk {
	if t.counter == nil || t.maxTokens <= 0 {
		return selected
	}

	total := 0
	for _, c := range selected {
		total += t.counter.Count(c.text)
	}

	// selected is ordered by descending score, so trim from the tail.
	for total > t.maxTokens && len(selected) > 1 {
		last := selected[len(selected)-1]
		total -= t.counter.Count(last.text)
		selected = selected[:len(selected)-1]
		slog.Debug("Dropped chunk over token budget", "chunk", last.index, "score", last.score)
	}
	return selected
}
