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
	"errors"
	"testing"
)

// mapJudge scores chunks from a fixed table; unknown chunks fail.
type mapJudge struct {
	scores map[string]float64
}

func (j *mapJudge) Score(ctx context.Context, role, chunk string) (float64, error) {
	if score, ok := j.scores[chunk]; ok {
		return score, nil
	}
	return 0, errors.New("judge unavailable")
}

func TestTriage_SelectionByScoreOutputByPosition(t *testing.T) {
	judge := &mapJudge{scores: map[string]float64{
		"chunk A": 10,
		"chunk B": 90,
		"chunk C": 50,
	}}
	triage := NewTriage(judge, 2, nil, 0)

	got, kept := triage.Select(context.Background(), "光学工程师", []string{"chunk A", "chunk B", "chunk C"})

	// B and C win on score, but B precedes C in the document, so the
	// output keeps that order.
	if got != "chunk B\nchunk C" {
		t.Errorf("expected \"chunk B\\nchunk C\", got %q", got)
	}
	if kept != 2 {
		t.Errorf("expected 2 chunks kept, got %d", kept)
	}
}

func TestTriage_JudgeFailureScoresZero(t *testing.T) {
	judge := &mapJudge{scores: map[string]float64{
		"known chunk": 80,
	}}
	triage := NewTriage(judge, 1, nil, 0)

	got, _ := triage.Select(context.Background(), "光学工程师", []string{"unknown chunk", "known chunk"})
	if got != "known chunk" {
		t.Errorf("failed chunk should lose to a scored one, got %q", got)
	}
}

func TestTriage_TiesBrokenByOriginalOrder(t *testing.T) {
	judge := &mapJudge{scores: map[string]float64{
		"first":  50,
		"second": 50,
		"third":  50,
	}}
	triage := NewTriage(judge, 2, nil, 0)

	got, _ := triage.Select(context.Background(), "工程师", []string{"first", "second", "third"})
	if got != "first\nsecond" {
		t.Errorf("expected earliest chunks to win ties, got %q", got)
	}
}

func TestTriage_NoJudgeTakesDocumentOrder(t *testing.T) {
	triage := NewTriage(nil, 2, nil, 0)

	got, _ := triage.Select(context.Background(), "", []string{"one", "two", "three"})
	if got != "one\ntwo" {
		t.Errorf("expected first-N without a judge, got %q", got)
	}
}

// flatCounter charges every chunk the same token cost.
type flatCounter struct {
	perChunk int
}

func (c *flatCounter) Count(text string) int { return c.perChunk }

func TestTriage_BudgetTrimsLowestScoringFirst(t *testing.T) {
	judge := &mapJudge{scores: map[string]float64{
		"chunk A": 90,
		"chunk B": 50,
		"chunk C": 70,
	}}
	// Each chunk costs 10 tokens, the budget fits only two.
	triage := NewTriage(judge, 3, &flatCounter{perChunk: 10}, 25)

	got, kept := triage.Select(context.Background(), "光学工程师", []string{"chunk A", "chunk B", "chunk C"})

	// B has the lowest score and is trimmed; A and C come out in
	// document order.
	if got != "chunk A\nchunk C" {
		t.Errorf("expected \"chunk A\\nchunk C\", got %q", got)
	}
	if kept != 2 {
		t.Errorf("expected 2 chunks kept, got %d", kept)
	}
}

func TestTriage_BudgetNeverDropsTopChunk(t *testing.T) {
	judge := &mapJudge{scores: map[string]float64{
		"chunk A": 30,
		"chunk B": 95,
	}}
	// The budget is smaller than a single chunk; the highest-scoring
	// chunk must survive anyway.
	triage := NewTriage(judge, 2, &flatCounter{perChunk: 10}, 5)

	got, kept := triage.Select(context.Background(), "光学工程师", []string{"chunk A", "chunk B"})
	if got != "chunk B" {
		t.Errorf("expected the top-scoring chunk to survive, got %q", got)
	}
	if kept != 1 {
		t.Errorf("expected 1 chunk kept, got %d", kept)
	}
}

func TestTriage_EmptyInput(t *testing.T) {
	triage := NewTriage(nil, 5, nil, 0)
	got, kept := triage.Select(context.Background(), "", nil)
	if got != "" || kept != 0 {
		t.Errorf("expected empty selection, got %q (%d kept)", got, kept)
	}
}
