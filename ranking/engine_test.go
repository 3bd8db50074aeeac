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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumatch/resumatch/candidate"
	"github.com/resumatch/resumatch/config"
	"github.com/resumatch/resumatch/profile"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(config.DefaultWeights(), 200)
	require.NoError(t, err)
	return e
}

func opticsProfile() *profile.Profile {
	return &profile.Profile{
		Required: map[string]float64{"光学": 1.0, "工程师": 0.8},
	}
}

func TestEngine_KeywordWeightNormalization(t *testing.T) {
	engine := testEngine(t)

	both := []candidate.Document{{ID: "a", Content: "资深光学工程师，十年经验"}}
	onlyOne := []candidate.Document{{ID: "b", Content: "机械工程师，十年经验"}}

	rankedBoth := engine.Rank(both, []float32{0}, opticsProfile())
	rankedOne := engine.Rank(onlyOne, []float32{0}, opticsProfile())

	assert.InDelta(t, 1.0, rankedBoth[0].KeywordScore, 1e-9)
	assert.InDelta(t, 0.8/1.8, rankedOne[0].KeywordScore, 1e-9)
	assert.Len(t, rankedBoth[0].MatchedRequired, 2)
	assert.Len(t, rankedOne[0].MatchedRequired, 1)
	assert.Equal(t, "工程师", rankedOne[0].MatchedRequired[0].Term)
}

func TestEngine_NilProfileDegradesGracefully(t *testing.T) {
	engine := testEngine(t)

	docs := []candidate.Document{{ID: "a", Content: "资深光学工程师"}}
	ranked := engine.Rank(docs, []float32{0.2}, nil)

	require.Len(t, ranked, 1)
	assert.Zero(t, ranked[0].KeywordScore)
	assert.Empty(t, ranked[0].MatchedRequired)
	assert.Greater(t, ranked[0].CompositeScore, 0.0)
}

func TestEngine_CompositeOrdering(t *testing.T) {
	engine := testEngine(t)

	// Identical vector distance and near-identical quality: the document
	// carrying the profile terms must rank strictly higher.
	docs := []candidate.Document{
		{ID: "plain", Content: "机械设计相关经验，熟悉制图软件"},
		{ID: "optics", Content: "光学工程师，镜头设计相关经验"},
	}
	ranked := engine.Rank(docs, []float32{0.1, 0.1}, opticsProfile())

	require.Len(t, ranked, 2)
	assert.Equal(t, "optics", ranked[0].ID)
	assert.Greater(t, ranked[0].CompositeScore, ranked[1].CompositeScore)
}

func TestEngine_StableTiebreakKeepsRetrievalOrder(t *testing.T) {
	engine := testEngine(t)

	docs := []candidate.Document{
		{ID: "first", Content: "内容完全相同的简历文本"},
		{ID: "second", Content: "内容完全相同的简历文本"},
	}

	for range 10 {
		ranked := engine.Rank(docs, []float32{0.3, 0.3}, nil)
		require.Equal(t, "first", ranked[0].ID)
		require.Equal(t, "second", ranked[1].ID)
	}
}

func TestEngine_VectorScorePercentage(t *testing.T) {
	engine := testEngine(t)

	ranked := engine.Rank([]candidate.Document{{ID: "a", Content: "内容"}}, []float32{0.127}, nil)
	assert.Equal(t, "87.3%", ranked[0].VectorScore)
}

func TestEngine_SummaryTruncation(t *testing.T) {
	e, err := NewEngine(config.DefaultWeights(), 10)
	require.NoError(t, err)

	long := "负责光学系统设计与仿真，兼顾量产导入"
	ranked := e.Rank([]candidate.Document{{ID: "a", Content: long}}, []float32{0}, nil)
	assert.Equal(t, string([]rune(long)[:10])+"...", ranked[0].Summary)
}

func TestNewEngine_RejectsUnnormalizedWeights(t *testing.T) {
	_, err := NewEngine(config.Weights{Vector: 0.5, Keyword: 0.5, Quality: 0.5}, 200)
	assert.Error(t, err)
}
