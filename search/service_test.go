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

package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumatch/resumatch/candidate"
	"github.com/resumatch/resumatch/config"
	"github.com/resumatch/resumatch/profile"
	"github.com/resumatch/resumatch/vector"
)

// axisEmbedder maps texts containing a marker onto one axis and everything
// else onto another, so vector distances are controlled by content.
type axisEmbedder struct {
	fail bool
}

func (e *axisEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e.fail {
		return nil, errors.New("connection refused")
	}
	if strings.Contains(text, "光学") {
		return []float32{1, 0}, nil
	}
	return []float32{0, 1}, nil
}

func (e *axisEmbedder) Dimension() int { return 2 }
func (e *axisEmbedder) Model() string  { return "axis-test" }
func (e *axisEmbedder) Close() error   { return nil }

func opticsRegistry(t *testing.T) *profile.Registry {
	t.Helper()
	reg, err := profile.NewRegistry(map[string]*profile.Profile{
		"光学工程师": {Required: map[string]float64{"光学": 1.0, "工程师": 0.8}},
	})
	require.NoError(t, err)
	return reg
}

func newTestService(t *testing.T, store *candidate.Store, reg *profile.Registry, emb *axisEmbedder) *Service {
	t.Helper()
	svc, err := NewService(store, emb, reg, &config.SearchConfig{}, "")
	require.NoError(t, err)
	return svc
}

func seed(t *testing.T, store *candidate.Store, id, filename, content string, vec []float32) {
	t.Helper()
	inserted, err := store.Insert(context.Background(), candidate.Document{
		ID:       id,
		Filename: filename,
		Content:  content,
	}, vec)
	require.NoError(t, err)
	require.True(t, inserted)
}

func TestService_RanksMatchingCandidateFirst(t *testing.T) {
	store := candidate.NewStore(vector.NewMemoryProvider(), "Candidates")
	emb := &axisEmbedder{}

	// Both candidates sit at the same vector distance from the query;
	// only the keyword and quality signals separate them.
	seed(t, store, "optics", "张三_光学工程师_5年.txt",
		"资深光学工程师，负责光学系统设计。教育背景：硕士。13812345678", []float32{1, 0})
	seed(t, store, "plain", "李四_行政专员_2年.txt",
		"负责日常行政事务与会议安排，熟悉办公软件。", []float32{1, 0})

	svc := newTestService(t, store, opticsRegistry(t), emb)
	resp, err := svc.Search(context.Background(), "光学工程师")
	require.NoError(t, err)

	require.NotNil(t, resp.Profile)
	assert.Equal(t, 2, resp.Profile.Required)
	assert.Equal(t, 0, resp.Profile.Bonus)
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "optics", resp.Candidates[0].ID)
	assert.Equal(t, "张三", resp.Candidates[0].DisplayName)
	assert.InDelta(t, 1.0, resp.Candidates[0].KeywordScore, 1e-9)
	assert.Greater(t, resp.Candidates[0].CompositeScore, resp.Candidates[1].CompositeScore)
	assert.NotEqual(t, "0.0%", resp.Candidates[0].VectorScore)
}

func TestService_NoProfileDegradesToVectorRanking(t *testing.T) {
	store := candidate.NewStore(vector.NewMemoryProvider(), "Candidates")
	seed(t, store, "a", "张三_光学工程师_5年.txt", "光学设计经验丰富的工程师", []float32{1, 0})

	svc := newTestService(t, store, profile.Empty(), &axisEmbedder{})
	resp, err := svc.Search(context.Background(), "光学工程师")
	require.NoError(t, err)

	assert.Nil(t, resp.Profile)
	require.Equal(t, 1, resp.Count)
	assert.Zero(t, resp.Candidates[0].KeywordScore)
}

func TestService_EmptyResultIsNotAnError(t *testing.T) {
	store := candidate.NewStore(vector.NewMemoryProvider(), "Candidates")
	svc := newTestService(t, store, profile.Empty(), &axisEmbedder{})

	resp, err := svc.Search(context.Background(), "光学工程师")
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Count)
	assert.Empty(t, resp.Candidates)
}

func TestService_ProviderFailurePreservesQuery(t *testing.T) {
	store := candidate.NewStore(vector.NewMemoryProvider(), "Candidates")
	svc := newTestService(t, store, profile.Empty(), &axisEmbedder{fail: true})

	_, err := svc.Search(context.Background(), "光学工程师")
	require.Error(t, err)

	var searchErr *Error
	require.ErrorAs(t, err, &searchErr)
	assert.Equal(t, "光学工程师", searchErr.Query)
	assert.Equal(t, "embed", searchErr.Stage)
}
