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

package embedder

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingEmbedder counts provider calls and can be forced to fail.
type countingEmbedder struct {
	calls atomic.Int64
	fail  bool
}

func (e *countingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.calls.Add(1)
	if e.fail {
		return nil, errors.New("provider down")
	}
	return []float32{float32(len(text)), 1}, nil
}

func (e *countingEmbedder) Dimension() int { return 2 }
func (e *countingEmbedder) Model() string  { return "counting" }
func (e *countingEmbedder) Close() error   { return nil }

func TestCached_ServesRepeatsFromCache(t *testing.T) {
	inner := &countingEmbedder{}
	cached, err := NewCached(inner, 10)
	require.NoError(t, err)

	ctx := context.Background()
	first, err := cached.Embed(ctx, "光学工程师")
	require.NoError(t, err)
	second, err := cached.Embed(ctx, "光学工程师")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), inner.calls.Load())
}

func TestCached_ExactMatchKeysOnly(t *testing.T) {
	inner := &countingEmbedder{}
	cached, err := NewCached(inner, 10)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = cached.Embed(ctx, "光学工程师")
	require.NoError(t, err)
	_, err = cached.Embed(ctx, " 光学工程师")
	require.NoError(t, err)

	// Whitespace variants are different keys, never collapsed.
	assert.Equal(t, int64(2), inner.calls.Load())
	assert.Equal(t, 2, cached.Len())
}

func TestCached_ErrorsAreNotCached(t *testing.T) {
	inner := &countingEmbedder{fail: true}
	cached, err := NewCached(inner, 10)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = cached.Embed(ctx, "查询")
	require.Error(t, err)
	assert.Equal(t, 0, cached.Len())

	inner.fail = false
	vec, err := cached.Embed(ctx, "查询")
	require.NoError(t, err)
	assert.NotNil(t, vec)
	assert.Equal(t, int64(2), inner.calls.Load())
}

func TestCached_EvictsBeyondCapacity(t *testing.T) {
	inner := &countingEmbedder{}
	cached, err := NewCached(inner, 2)
	require.NoError(t, err)

	ctx := context.Background()
	for _, q := range []string{"一", "二", "三"} {
		_, err := cached.Embed(ctx, q)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, cached.Len())
}
