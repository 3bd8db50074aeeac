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

package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertWeaviateResults(t *testing.T) {
	payload := map[string]any{
		"data": map[string]any{
			"Get": map[string]any{
				"Candidates": []any{
					map[string]any{
						"filename": "张三_光学工程师_5年.txt",
						"content":  "光学设计经验",
						"notes":    []any{"[2025-08-01 09:00:00] 已沟通"},
						"_additional": map[string]any{
							"id":       "uuid-1",
							"distance": 0.12,
						},
					},
				},
			},
		},
	}

	results := convertWeaviateResults(payload, "Candidates")
	require.Len(t, results, 1)
	assert.Equal(t, "uuid-1", results[0].ID)
	assert.InDelta(t, 0.12, float64(results[0].Distance), 1e-6)
	assert.Equal(t, "光学设计经验", results[0].Properties["content"])
	assert.NotContains(t, results[0].Properties, "_additional")
}

func TestConvertWeaviateResults_SkipsNullDistance(t *testing.T) {
	payload := map[string]any{
		"data": map[string]any{
			"Get": map[string]any{
				"Candidates": []any{
					map[string]any{
						"filename": "王五_测试工程师_3年.txt",
						"content":  "测试经验",
						"_additional": map[string]any{
							"id":       "uuid-null",
							"distance": nil,
						},
					},
					map[string]any{
						"filename": "张三_光学工程师_5年.txt",
						"content":  "光学设计经验",
						"_additional": map[string]any{
							"id":       "uuid-ok",
							"distance": 0.2,
						},
					},
				},
			},
		},
	}

	results := convertWeaviateResults(payload, "Candidates")
	require.Len(t, results, 1)
	assert.Equal(t, "uuid-ok", results[0].ID)
}

func TestConvertWeaviateResults_MalformedPayload(t *testing.T) {
	assert.Empty(t, convertWeaviateResults(map[string]any{}, "Candidates"))
	assert.Empty(t, convertWeaviateResults(map[string]any{"data": map[string]any{}}, "Candidates"))
}
