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

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
embedder:
  provider: ollama
vector_store:
  type: memory
`))
	require.NoError(t, err)

	assert.Equal(t, "nomic-embed-text", cfg.Embedder.Model)
	assert.Equal(t, 768, cfg.Embedder.Dimension)
	assert.Equal(t, "Candidates", cfg.VectorStore.Collection)
	assert.Equal(t, 300, cfg.Ingest.MaxChunkLen)
	assert.Equal(t, 5, cfg.Ingest.TopChunks)
	assert.Equal(t, DedupName, cfg.Ingest.DedupMode)
	assert.Equal(t, 5, cfg.Search.TopK)
	assert.InDelta(t, 0.4, cfg.Search.Weights.Vector, 1e-9)
}

func TestParse_ExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_RM_KEY", "sk-test")

	cfg, err := Parse([]byte(`
embedder:
  provider: openai
  api_key: ${TEST_RM_KEY}
vector_store:
  type: memory
  host: ${TEST_RM_HOST:-storehost}
`))
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.Embedder.APIKey)
	assert.Equal(t, "storehost", cfg.VectorStore.Host)
}

func TestParse_OpenAIRequiresAPIKey(t *testing.T) {
	_, err := Parse([]byte(`
embedder:
  provider: openai
`))
	assert.Error(t, err)
}

func TestWeights_MustSumToOne(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())

	bad := Weights{Vector: 0.5, Keyword: 0.5, Quality: 0.5}
	assert.Error(t, bad.Validate())

	negative := Weights{Vector: 1.2, Keyword: -0.2, Quality: 0}
	assert.Error(t, negative.Validate())
}

func TestIngestConfig_Validation(t *testing.T) {
	cfg := &IngestConfig{DedupMode: "fuzzy"}
	cfg.SetDefaults()
	assert.Error(t, cfg.Validate())

	cfg = &IngestConfig{MinChunkLen: 400, MaxChunkLen: 300}
	cfg.SetDefaults()
	assert.Error(t, cfg.Validate())

	cfg = &IngestConfig{Judge: &JudgeConfig{}}
	cfg.SetDefaults()
	assert.Error(t, cfg.Validate(), "a configured judge needs an api key")
}
