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

import "fmt"

// Dedup modes for the identity assigner.
const (
	// DedupName derives the document id from the filename only, so
	// re-ingesting the same file always addresses the same record.
	DedupName = "name"

	// DedupContent additionally hashes the selected text, so content
	// changes produce a new id (the old one becomes an orphan).
	DedupContent = "content"
)

// IngestConfig configures the ingestion pipeline.
type IngestConfig struct {
	// SourceDir is the directory of extracted résumé files.
	SourceDir string `yaml:"source_dir,omitempty"`

	// TargetRole steers chunk relevance triage (optional; empty means
	// chunks are selected in document order).
	TargetRole string `yaml:"target_role,omitempty"`

	// MaxChunkLen is the greedy sentence-accumulation cap in runes
	// (default: 300).
	MaxChunkLen int `yaml:"max_chunk_len,omitempty"`

	// MinChunkLen discards shorter chunks as noise (default: 10).
	MinChunkLen int `yaml:"min_chunk_len,omitempty"`

	// TopChunks is the number of chunks selected per document (default: 5).
	TopChunks int `yaml:"top_chunks,omitempty"`

	// MaxSelectedTokens bounds the merged selection passed to the
	// embedding provider (default: 2048; negative disables the budget).
	MaxSelectedTokens int `yaml:"max_selected_tokens,omitempty"`

	// DedupMode is "name" or "content" (default: name).
	DedupMode string `yaml:"dedup_mode,omitempty"`

	// Workers bounds concurrent document processing (default: 4).
	Workers int `yaml:"workers,omitempty"`

	// EmbedDelayMs is the fixed inter-call delay toward the embedding
	// provider in milliseconds (default: 300; negative disables it).
	EmbedDelayMs int `yaml:"embed_delay_ms,omitempty"`

	// Judge configures the chunk relevance judge (optional; nil disables
	// scored triage).
	Judge *JudgeConfig `yaml:"judge,omitempty"`
}

// JudgeConfig configures the LLM chunk-relevance judge.
type JudgeConfig struct {
	// Model is the chat model used for scoring (default: gpt-3.5-turbo).
	Model string `yaml:"model,omitempty"`

	// APIKey for the judge provider.
	APIKey string `yaml:"api_key,omitempty"`

	// BaseURL for the API (default: https://api.openai.com/v1).
	BaseURL string `yaml:"base_url,omitempty"`

	// Timeout in seconds per scoring call (default: 20).
	Timeout int `yaml:"timeout,omitempty"`
}

// SetDefaults applies default values.
func (c *IngestConfig) SetDefaults() {
	if c.MaxChunkLen == 0 {
		c.MaxChunkLen = 300
	}
	if c.MinChunkLen == 0 {
		c.MinChunkLen = 10
	}
	if c.TopChunks == 0 {
		c.TopChunks = 5
	}
	if c.MaxSelectedTokens == 0 {
		c.MaxSelectedTokens = 2048
	}
	if c.DedupMode == "" {
		c.DedupMode = DedupName
	}
	if c.Workers == 0 {
		c.Workers = 4
	}
	if c.EmbedDelayMs == 0 {
		c.EmbedDelayMs = 300
	}
	if c.Judge != nil {
		if c.Judge.Model == "" {
			c.Judge.Model = "gpt-3.5-turbo"
		}
		if c.Judge.BaseURL == "" {
			c.Judge.BaseURL = "https://api.openai.com/v1"
		}
		if c.Judge.Timeout == 0 {
			c.Judge.Timeout = 20
		}
	}
}

// Validate checks the ingestion configuration.
func (c *IngestConfig) Validate() error {
	if c.DedupMode != DedupName && c.DedupMode != DedupContent {
		return fmt.Errorf("invalid dedup_mode %q (valid: name, content)", c.DedupMode)
	}
	if c.MinChunkLen < 0 || c.MaxChunkLen <= 0 {
		return fmt.Errorf("chunk lengths must be positive")
	}
	if c.MinChunkLen >= c.MaxChunkLen {
		return fmt.Errorf("min_chunk_len (%d) must be below max_chunk_len (%d)", c.MinChunkLen, c.MaxChunkLen)
	}
	if c.TopChunks <= 0 {
		return fmt.Errorf("top_chunks must be positive")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}
	if c.Judge != nil && c.Judge.APIKey == "" {
		return fmt.Errorf("judge.api_key is required when the judge is configured")
	}
	return nil
}
