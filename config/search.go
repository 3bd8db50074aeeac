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
	"fmt"
	"math"
)

// Weights blend the three ranking signals into the composite score.
//
// The three weights must sum to 1; Validate rejects anything else rather
// than renormalizing silently.
type Weights struct {
	Vector  float64 `yaml:"vector,omitempty"`
	Keyword float64 `yaml:"keyword,omitempty"`
	Quality float64 `yaml:"quality,omitempty"`
}

// DefaultWeights returns the standard 0.4/0.4/0.2 blend.
func DefaultWeights() Weights {
	return Weights{Vector: 0.4, Keyword: 0.4, Quality: 0.2}
}

// Validate checks that weights are non-negative and sum to 1.
func (w Weights) Validate() error {
	if w.Vector < 0 || w.Keyword < 0 || w.Quality < 0 {
		return fmt.Errorf("weights must be non-negative")
	}
	sum := w.Vector + w.Keyword + w.Quality
	if math.Abs(sum-1.0) > 1e-6 {
		return fmt.Errorf("weights must sum to 1, got %.6f", sum)
	}
	return nil
}

// SearchConfig configures query-time ranking.
type SearchConfig struct {
	// TopK is the nearest-neighbor result cap (default: 5).
	TopK int `yaml:"top_k,omitempty"`

	// SummaryLength bounds the candidate summary in runes (default: 200).
	SummaryLength int `yaml:"summary_length,omitempty"`

	// Weights blend vector, keyword, and quality scores.
	Weights Weights `yaml:"weights,omitempty"`

	// TimeoutMs bounds a single search including embedding and the
	// nearest-neighbor call (default: 15000).
	TimeoutMs int `yaml:"timeout_ms,omitempty"`
}

// SetDefaults applies default values.
func (c *SearchConfig) SetDefaults() {
	if c.TopK == 0 {
		c.TopK = 5
	}
	if c.SummaryLength == 0 {
		c.SummaryLength = 200
	}
	if c.Weights == (Weights{}) {
		c.Weights = DefaultWeights()
	}
	if c.TimeoutMs == 0 {
		c.TimeoutMs = 15000
	}
}

// Validate checks the search configuration.
func (c *SearchConfig) Validate() error {
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive")
	}
	if c.SummaryLength <= 0 {
		return fmt.Errorf("summary_length must be positive")
	}
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	return nil
}
