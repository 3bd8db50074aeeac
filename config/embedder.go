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

// EmbedderConfig configures the embedding provider.
//
// Embedders convert résumé text and queries to vectors for similarity
// search.
//
// Example:
//
//	embedder:
//	  provider: openai
//	  model: text-embedding-ada-002
//	  api_key: ${OPENAI_API_KEY}
type EmbedderConfig struct {
	// Provider specifies the embedding service.
	// Values: "openai", "ollama"
	Provider string `yaml:"provider,omitempty"`

	// Model is the embedding model name.
	// OpenAI: "text-embedding-ada-002", "text-embedding-3-small"
	// Ollama: "nomic-embed-text"
	Model string `yaml:"model,omitempty"`

	// APIKey for the embedding provider (OpenAI requires this).
	// Can use environment variable expansion: ${OPENAI_API_KEY}
	APIKey string `yaml:"api_key,omitempty"`

	// BaseURL for the API endpoint.
	// OpenAI default: https://api.openai.com/v1
	// Ollama default: http://localhost:11434
	BaseURL string `yaml:"base_url,omitempty"`

	// Dimension of the embedding vectors (auto-detected if 0).
	Dimension int `yaml:"dimension,omitempty"`

	// Timeout in seconds for API requests (default: 30).
	Timeout int `yaml:"timeout,omitempty"`

	// CacheSize bounds the query-embedding LRU cache (default: 100).
	CacheSize int `yaml:"cache_size,omitempty"`
}

// SetDefaults applies default values.
func (c *EmbedderConfig) SetDefaults() {
	if c.Provider == "" {
		c.Provider = "openai"
	}

	if c.Model == "" {
		switch c.Provider {
		case "ollama":
			c.Model = "nomic-embed-text"
		default:
			c.Model = "text-embedding-ada-002"
		}
	}

	if c.BaseURL == "" {
		switch c.Provider {
		case "ollama":
			c.BaseURL = "http://localhost:11434"
		default:
			c.BaseURL = "https://api.openai.com/v1"
		}
	}

	if c.Dimension == 0 {
		switch c.Provider {
		case "openai":
			switch c.Model {
			case "text-embedding-3-large":
				c.Dimension = 3072
			default:
				// text-embedding-ada-002 and text-embedding-3-small
				c.Dimension = 1536
			}
		case "ollama":
			c.Dimension = 768
		}
	}

	if c.Timeout == 0 {
		c.Timeout = 30
	}

	if c.CacheSize == 0 {
		c.CacheSize = 100
	}
}

// Validate checks the embedder configuration.
func (c *EmbedderConfig) Validate() error {
	switch c.Provider {
	case "openai", "ollama":
	default:
		return fmt.Errorf("invalid provider %q (valid: openai, ollama)", c.Provider)
	}

	if c.Provider == "openai" && c.APIKey == "" {
		return fmt.Errorf("api_key is required for openai embedder")
	}

	if c.Model == "" {
		return fmt.Errorf("model is required")
	}

	if c.Dimension <= 0 {
		return fmt.Errorf("dimension must be positive")
	}

	return nil
}
