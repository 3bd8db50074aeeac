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

// Package config defines the yaml configuration for resumatch.
//
// Configuration is a single yaml file with ${ENV_VAR} expansion. Every
// section carries its own SetDefaults and Validate so partial configs are
// usable and misconfigurations fail before any provider is dialed.
package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
//
// Example:
//
//	embedder:
//	  provider: openai
//	  model: text-embedding-ada-002
//	  api_key: ${OPENAI_API_KEY}
//	vector_store:
//	  type: weaviate
//	  host: localhost
//	  port: 8080
//	  collection: Candidates
//	profiles: profiles.yaml
type Config struct {
	Embedder    EmbedderConfig    `yaml:"embedder,omitempty"`
	VectorStore VectorStoreConfig `yaml:"vector_store,omitempty"`
	Ingest      IngestConfig      `yaml:"ingest,omitempty"`
	Search      SearchConfig      `yaml:"search,omitempty"`
	Logger      LoggerConfig      `yaml:"logger,omitempty"`

	// Profiles is the path to the role keyword profiles yaml file.
	Profiles string `yaml:"profiles,omitempty"`
}

// LoggerConfig configures logging output.
type LoggerConfig struct {
	// Level is one of debug, info, warn, error (default: info).
	Level string `yaml:"level,omitempty"`

	// File is the log file path (empty = stderr).
	File string `yaml:"file,omitempty"`

	// Format is "text" or "json" (default: text).
	Format string `yaml:"format,omitempty"`
}

// SetDefaults applies default values to all sections.
func (c *Config) SetDefaults() {
	c.Embedder.SetDefaults()
	c.VectorStore.SetDefaults()
	c.Ingest.SetDefaults()
	c.Search.SetDefaults()

	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Format == "" {
		c.Logger.Format = "text"
	}
}

// Validate checks all sections.
func (c *Config) Validate() error {
	if err := c.Embedder.Validate(); err != nil {
		return fmt.Errorf("embedder: %w", err)
	}
	if err := c.VectorStore.Validate(); err != nil {
		return fmt.Errorf("vector_store: %w", err)
	}
	if err := c.Ingest.Validate(); err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	if err := c.Search.Validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}
	return nil
}

// envVarPattern matches ${VAR} and ${VAR:-default} references.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

// ExpandEnv replaces ${VAR} references with environment values.
//
// ${VAR:-default} falls back to the default when VAR is unset or empty.
// Unset variables without a default expand to the empty string so that
// optional keys (api keys for local providers) stay optional.
func ExpandEnv(data []byte) []byte {
	return envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		groups := envVarPattern.FindSubmatch(match)
		name := string(groups[1])
		if value := os.Getenv(name); value != "" {
			return []byte(value)
		}
		if len(groups) > 3 {
			return groups[3]
		}
		return nil
	})
}

// Load reads, expands, parses, defaults, and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses config bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(ExpandEnv(data), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Default returns a config with all defaults applied and no file loaded.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}
