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

// VectorStoreConfig configures the external vector database.
//
// The store holds one object per candidate with a single named vector
// index; cosine distance is the expected metric for this domain.
//
// Example:
//
//	vector_store:
//	  type: weaviate
//	  host: localhost
//	  port: 8080
//	  collection: Candidates
type VectorStoreConfig struct {
	// Type specifies the backend.
	// Values: "weaviate", "qdrant"
	Type string `yaml:"type,omitempty"`

	// Host of the vector store.
	Host string `yaml:"host,omitempty"`

	// Port of the vector store (weaviate default: 8080, qdrant: 6334).
	Port int `yaml:"port,omitempty"`

	// APIKey for authenticated deployments (optional).
	APIKey string `yaml:"api_key,omitempty"`

	// Collection is the class/collection holding candidate objects.
	Collection string `yaml:"collection,omitempty"`

	// TargetVector is the named vector index queried by nearest-neighbor
	// search (weaviate named-vector deployments; default: "default").
	TargetVector string `yaml:"target_vector,omitempty"`

	// EnableTLS enables https/TLS transport.
	EnableTLS bool `yaml:"enable_tls,omitempty"`

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify,omitempty"`

	// Timeout in seconds for store requests (default: 30).
	Timeout int `yaml:"timeout,omitempty"`
}

// SetDefaults applies default values.
func (c *VectorStoreConfig) SetDefaults() {
	if c.Type == "" {
		c.Type = "weaviate"
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		switch c.Type {
		case "qdrant":
			c.Port = 6334
		default:
			c.Port = 8080
		}
	}
	if c.Collection == "" {
		c.Collection = "Candidates"
	}
	if c.TargetVector == "" {
		c.TargetVector = "default"
	}
	if c.Timeout == 0 {
		c.Timeout = 30
	}
}

// Validate checks the vector store configuration.
func (c *VectorStoreConfig) Validate() error {
	switch c.Type {
	case "weaviate", "qdrant", "memory":
	default:
		return fmt.Errorf("invalid type %q (valid: weaviate, qdrant, memory)", c.Type)
	}

	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Collection == "" {
		return fmt.Errorf("collection is required")
	}
	return nil
}
