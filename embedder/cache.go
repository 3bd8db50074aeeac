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
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cached decorates an Embedder with a bounded LRU cache.
//
// The cache is keyed by the exact input text. No normalization is applied
// to the key: two texts that differ only in whitespace are different keys,
// so a cached vector can never be served for a different piece of text.
//
// Cached is an explicit, injectable object rather than a process-wide
// singleton, so tests and concurrent services get isolated caches.
type Cached struct {
	inner Embedder
	cache *lru.Cache[string, []float32]
}

// NewCached wraps an embedder with an LRU cache of the given size.
func NewCached(inner Embedder, size int) (*Cached, error) {
	if inner == nil {
		return nil, fmt.Errorf("inner embedder is required")
	}
	if size <= 0 {
		size = 100
	}

	cache, err := lru.New[string, []float32](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding cache: %w", err)
	}

	return &Cached{inner: inner, cache: cache}, nil
}

// Embed returns the cached vector for text, or delegates to the inner
// embedder and caches the result. Provider errors are never cached.
func (c *Cached) Embed(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := c.cache.Get(text); ok {
		return vec, nil
	}

	vec, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	c.cache.Add(text, vec)
	return vec, nil
}

// Dimension returns the embedding vector dimension.
func (c *Cached) Dimension() int {
	return c.inner.Dimension()
}

// Model returns the inner model name.
func (c *Cached) Model() string {
	return c.inner.Model()
}

// Close releases the inner embedder's resources.
func (c *Cached) Close() error {
	c.cache.Purge()
	return c.inner.Close()
}

// Len reports the number of cached entries.
func (c *Cached) Len() int {
	return c.cache.Len()
}

// Ensure Cached implements Embedder.
var _ Embedder = (*Cached)(nil)
