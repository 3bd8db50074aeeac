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

// Package vector defines the contract with the external vector database
// and its backend adapters.
//
// The core never assumes transactional guarantees beyond per-object
// atomicity: concurrent upserts of the same id are last-write-wins from the
// store's perspective. Cosine is the expected distance metric.
package vector

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get and Patch when no object has the id.
var ErrNotFound = errors.New("object not found")

// Properties is the stored metadata of one object.
//
// Candidate objects carry at least "filename" and "content" text fields
// and an optional "notes" text-array field.
type Properties map[string]any

// Result is one nearest-neighbor match.
type Result struct {
	// ID of the matched object.
	ID string

	// Properties stored with the object.
	Properties Properties

	// Distance under the collection's metric (cosine: 0 = identical).
	Distance float32
}

// Provider is the vector store boundary.
type Provider interface {
	// Name identifies the backend ("weaviate", "qdrant", "memory").
	Name() string

	// EnsureCollection creates the collection if it does not exist.
	EnsureCollection(ctx context.Context, collection string, dimension int) error

	// Upsert inserts or overwrites an object.
	Upsert(ctx context.Context, collection, id string, vec []float32, props Properties) error

	// UpsertIfAbsent inserts only when no object has the id.
	// Reports whether an insert happened.
	UpsertIfAbsent(ctx context.Context, collection, id string, vec []float32, props Properties) (bool, error)

	// Exists reports whether an object with the id is stored.
	Exists(ctx context.Context, collection, id string) (bool, error)

	// Get fetches an object's properties by id.
	// Returns ErrNotFound when absent.
	Get(ctx context.Context, collection, id string) (Properties, error)

	// Patch merges partial properties into an existing object without
	// touching its vector. Returns ErrNotFound when absent.
	Patch(ctx context.Context, collection, id string, partial Properties) error

	// Search returns the topK nearest neighbors of vec, closest first.
	// targetVector names the vector index for stores with named vectors
	// (empty uses the store default).
	Search(ctx context.Context, collection string, vec []float32, topK int, targetVector string) ([]Result, error)

	// Delete removes an object by id. Deleting a missing id is not an
	// error.
	Delete(ctx context.Context, collection, id string) error

	// Close releases backend resources.
	Close() error
}
