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
	"context"
	"math"
	"sort"
	"sync"
)

// memoryProvider is an in-process Provider for tests and local development.
// Objects live in a map guarded by a RWMutex; search is a linear scan with
// cosine distance.
type memoryProvider struct {
	mu          sync.RWMutex
	collections map[string]map[string]*memoryObject
}

type memoryObject struct {
	vec   []float32
	props Properties
	seq   int // insertion order, stable tiebreak for equal distances
}

// NewMemoryProvider creates an empty in-memory Provider.
func NewMemoryProvider() Provider {
	return &memoryProvider{
		collections: make(map[string]map[string]*memoryObject),
	}
}

func (db *memoryProvider) Name() string {
	return "memory"
}

func (db *memoryProvider) EnsureCollection(ctx context.Context, collection string, dimension int) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.collections[collection]; !ok {
		db.collections[collection] = make(map[string]*memoryObject)
	}
	return nil
}

func (db *memoryProvider) Upsert(ctx context.Context, collection, id string, vec []float32, props Properties) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	coll, ok := db.collections[collection]
	if !ok {
		coll = make(map[string]*memoryObject)
		db.collections[collection] = coll
	}

	seq := len(coll)
	if old, ok := coll[id]; ok {
		seq = old.seq
	}
	coll[id] = &memoryObject{
		vec:   append([]float32(nil), vec...),
		props: cloneProperties(props),
		seq:   seq,
	}
	return nil
}

func (db *memoryProvider) UpsertIfAbsent(ctx context.Context, collection, id string, vec []float32, props Properties) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	coll, ok := db.collections[collection]
	if !ok {
		coll = make(map[string]*memoryObject)
		db.collections[collection] = coll
	}
	if _, ok := coll[id]; ok {
		return false, nil
	}
	coll[id] = &memoryObject{
		vec:   append([]float32(nil), vec...),
		props: cloneProperties(props),
		seq:   len(coll),
	}
	return true, nil
}

func (db *memoryProvider) Exists(ctx context.Context, collection, id string) (bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	_, ok := db.collections[collection][id]
	return ok, nil
}

func (db *memoryProvider) Get(ctx context.Context, collection, id string) (Properties, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	obj, ok := db.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneProperties(obj.props), nil
}

func (db *memoryProvider) Patch(ctx context.Context, collection, id string, partial Properties) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	obj, ok := db.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range partial {
		obj.props[k] = v
	}
	return nil
}

func (db *memoryProvider) Search(ctx context.Context, collection string, vec []float32, topK int, targetVector string) ([]Result, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	coll := db.collections[collection]
	results := make([]Result, 0, len(coll))
	seqs := make(map[string]int, len(coll))
	for id, obj := range coll {
		results = append(results, Result{
			ID:         id,
			Properties: cloneProperties(obj.props),
			Distance:   cosineDistance(vec, obj.vec),
		})
		seqs[id] = obj.seq
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return seqs[results[i].ID] < seqs[results[j].ID]
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

func (db *memoryProvider) Delete(ctx context.Context, collection, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.collections[collection], id)
	return nil
}

func (db *memoryProvider) Close() error {
	return nil
}

func cosineDistance(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 1
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return float32(1 - dot/(math.Sqrt(normA)*math.Sqrt(normB)))
}

func cloneProperties(props Properties) Properties {
	out := make(Properties, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}

// Ensure memoryProvider implements Provider.
var _ Provider = (*memoryProvider)(nil)
