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
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/resumatch/resumatch/config"
)

// weaviateProvider talks to Weaviate over its REST and GraphQL APIs.
type weaviateProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewWeaviateProvider creates a Provider backed by Weaviate.
func NewWeaviateProvider(cfg *config.VectorStoreConfig) (Provider, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("host is required for Weaviate")
	}

	scheme := "http"
	var transport *http.Transport
	if cfg.EnableTLS {
		scheme = "https"
		if cfg.InsecureSkipVerify {
			transport = &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			}
		}
	}

	timeout := 30 * time.Second
	if cfg.Timeout > 0 {
		timeout = time.Duration(cfg.Timeout) * time.Second
	}

	return &weaviateProvider{
		baseURL: fmt.Sprintf("%s://%s:%d", scheme, cfg.Host, cfg.Port),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport, // nil uses the default transport
		},
	}, nil
}

func (db *weaviateProvider) Name() string {
	return "weaviate"
}

func (db *weaviateProvider) do(ctx context.Context, method, url string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if db.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+db.apiKey)
	}

	return db.httpClient.Do(req)
}

func (db *weaviateProvider) Upsert(ctx context.Context, collection, id string, vec []float32, props Properties) error {
	payload := map[string]any{
		"id":         id,
		"class":      collection,
		"properties": props,
		"vector":     vec,
	}

	// PUT replaces an existing object; POST creates a new one. Try PUT
	// first so re-ingestion of a known id is a clean overwrite.
	url := fmt.Sprintf("%s/v1/objects/%s/%s", db.baseURL, collection, id)
	resp, err := db.do(ctx, http.MethodPut, url, payload)
	if err != nil {
		return fmt.Errorf("failed to upsert object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}
	if resp.StatusCode != http.StatusNotFound {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to upsert object: status %d, body: %s", resp.StatusCode, string(body))
	}

	resp, err = db.do(ctx, http.MethodPost, db.baseURL+"/v1/objects", payload)
	if err != nil {
		return fmt.Errorf("failed to insert object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to insert object: status %d, body: %s", resp.StatusCode, string(body))
	}
	return nil
}

func (db *weaviateProvider) UpsertIfAbsent(ctx context.Context, collection, id string, vec []float32, props Properties) (bool, error) {
	exists, err := db.Exists(ctx, collection, id)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if err := db.Upsert(ctx, collection, id, vec, props); err != nil {
		return false, err
	}
	return true, nil
}

func (db *weaviateProvider) Exists(ctx context.Context, collection, id string) (bool, error) {
	url := fmt.Sprintf("%s/v1/objects/%s/%s", db.baseURL, collection, id)
	resp, err := db.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to check object: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("failed to check object: status %d, body: %s", resp.StatusCode, string(body))
	}
}

func (db *weaviateProvider) Get(ctx context.Context, collection, id string) (Properties, error) {
	url := fmt.Sprintf("%s/v1/objects/%s/%s", db.baseURL, collection, id)
	resp, err := db.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to get object: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Properties Properties `json:"properties"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode object: %w", err)
	}
	return result.Properties, nil
}

func (db *weaviateProvider) Patch(ctx context.Context, collection, id string, partial Properties) error {
	url := fmt.Sprintf("%s/v1/objects/%s/%s", db.baseURL, collection, id)
	resp, err := db.do(ctx, http.MethodPatch, url, map[string]any{"properties": partial})
	if err != nil {
		return fmt.Errorf("failed to patch object: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to patch object: status %d, body: %s", resp.StatusCode, string(body))
	}
}

func (db *weaviateProvider) Search(ctx context.Context, collection string, vec []float32, topK int, targetVector string) ([]Result, error) {
	vectorJSON, _ := json.Marshal(vec)

	nearVector := fmt.Sprintf(`{vector: %s}`, vectorJSON)
	if targetVector != "" {
		nearVector = fmt.Sprintf(`{vector: %s, targetVectors: [%q]}`, vectorJSON, targetVector)
	}

	graphqlQuery := fmt.Sprintf(`
	{
		Get {
			%s(
				nearVector: %s
				limit: %d
			) {
				filename
				content
				notes
				_additional {
					id
					distance
				}
			}
		}
	}`, collection, nearVector, topK)

	resp, err := db.do(ctx, http.MethodPost, db.baseURL+"/v1/graphql", map[string]any{"query": graphqlQuery})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("search failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return convertWeaviateResults(result, collection), nil
}

func convertWeaviateResults(result map[string]any, collection string) []Result {
	data, ok := result["data"].(map[string]any)
	if !ok {
		return []Result{}
	}
	get, ok := data["Get"].(map[string]any)
	if !ok {
		return []Result{}
	}
	classData, ok := get[collection].([]any)
	if !ok {
		return []Result{}
	}

	results := make([]Result, 0, len(classData))
	for _, obj := range classData {
		objMap, ok := obj.(map[string]any)
		if !ok {
			continue
		}

		additional, _ := objMap["_additional"].(map[string]any)
		id, _ := additional["id"].(string)

		// Objects indexed without a vector come back with a null distance.
		// Keeping one would score it as a perfect match, so skip it.
		d, ok := additional["distance"].(float64)
		if !ok {
			slog.Warn("Skipping search result without a distance", "id", id)
			continue
		}
		distance := float32(d)

		props := make(Properties)
		for k, v := range objMap {
			if k != "_additional" {
				props[k] = v
			}
		}

		results = append(results, Result{
			ID:         id,
			Properties: props,
			Distance:   distance,
		})
	}
	return results
}

func (db *weaviateProvider) Delete(ctx context.Context, collection, id string) error {
	url := fmt.Sprintf("%s/v1/objects/%s/%s", db.baseURL, collection, id)
	resp, err := db.do(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to delete object: status %d, body: %s", resp.StatusCode, string(body))
	}
	return nil
}

func (db *weaviateProvider) EnsureCollection(ctx context.Context, collection string, dimension int) error {
	url := fmt.Sprintf("%s/v1/schema/%s", db.baseURL, collection)
	resp, err := db.do(ctx, http.MethodGet, url, nil)
	if err == nil && resp.StatusCode == http.StatusOK {
		resp.Body.Close()
		return nil // Class already exists
	}
	if resp != nil {
		resp.Body.Close()
	}

	classSchema := map[string]any{
		"class":      collection,
		"vectorizer": "none", // vectors are provided by the pipeline
		"properties": []map[string]any{
			{"name": "filename", "dataType": []string{"text"}},
			{"name": "content", "dataType": []string{"text"}},
			{"name": "notes", "dataType": []string{"text[]"}},
		},
	}

	resp, err = db.do(ctx, http.MethodPost, db.baseURL+"/v1/schema", classSchema)
	if err != nil {
		return fmt.Errorf("failed to create class: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to create class: status %d, body: %s", resp.StatusCode, string(body))
	}
	return nil
}

func (db *weaviateProvider) Close() error {
	// Plain HTTP client, nothing to close.
	return nil
}

// Ensure weaviateProvider implements Provider.
var _ Provider = (*weaviateProvider)(nil)
