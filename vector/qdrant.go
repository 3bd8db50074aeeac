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
	"fmt"
	"strings"

	"github.com/qdrant/go-client/qdrant"

	"github.com/resumatch/resumatch/config"
)

// qdrantProvider talks to Qdrant over its gRPC client.
type qdrantProvider struct {
	client *qdrant.Client
}

// NewQdrantProvider creates a Provider backed by Qdrant.
func NewQdrantProvider(cfg *config.VectorStoreConfig) (Provider, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.EnableTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	return &qdrantProvider{client: client}, nil
}

func (db *qdrantProvider) Name() string {
	return "qdrant"
}

func (db *qdrantProvider) EnsureCollection(ctx context.Context, collection string, dimension int) error {
	exists, err := db.client.CollectionExists(ctx, collection)
	if err != nil {
		return fmt.Errorf("failed to check if collection exists: %w", err)
	}
	if exists {
		return nil
	}

	err = db.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dimension),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		// Tolerate a concurrent creator winning the race.
		if strings.Contains(err.Error(), "already exists") {
			return nil
		}
		return fmt.Errorf("failed to create collection: %w", err)
	}
	return nil
}

func (db *qdrantProvider) Upsert(ctx context.Context, collection, id string, vec []float32, props Properties) error {
	payload, err := toQdrantPayload(props)
	if err != nil {
		return err
	}

	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(id),
		Vectors: qdrant.NewVectors(vec...),
		Payload: payload,
	}

	_, err = db.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}
	return nil
}

func (db *qdrantProvider) UpsertIfAbsent(ctx context.Context, collection, id string, vec []float32, props Properties) (bool, error) {
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

func (db *qdrantProvider) Exists(ctx context.Context, collection, id string) (bool, error) {
	points, err := db.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: collection,
		Ids:            []*qdrant.PointId{qdrant.NewID(id)},
	})
	if err != nil {
		return false, fmt.Errorf("failed to check point: %w", err)
	}
	return len(points) > 0, nil
}

func (db *qdrantProvider) Get(ctx context.Context, collection, id string) (Properties, error) {
	points, err := db.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: collection,
		Ids:            []*qdrant.PointId{qdrant.NewID(id)},
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get point: %w", err)
	}
	if len(points) == 0 {
		return nil, ErrNotFound
	}
	return fromQdrantPayload(points[0].Payload), nil
}

func (db *qdrantProvider) Patch(ctx context.Context, collection, id string, partial Properties) error {
	exists, err := db.Exists(ctx, collection, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	payload, err := toQdrantPayload(partial)
	if err != nil {
		return err
	}

	_, err = db.client.SetPayload(ctx, &qdrant.SetPayloadPoints{
		CollectionName: collection,
		Payload:        payload,
		PointsSelector: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{
					Ids: []*qdrant.PointId{qdrant.NewID(id)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to set payload: %w", err)
	}
	return nil
}

func (db *qdrantProvider) Search(ctx context.Context, collection string, vec []float32, topK int, targetVector string) ([]Result, error) {
	searchRequest := &qdrant.SearchPoints{
		CollectionName: collection,
		Vector:         vec,
		Limit:          uint64(topK),
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if targetVector != "" && targetVector != "default" {
		searchRequest.VectorName = &targetVector
	}

	pointsClient := db.client.GetPointsClient()
	searchResult, err := pointsClient.Search(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to search points: %w", err)
	}

	results := make([]Result, 0, len(searchResult.Result))
	for _, point := range searchResult.Result {
		var id string
		if point.Id != nil {
			switch idType := point.Id.PointIdOptions.(type) {
			case *qdrant.PointId_Uuid:
				id = idType.Uuid
			case *qdrant.PointId_Num:
				id = fmt.Sprintf("%d", idType.Num)
			}
		}

		// Qdrant reports cosine similarity; normalize to a distance so
		// every backend agrees that 0 means identical.
		results = append(results, Result{
			ID:         id,
			Properties: fromQdrantPayload(point.Payload),
			Distance:   1 - point.Score,
		})
	}
	return results, nil
}

func (db *qdrantProvider) Delete(ctx context.Context, collection, id string) error {
	_, err := db.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: collection,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{
					Ids: []*qdrant.PointId{qdrant.NewID(id)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete point %s from collection %s: %w", id, collection, err)
	}
	return nil
}

func (db *qdrantProvider) Close() error {
	return db.client.Close()
}

func toQdrantPayload(props Properties) (map[string]*qdrant.Value, error) {
	payload := make(map[string]*qdrant.Value, len(props))
	for key, value := range props {
		val, err := qdrant.NewValue(value)
		if err != nil {
			return nil, fmt.Errorf("failed to convert payload value for key %s: %w", key, err)
		}
		payload[key] = val
	}
	return payload, nil
}

func fromQdrantPayload(payload map[string]*qdrant.Value) Properties {
	props := make(Properties, len(payload))
	for key, value := range payload {
		props[key] = fromQdrantValue(value)
	}
	return props
}

func fromQdrantValue(value *qdrant.Value) any {
	switch v := value.Kind.(type) {
	case *qdrant.Value_StringValue:
		return v.StringValue
	case *qdrant.Value_IntegerValue:
		return v.IntegerValue
	case *qdrant.Value_DoubleValue:
		return v.DoubleValue
	case *qdrant.Value_BoolValue:
		return v.BoolValue
	case *qdrant.Value_ListValue:
		if v.ListValue == nil {
			return nil
		}
		list := make([]any, len(v.ListValue.Values))
		for i, item := range v.ListValue.Values {
			list[i] = fromQdrantValue(item)
		}
		return list
	default:
		return value
	}
}

// Ensure qdrantProvider implements Provider.
var _ Provider = (*qdrantProvider)(nil)
