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

package candidate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resumatch/resumatch/vector"
)

// Store persists candidate documents in a vector store collection.
//
// The communication log is owned exclusively by AppendNote: Insert writes
// an empty log for new documents and re-ingestion never touches it.
type Store struct {
	provider   vector.Provider
	collection string
}

// NewStore wraps a vector store provider for one collection.
func NewStore(provider vector.Provider, collection string) *Store {
	return &Store{provider: provider, collection: collection}
}

// EnsureSchema creates the backing collection if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context, dimension int) error {
	return s.provider.EnsureCollection(ctx, s.collection, dimension)
}

// Insert stores a new document with its vector. When a document with the
// same id already exists the call is a no-op and reports inserted=false;
// the existing record, including its notes, is left untouched.
func (s *Store) Insert(ctx context.Context, doc Document, vec []float32) (bool, error) {
	props := vector.Properties{
		"filename": doc.Filename,
		"content":  doc.Content,
		"notes":    []string{},
	}

	inserted, err := s.provider.UpsertIfAbsent(ctx, s.collection, doc.ID, vec, props)
	if err != nil {
		return false, fmt.Errorf("failed to store candidate %s: %w", doc.Filename, err)
	}
	return inserted, nil
}

// Overwrite replaces an existing document's content and vector while
// carrying the stored communication log forward. Used when a name-stable
// id already exists with different content.
func (s *Store) Overwrite(ctx context.Context, doc Document, vec []float32) error {
	notes := []string{}
	if props, err := s.provider.Get(ctx, s.collection, doc.ID); err == nil {
		notes = notesFromProperty(props["notes"])
	}

	props := vector.Properties{
		"filename": doc.Filename,
		"content":  doc.Content,
		"notes":    notes,
	}
	if err := s.provider.Upsert(ctx, s.collection, doc.ID, vec, props); err != nil {
		return fmt.Errorf("failed to overwrite candidate %s: %w", doc.Filename, err)
	}
	return nil
}

// Exists reports whether a document with the id is stored.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	return s.provider.Exists(ctx, s.collection, id)
}

// Get fetches one document by id. Returns vector.ErrNotFound when absent.
func (s *Store) Get(ctx context.Context, id string) (Document, error) {
	props, err := s.provider.Get(ctx, s.collection, id)
	if err != nil {
		return Document{}, err
	}
	return FromProperties(id, props), nil
}

// AppendNote appends a timestamped entry to the document's communication
// log. The content vector and all other properties are left untouched.
func (s *Store) AppendNote(ctx context.Context, id string, note Note) error {
	props, err := s.provider.Get(ctx, s.collection, id)
	if err != nil {
		return err
	}

	notes := notesFromProperty(props["notes"])
	notes = append(notes, note.String())

	if err := s.provider.Patch(ctx, s.collection, id, vector.Properties{"notes": notes}); err != nil {
		return fmt.Errorf("failed to append note to %s: %w", id, err)
	}

	slog.Debug("Appended note", "id", id, "notes", len(notes))
	return nil
}

// Delete removes one document by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.provider.Delete(ctx, s.collection, id)
}

// Search returns the topK documents nearest to vec, closest first, with
// their raw store distances.
func (s *Store) Search(ctx context.Context, vec []float32, topK int, targetVector string) ([]Document, []float32, error) {
	results, err := s.provider.Search(ctx, s.collection, vec, topK, targetVector)
	if err != nil {
		return nil, nil, err
	}

	docs := make([]Document, 0, len(results))
	distances := make([]float32, 0, len(results))
	for _, r := range results {
		docs = append(docs, FromProperties(r.ID, r.Properties))
		distances = append(distances, r.Distance)
	}
	return docs, distances, nil
}

// FromProperties materializes a Document from stored properties, parsing
// the display name and role from the filename.
func FromProperties(id string, props vector.Properties) Document {
	filename, _ := props["filename"].(string)
	content, _ := props["content"].(string)
	name, role := ParseFilename(filename)

	return Document{
		ID:          id,
		Filename:    filename,
		DisplayName: name,
		Role:        role,
		Content:     content,
		Notes:       notesFromProperty(props["notes"]),
	}
}

// notesFromProperty normalizes the stored notes value, which decodes as
// []any from JSON backends and []string from the in-memory one.
func notesFromProperty(v any) []string {
	switch notes := v.(type) {
	case []string:
		return append([]string(nil), notes...)
	case []any:
		out := make([]string, 0, len(notes))
		for _, n := range notes {
			if s, ok := n.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}
