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

package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"github.com/resumatch/resumatch/config"
)

// Fixed namespace for document identifiers. Changing it would orphan every
// previously stored object, so it is a constant, never configuration.
var idNamespace = uuid.MustParse("12345678-1234-5678-1234-567812345678")

// Identity derives deterministic store identifiers for documents, so
// repeated ingestion runs are safe to re-execute without producing
// duplicate entries. Identifiers are never random.
type Identity struct {
	mode string
}

// NewIdentity creates an identity assigner for the given dedup mode
// (config.DedupName or config.DedupContent).
func NewIdentity(mode string) (*Identity, error) {
	switch mode {
	case config.DedupName, config.DedupContent:
		return &Identity{mode: mode}, nil
	default:
		return nil, fmt.Errorf("unsupported dedup mode: %s", mode)
	}
}

// Mode reports the dedup mode.
func (i *Identity) Mode() string {
	return i.mode
}

// DocumentID returns the stable identifier for a document.
//
// In name mode the id is a function of the filename alone, so re-ingesting
// the same filename always targets the same record. In content mode the id
// additionally incorporates a digest of the selected text, so a content
// change produces a new identifier.
func (i *Identity) DocumentID(filename, selectedText string) string {
	name := filename
	if i.mode == config.DedupContent {
		digest := sha256.Sum256([]byte(selectedText))
		name = filename + ":" + hex.EncodeToString(digest[:])
	}
	return uuid.NewSHA1(idNamespace, []byte(name)).String()
}

// NameID returns the name-stable identifier for a filename regardless of
// the configured mode. Used to resolve a filename to a record when
// appending notes.
func NameID(filename string) string {
	return uuid.NewSHA1(idNamespace, []byte(filename)).String()
}
