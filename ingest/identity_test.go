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
	"testing"

	"github.com/resumatch/resumatch/config"
)

func TestIdentity_NameModeIsDeterministic(t *testing.T) {
	identity, err := NewIdentity(config.DedupName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := identity.DocumentID("张三_光学工程师_5年.txt", "some content")
	b := identity.DocumentID("张三_光学工程师_5年.txt", "different content")
	if a != b {
		t.Errorf("name mode must ignore content: %s != %s", a, b)
	}

	c := identity.DocumentID("李四_结构工程师_3年.txt", "some content")
	if a == c {
		t.Errorf("different filenames must get different ids")
	}
}

func TestIdentity_ContentModeTracksContent(t *testing.T) {
	identity, err := NewIdentity(config.DedupContent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := identity.DocumentID("张三_光学工程师_5年.txt", "v1")
	b := identity.DocumentID("张三_光学工程师_5年.txt", "v1")
	c := identity.DocumentID("张三_光学工程师_5年.txt", "v2")

	if a != b {
		t.Errorf("same inputs must produce the same id: %s != %s", a, b)
	}
	if a == c {
		t.Errorf("a content change must produce a new id")
	}
}

func TestIdentity_RejectsUnknownMode(t *testing.T) {
	if _, err := NewIdentity("fuzzy"); err == nil {
		t.Errorf("expected an error for an unknown mode")
	}
}

func TestNameID_MatchesNameMode(t *testing.T) {
	identity, _ := NewIdentity(config.DedupName)
	if NameID("张三_光学工程师_5年.txt") != identity.DocumentID("张三_光学工程师_5年.txt", "anything") {
		t.Errorf("NameID must match name-mode document ids")
	}
}
