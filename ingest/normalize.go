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

// Package ingest implements the idempotent résumé ingestion pipeline:
// normalize, chunk, triage, embed, upsert.
package ingest

import (
	"regexp"
	"strings"
)

// Boilerplate and noise patterns stripped before chunking. Résumés exported
// by recruiting tools carry report disclaimers, watermark tokens, and ASCII
// rule lines that would otherwise dominate the embedded text.
var (
	disclaimerPattern = regexp.MustCompile(`(?is)(Confidential:|Disclaimer:|This report has been prepared).*?(executives concerned\.|verification\.)`)
	longTokenPattern  = regexp.MustCompile(`\b[a-zA-Z0-9]{20,}\b`)
	ruleLinePattern   = regexp.MustCompile(`(~{2,}|-{2,}|={2,}|\+{2,})`)
	spaceRunPattern   = regexp.MustCompile(`[ \t]{2,}`)
	blankRunPattern   = regexp.MustCompile(`\n{3,}`)
)

// Normalize strips boilerplate substrings, collapses repeated whitespace
// to single spaces, and collapses runs of blank lines to at most one.
// Empty input yields an empty string, never an error.
func Normalize(text string) string {
	text = disclaimerPattern.ReplaceAllString(text, "")
	text = longTokenPattern.ReplaceAllString(text, "")
	text = ruleLinePattern.ReplaceAllString(text, "")
	text = spaceRunPattern.ReplaceAllString(text, " ")
	text = blankRunPattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
