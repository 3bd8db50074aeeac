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
	"strings"
	"unicode/utf8"
)

// Chunker splits normalized text into sentence-aligned chunks.
//
// Sentences are delimited by newline and sentence-terminating punctuation,
// including the CJK terminators. Consecutive sentences are accumulated
// greedily into one chunk until the next sentence would push it past
// MaxLen, so chunks are maximal sentence runs under the cap rather than
// single sentences. Chunks shorter than MinLen runes are dropped as noise.
type Chunker struct {
	// MaxLen is the soft chunk length cap in runes (default: 300).
	MaxLen int

	// MinLen drops shorter chunks as noise (default: 10).
	MinLen int
}

// NewChunker creates a chunker, applying defaults for zero values.
func NewChunker(maxLen, minLen int) *Chunker {
	if maxLen <= 0 {
		maxLen = 300
	}
	if minLen <= 0 {
		minLen = 10
	}
	return &Chunker{MaxLen: maxLen, MinLen: minLen}
}

func isSentenceTerminator(r rune) bool {
	switch r {
	case '\n', '。', '！', '？', '!', '?':
		return true
	}
	return false
}

// Split chunks text. Empty input yields no chunks.
func (c *Chunker) Split(text string) []string {
	sentences := strings.FieldsFunc(text, isSentenceTerminator)

	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		chunk := strings.TrimSpace(current.String())
		if utf8.RuneCountInString(chunk) >= c.MinLen {
			chunks = append(chunks, chunk)
		}
		current.Reset()
		currentLen = 0
	}

	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		sentenceLen := utf8.RuneCountInString(sentence) + 1 // trailing 。
		if currentLen > 0 && currentLen+sentenceLen >= c.MaxLen {
			flush()
		}
		current.WriteString(sentence)
		current.WriteString("。")
		currentLen += sentenceLen
	}
	flush()

	return chunks
}
