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

// Package candidate models parsed résumé documents and their storage.
package candidate

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Placeholder used when a field cannot be parsed from the filename.
const Unextracted = "（未提取）"

// filenamePattern extracts "<name>_<role>_..." from a résumé filename.
var filenamePattern = regexp.MustCompile(`(.+?)_(.+?)_`)

var whitespacePattern = regexp.MustCompile(`\s+`)

// Document is one stored résumé.
type Document struct {
	// ID is the stable store identifier, deterministic per dedup mode.
	ID string

	// Filename is the original source filename.
	Filename string

	// DisplayName is parsed from the filename, Unextracted when missing.
	DisplayName string

	// Role is the position parsed from the filename, Unextracted when
	// missing.
	Role string

	// Content is the selected résumé text that was embedded.
	Content string

	// Notes is the append-only communication log.
	Notes []string
}

// Note is one timestamped communication-log entry.
type Note struct {
	Timestamp time.Time
	Content   string
}

// String renders the note in its stored form.
func (n Note) String() string {
	return fmt.Sprintf("[%s] %s", n.Timestamp.Format("2006-01-02 15:04:05"), n.Content)
}

// ParseFilename extracts the candidate's name and role from a filename of
// the form "<name>_<role>_...". Both fall back to Unextracted when the
// filename does not match.
func ParseFilename(filename string) (name, role string) {
	name, role = Unextracted, Unextracted
	if m := filenamePattern.FindStringSubmatch(filename); m != nil {
		name = m[1]
		role = m[2]
	}
	return name, role
}

// FormatSummary collapses all whitespace runs in content to single spaces
// and truncates to maxLen runes, appending "..." when truncated.
func FormatSummary(content string, maxLen int) string {
	summary := whitespacePattern.ReplaceAllString(strings.TrimSpace(content), " ")
	runes := []rune(summary)
	if len(runes) <= maxLen {
		return summary
	}
	return string(runes[:maxLen]) + "..."
}
