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
	"testing"
	"unicode/utf8"
)

func TestChunker_EmptyInput(t *testing.T) {
	chunker := NewChunker(300, 10)
	chunks := chunker.Split("")
	if len(chunks) != 0 {
		t.Errorf("expected no chunks for empty input, got %d", len(chunks))
	}
}

func TestChunker_DropsShortChunks(t *testing.T) {
	chunker := NewChunker(300, 10)
	// Each sentence is well under 10 runes, and each lands in the same
	// greedy chunk, so the combined chunk survives while a lone short
	// sentence would not.
	chunks := chunker.Split("短句。")
	if len(chunks) != 0 {
		t.Errorf("expected noise sentence to be dropped, got %v", chunks)
	}
}

func TestChunker_AccumulatesSentences(t *testing.T) {
	chunker := NewChunker(300, 10)
	chunks := chunker.Split("负责光学系统设计与仿真。主导镜头模组量产导入。")
	if len(chunks) != 1 {
		t.Fatalf("expected one merged chunk, got %d: %v", len(chunks), chunks)
	}
	if !strings.Contains(chunks[0], "光学系统设计") || !strings.Contains(chunks[0], "量产导入") {
		t.Errorf("merged chunk lost a sentence: %q", chunks[0])
	}
}

func TestChunker_SplitsAtMaxLen(t *testing.T) {
	first := strings.Repeat("光", 40)
	second := strings.Repeat("学", 40)
	chunker := NewChunker(50, 10)

	chunks := chunker.Split(first + "。" + second + "。")
	if len(chunks) != 2 {
		t.Fatalf("expected two chunks under a 50-rune cap, got %d", len(chunks))
	}
	for _, c := range chunks {
		if n := utf8.RuneCountInString(c); n > 50 {
			t.Errorf("chunk exceeds cap: %d runes", n)
		}
	}
}

func TestChunker_CJKAndASCIITerminators(t *testing.T) {
	chunker := NewChunker(20, 5)
	chunks := chunker.Split("first sentence here!第二句在这里？third one here.")
	if len(chunks) < 2 {
		t.Errorf("expected terminators to split sentences, got %v", chunks)
	}
}

func TestChunker_NewlineIsTerminator(t *testing.T) {
	chunker := NewChunker(15, 5)
	chunks := chunker.Split("教育背景介绍内容\n工作经历介绍内容")
	if len(chunks) != 2 {
		t.Fatalf("expected newline to delimit sentences, got %d: %v", len(chunks), chunks)
	}
}
