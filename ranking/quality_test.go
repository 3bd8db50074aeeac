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

package ranking

import (
	"math"
	"strings"
	"testing"
)

func TestQuality_EmptyContent(t *testing.T) {
	if got := Quality(""); got != 0 {
		t.Errorf("empty content must score 0, got %v", got)
	}
}

func TestQuality_FullMarks(t *testing.T) {
	content := strings.Repeat("履历内容充实详细。", 250) + // well past the length target
		"教育背景 工作经验 项目经验 专业技能 " +
		"13812345678 zhangsan@example.com 硕士"

	got := Quality(content)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("expected full quality score 1.0, got %v", got)
	}
}

func TestQuality_LengthSubScoreScales(t *testing.T) {
	// 1000 runes, no structure or contact info: 1000/2000 * 0.3 = 0.15.
	content := strings.Repeat("字", 1000)
	got := Quality(content)
	if math.Abs(got-0.15) > 1e-9 {
		t.Errorf("expected 0.15 for half-length plain text, got %v", got)
	}
}

func TestQuality_StructureMarkersCapAtFour(t *testing.T) {
	// Both spellings of the same section count once.
	content := "教育背景 教育经历"
	got := Quality(content)
	lengthPart := float64(len([]rune(content))) / 2000 * 0.3
	if math.Abs(got-(lengthPart+0.1)) > 1e-9 {
		t.Errorf("duplicate section marker counted twice: %v", got)
	}
}

func TestQuality_CompletenessSignals(t *testing.T) {
	base := Quality(strings.Repeat("字", 100))
	withPhone := Quality(strings.Repeat("字", 100) + "13912345678")

	if diff := withPhone - base; math.Abs(diff-0.1) > 0.01 {
		t.Errorf("phone pattern should add 0.1, added %v", diff)
	}

	// 128 prefix is not a valid CN mobile prefix.
	if phonePattern.MatchString("12812345678") {
		t.Errorf("invalid mobile prefix matched the phone pattern")
	}
}
