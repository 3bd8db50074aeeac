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
)

func TestNormalize_EmptyInput(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Errorf("expected empty output for empty input, got %q", got)
	}
	if got := Normalize("   \n\n  "); got != "" {
		t.Errorf("expected empty output for whitespace input, got %q", got)
	}
}

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	got := Normalize("姓名：张三    电话\t\t已留")
	if strings.Contains(got, "  ") {
		t.Errorf("whitespace run survived: %q", got)
	}
}

func TestNormalize_CollapsesBlankLines(t *testing.T) {
	got := Normalize("教育背景\n\n\n\n工作经历")
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("blank line run survived: %q", got)
	}
	if !strings.Contains(got, "\n\n") {
		t.Errorf("expected one blank line kept, got %q", got)
	}
}

func TestNormalize_StripsDisclaimer(t *testing.T) {
	got := Normalize("张三的简历 Disclaimer: this content is for internal verification. 工作经历")
	if strings.Contains(got, "Disclaimer") {
		t.Errorf("disclaimer survived: %q", got)
	}
	if !strings.Contains(got, "工作经历") {
		t.Errorf("real content was lost: %q", got)
	}
}

func TestNormalize_StripsWatermarkTokens(t *testing.T) {
	got := Normalize("张三 a1b2c3d4e5f6g7h8i9j0k1l2 工程师")
	if strings.Contains(got, "a1b2c3d4e5f6g7h8i9j0k1l2") {
		t.Errorf("watermark token survived: %q", got)
	}
}

func TestNormalize_StripsRuleLines(t *testing.T) {
	got := Normalize("====== 个人信息 ======\n张三")
	if strings.Contains(got, "==") {
		t.Errorf("rule line survived: %q", got)
	}
}
