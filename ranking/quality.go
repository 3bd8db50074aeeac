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
	"regexp"
	"strings"
	"unicode/utf8"
)

const qualityLengthTarget = 2000

// Section markers recognized by the structural sub-score. Each pair counts
// at most once.
var sectionMarkers = [][]string{
	{"教育背景", "教育经历"},
	{"工作经验", "工作经历"},
	{"项目经验", "项目经历"},
	{"技能", "专业技能"},
}

var (
	phonePattern  = regexp.MustCompile(`1[3-9]\d{9}`)
	emailPattern  = regexp.MustCompile(`[\w.-]+@[\w.-]+`)
	degreePattern = regexp.MustCompile(`(本科|学士|硕士|博士|MBA|PhD)`)
)

// Quality scores résumé completeness in [0,1] from three capped sub-scores:
// text length (up to 0.3), recognized section markers (0.1 each, up to
// 0.4), and contact/degree completeness (0.1 each, up to 0.3).
func Quality(content string) float64 {
	if content == "" {
		return 0
	}

	length := float64(utf8.RuneCountInString(content))
	lengthScore := length / qualityLengthTarget
	if lengthScore > 1 {
		lengthScore = 1
	}
	score := lengthScore * 0.3

	for _, markers := range sectionMarkers {
		for _, m := range markers {
			if strings.Contains(content, m) {
				score += 0.1
				break
			}
		}
	}

	if phonePattern.MatchString(content) {
		score += 0.1
	}
	if emailPattern.MatchString(content) {
		score += 0.1
	}
	if degreePattern.MatchString(content) {
		score += 0.1
	}

	return score
}
