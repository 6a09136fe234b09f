// Copyright 2024 webfolio
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/webfolio/webfolio/internal/project/internal/domain"
)

func TestTechnologyFromString(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name  string
		input string

		wantCategory    domain.TechnologyCategory
		wantProficiency domain.Proficiency
	}{
		{
			name:            "前端词表",
			input:           "React",
			wantCategory:    domain.TechCategoryFrontend,
			wantProficiency: domain.ProficiencyExpert,
		},
		{
			name:            "后端词表",
			input:           "Go",
			wantCategory:    domain.TechCategoryBackend,
			wantProficiency: domain.ProficiencyAdvanced,
		},
		{
			name:            "数据库词表",
			input:           "PostgreSQL",
			wantCategory:    domain.TechCategoryDatabase,
			wantProficiency: domain.ProficiencyAdvanced,
		},
		{
			name:            "云词表",
			input:           "Kubernetes",
			wantCategory:    domain.TechCategoryCloud,
			wantProficiency: domain.ProficiencyIntermediate,
		},
		{
			name:            "移动端词表",
			input:           "React Native",
			wantCategory:    domain.TechCategoryMobile,
			wantProficiency: domain.ProficiencyIntermediate,
		},
		{
			name:            "大小写和空白不影响匹配",
			input:           "  nextJS  ",
			wantCategory:    domain.TechCategoryFrontend,
			wantProficiency: domain.ProficiencyExpert,
		},
		{
			name:            "未知技术归到 tool",
			input:           "Figma",
			wantCategory:    domain.TechCategoryTool,
			wantProficiency: domain.ProficiencyIntermediate,
		},
		{
			name:            "空字符串",
			input:           "",
			wantCategory:    domain.TechCategoryTool,
			wantProficiency: domain.ProficiencyIntermediate,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res := TechnologyFromString(tc.input)
			assert.Equal(t, tc.input, res.Name)
			assert.Equal(t, tc.wantCategory, res.Category)
			assert.Equal(t, tc.wantProficiency, res.Proficiency)
		})
	}
}

func TestTechnologyFromStringDeterministic(t *testing.T) {
	t.Parallel()
	first := TechnologyFromString("MongoDB")
	second := TechnologyFromString("MongoDB")
	assert.Equal(t, first, second)
}
