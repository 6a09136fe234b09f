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
	"strings"

	"github.com/webfolio/webfolio/internal/project/internal/domain"
)

// 技术名到分类的静态词表，全部用小写匹配。
// 没命中的一律归到 tool。
var techCategories = map[domain.TechnologyCategory][]string{
	domain.TechCategoryFrontend: {
		"react", "next.js", "nextjs", "vue", "angular", "svelte",
		"typescript", "javascript", "html", "css", "tailwind", "sass",
		"redux", "storybook",
	},
	domain.TechCategoryBackend: {
		"node.js", "nodejs", "express", "nest.js", "nestjs", "go", "golang",
		"python", "django", "flask", "java", "spring", "graphql", "grpc",
	},
	domain.TechCategoryDatabase: {
		"postgresql", "postgres", "mysql", "mongodb", "redis", "sqlite",
		"elasticsearch", "dynamodb",
	},
	domain.TechCategoryCloud: {
		"aws", "gcp", "azure", "docker", "kubernetes", "vercel", "netlify",
		"terraform", "cloudflare",
	},
	domain.TechCategoryMobile: {
		"react native", "flutter", "swift", "kotlin", "expo",
	},
}

var expertTechs = []string{
	"react", "typescript", "javascript", "next.js", "nextjs", "node.js", "nodejs",
}

var advancedTechs = []string{
	"go", "golang", "postgresql", "mongodb", "docker", "tailwind", "graphql",
}

// TechnologyFromString 根据静态词表推断技术分类和熟练度。
// 纯函数，同一个输入永远得到同一个输出。
func TechnologyFromString(name string) domain.Technology {
	lower := strings.ToLower(strings.TrimSpace(name))
	res := domain.Technology{
		Name:        name,
		Category:    domain.TechCategoryTool,
		Proficiency: domain.ProficiencyIntermediate,
	}
	for category, names := range techCategories {
		for _, n := range names {
			if n == lower {
				res.Category = category
				break
			}
		}
	}
	for _, n := range expertTechs {
		if n == lower {
			res.Proficiency = domain.ProficiencyExpert
			return res
		}
	}
	for _, n := range advancedTechs {
		if n == lower {
			res.Proficiency = domain.ProficiencyAdvanced
			return res
		}
	}
	return res
}
