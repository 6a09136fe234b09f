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

package domain

type Technology struct {
	Name        string
	Category    TechnologyCategory
	Proficiency Proficiency
}

type TechnologyCategory string

const (
	TechCategoryFrontend TechnologyCategory = "frontend"
	TechCategoryBackend  TechnologyCategory = "backend"
	TechCategoryDatabase TechnologyCategory = "database"
	TechCategoryTool     TechnologyCategory = "tool"
	TechCategoryCloud    TechnologyCategory = "cloud"
	TechCategoryMobile   TechnologyCategory = "mobile"
)

func (c TechnologyCategory) Valid() bool {
	switch c {
	case TechCategoryFrontend, TechCategoryBackend, TechCategoryDatabase,
		TechCategoryTool, TechCategoryCloud, TechCategoryMobile:
		return true
	default:
		return false
	}
}

type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

func (p Proficiency) Valid() bool {
	switch p {
	case ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced, ProficiencyExpert:
		return true
	default:
		return false
	}
}
