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
	"fmt"

	"github.com/webfolio/webfolio/internal/project/internal/domain"
)

// FieldError 指向第一个非法字段。校验失败对单条记录而言是终态，调用方可以跳过这条记录。
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func fieldErr(field, msg string) *FieldError {
	return &FieldError{Field: field, Message: msg}
}

// Validate 要求记录已经过 Normalize
func Validate(p Project) error {
	if p.ID == "" {
		return fieldErr("id", "不能为空")
	}
	if p.Title == "" {
		return fieldErr("title", "不能为空")
	}
	if p.Description == "" {
		return fieldErr("description", "不能为空")
	}
	if p.Image == "" {
		return fieldErr("image", "不能为空")
	}
	lk := p.Links
	if lk.Live == "" && lk.Github == "" && lk.Demo == "" && lk.Docs == "" {
		return fieldErr("links", "至少要有一个链接")
	}
	if p.Category != "" && !domain.Category(p.Category).Valid() {
		return fieldErr("category", fmt.Sprintf("未知的分类 %q", p.Category))
	}
	if p.Status != "" && !domain.Status(p.Status).Valid() {
		return fieldErr("status", fmt.Sprintf("未知的状态 %q", p.Status))
	}
	if p.Visibility != "" && !domain.Visibility(p.Visibility).Valid() {
		return fieldErr("visibility", fmt.Sprintf("未知的可见性 %q", p.Visibility))
	}
	if p.Review != nil {
		if p.Review.Rating < 1 || p.Review.Rating > 5 {
			return fieldErr("review.rating", "必须在 [1, 5] 之间")
		}
	}
	for i, t := range p.Technologies {
		if t.Name == "" {
			return fieldErr(fmt.Sprintf("technologies[%d].name", i), "不能为空")
		}
		if t.Category != "" && !domain.TechnologyCategory(t.Category).Valid() {
			return fieldErr(fmt.Sprintf("technologies[%d].category", i),
				fmt.Sprintf("未知的技术分类 %q", t.Category))
		}
		if t.Proficiency != "" && !domain.Proficiency(t.Proficiency).Valid() {
			return fieldErr(fmt.Sprintf("technologies[%d].proficiency", i),
				fmt.Sprintf("未知的熟练度 %q", t.Proficiency))
		}
	}
	if p.Support != nil {
		for i, tier := range p.Support.Tiers {
			if tier.Amount <= 0 {
				return fieldErr(fmt.Sprintf("support.tiers[%d].amount", i), "必须大于 0")
			}
		}
	}
	return nil
}

func ValidateFreelance(p FreelanceProject) error {
	if err := Validate(p.Project); err != nil {
		return err
	}
	if p.Client == "" {
		return fieldErr("client", "不能为空")
	}
	if p.Budget != nil && p.Budget.Amount < 0 {
		return fieldErr("budget.amount", "不能为负数")
	}
	if p.Budget != nil && p.Budget.Type != "" &&
		p.Budget.Type != string(domain.BudgetTypeFixed) &&
		p.Budget.Type != string(domain.BudgetTypeHourly) {
		return fieldErr("budget.type", fmt.Sprintf("未知的计费方式 %q", p.Budget.Type))
	}
	return nil
}
