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
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/gotomicro/ego/core/elog"
	"github.com/webfolio/webfolio/internal/project/internal/domain"
)

// MapProject 原始记录到领域对象的纯转换。
// 调用方负责先 Normalize，这里只做校验和映射。
func MapProject(raw Project) (domain.Project, error) {
	raw.Normalize()
	if err := Validate(raw); err != nil {
		return domain.Project{}, err
	}
	return domain.Project{
		ID:           raw.ID,
		Title:        raw.Title,
		Description:  raw.Description,
		Image:        raw.Image,
		Technologies: mapTechnologies(raw.Technologies),
		Links: domain.Links{
			Live:   raw.Links.Live,
			Github: raw.Links.Github,
			Demo:   raw.Links.Demo,
			Docs:   raw.Links.Docs,
		},
		Category: category(raw.Category),
		Metadata: metadata(raw),
		Review:   mapReview(raw.Review),
		Support:  mapSupport(raw.Support),
	}, nil
}

func MapFreelanceProject(raw FreelanceProject) (domain.FreelanceProject, error) {
	raw.Normalize()
	if err := ValidateFreelance(raw); err != nil {
		return domain.FreelanceProject{}, err
	}
	prj, err := MapProject(raw.Project)
	if err != nil {
		return domain.FreelanceProject{}, err
	}
	res := domain.FreelanceProject{
		Project:  prj,
		Client:   raw.Client,
		Role:     raw.Role,
		Duration: raw.Duration,
	}
	if raw.Budget != nil {
		typ := domain.BudgetType(raw.Budget.Type)
		if typ == "" {
			typ = domain.BudgetTypeFixed
		}
		res.Budget = &domain.Budget{
			Amount:   raw.Budget.Amount,
			Currency: currency(raw.Budget.Currency),
			Type:     typ,
		}
	}
	if raw.Testimonial != nil {
		res.Testimonial = &domain.Testimonial{
			Content: raw.Testimonial.Content,
			Author:  raw.Testimonial.Author,
			Company: raw.Testimonial.Company,
		}
	}
	return res, nil
}

// MapProjects 尽力而为：单条映射失败只记日志并丢弃该条，不影响其余记录
func MapProjects(raws []Project) []domain.Project {
	logger := elog.DefaultLogger
	res := make([]domain.Project, 0, len(raws))
	for _, raw := range raws {
		prj, err := MapProject(raw)
		if err != nil {
			logger.Warn("丢弃非法的项目记录",
				elog.String("id", raw.ID),
				elog.FieldErr(err))
			continue
		}
		res = append(res, prj)
	}
	return res
}

func MapFreelanceProjects(raws []FreelanceProject) []domain.FreelanceProject {
	logger := elog.DefaultLogger
	res := make([]domain.FreelanceProject, 0, len(raws))
	for _, raw := range raws {
		prj, err := MapFreelanceProject(raw)
		if err != nil {
			logger.Warn("丢弃非法的自由职业项目记录",
				elog.String("id", raw.ID),
				elog.FieldErr(err))
			continue
		}
		res = append(res, prj)
	}
	return res
}

func mapTechnologies(techs []Technology) []domain.Technology {
	return slice.Map(techs, func(idx int, src Technology) domain.Technology {
		inferred := TechnologyFromString(src.Name)
		// 显式给出的字段优先于推断结果
		if src.Category != "" {
			inferred.Category = domain.TechnologyCategory(src.Category)
		}
		if src.Proficiency != "" {
			inferred.Proficiency = domain.Proficiency(src.Proficiency)
		}
		return inferred
	})
}

func metadata(raw Project) domain.Metadata {
	res := domain.Metadata{
		Status:     domain.StatusCompleted,
		Visibility: domain.VisibilityPublic,
	}
	if raw.Featured != nil {
		res.Featured = *raw.Featured
	}
	if raw.Status != "" {
		res.Status = domain.Status(raw.Status)
	}
	if raw.Visibility != "" {
		res.Visibility = domain.Visibility(raw.Visibility)
	}
	res.CreatedAt = parseTime(raw.CreatedAt)
	res.UpdatedAt = parseTime(raw.UpdatedAt)
	return res
}

func mapReview(r *Review) *domain.Review {
	if r == nil {
		return nil
	}
	return &domain.Review{
		Rating:   r.Rating,
		Comment:  r.Comment,
		Reviewer: r.Reviewer,
		Position: r.Position,
	}
}

func mapSupport(s *Support) *domain.Support {
	if s == nil {
		return nil
	}
	return &domain.Support{
		Title:       s.Title,
		Description: s.Description,
		Tiers: slice.Map(s.Tiers, func(idx int, src SupportTier) domain.SupportTier {
			return domain.SupportTier{
				Amount:   src.Amount,
				Label:    src.Label,
				Currency: currency(src.Currency),
			}
		}),
	}
}

func category(c string) domain.Category {
	if c == "" {
		return domain.CategoryWeb
	}
	return domain.Category(c)
}

func currency(c string) string {
	if c == "" {
		return "INR"
	}
	return c
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly, time.DateTime} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
