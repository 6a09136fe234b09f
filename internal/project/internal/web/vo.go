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

package web

import (
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/webfolio/webfolio/internal/project/internal/domain"
)

type IDReq struct {
	ID string `json:"id"`
}

type SearchReq struct {
	Query string `json:"query"`
}

type CategoryReq struct {
	Category string `json:"category"`
}

type TechnologyReq struct {
	Technology string `json:"technology"`
}

type Project struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Image        string       `json:"image,omitempty"`
	Technologies []Technology `json:"technologies,omitempty"`
	Links        Links        `json:"links"`
	Category     string       `json:"category"`
	Featured     bool         `json:"featured"`
	Status       string       `json:"status"`
	Visibility   string       `json:"visibility,omitempty"`
	CreatedAt    string       `json:"createdAt,omitempty"`
	UpdatedAt    string       `json:"updatedAt,omitempty"`
	Review       *Review      `json:"review,omitempty"`
	Support      *Support     `json:"support,omitempty"`
}

type Technology struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Proficiency string `json:"proficiency"`
}

type Links struct {
	Live   string `json:"live,omitempty"`
	Github string `json:"github,omitempty"`
	Demo   string `json:"demo,omitempty"`
	Docs   string `json:"docs,omitempty"`
}

type Review struct {
	Rating   float64 `json:"rating"`
	Comment  string  `json:"comment,omitempty"`
	Reviewer string  `json:"reviewer,omitempty"`
	Position string  `json:"position,omitempty"`
}

type Support struct {
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Tiers       []SupportTier `json:"tiers,omitempty"`
}

type SupportTier struct {
	Amount   int64  `json:"amount"`
	Label    string `json:"label"`
	Currency string `json:"currency"`
}

type FreelanceProject struct {
	Project
	Client      string       `json:"client"`
	Role        string       `json:"role,omitempty"`
	Duration    string       `json:"duration,omitempty"`
	Budget      *Budget      `json:"budget,omitempty"`
	Testimonial *Testimonial `json:"testimonial,omitempty"`
}

type Budget struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Type     string `json:"type"`
}

type Testimonial struct {
	Content string `json:"content"`
	Author  string `json:"author,omitempty"`
	Company string `json:"company,omitempty"`
}

type ProjectList struct {
	Total    int       `json:"total"`
	Projects []Project `json:"projects"`
}

type FreelanceList struct {
	Total    int                `json:"total"`
	Projects []FreelanceProject `json:"projects"`
}

type ProjectStats struct {
	TotalProjects     int            `json:"totalProjects"`
	FeaturedProjects  int            `json:"featuredProjects"`
	CompletedProjects int            `json:"completedProjects"`
	ByCategory        map[string]int `json:"byCategory,omitempty"`
	ByTechnology      map[string]int `json:"byTechnology,omitempty"`
	AverageRating     float64        `json:"averageRating"`
}

type FreelanceStats struct {
	ProjectStats
	UniqueClients int `json:"uniqueClients"`
	// TotalRevenue 为零的时候不输出
	TotalRevenue int64 `json:"totalRevenue,omitempty"`
}

func newProject(p domain.Project) Project {
	res := Project{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Image:       p.Image,
		Technologies: slice.Map(p.Technologies, func(idx int, src domain.Technology) Technology {
			return Technology{
				Name:        src.Name,
				Category:    string(src.Category),
				Proficiency: string(src.Proficiency),
			}
		}),
		Links: Links{
			Live:   p.Links.Live,
			Github: p.Links.Github,
			Demo:   p.Links.Demo,
			Docs:   p.Links.Docs,
		},
		Category:   string(p.Category),
		Featured:   p.Metadata.Featured,
		Status:     string(p.Metadata.Status),
		Visibility: string(p.Metadata.Visibility),
	}
	if !p.Metadata.CreatedAt.IsZero() {
		res.CreatedAt = p.Metadata.CreatedAt.Format(time.DateOnly)
	}
	if !p.Metadata.UpdatedAt.IsZero() {
		res.UpdatedAt = p.Metadata.UpdatedAt.Format(time.DateOnly)
	}
	if p.Review != nil {
		res.Review = &Review{
			Rating:   p.Review.Rating,
			Comment:  p.Review.Comment,
			Reviewer: p.Review.Reviewer,
			Position: p.Review.Position,
		}
	}
	if p.Support != nil {
		res.Support = &Support{
			Title:       p.Support.Title,
			Description: p.Support.Description,
			Tiers: slice.Map(p.Support.Tiers, func(idx int, src domain.SupportTier) SupportTier {
				return SupportTier(src)
			}),
		}
	}
	return res
}

func newFreelanceProject(p domain.FreelanceProject) FreelanceProject {
	res := FreelanceProject{
		Project:  newProject(p.Project),
		Client:   p.Client,
		Role:     p.Role,
		Duration: p.Duration,
	}
	if p.Budget != nil {
		res.Budget = &Budget{
			Amount:   p.Budget.Amount,
			Currency: p.Budget.Currency,
			Type:     string(p.Budget.Type),
		}
	}
	if p.Testimonial != nil {
		res.Testimonial = &Testimonial{
			Content: p.Testimonial.Content,
			Author:  p.Testimonial.Author,
			Company: p.Testimonial.Company,
		}
	}
	return res
}

func newProjectStats(s domain.ProjectStats) ProjectStats {
	res := ProjectStats{
		TotalProjects:     s.TotalProjects,
		FeaturedProjects:  s.FeaturedProjects,
		CompletedProjects: s.CompletedProjects,
		ByCategory:        make(map[string]int, len(s.ByCategory)),
		ByTechnology:      s.ByTechnology,
		AverageRating:     s.AverageRating,
	}
	for cat, cnt := range s.ByCategory {
		res.ByCategory[string(cat)] = cnt
	}
	return res
}

func newFreelanceStats(s domain.FreelanceStats) FreelanceStats {
	return FreelanceStats{
		ProjectStats:  newProjectStats(s.ProjectStats),
		UniqueClients: s.UniqueClients,
		TotalRevenue:  s.TotalRevenue,
	}
}
