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

import "time"

type Project struct {
	ID          string
	Title       string
	Description string
	Image       string
	// Technologies 构造之后不允许修改
	Technologies []Technology
	Links        Links
	Category     Category
	Metadata     Metadata
	Review       *Review
	Support      *Support
}

// Links 至少要有一个非空字段
type Links struct {
	Live   string
	Github string
	Demo   string
	Docs   string
}

func (l Links) HasAny() bool {
	return l.Live != "" || l.Github != "" || l.Demo != "" || l.Docs != ""
}

type Metadata struct {
	Featured   bool
	Status     Status
	Visibility Visibility
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Review struct {
	// Rating 取值范围 [1, 5]
	Rating   float64
	Comment  string
	Reviewer string
	Position string
}

type Support struct {
	Title       string
	Description string
	Tiers       []SupportTier
}

type SupportTier struct {
	// Amount 最小货币单位
	Amount   int64
	Label    string
	Currency string
}

type FreelanceProject struct {
	Project
	Client      string
	Role        string
	Duration    string
	Budget      *Budget
	Testimonial *Testimonial
}

type Budget struct {
	Amount   int64
	Currency string
	Type     BudgetType
}

type BudgetType string

const (
	BudgetTypeFixed  BudgetType = "fixed"
	BudgetTypeHourly BudgetType = "hourly"
)

type Testimonial struct {
	Content string
	Author  string
	Company string
}

type Category string

const (
	CategoryWeb     Category = "web"
	CategoryMobile  Category = "mobile"
	CategoryDesktop Category = "desktop"
	CategoryAPI     Category = "api"
	CategoryLibrary Category = "library"
	CategoryTool    Category = "tool"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryWeb, CategoryMobile, CategoryDesktop, CategoryAPI, CategoryLibrary, CategoryTool:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusCompleted  Status = "completed"
	StatusInProgress Status = "in-progress"
	StatusMaintained Status = "maintenance"
	StatusArchived   Status = "archived"
)

func (s Status) Valid() bool {
	switch s {
	case StatusCompleted, StatusInProgress, StatusMaintained, StatusArchived:
		return true
	default:
		return false
	}
}

type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityPrivate  Visibility = "private"
	VisibilityUnlisted Visibility = "unlisted"
)

func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityUnlisted:
		return true
	default:
		return false
	}
}

// ImportanceScore 列表排序用的重要性评分。
// 状态基础分 + 评分*2 + 技术分类数 + 精选加 5 分
func (p Project) ImportanceScore() float64 {
	var score float64
	switch p.Metadata.Status {
	case StatusCompleted:
		score = 10
	case StatusMaintained:
		score = 8
	case StatusInProgress:
		score = 7
	default:
		score = 3
	}
	if p.Review != nil {
		score += p.Review.Rating * 2
	}
	cats := make(map[TechnologyCategory]struct{}, len(p.Technologies))
	for _, t := range p.Technologies {
		cats[t.Category] = struct{}{}
	}
	score += float64(len(cats))
	if p.Metadata.Featured {
		score += 5
	}
	return score
}
