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
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Project 外部数据源的原始结构。
// 同时兼容两种历史形态：
//   - 旧版: tech: ["React"], liveUrl/githubUrl 平铺在顶层
//   - 新版: technologies: [{name, category, proficiency}], links.live 等
//
// Normalize 之后内部只会看到新版形态。
type Project struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image" yaml:"image"`

	Technologies []Technology `json:"technologies" yaml:"technologies"`
	// Tech 旧版字段
	Tech []string `json:"tech" yaml:"tech"`

	Links Links `json:"links" yaml:"links"`
	// LiveURL/GithubURL 旧版字段
	LiveURL   string `json:"liveUrl" yaml:"liveUrl"`
	GithubURL string `json:"githubUrl" yaml:"githubUrl"`

	Category   string `json:"category" yaml:"category"`
	Featured   *bool  `json:"featured" yaml:"featured"`
	Status     string `json:"status" yaml:"status"`
	Visibility string `json:"visibility" yaml:"visibility"`
	CreatedAt  string `json:"createdAt" yaml:"createdAt"`
	UpdatedAt  string `json:"updatedAt" yaml:"updatedAt"`

	Review  *Review  `json:"review" yaml:"review"`
	Support *Support `json:"support" yaml:"support"`
}

type FreelanceProject struct {
	Project     `yaml:",inline"`
	Client      string       `json:"client" yaml:"client"`
	Role        string       `json:"role" yaml:"role"`
	Duration    string       `json:"duration" yaml:"duration"`
	Budget      *Budget      `json:"budget" yaml:"budget"`
	Testimonial *Testimonial `json:"testimonial" yaml:"testimonial"`
}

// Technology 既可以是一个裸字符串，也可以是完整对象
type Technology struct {
	Name        string `json:"name" yaml:"name"`
	Category    string `json:"category" yaml:"category"`
	Proficiency string `json:"proficiency" yaml:"proficiency"`
}

func (t *Technology) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		t.Name = name
		return nil
	}
	type alias Technology
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("technology 格式非法: %w", err)
	}
	*t = Technology(a)
	return nil
}

func (t *Technology) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		t.Name = node.Value
		return nil
	}
	type alias Technology
	var a alias
	if err := node.Decode(&a); err != nil {
		return fmt.Errorf("technology 格式非法: %w", err)
	}
	*t = Technology(a)
	return nil
}

type Links struct {
	Live   string `json:"live" yaml:"live"`
	Github string `json:"github" yaml:"github"`
	Demo   string `json:"demo" yaml:"demo"`
	Docs   string `json:"docs" yaml:"docs"`
}

type Review struct {
	Rating   float64 `json:"rating" yaml:"rating"`
	Comment  string  `json:"comment" yaml:"comment"`
	Reviewer string  `json:"reviewer" yaml:"reviewer"`
	Position string  `json:"position" yaml:"position"`
}

type Support struct {
	Title       string        `json:"title" yaml:"title"`
	Description string        `json:"description" yaml:"description"`
	Tiers       []SupportTier `json:"tiers" yaml:"tiers"`
}

type SupportTier struct {
	Amount   int64  `json:"amount" yaml:"amount"`
	Label    string `json:"label" yaml:"label"`
	Currency string `json:"currency" yaml:"currency"`
}

// Budget 既可以是一个裸数字（金额），也可以是完整对象
type Budget struct {
	Amount   int64  `json:"amount" yaml:"amount"`
	Currency string `json:"currency" yaml:"currency"`
	Type     string `json:"type" yaml:"type"`
}

func (b *Budget) UnmarshalJSON(data []byte) error {
	var amount int64
	if err := json.Unmarshal(data, &amount); err == nil {
		b.Amount = amount
		return nil
	}
	type alias Budget
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("budget 格式非法: %w", err)
	}
	*b = Budget(a)
	return nil
}

func (b *Budget) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var amount int64
		if err := node.Decode(&amount); err != nil {
			return fmt.Errorf("budget 格式非法: %w", err)
		}
		b.Amount = amount
		return nil
	}
	type alias Budget
	var a alias
	if err := node.Decode(&a); err != nil {
		return fmt.Errorf("budget 格式非法: %w", err)
	}
	*b = Budget(a)
	return nil
}

type Testimonial struct {
	Content string `json:"content" yaml:"content"`
	Author  string `json:"author" yaml:"author"`
	Company string `json:"company" yaml:"company"`
}

// Normalize 把旧版形态统一成新版形态，之后 Tech/LiveURL/GithubURL 不再被使用
func (p *Project) Normalize() {
	if len(p.Technologies) == 0 && len(p.Tech) > 0 {
		p.Technologies = make([]Technology, 0, len(p.Tech))
		for _, name := range p.Tech {
			p.Technologies = append(p.Technologies, Technology{Name: name})
		}
	}
	// 新版优先，旧版兜底
	if p.Links.Live == "" {
		p.Links.Live = p.LiveURL
	}
	if p.Links.Github == "" {
		p.Links.Github = p.GithubURL
	}
	p.Tech = nil
	p.LiveURL = ""
	p.GithubURL = ""
}
