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

package source

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/webfolio/webfolio/internal/project/internal/schema"
	"gopkg.in/yaml.v3"
)

//go:embed projects.yaml
var projectsYAML []byte

type document struct {
	Projects  []schema.Project          `yaml:"projects"`
	Freelance []schema.FreelanceProject `yaml:"freelance"`
}

var _ Source = &StaticSource{}

// StaticSource 内置在二进制里的项目数据
type StaticSource struct {
	doc document
}

func NewStaticSource() (*StaticSource, error) {
	return NewStaticSourceOf(projectsYAML)
}

func NewStaticSourceOf(data []byte) (*StaticSource, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("解析项目数据失败: %w", err)
	}
	return &StaticSource{doc: doc}, nil
}

func (s *StaticSource) FetchProjects(_ context.Context) ([]schema.Project, error) {
	return s.doc.Projects, nil
}

func (s *StaticSource) FetchFreelanceProjects(_ context.Context) ([]schema.FreelanceProject, error) {
	return s.doc.Freelance, nil
}
