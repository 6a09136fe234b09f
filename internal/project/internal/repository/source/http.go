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
	"fmt"
	"time"

	fastshot "github.com/opus-domini/fast-shot"
	"github.com/webfolio/webfolio/internal/project/internal/schema"
)

var _ Source = &HTTPSource{}

// HTTPSource 从远端 CMS 拉取项目数据
type HTTPSource struct {
	client fastshot.ClientHttpMethods
}

func NewHTTPSource(baseURL string, token string) *HTTPSource {
	c := fastshot.NewClient(baseURL)
	if token != "" {
		c.Auth().BearerToken(token)
	}
	return &HTTPSource{
		client: c.Config().SetTimeout(10 * time.Second).
			Header().Add("Content-Type", "application/json").
			Build(),
	}
}

func (s *HTTPSource) FetchProjects(ctx context.Context) ([]schema.Project, error) {
	var res struct {
		Projects []schema.Project `json:"projects"`
	}
	err := s.get(ctx, "/api/projects", &res)
	return res.Projects, err
}

func (s *HTTPSource) FetchFreelanceProjects(ctx context.Context) ([]schema.FreelanceProject, error) {
	var res struct {
		Projects []schema.FreelanceProject `json:"projects"`
	}
	err := s.get(ctx, "/api/freelance-projects", &res)
	return res.Projects, err
}

func (s *HTTPSource) get(ctx context.Context, path string, result any) error {
	resp, err := s.client.GET(path).
		Context().Set(ctx).
		Header().Add("Accept", "application/json").
		Send()
	if err != nil {
		return fmt.Errorf("请求项目数据失败: %w", err)
	}
	defer resp.Body().Close()
	if resp.Status().IsError() {
		return fmt.Errorf("项目数据接口返回 %d", resp.Status().Code())
	}
	if err = resp.Body().AsJSON(result); err != nil {
		return fmt.Errorf("解析项目数据失败: %w", err)
	}
	return nil
}
