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

package project

import (
	"github.com/gotomicro/ego/core/econf"
	"github.com/webfolio/webfolio/internal/project/internal/domain"
	"github.com/webfolio/webfolio/internal/project/internal/repository/source"
	"github.com/webfolio/webfolio/internal/project/internal/service"
	"github.com/webfolio/webfolio/internal/project/internal/web"
)

type (
	Handler          = web.Handler
	Project          = domain.Project
	FreelanceProject = domain.FreelanceProject
	Technology       = domain.Technology
	ProjectStats     = domain.ProjectStats
	FreelanceStats   = domain.FreelanceStats
	Service          = service.ProjectService
	FreelanceService = service.FreelanceService
)

type Module struct {
	Hdl          *Handler
	Svc          Service
	FreelanceSvc FreelanceService
}

// InitSource 根据配置选择数据源：static 用内置数据，http 走远端 CMS
func InitSource() (source.Source, error) {
	switch econf.GetString("projects.source") {
	case "http":
		return source.NewHTTPSource(
			econf.GetString("projects.http.baseUrl"),
			econf.GetString("projects.http.token"),
		), nil
	default:
		return source.NewStaticSource()
	}
}
