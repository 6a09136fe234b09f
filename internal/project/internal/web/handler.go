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
	"errors"

	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ekit/slice"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
	"github.com/webfolio/webfolio/internal/project/internal/domain"
	"github.com/webfolio/webfolio/internal/project/internal/repository"
	"github.com/webfolio/webfolio/internal/project/internal/service"
)

type Handler struct {
	svc    service.ProjectService
	flSvc  service.FreelanceService
	logger *elog.Component
}

func NewHandler(svc service.ProjectService, flSvc service.FreelanceService) *Handler {
	return &Handler{
		svc:    svc,
		flSvc:  flSvc,
		logger: elog.DefaultLogger,
	}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	server.POST("/project/list", ginx.W(h.List))
	server.POST("/project/featured", ginx.W(h.Featured))
	server.POST("/project/detail", ginx.B[IDReq](h.Detail))
	server.POST("/project/search", ginx.B[SearchReq](h.Search))
	server.POST("/project/category", ginx.B[CategoryReq](h.ByCategory))
	server.POST("/project/technology", ginx.B[TechnologyReq](h.ByTechnology))
	server.POST("/project/stats", ginx.W(h.Stats))
	server.POST("/freelance/list", ginx.W(h.FreelanceList))
	server.POST("/freelance/stats", ginx.W(h.FreelanceStats))
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {
}

func (h *Handler) List(ctx *ginx.Context) (ginx.Result, error) {
	prjs, err := h.svc.List(ctx)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: h.toList(prjs)}, nil
}

func (h *Handler) Featured(ctx *ginx.Context) (ginx.Result, error) {
	prjs, err := h.svc.Featured(ctx)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: h.toList(prjs)}, nil
}

func (h *Handler) Detail(ctx *ginx.Context, req IDReq) (ginx.Result, error) {
	prj, err := h.svc.ByID(ctx, req.ID)
	switch {
	case err == nil:
		return ginx.Result{Data: newProject(prj)}, nil
	case errors.Is(err, service.ErrProjectIDRequired):
		return invalidInputResult, err
	case errors.Is(err, repository.ErrProjectNotFound):
		return notFoundResult, err
	default:
		return systemErrorResult, err
	}
}

func (h *Handler) Search(ctx *ginx.Context, req SearchReq) (ginx.Result, error) {
	prjs, err := h.svc.Search(ctx, req.Query)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: h.toList(prjs)}, nil
}

func (h *Handler) ByCategory(ctx *ginx.Context, req CategoryReq) (ginx.Result, error) {
	if !domain.Category(req.Category).Valid() {
		return invalidInputResult, errors.New("未知的项目分类")
	}
	prjs, err := h.svc.ByCategory(ctx, domain.Category(req.Category))
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: h.toList(prjs)}, nil
}

func (h *Handler) ByTechnology(ctx *ginx.Context, req TechnologyReq) (ginx.Result, error) {
	prjs, err := h.svc.ByTechnology(ctx, req.Technology)
	if err != nil {
		if errors.Is(err, service.ErrTechnologyRequired) {
			return invalidInputResult, err
		}
		return systemErrorResult, err
	}
	return ginx.Result{Data: h.toList(prjs)}, nil
}

func (h *Handler) Stats(ctx *ginx.Context) (ginx.Result, error) {
	stats, err := h.svc.Stats(ctx)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: newProjectStats(stats)}, nil
}

func (h *Handler) FreelanceList(ctx *ginx.Context) (ginx.Result, error) {
	prjs, err := h.flSvc.List(ctx)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: FreelanceList{
		Total: len(prjs),
		Projects: slice.Map(prjs, func(idx int, src domain.FreelanceProject) FreelanceProject {
			return newFreelanceProject(src)
		}),
	}}, nil
}

func (h *Handler) FreelanceStats(ctx *ginx.Context) (ginx.Result, error) {
	stats, err := h.flSvc.Stats(ctx)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: newFreelanceStats(stats)}, nil
}

func (h *Handler) toList(prjs []domain.Project) ProjectList {
	return ProjectList{
		Total: len(prjs),
		Projects: slice.Map(prjs, func(idx int, src domain.Project) Project {
			return newProject(src)
		}),
	}
}
