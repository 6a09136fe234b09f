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
	"github.com/gin-gonic/gin"
	"github.com/webfolio/webfolio/internal/contact/internal/domain"
	"github.com/webfolio/webfolio/internal/contact/internal/service"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{
		svc: svc,
	}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	server.POST("/api/contact", ginx.B[SubmitReq](h.Submit))
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {}

func (h *Handler) Submit(ctx *ginx.Context, req SubmitReq) (ginx.Result, error) {
	_, err := h.svc.Submit(ctx, domain.Message{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Content: req.Message,
	})
	switch {
	case errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrEmailInvalid),
		errors.Is(err, service.ErrMessageRequired):
		return invalidInputResult, err
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}
