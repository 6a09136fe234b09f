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

//go:build wireinject

package project

import (
	"github.com/ecodeclub/ecache"
	"github.com/google/wire"
	"github.com/webfolio/webfolio/internal/project/internal/repository"
	"github.com/webfolio/webfolio/internal/project/internal/repository/cache"
	"github.com/webfolio/webfolio/internal/project/internal/service"
	"github.com/webfolio/webfolio/internal/project/internal/web"
)

func InitModule(ec ecache.Cache) (*Module, error) {
	wire.Build(
		InitSource,
		cache.NewStatsCache,
		repository.NewCachedProjectRepository,
		repository.NewCachedFreelanceRepository,
		service.NewProjectService,
		service.NewFreelanceService,
		web.NewHandler,
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}
