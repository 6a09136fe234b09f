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

	"github.com/webfolio/webfolio/internal/project/internal/schema"
)

// Source 项目数据源。构造仓储的时候选定具体实现，
// 要么是内置的静态数据，要么是远端 REST 接口。
type Source interface {
	FetchProjects(ctx context.Context) ([]schema.Project, error)
	FetchFreelanceProjects(ctx context.Context) ([]schema.FreelanceProject, error)
}
