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

package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/gotomicro/ego/core/elog"
	"github.com/pkg/errors"
	"github.com/webfolio/webfolio/internal/project/internal/domain"
	"github.com/webfolio/webfolio/internal/project/internal/schema"
	"github.com/webfolio/webfolio/internal/project/internal/repository/source"
)

var ErrProjectNotFound = errors.New("项目不存在")

// snapshotTTL 缓存的新鲜期。写在这里而不是配置里：
// 数据源变更在 TTL 窗口内的陈旧是产品上接受的
const snapshotTTL = 5 * time.Minute

type ProjectRepository interface {
	List(ctx context.Context) ([]domain.Project, error)
	Featured(ctx context.Context) ([]domain.Project, error)
	ByID(ctx context.Context, id string) (domain.Project, error)
	Search(ctx context.Context, query string) ([]domain.Project, error)
	ByCategory(ctx context.Context, category domain.Category) ([]domain.Project, error)
	ByTechnology(ctx context.Context, tech string) ([]domain.Project, error)
	// Reset 清空快照，下一次读取会重新拉取数据源
	Reset()
}

var _ ProjectRepository = &CachedProjectRepository{}

// CachedProjectRepository 把整个项目列表作为一个快照缓存在内存里。
// 快照在每次刷新时按重要性评分排好序，所有读操作都基于这份快照。
// 拉取失败时如果手上还有旧快照就带着告警继续用，没有才把错误抛出去。
type CachedProjectRepository struct {
	src    source.Source
	logger *elog.Component

	snapshot  []domain.Project
	fetchedAt time.Time
	// now 注入出来方便测试 TTL
	now func() time.Time
}

func NewCachedProjectRepository(src source.Source) ProjectRepository {
	return newProjectRepositoryWith(src, time.Now)
}

func newProjectRepositoryWith(src source.Source, now func() time.Time) *CachedProjectRepository {
	return &CachedProjectRepository{
		src:    src,
		logger: elog.DefaultLogger,
		now:    now,
	}
}

// List 返回的切片在 TTL 窗口内是同一份，调用方不允许修改
func (repo *CachedProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	return repo.projects(ctx)
}

func (repo *CachedProjectRepository) Featured(ctx context.Context) ([]domain.Project, error) {
	prjs, err := repo.projects(ctx)
	if err != nil {
		return nil, err
	}
	return filter(prjs, func(p domain.Project) bool {
		return p.Metadata.Featured
	}), nil
}

func (repo *CachedProjectRepository) ByID(ctx context.Context, id string) (domain.Project, error) {
	prjs, err := repo.projects(ctx)
	if err != nil {
		return domain.Project{}, err
	}
	for _, p := range prjs {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Project{}, errors.Wrap(ErrProjectNotFound, id)
}

func (repo *CachedProjectRepository) Search(ctx context.Context, query string) ([]domain.Project, error) {
	prjs, err := repo.projects(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	return filter(prjs, func(p domain.Project) bool {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			return true
		}
		return matchTechnology(p, q)
	}), nil
}

func (repo *CachedProjectRepository) ByCategory(ctx context.Context, category domain.Category) ([]domain.Project, error) {
	prjs, err := repo.projects(ctx)
	if err != nil {
		return nil, err
	}
	return filter(prjs, func(p domain.Project) bool {
		return p.Category == category
	}), nil
}

func (repo *CachedProjectRepository) ByTechnology(ctx context.Context, tech string) ([]domain.Project, error) {
	prjs, err := repo.projects(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(tech)
	return filter(prjs, func(p domain.Project) bool {
		return matchTechnology(p, q)
	}), nil
}

func (repo *CachedProjectRepository) Reset() {
	repo.snapshot = nil
	repo.fetchedAt = time.Time{}
}

func (repo *CachedProjectRepository) projects(ctx context.Context) ([]domain.Project, error) {
	if repo.snapshot != nil && repo.now().Sub(repo.fetchedAt) < snapshotTTL {
		return repo.snapshot, nil
	}
	raws, err := repo.src.FetchProjects(ctx)
	if err != nil {
		if repo.snapshot != nil {
			repo.logger.Warn("拉取项目数据失败，继续使用过期快照",
				elog.FieldErr(err))
			return repo.snapshot, nil
		}
		return nil, err
	}
	prjs := schema.MapProjects(raws)
	SortProjectsByImportance(prjs)
	repo.snapshot = prjs
	repo.fetchedAt = repo.now()
	return repo.snapshot, nil
}

// SortProjectsByImportance 评分降序，同分保持原有相对顺序
func SortProjectsByImportance(prjs []domain.Project) {
	sort.SliceStable(prjs, func(i, j int) bool {
		return prjs[i].ImportanceScore() > prjs[j].ImportanceScore()
	})
}

func matchTechnology(p domain.Project, lowerQuery string) bool {
	for _, t := range p.Technologies {
		if strings.Contains(strings.ToLower(t.Name), lowerQuery) {
			return true
		}
	}
	return false
}

func filter(prjs []domain.Project, pred func(domain.Project) bool) []domain.Project {
	res := make([]domain.Project, 0, len(prjs))
	for _, p := range prjs {
		if pred(p) {
			res = append(res, p)
		}
	}
	return res
}
