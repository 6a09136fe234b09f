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

type FreelanceRepository interface {
	List(ctx context.Context) ([]domain.FreelanceProject, error)
	ByID(ctx context.Context, id string) (domain.FreelanceProject, error)
	ByClient(ctx context.Context, client string) ([]domain.FreelanceProject, error)
	Reset()
}

var _ FreelanceRepository = &CachedFreelanceRepository{}

// CachedFreelanceRepository 和 CachedProjectRepository 一样的快照策略
type CachedFreelanceRepository struct {
	src    source.Source
	logger *elog.Component

	snapshot  []domain.FreelanceProject
	fetchedAt time.Time
	now       func() time.Time
}

func NewCachedFreelanceRepository(src source.Source) FreelanceRepository {
	return newFreelanceRepositoryWith(src, time.Now)
}

func newFreelanceRepositoryWith(src source.Source, now func() time.Time) *CachedFreelanceRepository {
	return &CachedFreelanceRepository{
		src:    src,
		logger: elog.DefaultLogger,
		now:    now,
	}
}

func (repo *CachedFreelanceRepository) List(ctx context.Context) ([]domain.FreelanceProject, error) {
	return repo.projects(ctx)
}

func (repo *CachedFreelanceRepository) ByID(ctx context.Context, id string) (domain.FreelanceProject, error) {
	prjs, err := repo.projects(ctx)
	if err != nil {
		return domain.FreelanceProject{}, err
	}
	for _, p := range prjs {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.FreelanceProject{}, errors.Wrap(ErrProjectNotFound, id)
}

func (repo *CachedFreelanceRepository) ByClient(ctx context.Context, client string) ([]domain.FreelanceProject, error) {
	prjs, err := repo.projects(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(client)
	res := make([]domain.FreelanceProject, 0, len(prjs))
	for _, p := range prjs {
		if strings.ToLower(p.Client) == q {
			res = append(res, p)
		}
	}
	return res, nil
}

func (repo *CachedFreelanceRepository) Reset() {
	repo.snapshot = nil
	repo.fetchedAt = time.Time{}
}

func (repo *CachedFreelanceRepository) projects(ctx context.Context) ([]domain.FreelanceProject, error) {
	if repo.snapshot != nil && repo.now().Sub(repo.fetchedAt) < snapshotTTL {
		return repo.snapshot, nil
	}
	raws, err := repo.src.FetchFreelanceProjects(ctx)
	if err != nil {
		if repo.snapshot != nil {
			repo.logger.Warn("拉取自由职业项目数据失败，继续使用过期快照",
				elog.FieldErr(err))
			return repo.snapshot, nil
		}
		return nil, err
	}
	prjs := schema.MapFreelanceProjects(raws)
	sort.SliceStable(prjs, func(i, j int) bool {
		return prjs[i].ImportanceScore() > prjs[j].ImportanceScore()
	})
	repo.snapshot = prjs
	repo.fetchedAt = repo.now()
	return repo.snapshot, nil
}
