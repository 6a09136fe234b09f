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

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ecodeclub/ekit/slice"
	"github.com/gotomicro/ego/core/elog"
	"github.com/webfolio/webfolio/internal/project/internal/domain"
	"github.com/webfolio/webfolio/internal/project/internal/repository"
	"github.com/webfolio/webfolio/internal/project/internal/repository/cache"
)

var ErrClientRequired = errors.New("Client name is required")

type FreelanceService interface {
	List(ctx context.Context) ([]domain.FreelanceProject, error)
	ByID(ctx context.Context, id string) (domain.FreelanceProject, error)
	ByClient(ctx context.Context, client string) ([]domain.FreelanceProject, error)
	Stats(ctx context.Context) (domain.FreelanceStats, error)
}

type freelanceService struct {
	repo   repository.FreelanceRepository
	cache  cache.StatsCache
	logger *elog.Component
}

func NewFreelanceService(repo repository.FreelanceRepository, statsCache cache.StatsCache) FreelanceService {
	return &freelanceService{
		repo:   repo,
		cache:  statsCache,
		logger: elog.DefaultLogger,
	}
}

func (s *freelanceService) List(ctx context.Context) ([]domain.FreelanceProject, error) {
	res, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errFetchProjects, err)
	}
	return res, nil
}

func (s *freelanceService) ByID(ctx context.Context, id string) (domain.FreelanceProject, error) {
	if id == "" {
		return domain.FreelanceProject{}, ErrProjectIDRequired
	}
	res, err := s.repo.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return domain.FreelanceProject{}, err
		}
		return domain.FreelanceProject{}, fmt.Errorf("%w: %w", errFetchProject, err)
	}
	return res, nil
}

func (s *freelanceService) ByClient(ctx context.Context, client string) ([]domain.FreelanceProject, error) {
	if client == "" {
		return nil, ErrClientRequired
	}
	res, err := s.repo.ByClient(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errFetchProjects, err)
	}
	return res, nil
}

func (s *freelanceService) Stats(ctx context.Context) (domain.FreelanceStats, error) {
	stats, err := s.cache.GetFreelanceStats(ctx)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, cache.ErrStatsNotFound) {
		s.logger.Warn("读取自由职业统计缓存失败", elog.FieldErr(err))
	}
	prjs, err := s.repo.List(ctx)
	if err != nil {
		return domain.FreelanceStats{}, fmt.Errorf("%w: %w", errFetchProjects, err)
	}
	stats = computeFreelanceStats(prjs)
	if serr := s.cache.SetFreelanceStats(ctx, stats); serr != nil {
		s.logger.Warn("写入自由职业统计缓存失败", elog.FieldErr(serr))
	}
	return stats, nil
}

func computeFreelanceStats(prjs []domain.FreelanceProject) domain.FreelanceStats {
	base := computeStats(slice.Map(prjs, func(idx int, src domain.FreelanceProject) domain.Project {
		return src.Project
	}))
	stats := domain.FreelanceStats{ProjectStats: base}
	clients := make(map[string]struct{}, len(prjs))
	for _, p := range prjs {
		if p.Client != "" {
			clients[strings.ToLower(p.Client)] = struct{}{}
		}
		if p.Budget != nil {
			stats.TotalRevenue += p.Budget.Amount
		}
	}
	stats.UniqueClients = len(clients)
	return stats
}
