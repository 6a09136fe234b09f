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
	"math"

	"github.com/gotomicro/ego/core/elog"
	"github.com/webfolio/webfolio/internal/project/internal/domain"
	"github.com/webfolio/webfolio/internal/project/internal/repository"
	"github.com/webfolio/webfolio/internal/project/internal/repository/cache"
)

var (
	// ErrProjectIDRequired 前置校验失败，直接打回调用方
	ErrProjectIDRequired  = errors.New("Project ID is required")
	ErrTechnologyRequired = errors.New("Technology is required")

	errFetchProjects = errors.New("failed to fetch projects")
	errFetchProject  = errors.New("failed to fetch project")
)

type ProjectService interface {
	List(ctx context.Context) ([]domain.Project, error)
	Featured(ctx context.Context) ([]domain.Project, error)
	ByID(ctx context.Context, id string) (domain.Project, error)
	Search(ctx context.Context, query string) ([]domain.Project, error)
	ByCategory(ctx context.Context, category domain.Category) ([]domain.Project, error)
	ByTechnology(ctx context.Context, tech string) ([]domain.Project, error)
	Stats(ctx context.Context) (domain.ProjectStats, error)
}

type projectService struct {
	repo   repository.ProjectRepository
	cache  cache.StatsCache
	logger *elog.Component
}

func NewProjectService(repo repository.ProjectRepository, statsCache cache.StatsCache) ProjectService {
	return &projectService{
		repo:   repo,
		cache:  statsCache,
		logger: elog.DefaultLogger,
	}
}

func (s *projectService) List(ctx context.Context) ([]domain.Project, error) {
	res, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errFetchProjects, err)
	}
	return res, nil
}

func (s *projectService) Featured(ctx context.Context) ([]domain.Project, error) {
	res, err := s.repo.Featured(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errFetchProjects, err)
	}
	return res, nil
}

func (s *projectService) ByID(ctx context.Context, id string) (domain.Project, error) {
	if id == "" {
		return domain.Project{}, ErrProjectIDRequired
	}
	res, err := s.repo.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return domain.Project{}, err
		}
		return domain.Project{}, fmt.Errorf("%w: %w", errFetchProject, err)
	}
	return res, nil
}

func (s *projectService) Search(ctx context.Context, query string) ([]domain.Project, error) {
	res, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errFetchProjects, err)
	}
	return res, nil
}

func (s *projectService) ByCategory(ctx context.Context, category domain.Category) ([]domain.Project, error) {
	res, err := s.repo.ByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errFetchProjects, err)
	}
	return res, nil
}

func (s *projectService) ByTechnology(ctx context.Context, tech string) ([]domain.Project, error) {
	if tech == "" {
		return nil, ErrTechnologyRequired
	}
	res, err := s.repo.ByTechnology(ctx, tech)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errFetchProjects, err)
	}
	return res, nil
}

func (s *projectService) Stats(ctx context.Context) (domain.ProjectStats, error) {
	stats, err := s.cache.GetProjectStats(ctx)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, cache.ErrStatsNotFound) {
		s.logger.Warn("读取统计缓存失败", elog.FieldErr(err))
	}
	prjs, err := s.repo.List(ctx)
	if err != nil {
		return domain.ProjectStats{}, fmt.Errorf("%w: %w", errFetchProjects, err)
	}
	stats = computeStats(prjs)
	if serr := s.cache.SetProjectStats(ctx, stats); serr != nil {
		s.logger.Warn("写入统计缓存失败", elog.FieldErr(serr))
	}
	return stats, nil
}

func computeStats(prjs []domain.Project) domain.ProjectStats {
	stats := domain.ProjectStats{
		TotalProjects: len(prjs),
		ByCategory:    make(map[domain.Category]int),
		ByTechnology:  make(map[string]int),
	}
	var ratingSum float64
	var rated int
	for _, p := range prjs {
		if p.Metadata.Featured {
			stats.FeaturedProjects++
		}
		if p.Metadata.Status == domain.StatusCompleted {
			stats.CompletedProjects++
		}
		stats.ByCategory[p.Category]++
		for _, t := range p.Technologies {
			stats.ByTechnology[t.Name]++
		}
		if p.Review != nil {
			ratingSum += p.Review.Rating
			rated++
		}
	}
	if rated > 0 {
		stats.AverageRating = round2(ratingSum / float64(rated))
	}
	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
