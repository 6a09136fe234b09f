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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webfolio/webfolio/internal/project/internal/domain"
	"github.com/webfolio/webfolio/internal/project/internal/repository"
	"github.com/webfolio/webfolio/internal/project/internal/repository/cache"
	"github.com/webfolio/webfolio/internal/project/internal/repository/source"
	"github.com/webfolio/webfolio/internal/project/internal/schema"
)

type stubSource struct {
	projects  []schema.Project
	freelance []schema.FreelanceProject
}

func (s *stubSource) FetchProjects(_ context.Context) ([]schema.Project, error) {
	return s.projects, nil
}

func (s *stubSource) FetchFreelanceProjects(_ context.Context) ([]schema.FreelanceProject, error) {
	return s.freelance, nil
}

// missCache 永远未命中，统计走实时计算
type missCache struct{}

func (missCache) GetProjectStats(_ context.Context) (domain.ProjectStats, error) {
	return domain.ProjectStats{}, cache.ErrStatsNotFound
}

func (missCache) SetProjectStats(_ context.Context, _ domain.ProjectStats) error {
	return nil
}

func (missCache) GetFreelanceStats(_ context.Context) (domain.FreelanceStats, error) {
	return domain.FreelanceStats{}, cache.ErrStatsNotFound
}

func (missCache) SetFreelanceStats(_ context.Context, _ domain.FreelanceStats) error {
	return nil
}

var _ source.Source = &stubSource{}
var _ cache.StatsCache = missCache{}

func newTestService(src source.Source) ProjectService {
	return NewProjectService(repository.NewCachedProjectRepository(src), missCache{})
}

func TestProjectServiceByIDRequiresID(t *testing.T) {
	t.Parallel()
	svc := newTestService(&stubSource{})
	_, err := svc.ByID(context.Background(), "")
	assert.ErrorIs(t, err, ErrProjectIDRequired)
	assert.Equal(t, "Project ID is required", ErrProjectIDRequired.Error())
}

func TestProjectServiceByTechnologyRequiresTechnology(t *testing.T) {
	t.Parallel()
	svc := newTestService(&stubSource{})
	_, err := svc.ByTechnology(context.Background(), "")
	assert.ErrorIs(t, err, ErrTechnologyRequired)
}

func TestProjectServiceStats(t *testing.T) {
	t.Parallel()
	featured := true
	src := &stubSource{projects: []schema.Project{
		{
			ID:          "p1",
			Title:       "Test",
			Description: "desc",
			Image:       "/x.png",
			Links:       schema.Links{Live: "https://x.com"},
			Featured:    &featured,
			Status:      "completed",
			Review:      &schema.Review{Rating: 4.5},
		},
	}}
	svc := newTestService(src)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalProjects)
	assert.Equal(t, 1, stats.FeaturedProjects)
	assert.Equal(t, 1, stats.CompletedProjects)
	assert.Equal(t, 4.5, stats.AverageRating)
}

func TestProjectServiceStatsNoReviews(t *testing.T) {
	t.Parallel()
	src := &stubSource{projects: []schema.Project{
		{
			ID:          "p1",
			Title:       "Test",
			Description: "desc",
			Image:       "/x.png",
			Links:       schema.Links{Live: "https://x.com"},
		},
	}}
	svc := newTestService(src)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	// 没有任何评分时平均分是 0
	assert.Zero(t, stats.AverageRating)
}

func TestFreelanceServiceStats(t *testing.T) {
	t.Parallel()
	src := &stubSource{freelance: []schema.FreelanceProject{
		{
			Project: schema.Project{
				ID:          "f1",
				Title:       "A",
				Description: "desc",
				Image:       "/a.png",
				Links:       schema.Links{Live: "https://a.com"},
			},
			Client: "Acme",
			Budget: &schema.Budget{Amount: 50000},
		},
		{
			Project: schema.Project{
				ID:          "f2",
				Title:       "B",
				Description: "desc",
				Image:       "/b.png",
				Links:       schema.Links{Live: "https://b.com"},
			},
			// 大小写不同的同一个客户
			Client: "ACME",
			Budget: &schema.Budget{Amount: 30000},
		},
	}}
	svc := NewFreelanceService(repository.NewCachedFreelanceRepository(src), missCache{})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalProjects)
	assert.Equal(t, 1, stats.UniqueClients)
	assert.Equal(t, int64(80000), stats.TotalRevenue)
}

func TestFreelanceServiceByClientRequiresClient(t *testing.T) {
	t.Parallel()
	svc := NewFreelanceService(repository.NewCachedFreelanceRepository(&stubSource{}), missCache{})
	_, err := svc.ByClient(context.Background(), "")
	assert.ErrorIs(t, err, ErrClientRequired)
}
