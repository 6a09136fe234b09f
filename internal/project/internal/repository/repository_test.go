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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webfolio/webfolio/internal/project/internal/domain"
	"github.com/webfolio/webfolio/internal/project/internal/schema"
)

type fakeSource struct {
	projects  []schema.Project
	freelance []schema.FreelanceProject
	err       error
	fetches   int
}

func (f *fakeSource) FetchProjects(_ context.Context) ([]schema.Project, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	return f.projects, nil
}

func (f *fakeSource) FetchFreelanceProjects(_ context.Context) ([]schema.FreelanceProject, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	return f.freelance, nil
}

func rawProject(id string) schema.Project {
	return schema.Project{
		ID:          id,
		Title:       "Test " + id,
		Description: "desc",
		Image:       "/x.png",
		Links:       schema.Links{Live: "https://x.com"},
	}
}

func TestCachedProjectRepositoryTTL(t *testing.T) {
	t.Parallel()
	now := time.Now()
	src := &fakeSource{projects: []schema.Project{rawProject("p1")}}
	repo := newProjectRepositoryWith(src, func() time.Time { return now })

	first, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, src.fetches)

	// TTL 窗口内不重新拉取，拿到的是同一份快照
	now = now.Add(4 * time.Minute)
	second, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, src.fetches)
	assert.Same(t, &first[0], &second[0])

	// 过期之后恰好重新拉取一次
	now = now.Add(2 * time.Minute)
	_, err = repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, src.fetches)
}

func TestCachedProjectRepositoryStaleOnError(t *testing.T) {
	t.Parallel()
	now := time.Now()
	src := &fakeSource{projects: []schema.Project{rawProject("p1")}}
	repo := newProjectRepositoryWith(src, func() time.Time { return now })

	first, err := repo.List(context.Background())
	require.NoError(t, err)

	// 数据源挂了，但手上有旧快照，继续服务
	src.err = errors.New("数据源挂了")
	now = now.Add(6 * time.Minute)
	second, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// 没有快照时错误向上抛
	repo.Reset()
	_, err = repo.List(context.Background())
	assert.Error(t, err)
}

func TestCachedProjectRepositoryByID(t *testing.T) {
	t.Parallel()
	src := &fakeSource{projects: []schema.Project{rawProject("p1")}}
	repo := NewCachedProjectRepository(src)

	prj, err := repo.ByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", prj.ID)

	_, err = repo.ByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestCachedProjectRepositorySearch(t *testing.T) {
	t.Parallel()
	p1 := rawProject("p1")
	p1.Tech = []string{"React"}
	p2 := rawProject("p2")
	p2.Title = "数据管道"
	src := &fakeSource{projects: []schema.Project{p1, p2}}
	repo := NewCachedProjectRepository(src)

	// 技术名大小写不敏感的子串匹配
	res, err := repo.Search(context.Background(), "react")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "p1", res[0].ID)
}

func TestSortProjectsByImportance(t *testing.T) {
	t.Parallel()
	completed := domain.Project{
		ID:       "score10",
		Metadata: domain.Metadata{Status: domain.StatusCompleted},
	}
	featured := domain.Project{
		ID:       "score15",
		Metadata: domain.Metadata{Status: domain.StatusCompleted, Featured: true},
	}
	maintained := domain.Project{
		ID:       "score12",
		Metadata: domain.Metadata{Status: domain.StatusMaintained},
		Review:   &domain.Review{Rating: 2},
	}
	prjs := []domain.Project{completed, featured, maintained}
	SortProjectsByImportance(prjs)
	assert.Equal(t, []string{"score15", "score12", "score10"},
		[]string{prjs[0].ID, prjs[1].ID, prjs[2].ID})
}

func TestSortProjectsByImportanceStableTies(t *testing.T) {
	t.Parallel()
	a := domain.Project{ID: "a", Metadata: domain.Metadata{Status: domain.StatusCompleted}}
	b := domain.Project{ID: "b", Metadata: domain.Metadata{Status: domain.StatusCompleted}}
	low := domain.Project{ID: "low"}
	prjs := []domain.Project{low, a, b}
	SortProjectsByImportance(prjs)
	// 同分保持原有相对顺序
	assert.Equal(t, []string{"a", "b", "low"},
		[]string{prjs[0].ID, prjs[1].ID, prjs[2].ID})
}
