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

package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/pkg/errors"
	"github.com/webfolio/webfolio/internal/project/internal/domain"
)

var ErrStatsNotFound = errors.New("统计数据没找到")

const expiration = 30 * time.Minute

type StatsCache interface {
	GetProjectStats(ctx context.Context) (domain.ProjectStats, error)
	SetProjectStats(ctx context.Context, stats domain.ProjectStats) error
	GetFreelanceStats(ctx context.Context) (domain.FreelanceStats, error)
	SetFreelanceStats(ctx context.Context, stats domain.FreelanceStats) error
}

type StatsECache struct {
	ec ecache.Cache
}

func NewStatsCache(ec ecache.Cache) StatsCache {
	return &StatsECache{
		ec: &ecache.NamespaceCache{
			Namespace: "project:stats:",
			C:         ec,
		},
	}
}

func (c *StatsECache) GetProjectStats(ctx context.Context) (domain.ProjectStats, error) {
	var stats domain.ProjectStats
	err := c.get(ctx, "all", &stats)
	return stats, err
}

func (c *StatsECache) SetProjectStats(ctx context.Context, stats domain.ProjectStats) error {
	return c.set(ctx, "all", stats)
}

func (c *StatsECache) GetFreelanceStats(ctx context.Context) (domain.FreelanceStats, error) {
	var stats domain.FreelanceStats
	err := c.get(ctx, "freelance", &stats)
	return stats, err
}

func (c *StatsECache) SetFreelanceStats(ctx context.Context, stats domain.FreelanceStats) error {
	return c.set(ctx, "freelance", stats)
}

func (c *StatsECache) get(ctx context.Context, key string, result any) error {
	val := c.ec.Get(ctx, key)
	if val.KeyNotFound() {
		return ErrStatsNotFound
	}
	if val.Err != nil {
		return errors.Wrap(val.Err, "查询统计缓存出错")
	}
	if err := json.Unmarshal([]byte(val.Val.(string)), result); err != nil {
		return errors.Wrap(err, "反序列化统计数据失败")
	}
	return nil
}

func (c *StatsECache) set(ctx context.Context, key string, stats any) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return errors.Wrap(err, "序列化统计数据失败")
	}
	return c.ec.Set(ctx, key, string(data), expiration)
}
