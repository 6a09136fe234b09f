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

package domain

type ProjectStats struct {
	TotalProjects     int
	FeaturedProjects  int
	CompletedProjects int
	ByCategory        map[Category]int
	ByTechnology      map[string]int
	// AverageRating 只统计有评价的项目，保留两位小数，没有评价时为 0
	AverageRating float64
}

type FreelanceStats struct {
	ProjectStats
	// UniqueClients 客户名忽略大小写去重
	UniqueClients int
	// TotalRevenue 为 0 的时候整个字段不对外输出
	TotalRevenue int64
}
