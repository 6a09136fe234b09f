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

package job

import (
	"context"
	"fmt"
	"time"

	"github.com/gotomicro/ego/core/elog"
	"github.com/gotomicro/ego/task/ecron"
	"github.com/webfolio/webfolio/internal/payment/internal/service"
)

var _ ecron.NamedJob = (*SyncPendingOrderJob)(nil)

// SyncPendingOrderJob 找出长时间停在 created/attempted 的订单，
// 按服务商侧的最新状态修正本地记录
type SyncPendingOrderJob struct {
	svc     service.Service
	minutes int64
	limit   int
	l       *elog.Component
}

func NewSyncPendingOrderJob(svc service.Service, minutes int64, limit int) *SyncPendingOrderJob {
	return &SyncPendingOrderJob{
		svc:     svc,
		minutes: minutes,
		limit:   limit,
		l:       elog.DefaultLogger}
}

func (s *SyncPendingOrderJob) Name() string {
	return "sync_pending_order_job"
}

func (s *SyncPendingOrderJob) Run(ctx context.Context) error {

	utime := time.Now().Add(time.Duration(-s.minutes) * time.Minute).UnixMilli()

	// 同步完仍停在待支付的订单不会离开查询窗口，
	// 所以偏移量要一直往前推，同一批订单本次运行只看一遍
	offset := 0
	for {

		orders, total, err := s.svc.FindPendingOrders(ctx, utime, offset, s.limit)
		if err != nil {
			return fmt.Errorf("获取待同步订单失败: %w", err)
		}

		for _, order := range orders {
			err = s.svc.SyncProviderInfo(ctx, order)
			if err != nil {
				s.l.Error("同步服务商支付信息失败",
					elog.FieldErr(err),
					elog.String("order_sn", order.SN),
				)
			}
		}

		if len(orders) < s.limit {
			return nil
		}

		offset += len(orders)
		if int64(offset) >= total {
			return nil
		}

	}
}
