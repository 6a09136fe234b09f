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

package payment

import (
	"sync"

	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
	"github.com/webfolio/webfolio/internal/payment/internal/domain"
	"github.com/webfolio/webfolio/internal/payment/internal/job"
	"github.com/webfolio/webfolio/internal/payment/internal/repository/dao"
	"github.com/webfolio/webfolio/internal/payment/internal/service"
	"github.com/webfolio/webfolio/internal/payment/internal/web"
	"github.com/webfolio/webfolio/internal/payment/ioc"
)

type (
	Handler             = web.Handler
	Order               = domain.Order
	Payment             = domain.Payment
	PaymentResult       = domain.PaymentResult
	PaymentError        = domain.PaymentError
	Service             = service.Service
	SyncPendingOrderJob = job.SyncPendingOrderJob
)

const (
	StatusCreated   = domain.OrderStatusCreated
	StatusAttempted = domain.OrderStatusAttempted
	StatusPaid      = domain.OrderStatusPaid
	StatusFailed    = domain.OrderStatusFailed
	StatusCancelled = domain.OrderStatusCancelled
)

type Module struct {
	Hdl                 *Handler
	Svc                 Service
	SyncPendingOrderJob *SyncPendingOrderJob
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.PaymentDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewPaymentGORMDAO(db)
}

func initHandler(svc Service, cfg ioc.RazorpayConfig) *Handler {
	return web.NewHandler(svc, cfg.KeyID, cfg.WebhookSecret)
}

func initSyncJob(svc Service) *SyncPendingOrderJob {
	minutes := econf.GetInt64("payment.sync.minutes")
	if minutes <= 0 {
		minutes = 30
	}
	limit := econf.GetInt("payment.sync.limit")
	if limit <= 0 {
		limit = 100
	}
	return job.NewSyncPendingOrderJob(svc, minutes, limit)
}
