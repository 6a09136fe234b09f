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

package checkout

import (
	"context"

	"github.com/webfolio/webfolio/internal/payment/internal/domain"
)

// Gateway 收银台服务商的窄接口。编排层只依赖它，
// 生产环境是服务商 REST API 的薄适配，测试里换成假实现。
//
//go:generate mockgen -source=./gateway.go -package=checkoutmocks -destination=./mocks/gateway.mock.go -typed Gateway
type Gateway interface {
	// CreateOrder 在服务商侧创建订单，单次往返，失败不重试
	CreateOrder(ctx context.Context, req OrderRequest) (ProviderOrder, error)
	// VerifySignature 校验 HMAC-SHA256(orderID|paymentID) 签名
	VerifySignature(providerOrderID, paymentID, signature string) error
	// QueryPayment 查询服务商侧的支付状态，对账任务在用
	QueryPayment(ctx context.Context, providerOrderID string) (ProviderPayment, error)
}

type OrderRequest struct {
	// Receipt 我方订单号，回调的时候用来对回订单
	Receipt  string
	Amount   int64
	Currency string
	Notes    map[string]string
}

type ProviderOrder struct {
	ID       string
	Amount   int64
	Currency string
}

type ProviderPayment struct {
	PaymentID string
	OrderID   string
	Status    string
	Signature string
}

// Callbacks 托管收银台的三种回调：成功、用户关闭、支付失败
type Callbacks struct {
	OnSuccess func(paymentID, signature string)
	OnDismiss func()
	OnFailure func(code, description, reason string)
}

// Checkout 打开托管收银台的能力。Open 只负责登记回调，立刻返回；
// 终态从回调里出来。
type Checkout interface {
	Open(ctx context.Context, order domain.Order, cb Callbacks) error
}

// Resolver webhook 侧触发等待中会话的能力，
// 和 Checkout 由同一个实现承担
type Resolver interface {
	Resolve(orderSN string, pmt ProviderPayment, reason string) bool
	Dismiss(orderSN string) bool
}
