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

	"github.com/ecodeclub/ekit/syncx"
	"github.com/webfolio/webfolio/internal/payment/internal/domain"
)

var (
	_ Checkout = &HostedCheckout{}
	_ Resolver = &HostedCheckout{}
)

// HostedCheckout 生产环境的收银台实现。
// Open 只是把回调登记在订单号上，真正的结果由服务商的 webhook 送达，
// web 层收到通知后调用 Resolve / Dismiss 触发对应回调。
type HostedCheckout struct {
	sessions syncx.Map[string, Callbacks]
}

func NewHostedCheckout() *HostedCheckout {
	return &HostedCheckout{}
}

func (h *HostedCheckout) Open(_ context.Context, order domain.Order, cb Callbacks) error {
	h.sessions.Store(order.SN, cb)
	return nil
}

// Resolve 按服务商状态分发回调，返回是否有等待中的会话
func (h *HostedCheckout) Resolve(orderSN string, pmt ProviderPayment, reason string) bool {
	cb, ok := h.sessions.LoadAndDelete(orderSN)
	if !ok {
		return false
	}
	switch pmt.Status {
	case "captured", "paid":
		if cb.OnSuccess != nil {
			cb.OnSuccess(pmt.PaymentID, pmt.Signature)
		}
	default:
		if cb.OnFailure != nil {
			cb.OnFailure(string(domain.ErrCodePaymentFailed), "支付失败", reason)
		}
	}
	return true
}

// Dismiss 用户关闭了收银台
func (h *HostedCheckout) Dismiss(orderSN string) bool {
	cb, ok := h.sessions.LoadAndDelete(orderSN)
	if !ok {
		return false
	}
	if cb.OnDismiss != nil {
		cb.OnDismiss()
	}
	return true
}
