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

package web

type CreateOrderReq struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Purpose  string            `json:"purpose,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// OrderVO 返回给前端拉起收银台所需的全部字段
type OrderVO struct {
	OrderSN         string `json:"orderSN"`
	ProviderOrderID string `json:"providerOrderId"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	// Key 服务商的公钥，前端初始化收银台用
	Key string `json:"key"`
}

type VerifyPaymentReq struct {
	OrderSN   string `json:"orderSN"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

type VerifyPaymentResp struct {
	Verified bool `json:"verified"`
}

type CancelReq struct {
	OrderSN string `json:"orderSN"`
}

type StatusVO struct {
	OrderSN string `json:"orderSN"`
	Status  uint8  `json:"status"`
	PaidAt  int64  `json:"paidAt,omitempty"`
}

// notificationPayload 服务商 webhook 的载荷，只解关心的字段
type notificationPayload struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID               string `json:"id"`
				OrderID          string `json:"order_id"`
				Status           string `json:"status"`
				ErrorDescription string `json:"error_description"`
				Notes            struct {
					OrderSN string `json:"order_sn"`
				} `json:"notes"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}
