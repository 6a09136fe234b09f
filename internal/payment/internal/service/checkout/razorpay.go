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
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	fastshot "github.com/opus-domini/fast-shot"
	"golang.org/x/sync/singleflight"
)

var ErrSignatureMismatch = errors.New("支付签名不匹配")

var _ Gateway = &RazorpayGateway{}

// RazorpayGateway Razorpay REST API 的薄适配。
// 第一次用到的时候才真正初始化，并发的初始化请求共享同一次往返，
// 成功之后再调用就是空操作。
type RazorpayGateway struct {
	baseURL string
	keyID   string
	secret  string

	client atomic.Pointer[fastshot.ClientHttpMethods]
	sf     singleflight.Group
}

func NewRazorpayGateway(baseURL, keyID, secret string) *RazorpayGateway {
	return &RazorpayGateway{
		baseURL: baseURL,
		keyID:   keyID,
		secret:  secret,
	}
}

func (g *RazorpayGateway) ensure(ctx context.Context) (fastshot.ClientHttpMethods, error) {
	if c := g.client.Load(); c != nil {
		return *c, nil
	}
	v, err, _ := g.sf.Do("init", func() (any, error) {
		b := fastshot.NewClient(g.baseURL)
		b.Auth().BasicAuth(g.keyID, g.secret)
		c := b.Config().SetTimeout(15 * time.Second).
			Header().Add("Content-Type", "application/json").
			Build()
		// 探测一次，确认密钥可用
		resp, err := c.GET("/v1/payments").
			Context().Set(ctx).
			Query().AddParam("count", "1").
			Send()
		if err != nil {
			return nil, fmt.Errorf("收银台客户端初始化失败: %w", err)
		}
		defer resp.Body().Close()
		if resp.Status().IsError() {
			return nil, fmt.Errorf("收银台密钥校验失败: %d", resp.Status().Code())
		}
		g.client.Store(&c)
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(fastshot.ClientHttpMethods), nil
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, req OrderRequest) (ProviderOrder, error) {
	client, err := g.ensure(ctx)
	if err != nil {
		return ProviderOrder{}, err
	}
	// 订单号塞进 notes，webhook 回来靠它对回本地订单
	notes := make(map[string]string, len(req.Notes)+1)
	for k, v := range req.Notes {
		notes[k] = v
	}
	notes["order_sn"] = req.Receipt
	body := map[string]any{
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  req.Receipt,
		"notes":    notes,
	}
	resp, err := client.POST("/v1/orders").
		Context().Set(ctx).
		Body().AsJSON(body).
		Send()
	if err != nil {
		return ProviderOrder{}, fmt.Errorf("创建服务商订单失败: %w", err)
	}
	defer resp.Body().Close()
	if resp.Status().IsError() {
		return ProviderOrder{}, fmt.Errorf("创建服务商订单失败: %d", resp.Status().Code())
	}
	var res struct {
		ID       string `json:"id"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	}
	if err = resp.Body().AsJSON(&res); err != nil {
		return ProviderOrder{}, fmt.Errorf("解析服务商订单失败: %w", err)
	}
	if res.ID == "" {
		return ProviderOrder{}, errors.New("服务商订单响应缺少订单号")
	}
	return ProviderOrder{
		ID:       res.ID,
		Amount:   res.Amount,
		Currency: res.Currency,
	}, nil
}

// VerifySignature 签名是 HMAC-SHA256(providerOrderID|paymentID)
func (g *RazorpayGateway) VerifySignature(providerOrderID, paymentID, signature string) error {
	mac := hmac.New(sha256.New, []byte(g.secret))
	mac.Write([]byte(providerOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureMismatch
	}
	return nil
}

func (g *RazorpayGateway) QueryPayment(ctx context.Context, providerOrderID string) (ProviderPayment, error) {
	client, err := g.ensure(ctx)
	if err != nil {
		return ProviderPayment{}, err
	}
	resp, err := client.GET(fmt.Sprintf("/v1/orders/%s/payments", providerOrderID)).
		Context().Set(ctx).
		Send()
	if err != nil {
		return ProviderPayment{}, fmt.Errorf("查询服务商支付失败: %w", err)
	}
	defer resp.Body().Close()
	if resp.Status().IsError() {
		return ProviderPayment{}, fmt.Errorf("查询服务商支付失败: %d", resp.Status().Code())
	}
	var res struct {
		Items []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"items"`
	}
	if err = resp.Body().AsJSON(&res); err != nil {
		return ProviderPayment{}, fmt.Errorf("解析服务商支付失败: %w", err)
	}
	if len(res.Items) == 0 {
		return ProviderPayment{OrderID: providerOrderID, Status: "created"}, nil
	}
	// 服务商按时间倒序返回，第一条就是最近一次尝试
	latest := res.Items[0]
	return ProviderPayment{
		PaymentID: latest.ID,
		OrderID:   providerOrderID,
		Status:    latest.Status,
	}, nil
}
