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

package ioc

import (
	"github.com/gotomicro/ego/core/econf"
	"github.com/webfolio/webfolio/internal/payment/internal/service/checkout"
)

func InitRazorpayConfig() RazorpayConfig {
	var cfg RazorpayConfig
	err := econf.UnmarshalKey("razorpay", &cfg)
	if err != nil {
		panic(err)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.razorpay.com"
	}
	return cfg
}

func InitGateway(cfg RazorpayConfig) *checkout.RazorpayGateway {
	return checkout.NewRazorpayGateway(cfg.BaseURL, cfg.KeyID, cfg.KeySecret)
}

type RazorpayConfig struct {
	// KeyID 公钥，会下发给前端
	KeyID     string
	KeySecret string
	// WebhookSecret 校验 webhook 请求体签名用
	WebhookSecret string
	BaseURL       string
}
