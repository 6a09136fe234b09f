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

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"

	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
	"github.com/webfolio/webfolio/internal/payment/internal/repository"
	"github.com/webfolio/webfolio/internal/payment/internal/service"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc service.Service
	// publicKey 服务商公钥，下发给前端初始化收银台
	publicKey     string
	webhookSecret string
	logger        *elog.Component
}

func NewHandler(svc service.Service, publicKey, webhookSecret string) *Handler {
	return &Handler{
		svc:           svc,
		publicKey:     publicKey,
		webhookSecret: webhookSecret,
		logger:        elog.DefaultLogger,
	}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	server.POST("/api/create-order", ginx.B[CreateOrderReq](h.CreateOrder))
	server.POST("/api/verify-payment", ginx.B[VerifyPaymentReq](h.VerifyPayment))
	server.GET("/api/payment-status/:sn", ginx.W(h.PaymentStatus))
	server.POST("/api/payment-cancel", ginx.B[CancelReq](h.Cancel))
	server.Any("/api/payment/callback", ginx.W(h.HandleCallback))
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {}

func (h *Handler) CreateOrder(ctx *ginx.Context, req CreateOrderReq) (ginx.Result, error) {
	order, err := h.svc.CreateOrder(ctx, service.CreateOrderRequest{
		Amount:   req.Amount,
		Currency: req.Currency,
		Purpose:  req.Purpose,
		Metadata: req.Metadata,
	})
	switch {
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrUnsupportedCurrency):
		return invalidInputResult, err
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: OrderVO{
			OrderSN:         order.SN,
			ProviderOrderID: order.ProviderOrderID,
			Amount:          order.Amount,
			Currency:        order.Currency,
			Key:             h.publicKey,
		},
	}, nil
}

func (h *Handler) VerifyPayment(ctx *ginx.Context, req VerifyPaymentReq) (ginx.Result, error) {
	if req.OrderSN == "" || req.PaymentID == "" || req.Signature == "" {
		return invalidInputResult, errors.New("缺少校验参数")
	}
	verified, err := h.svc.VerifyPayment(ctx, req.OrderSN, req.PaymentID, req.Signature)
	switch {
	case errors.Is(err, repository.ErrOrderNotFound):
		return orderNotFoundResult, err
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: VerifyPaymentResp{Verified: verified},
	}, nil
}

func (h *Handler) PaymentStatus(ctx *ginx.Context) (ginx.Result, error) {
	sn := ctx.Param("sn").StringOrDefault("")
	if sn == "" {
		return invalidInputResult, errors.New("缺少订单号")
	}
	order, err := h.svc.PaymentStatus(ctx, sn)
	switch {
	case errors.Is(err, repository.ErrOrderNotFound):
		return orderNotFoundResult, err
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: StatusVO{
			OrderSN: order.SN,
			Status:  order.Status.ToUint8(),
			PaidAt:  order.PaidAt,
		},
	}, nil
}

func (h *Handler) Cancel(ctx *ginx.Context, req CancelReq) (ginx.Result, error) {
	if req.OrderSN == "" {
		return invalidInputResult, errors.New("缺少订单号")
	}
	err := h.svc.CancelCheckout(ctx, req.OrderSN)
	switch {
	case errors.Is(err, repository.ErrOrderNotFound):
		return orderNotFoundResult, err
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

// HandleCallback 服务商 webhook。
// 先校验整个请求体的 HMAC 签名，再按事件类型分发。
func (h *Handler) HandleCallback(ctx *ginx.Context) (ginx.Result, error) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		return systemErrorResult, err
	}
	if !h.verifyWebhookSignature(body, ctx.GetHeader("X-Razorpay-Signature")) {
		h.logger.Warn("webhook 签名校验未通过")
		return invalidInputResult, errors.New("webhook 签名校验失败")
	}
	var payload notificationPayload
	if err = json.Unmarshal(body, &payload); err != nil {
		return invalidInputResult, err
	}
	entity := payload.Payload.Payment.Entity
	err = h.svc.HandleNotification(ctx, service.Notification{
		OrderSN:         entity.Notes.OrderSN,
		ProviderOrderID: entity.OrderID,
		PaymentID:       entity.ID,
		Status:          entity.Status,
		Reason:          entity.ErrorDescription,
	})
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *Handler) verifyWebhookSignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(h.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
