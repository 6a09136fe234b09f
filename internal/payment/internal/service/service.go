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

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gotomicro/ego/core/elog"
	"github.com/webfolio/webfolio/internal/payment/internal/domain"
	"github.com/webfolio/webfolio/internal/payment/internal/event"
	"github.com/webfolio/webfolio/internal/payment/internal/repository"
	"github.com/webfolio/webfolio/internal/payment/internal/service/checkout"
	"github.com/webfolio/webfolio/internal/pkg/sequencenumber"
)

var (
	ErrInvalidAmount       = errors.New("金额必须大于 0")
	ErrUnsupportedCurrency = errors.New("不支持的币种")

	errUnknownProviderStatus = errors.New("未知的服务商支付状态")
	errIgnoredProviderStatus = errors.New("忽略的服务商支付状态")
)

// 服务商回调状态到订单状态的映射。
// created/authorized 还在路上，不落终态。
var providerStatusToOrderStatus = map[string]domain.OrderStatus{
	"created":    domain.OrderStatusCreated,
	"authorized": domain.OrderStatusAttempted,
	"captured":   domain.OrderStatusPaid,
	"paid":       domain.OrderStatusPaid,
	"failed":     domain.OrderStatusFailed,
}

var supportedCurrencies = map[string]struct{}{
	"INR": {},
	"USD": {},
	"EUR": {},
}

type CreateOrderRequest struct {
	Amount   int64
	Currency string
	Purpose  string
	Metadata map[string]string
}

type ProcessPaymentRequest = CreateOrderRequest

// Notification 服务商 webhook 里抠出来的字段
type Notification struct {
	OrderSN         string
	ProviderOrderID string
	PaymentID       string
	Signature       string
	Status          string
	Reason          string
}

type Service interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (domain.Order, error)
	// ProcessPayment 完整走一遍下单加收银台的流程，
	// 以判定结果收尾而不是抛错误
	ProcessPayment(ctx context.Context, req ProcessPaymentRequest) domain.PaymentResult
	VerifyPayment(ctx context.Context, orderSN, paymentID, signature string) (bool, error)
	HandleNotification(ctx context.Context, n Notification) error
	CancelCheckout(ctx context.Context, orderSN string) error
	PaymentStatus(ctx context.Context, orderSN string) (domain.Order, error)
	FindPendingOrders(ctx context.Context, utime int64, offset, limit int) ([]domain.Order, int64, error)
	SyncProviderInfo(ctx context.Context, order domain.Order) error
}

type service struct {
	repo     repository.PaymentRepository
	gateway  checkout.Gateway
	checkout checkout.Checkout
	resolver checkout.Resolver
	producer event.PaymentEventProducer
	snGen    *sequencenumber.Generator
	idGen    *snowflake.Node
	logger   *elog.Component

	// processTimeout ProcessPayment 等待收银台终态的上限
	processTimeout time.Duration
}

func NewService(
	repo repository.PaymentRepository,
	gateway checkout.Gateway,
	co checkout.Checkout,
	resolver checkout.Resolver,
	producer event.PaymentEventProducer,
	snGen *sequencenumber.Generator,
	idGen *snowflake.Node,
) Service {
	return &service{
		repo:           repo,
		gateway:        gateway,
		checkout:       co,
		resolver:       resolver,
		producer:       producer,
		snGen:          snGen,
		idGen:          idGen,
		logger:         elog.DefaultLogger,
		processTimeout: 15 * time.Minute,
	}
}

func (s *service) CreateOrder(ctx context.Context, req CreateOrderRequest) (domain.Order, error) {
	if req.Amount <= 0 {
		return domain.Order{}, ErrInvalidAmount
	}
	if _, ok := supportedCurrencies[req.Currency]; !ok {
		return domain.Order{}, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, req.Currency)
	}
	id := s.idGen.Generate().Int64()
	sn, err := s.snGen.Generate(id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("生成订单号失败: %w", err)
	}
	// 单次往返，失败不重试
	providerOrder, err := s.gateway.CreateOrder(ctx, checkout.OrderRequest{
		Receipt:  sn,
		Amount:   req.Amount,
		Currency: req.Currency,
		Notes:    req.Metadata,
	})
	if err != nil {
		return domain.Order{}, &domain.PaymentError{
			Code:        domain.ErrCodeOrderCreationFailed,
			Description: "创建支付订单失败",
			Source:      "gateway",
			Step:        "order-creation",
			Reason:      err.Error(),
		}
	}
	order := domain.Order{
		ID:              id,
		SN:              sn,
		Amount:          providerOrder.Amount,
		Currency:        providerOrder.Currency,
		Purpose:         req.Purpose,
		Metadata:        req.Metadata,
		Status:          domain.OrderStatusCreated,
		ProviderOrderID: providerOrder.ID,
	}
	return s.repo.CreateOrder(ctx, order)
}

func (s *service) ProcessPayment(ctx context.Context, req ProcessPaymentRequest) domain.PaymentResult {
	order, err := s.CreateOrder(ctx, req)
	if err != nil {
		var perr *domain.PaymentError
		if !errors.As(err, &perr) {
			perr = &domain.PaymentError{
				Code:        domain.ErrCodeOrderCreationFailed,
				Description: err.Error(),
				Source:      "service",
				Step:        "order-creation",
			}
		}
		return domain.FailureResult("", perr)
	}

	resCh := make(chan domain.PaymentResult, 1)
	cb := checkout.Callbacks{
		OnSuccess: func(paymentID, signature string) {
			resCh <- domain.SuccessResult(order.SN, paymentID, signature)
		},
		OnDismiss: func() {
			resCh <- domain.FailureResult(order.SN, &domain.PaymentError{
				Code:        domain.ErrCodePaymentCancelled,
				Description: "用户关闭了收银台",
				Source:      "user",
				Step:        "checkout",
			})
		},
		OnFailure: func(code, description, reason string) {
			resCh <- domain.FailureResult(order.SN, &domain.PaymentError{
				Code:        domain.ErrCodePaymentFailed,
				Description: description,
				Source:      "provider",
				Step:        "checkout",
				Reason:      reason,
			})
		},
	}
	if oerr := s.checkout.Open(ctx, order, cb); oerr != nil {
		return domain.FailureResult(order.SN, &domain.PaymentError{
			Code:        domain.ErrCodePaymentFailed,
			Description: "打开收银台失败",
			Source:      "checkout",
			Step:        "checkout-open",
			Reason:      oerr.Error(),
		})
	}
	s.markAttempted(ctx, order.SN)

	var res domain.PaymentResult
	select {
	case res = <-resCh:
	case <-time.After(s.processTimeout):
		res = domain.FailureResult(order.SN, &domain.PaymentError{
			Code:        domain.ErrCodePaymentFailed,
			Description: "等待支付结果超时",
			Source:      "service",
			Step:        "checkout",
		})
	case <-ctx.Done():
		res = domain.FailureResult(order.SN, &domain.PaymentError{
			Code:        domain.ErrCodePaymentFailed,
			Description: "支付流程被中断",
			Source:      "service",
			Step:        "checkout",
			Reason:      ctx.Err().Error(),
		})
	}
	return s.settle(ctx, order, res)
}

// settle 把判定结果落库。用的是独立的后台上下文，
// 调用方的 ctx 已经结束也要把终态写进去。
func (s *service) settle(ctx context.Context, order domain.Order, res domain.PaymentResult) domain.PaymentResult {
	if ctx.Err() != nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
	}
	if !res.Success {
		status := domain.OrderStatusFailed
		if res.Error != nil && res.Error.Code == domain.ErrCodePaymentCancelled {
			status = domain.OrderStatusCancelled
		}
		s.updateStatus(ctx, order.SN, status, 0)
		return res
	}
	if err := s.gateway.VerifySignature(order.ProviderOrderID, res.PaymentID, res.Signature); err != nil {
		s.updateStatus(ctx, order.SN, domain.OrderStatusFailed, 0)
		return domain.FailureResult(order.SN, &domain.PaymentError{
			Code:        domain.ErrCodeVerificationFailed,
			Description: "支付签名校验失败",
			Source:      "gateway",
			Step:        "verification",
			Reason:      err.Error(),
		})
	}
	paidAt := time.Now().UnixMilli()
	s.updateStatus(ctx, order.SN, domain.OrderStatusPaid, paidAt)
	if err := s.repo.SavePayment(ctx, domain.Payment{
		OrderSN:   order.SN,
		PaymentID: res.PaymentID,
		Signature: res.Signature,
		Status:    domain.OrderStatusPaid,
		PaidAt:    paidAt,
	}); err != nil {
		s.logger.Error("保存支付记录失败",
			elog.FieldErr(err),
			elog.String("order_sn", order.SN))
	}
	return res
}

func (s *service) VerifyPayment(ctx context.Context, orderSN, paymentID, signature string) (bool, error) {
	order, err := s.repo.FindOrderBySN(ctx, orderSN)
	if err != nil {
		return false, err
	}
	if err = s.gateway.VerifySignature(order.ProviderOrderID, paymentID, signature); err != nil {
		s.logger.Warn("支付签名校验未通过",
			elog.String("order_sn", orderSN),
			elog.String("payment_id", paymentID))
		return false, nil
	}
	paidAt := time.Now().UnixMilli()
	s.updateStatus(ctx, orderSN, domain.OrderStatusPaid, paidAt)
	if err = s.repo.SavePayment(ctx, domain.Payment{
		OrderSN:   orderSN,
		PaymentID: paymentID,
		Signature: signature,
		Status:    domain.OrderStatusPaid,
		PaidAt:    paidAt,
	}); err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) HandleNotification(ctx context.Context, n Notification) error {
	status, ok := providerStatusToOrderStatus[n.Status]
	if !ok {
		return fmt.Errorf("%w: %s", errUnknownProviderStatus, n.Status)
	}
	orderSN := n.OrderSN
	if orderSN == "" {
		if n.ProviderOrderID == "" {
			return errors.New("通知缺少订单号")
		}
		// notes 里没带订单号的 webhook 按服务商订单号对回来
		order, err := s.repo.FindOrderByProviderOrderID(ctx, n.ProviderOrderID)
		if err != nil {
			return fmt.Errorf("按服务商订单号找不到本地订单: %w", err)
		}
		orderSN = order.SN
	}
	if !status.Terminal() {
		s.logger.Warn("忽略的支付通知状态",
			elog.String("status", n.Status),
			elog.String("order_sn", orderSN))
		return fmt.Errorf("%w: %s", errIgnoredProviderStatus, n.Status)
	}
	var paidAt int64
	if status == domain.OrderStatusPaid {
		if n.Signature != "" {
			order, err := s.repo.FindOrderBySN(ctx, orderSN)
			if err != nil {
				return err
			}
			if err = s.gateway.VerifySignature(order.ProviderOrderID, n.PaymentID, n.Signature); err != nil {
				s.updateStatus(ctx, orderSN, domain.OrderStatusFailed, 0)
				s.resolver.Resolve(orderSN, checkout.ProviderPayment{
					PaymentID: n.PaymentID,
					Status:    "failed",
				}, "signature mismatch")
				return err
			}
		}
		paidAt = time.Now().UnixMilli()
	}
	s.updateStatus(ctx, orderSN, status, paidAt)
	if err := s.repo.SavePayment(ctx, domain.Payment{
		OrderSN:   orderSN,
		PaymentID: n.PaymentID,
		Signature: n.Signature,
		Status:    status,
		PaidAt:    paidAt,
	}); err != nil {
		s.logger.Error("保存支付记录失败",
			elog.FieldErr(err),
			elog.String("order_sn", orderSN))
	}
	s.resolver.Resolve(orderSN, checkout.ProviderPayment{
		PaymentID: n.PaymentID,
		OrderID:   n.ProviderOrderID,
		Status:    n.Status,
		Signature: n.Signature,
	}, n.Reason)
	return nil
}

func (s *service) CancelCheckout(ctx context.Context, orderSN string) error {
	order, err := s.repo.FindOrderBySN(ctx, orderSN)
	if err != nil {
		return err
	}
	if order.Status.Terminal() {
		// 已经有终态了，关闭动作不再改写
		return nil
	}
	s.updateStatus(ctx, orderSN, domain.OrderStatusCancelled, 0)
	s.resolver.Dismiss(orderSN)
	return nil
}

func (s *service) PaymentStatus(ctx context.Context, orderSN string) (domain.Order, error) {
	return s.repo.FindOrderBySN(ctx, orderSN)
}

func (s *service) FindPendingOrders(ctx context.Context, utime int64, offset, limit int) ([]domain.Order, int64, error) {
	return s.repo.FindPendingOrders(ctx, utime, offset, limit)
}

// SyncProviderInfo 对账：按服务商侧的最新状态修正本地订单
func (s *service) SyncProviderInfo(ctx context.Context, order domain.Order) error {
	pmt, err := s.gateway.QueryPayment(ctx, order.ProviderOrderID)
	if err != nil {
		return fmt.Errorf("查询服务商支付状态失败: %w", err)
	}
	status, ok := providerStatusToOrderStatus[pmt.Status]
	if !ok {
		return fmt.Errorf("%w: %s", errUnknownProviderStatus, pmt.Status)
	}
	if !status.Terminal() {
		return nil
	}
	var paidAt int64
	if status == domain.OrderStatusPaid {
		paidAt = time.Now().UnixMilli()
	}
	s.updateStatus(ctx, order.SN, status, paidAt)
	if err = s.repo.SavePayment(ctx, domain.Payment{
		OrderSN:   order.SN,
		PaymentID: pmt.PaymentID,
		Status:    status,
		PaidAt:    paidAt,
	}); err != nil {
		s.logger.Error("保存支付记录失败",
			elog.FieldErr(err),
			elog.String("order_sn", order.SN))
	}
	return nil
}

func (s *service) markAttempted(ctx context.Context, orderSN string) {
	s.updateStatus(ctx, orderSN, domain.OrderStatusAttempted, 0)
}

func (s *service) updateStatus(ctx context.Context, orderSN string, status domain.OrderStatus, paidAt int64) {
	changed, err := s.repo.UpdateOrderStatus(ctx, orderSN, status, paidAt)
	if err != nil {
		s.logger.Error("更新订单状态失败",
			elog.FieldErr(err),
			elog.String("order_sn", orderSN),
			elog.Any("status", status.ToUint8()))
		return
	}
	if !changed {
		// 订单已经是这个状态了，webhook 和收银台落账撞在一起时只发一次事件
		return
	}
	if status.Terminal() {
		evt := event.PaymentEvent{OrderSN: orderSN, Status: status.ToUint8()}
		if err := s.producer.Produce(ctx, evt); err != nil {
			s.logger.Error("发送支付事件失败",
				elog.FieldErr(err),
				elog.Any("event", evt))
		}
	}
}
