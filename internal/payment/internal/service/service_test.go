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
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webfolio/webfolio/internal/payment/internal/domain"
	"github.com/webfolio/webfolio/internal/payment/internal/event"
	"github.com/webfolio/webfolio/internal/payment/internal/repository"
	"github.com/webfolio/webfolio/internal/payment/internal/service/checkout"
	"github.com/webfolio/webfolio/internal/pkg/sequencenumber"
)

type fakeRepo struct {
	mu       sync.Mutex
	orders   map[string]domain.Order
	payments []domain.Payment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{orders: make(map[string]domain.Order)}
}

func (f *fakeRepo) CreateOrder(_ context.Context, order domain.Order) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders[order.SN] = order
	return order, nil
}

func (f *fakeRepo) FindOrderBySN(_ context.Context, sn string) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[sn]
	if !ok {
		return domain.Order{}, repository.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeRepo) FindOrderByProviderOrderID(_ context.Context, providerOrderID string) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, order := range f.orders {
		if order.ProviderOrderID == providerOrderID {
			return order, nil
		}
	}
	return domain.Order{}, repository.ErrOrderNotFound
}

func (f *fakeRepo) UpdateOrderStatus(_ context.Context, sn string, status domain.OrderStatus, paidAt int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[sn]
	if !ok {
		return false, repository.ErrOrderNotFound
	}
	if order.Status == status {
		return false, nil
	}
	order.Status = status
	if paidAt > 0 {
		order.PaidAt = paidAt
	}
	f.orders[sn] = order
	return true, nil
}

func (f *fakeRepo) SavePayment(_ context.Context, pmt domain.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payments = append(f.payments, pmt)
	return nil
}

func (f *fakeRepo) FindPaymentByOrderSN(_ context.Context, orderSN string) (domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, pmt := range f.payments {
		if pmt.OrderSN == orderSN {
			return pmt, nil
		}
	}
	return domain.Payment{}, repository.ErrOrderNotFound
}

func (f *fakeRepo) FindPendingOrders(_ context.Context, _ int64, _, _ int) ([]domain.Order, int64, error) {
	return nil, 0, nil
}

func (f *fakeRepo) status(sn string) domain.OrderStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orders[sn].Status
}

func (f *fakeRepo) findByStatus(status domain.OrderStatus) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for sn, order := range f.orders {
		if order.Status == status {
			return sn, true
		}
	}
	return "", false
}

type fakeGateway struct {
	createErr error
	verifyErr error
}

func (f *fakeGateway) CreateOrder(_ context.Context, req checkout.OrderRequest) (checkout.ProviderOrder, error) {
	if f.createErr != nil {
		return checkout.ProviderOrder{}, f.createErr
	}
	return checkout.ProviderOrder{
		ID:       "order_" + req.Receipt,
		Amount:   req.Amount,
		Currency: req.Currency,
	}, nil
}

func (f *fakeGateway) VerifySignature(_, _, _ string) error {
	return f.verifyErr
}

func (f *fakeGateway) QueryPayment(_ context.Context, providerOrderID string) (checkout.ProviderPayment, error) {
	return checkout.ProviderPayment{OrderID: providerOrderID, Status: "created"}, nil
}

// syncCheckout 同步触发回调的假收银台
type syncCheckout struct {
	outcome string
}

func (f *syncCheckout) Open(_ context.Context, _ domain.Order, cb checkout.Callbacks) error {
	switch f.outcome {
	case "success":
		cb.OnSuccess("pay_1", "sig_1")
	case "dismiss":
		cb.OnDismiss()
	default:
		cb.OnFailure(string(domain.ErrCodePaymentFailed), "支付失败", "card declined")
	}
	return nil
}

type fakeProducer struct {
	mu     sync.Mutex
	events []event.PaymentEvent
}

func (f *fakeProducer) Produce(_ context.Context, evt event.PaymentEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evt)
	return nil
}

func (f *fakeProducer) snapshot() []event.PaymentEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]event.PaymentEvent(nil), f.events...)
}

func newTestService(t *testing.T, repo repository.PaymentRepository,
	gw checkout.Gateway, co checkout.Checkout, producer event.PaymentEventProducer) Service {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	resolver := checkout.NewHostedCheckout()
	return NewService(repo, gw, co, resolver, producer, sequencenumber.NewGenerator(), node)
}

func TestCreateOrder(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	svc := newTestService(t, repo, &fakeGateway{}, &syncCheckout{}, &fakeProducer{})

	order, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		Amount:   50000,
		Currency: "INR",
		Purpose:  "support",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, order.SN)
	assert.Equal(t, "order_"+order.SN, order.ProviderOrderID)
	assert.Equal(t, domain.OrderStatusCreated, order.Status)
}

func TestCreateOrderInvalidInput(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, newFakeRepo(), &fakeGateway{}, &syncCheckout{}, &fakeProducer{})

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{Amount: 0, Currency: "INR"})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.CreateOrder(context.Background(), CreateOrderRequest{Amount: 100, Currency: "BTC"})
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)
}

func TestCreateOrderGatewayFailure(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{createErr: errors.New("服务商不可用")}
	svc := newTestService(t, newFakeRepo(), gw, &syncCheckout{}, &fakeProducer{})

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{Amount: 100, Currency: "INR"})
	var perr *domain.PaymentError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, domain.ErrCodeOrderCreationFailed, perr.Code)
}

func TestProcessPaymentSuccess(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	producer := &fakeProducer{}
	svc := newTestService(t, repo, &fakeGateway{}, &syncCheckout{outcome: "success"}, producer)

	res := svc.ProcessPayment(context.Background(), ProcessPaymentRequest{
		Amount:   50000,
		Currency: "INR",
	})
	require.True(t, res.Success)
	assert.Equal(t, "pay_1", res.PaymentID)
	assert.Equal(t, "sig_1", res.Signature)
	assert.Equal(t, domain.OrderStatusPaid, repo.status(res.OrderSN))
	require.Len(t, producer.events, 1)
	assert.Equal(t, domain.OrderStatusPaid.ToUint8(), producer.events[0].Status)
}

func TestProcessPaymentCancelled(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	svc := newTestService(t, repo, &fakeGateway{}, &syncCheckout{outcome: "dismiss"}, &fakeProducer{})

	res := svc.ProcessPayment(context.Background(), ProcessPaymentRequest{
		Amount:   50000,
		Currency: "INR",
	})
	require.False(t, res.Success)
	require.NotNil(t, res.Error)
	// 用户关闭收银台是正常终态
	assert.Equal(t, domain.ErrCodePaymentCancelled, res.Error.Code)
	assert.Equal(t, domain.OrderStatusCancelled, repo.status(res.OrderSN))
}

func TestProcessPaymentVerificationFailure(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	gw := &fakeGateway{verifyErr: checkout.ErrSignatureMismatch}
	svc := newTestService(t, repo, gw, &syncCheckout{outcome: "success"}, &fakeProducer{})

	res := svc.ProcessPayment(context.Background(), ProcessPaymentRequest{
		Amount:   50000,
		Currency: "INR",
	})
	require.False(t, res.Success)
	require.NotNil(t, res.Error)
	assert.Equal(t, domain.ErrCodeVerificationFailed, res.Error.Code)
	assert.Equal(t, domain.OrderStatusFailed, repo.status(res.OrderSN))
}

func TestHandleNotification(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	producer := &fakeProducer{}
	svc := newTestService(t, repo, &fakeGateway{}, &syncCheckout{}, producer)
	order, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		Amount:   100,
		Currency: "INR",
	})
	require.NoError(t, err)

	testCases := []struct {
		name       string
		status     string
		wantErr    bool
		wantStatus domain.OrderStatus
	}{
		{
			name:       "captured 落为已支付",
			status:     "captured",
			wantStatus: domain.OrderStatusPaid,
		},
		{
			name:    "未知状态报错",
			status:  "refund_pending",
			wantErr: true,
		},
		{
			name:    "非终态跳过",
			status:  "authorized",
			wantErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.HandleNotification(context.Background(), Notification{
				OrderSN:   order.SN,
				PaymentID: "pay_1",
				Status:    tc.status,
			})
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, repo.status(order.SN))
		})
	}
}

func TestHandleNotificationByProviderOrderID(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	producer := &fakeProducer{}
	svc := newTestService(t, repo, &fakeGateway{}, &syncCheckout{}, producer)
	order, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		Amount:   100,
		Currency: "INR",
	})
	require.NoError(t, err)

	// notes 里没有订单号的 webhook 按服务商订单号也要能对上
	err = svc.HandleNotification(context.Background(), Notification{
		ProviderOrderID: order.ProviderOrderID,
		PaymentID:       "pay_1",
		Status:          "captured",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, repo.status(order.SN))

	err = svc.HandleNotification(context.Background(), Notification{
		PaymentID: "pay_1",
		Status:    "captured",
	})
	assert.Error(t, err)

	err = svc.HandleNotification(context.Background(), Notification{
		ProviderOrderID: "order_nope",
		PaymentID:       "pay_1",
		Status:          "captured",
	})
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestWebhookSettlesPendingCheckoutOnce(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	producer := &fakeProducer{}
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	hosted := checkout.NewHostedCheckout()
	svc := NewService(repo, &fakeGateway{}, hosted, hosted, producer,
		sequencenumber.NewGenerator(), node)

	resCh := make(chan domain.PaymentResult, 1)
	go func() {
		resCh <- svc.ProcessPayment(context.Background(), ProcessPaymentRequest{
			Amount:   50000,
			Currency: "INR",
		})
	}()

	var sn string
	require.Eventually(t, func() bool {
		var ok bool
		sn, ok = repo.findByStatus(domain.OrderStatusAttempted)
		return ok
	}, time.Second, time.Millisecond)

	require.NoError(t, svc.HandleNotification(context.Background(), Notification{
		OrderSN:   sn,
		PaymentID: "pay_1",
		Signature: "sig_1",
		Status:    "captured",
	}))
	res := <-resCh
	require.True(t, res.Success)
	assert.Equal(t, domain.OrderStatusPaid, repo.status(sn))

	// webhook 先落账，收银台随后的落账不再发第二条事件
	events := producer.snapshot()
	require.Len(t, events, 1)
	assert.Equal(t, domain.OrderStatusPaid.ToUint8(), events[0].Status)
}

func TestCancelSettlesPendingCheckoutOnce(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	producer := &fakeProducer{}
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	hosted := checkout.NewHostedCheckout()
	svc := NewService(repo, &fakeGateway{}, hosted, hosted, producer,
		sequencenumber.NewGenerator(), node)

	resCh := make(chan domain.PaymentResult, 1)
	go func() {
		resCh <- svc.ProcessPayment(context.Background(), ProcessPaymentRequest{
			Amount:   50000,
			Currency: "INR",
		})
	}()

	var sn string
	require.Eventually(t, func() bool {
		var ok bool
		sn, ok = repo.findByStatus(domain.OrderStatusAttempted)
		return ok
	}, time.Second, time.Millisecond)

	require.NoError(t, svc.CancelCheckout(context.Background(), sn))
	res := <-resCh
	require.False(t, res.Success)
	require.NotNil(t, res.Error)
	assert.Equal(t, domain.ErrCodePaymentCancelled, res.Error.Code)
	assert.Equal(t, domain.OrderStatusCancelled, repo.status(sn))

	events := producer.snapshot()
	require.Len(t, events, 1)
	assert.Equal(t, domain.OrderStatusCancelled.ToUint8(), events[0].Status)
}

func TestCancelCheckoutIdempotentOnTerminal(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	svc := newTestService(t, repo, &fakeGateway{}, &syncCheckout{}, &fakeProducer{})
	order, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		Amount:   100,
		Currency: "INR",
	})
	require.NoError(t, err)

	require.NoError(t, svc.CancelCheckout(context.Background(), order.SN))
	assert.Equal(t, domain.OrderStatusCancelled, repo.status(order.SN))

	// 已经终态，再关一次不改写状态
	require.NoError(t, svc.CancelCheckout(context.Background(), order.SN))
	assert.Equal(t, domain.OrderStatusCancelled, repo.status(order.SN))

	err = svc.CancelCheckout(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}
