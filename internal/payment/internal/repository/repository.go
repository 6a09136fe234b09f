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

package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/webfolio/webfolio/internal/payment/internal/domain"
	"github.com/webfolio/webfolio/internal/payment/internal/repository/dao"
	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("订单不存在")

type PaymentRepository interface {
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	FindOrderBySN(ctx context.Context, sn string) (domain.Order, error)
	FindOrderByProviderOrderID(ctx context.Context, providerOrderID string) (domain.Order, error)
	// UpdateOrderStatus 返回状态是否真的变了，用来防止重复动作
	UpdateOrderStatus(ctx context.Context, sn string, status domain.OrderStatus, paidAt int64) (bool, error)
	SavePayment(ctx context.Context, pmt domain.Payment) error
	FindPaymentByOrderSN(ctx context.Context, orderSN string) (domain.Payment, error)
	FindPendingOrders(ctx context.Context, utime int64, offset, limit int) ([]domain.Order, int64, error)
}

var _ PaymentRepository = &paymentRepository{}

type paymentRepository struct {
	dao dao.PaymentDAO
}

func NewPaymentRepository(d dao.PaymentDAO) PaymentRepository {
	return &paymentRepository{dao: d}
}

func (p *paymentRepository) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	entity, err := p.toEntity(order)
	if err != nil {
		return domain.Order{}, err
	}
	created, err := p.dao.InsertOrder(ctx, entity)
	if err != nil {
		return domain.Order{}, err
	}
	return p.toDomain(created)
}

func (p *paymentRepository) FindOrderBySN(ctx context.Context, sn string) (domain.Order, error) {
	order, err := p.dao.FindOrderBySN(ctx, sn)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Order{}, errors.Wrap(ErrOrderNotFound, sn)
	}
	if err != nil {
		return domain.Order{}, err
	}
	return p.toDomain(order)
}

func (p *paymentRepository) FindOrderByProviderOrderID(ctx context.Context, providerOrderID string) (domain.Order, error) {
	order, err := p.dao.FindOrderByProviderOrderID(ctx, providerOrderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Order{}, errors.Wrap(ErrOrderNotFound, providerOrderID)
	}
	if err != nil {
		return domain.Order{}, err
	}
	return p.toDomain(order)
}

func (p *paymentRepository) UpdateOrderStatus(ctx context.Context, sn string, status domain.OrderStatus, paidAt int64) (bool, error) {
	affected, err := p.dao.UpdateOrderStatus(ctx, sn, status.ToUint8(), paidAt)
	return affected > 0, err
}

func (p *paymentRepository) SavePayment(ctx context.Context, pmt domain.Payment) error {
	entity := dao.Payment{
		OrderSn:   pmt.OrderSN,
		Signature: pmt.Signature,
		Status:    pmt.Status.ToUint8(),
		PaidAt:    pmt.PaidAt,
	}
	if pmt.PaymentID != "" {
		entity.PaymentNo3rd = sql.NullString{String: pmt.PaymentID, Valid: true}
	}
	return p.dao.UpsertPayment(ctx, entity)
}

func (p *paymentRepository) FindPaymentByOrderSN(ctx context.Context, orderSN string) (domain.Payment, error) {
	pmt, err := p.dao.FindPaymentByOrderSN(ctx, orderSN)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Payment{}, errors.Wrap(ErrOrderNotFound, orderSN)
	}
	if err != nil {
		return domain.Payment{}, err
	}
	return domain.Payment{
		ID:        pmt.Id,
		OrderSN:   pmt.OrderSn,
		PaymentID: pmt.PaymentNo3rd.String,
		Signature: pmt.Signature,
		Status:    domain.OrderStatus(pmt.Status),
		PaidAt:    pmt.PaidAt,
		Ctime:     pmt.Ctime,
		Utime:     pmt.Utime,
	}, nil
}

func (p *paymentRepository) FindPendingOrders(ctx context.Context, utime int64, offset, limit int) ([]domain.Order, int64, error) {
	orders, total, err := p.dao.FindPendingOrders(ctx, utime, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	res := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		d, derr := p.toDomain(o)
		if derr != nil {
			return nil, 0, derr
		}
		res = append(res, d)
	}
	return res, total, nil
}

func (p *paymentRepository) toEntity(order domain.Order) (dao.Order, error) {
	res := dao.Order{
		Id:       order.ID,
		SN:       order.SN,
		Amount:   order.Amount,
		Currency: order.Currency,
		Purpose:  order.Purpose,
		Status:   order.Status.ToUint8(),
		PaidAt:   order.PaidAt,
	}
	if order.ProviderOrderID != "" {
		res.ProviderOrderId = sql.NullString{String: order.ProviderOrderID, Valid: true}
	}
	if len(order.Metadata) > 0 {
		data, err := json.Marshal(order.Metadata)
		if err != nil {
			return dao.Order{}, errors.Wrap(err, "序列化订单元数据失败")
		}
		res.Metadata = sql.NullString{String: string(data), Valid: true}
	}
	return res, nil
}

func (p *paymentRepository) toDomain(order dao.Order) (domain.Order, error) {
	res := domain.Order{
		ID:              order.Id,
		SN:              order.SN,
		Amount:          order.Amount,
		Currency:        order.Currency,
		Purpose:         order.Purpose,
		Status:          domain.OrderStatus(order.Status),
		ProviderOrderID: order.ProviderOrderId.String,
		PaidAt:          order.PaidAt,
		Ctime:           order.Ctime,
		Utime:           order.Utime,
	}
	if order.Metadata.Valid {
		if err := json.Unmarshal([]byte(order.Metadata.String), &res.Metadata); err != nil {
			return domain.Order{}, errors.Wrap(err, "反序列化订单元数据失败")
		}
	}
	return res, nil
}
