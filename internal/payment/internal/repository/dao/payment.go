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

package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/webfolio/webfolio/internal/payment/internal/domain"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type Order struct {
	Id       int64  `gorm:"primaryKey"`
	SN       string `gorm:"column:sn;type:varchar(64);uniqueIndex:uniq_order_sn"`
	Amount   int64
	Currency string `gorm:"type:varchar(8)"`
	Purpose  string `gorm:"type:varchar(128)"`
	// Metadata JSON 序列化之后的键值对
	Metadata        sql.NullString `gorm:"type:varchar(2048)"`
	Status          uint8          `gorm:"type:tinyint unsigned;default:1;index:idx_order_status"`
	ProviderOrderId sql.NullString `gorm:"type:varchar(64);uniqueIndex:uniq_provider_order_id"`
	PaidAt          int64
	Ctime           int64
	Utime           int64
}

func (Order) TableName() string {
	return "orders"
}

type Payment struct {
	Id           int64          `gorm:"primaryKey,autoIncrement"`
	OrderSn      string         `gorm:"column:order_sn;type:varchar(64);index:idx_payment_order_sn"`
	PaymentNo3rd sql.NullString `gorm:"column:payment_no_3rd;type:varchar(64);uniqueIndex:uniq_payment_no_3rd"`
	Signature    string         `gorm:"type:varchar(256)"`
	Status       uint8          `gorm:"type:tinyint unsigned;default:1"`
	PaidAt       int64
	Ctime        int64
	Utime        int64
}

func (Payment) TableName() string {
	return "payments"
}

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(&Order{}, &Payment{})
}

type PaymentDAO interface {
	InsertOrder(ctx context.Context, order Order) (Order, error)
	FindOrderBySN(ctx context.Context, sn string) (Order, error)
	FindOrderByProviderOrderID(ctx context.Context, providerOrderID string) (Order, error)
	// UpdateOrderStatus 返回实际改写的行数，订单已经是目标状态时为 0
	UpdateOrderStatus(ctx context.Context, sn string, status uint8, paidAt int64) (int64, error)
	UpsertPayment(ctx context.Context, pmt Payment) error
	FindPaymentByOrderSN(ctx context.Context, orderSN string) (Payment, error)
	FindPendingOrders(ctx context.Context, utime int64, offset, limit int) ([]Order, int64, error)
}

type PaymentGORMDAO struct {
	db *gorm.DB
}

func NewPaymentGORMDAO(db *gorm.DB) PaymentDAO {
	return &PaymentGORMDAO{db: db}
}

func (g *PaymentGORMDAO) InsertOrder(ctx context.Context, order Order) (Order, error) {
	now := time.Now().UnixMilli()
	order.Ctime, order.Utime = now, now
	err := g.db.WithContext(ctx).Create(&order).Error
	if err != nil {
		return Order{}, fmt.Errorf("创建订单记录失败: %w", err)
	}
	return order, nil
}

func (g *PaymentGORMDAO) FindOrderBySN(ctx context.Context, sn string) (Order, error) {
	var order Order
	err := g.db.WithContext(ctx).Where("sn = ?", sn).First(&order).Error
	return order, err
}

func (g *PaymentGORMDAO) FindOrderByProviderOrderID(ctx context.Context, providerOrderID string) (Order, error) {
	var order Order
	err := g.db.WithContext(ctx).
		Where("provider_order_id = ?", providerOrderID).First(&order).Error
	return order, err
}

func (g *PaymentGORMDAO) UpdateOrderStatus(ctx context.Context, sn string, status uint8, paidAt int64) (int64, error) {
	updates := map[string]any{
		"status": status,
		"utime":  time.Now().UnixMilli(),
	}
	if paidAt > 0 {
		updates["paid_at"] = paidAt
	}
	res := g.db.WithContext(ctx).Model(&Order{}).
		Where("sn = ? AND status <> ?", sn, status).Updates(updates)
	return res.RowsAffected, res.Error
}

func (g *PaymentGORMDAO) UpsertPayment(ctx context.Context, pmt Payment) error {
	now := time.Now().UnixMilli()
	pmt.Utime = now
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Payment
		err := tx.Where("order_sn = ?", pmt.OrderSn).First(&existing).Error
		switch {
		case err == nil:
			return tx.Model(&Payment{}).Where("id = ?", existing.Id).
				Updates(&pmt).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			pmt.Ctime = now
			return tx.Create(&pmt).Error
		default:
			return fmt.Errorf("查询支付记录失败: %w", err)
		}
	})
}

func (g *PaymentGORMDAO) FindPaymentByOrderSN(ctx context.Context, orderSN string) (Payment, error) {
	var pmt Payment
	err := g.db.WithContext(ctx).Where("order_sn = ?", orderSN).First(&pmt).Error
	return pmt, err
}

func (g *PaymentGORMDAO) FindPendingOrders(ctx context.Context, utime int64, offset, limit int) ([]Order, int64, error) {
	var (
		eg     errgroup.Group
		orders []Order
		total  int64
	)
	pendingStatuses := []uint8{
		domain.OrderStatusCreated.ToUint8(),
		domain.OrderStatusAttempted.ToUint8(),
	}
	eg.Go(func() error {
		return g.db.WithContext(ctx).Model(&Order{}).
			Where("status IN ? AND utime < ?", pendingStatuses, utime).
			Order("id asc").Offset(offset).Limit(limit).Find(&orders).Error
	})
	eg.Go(func() error {
		return g.db.WithContext(ctx).Model(&Order{}).
			Where("status IN ? AND utime < ?", pendingStatuses, utime).
			Count(&total).Error
	})
	return orders, total, eg.Wait()
}
