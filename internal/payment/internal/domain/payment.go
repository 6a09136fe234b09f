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

package domain

import "fmt"

type Order struct {
	ID int64
	// SN 对外暴露的订单号
	SN       string
	Amount   int64
	Currency string
	// Purpose 比如 "support" 或者具体的打赏档位
	Purpose  string
	Metadata map[string]string
	Status   OrderStatus
	// ProviderOrderID 收银台服务商侧的订单号
	ProviderOrderID string
	PaidAt          int64
	Ctime           int64
	Utime           int64
}

type OrderStatus uint8

func (s OrderStatus) ToUint8() uint8 {
	return uint8(s)
}

const (
	OrderStatusUnknown OrderStatus = iota
	OrderStatusCreated
	OrderStatusAttempted
	OrderStatusPaid
	OrderStatusFailed
	OrderStatusCancelled
)

// Terminal 订单是否已经走到终态
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderStatusPaid, OrderStatusFailed, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Payment 一次支付尝试。一个订单可能有多次尝试，成功的只会有一次。
type Payment struct {
	ID        int64
	OrderSN   string
	PaymentID string
	Signature string
	Status    OrderStatus
	PaidAt    int64
	Ctime     int64
	Utime     int64
}

type ErrCode string

const (
	ErrCodeOrderCreationFailed ErrCode = "ORDER_CREATION_FAILED"
	ErrCodePaymentFailed       ErrCode = "PAYMENT_FAILED"
	ErrCodePaymentCancelled    ErrCode = "PAYMENT_CANCELLED"
	ErrCodeVerificationFailed  ErrCode = "VERIFICATION_FAILED"
)

type PaymentError struct {
	Code        ErrCode
	Description string
	Source      string
	Step        string
	Reason      string
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// PaymentResult 支付流程的判定结果。
// 整个流程以结果对象而不是 error 收尾，调用方按 Success 分支即可，
// 用户主动关闭收银台是正常终态，不算错误。
type PaymentResult struct {
	Success   bool
	OrderSN   string
	PaymentID string
	Signature string
	Error     *PaymentError
}

func SuccessResult(orderSN, paymentID, signature string) PaymentResult {
	return PaymentResult{
		Success:   true,
		OrderSN:   orderSN,
		PaymentID: paymentID,
		Signature: signature,
	}
}

func FailureResult(orderSN string, err *PaymentError) PaymentResult {
	return PaymentResult{
		Success: false,
		OrderSN: orderSN,
		Error:   err,
	}
}
