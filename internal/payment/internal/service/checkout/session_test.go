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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webfolio/webfolio/internal/payment/internal/domain"
)

func TestHostedCheckoutResolve(t *testing.T) {
	t.Parallel()
	h := NewHostedCheckout()
	var gotPaymentID string
	err := h.Open(context.Background(), domain.Order{SN: "sn-1"}, Callbacks{
		OnSuccess: func(paymentID, signature string) {
			gotPaymentID = paymentID
		},
	})
	require.NoError(t, err)

	ok := h.Resolve("sn-1", ProviderPayment{PaymentID: "pay_1", Status: "captured"}, "")
	assert.True(t, ok)
	assert.Equal(t, "pay_1", gotPaymentID)

	// 会话是一次性的
	ok = h.Resolve("sn-1", ProviderPayment{PaymentID: "pay_1", Status: "captured"}, "")
	assert.False(t, ok)
}

func TestHostedCheckoutResolveFailure(t *testing.T) {
	t.Parallel()
	h := NewHostedCheckout()
	var gotReason string
	err := h.Open(context.Background(), domain.Order{SN: "sn-2"}, Callbacks{
		OnFailure: func(code, description, reason string) {
			gotReason = reason
		},
	})
	require.NoError(t, err)

	ok := h.Resolve("sn-2", ProviderPayment{Status: "failed"}, "card declined")
	assert.True(t, ok)
	assert.Equal(t, "card declined", gotReason)
}

func TestHostedCheckoutDismiss(t *testing.T) {
	t.Parallel()
	h := NewHostedCheckout()
	dismissed := false
	err := h.Open(context.Background(), domain.Order{SN: "sn-3"}, Callbacks{
		OnDismiss: func() {
			dismissed = true
		},
	})
	require.NoError(t, err)

	assert.True(t, h.Dismiss("sn-3"))
	assert.True(t, dismissed)
	assert.False(t, h.Dismiss("sn-3"))
	// 没登记过的订单号
	assert.False(t, h.Dismiss("nope"))
}
