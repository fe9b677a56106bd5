package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"app/internal/domain/model"
)

// 注文ステータス→支払いステータスの導出
func TestDerivePaymentStatus(t *testing.T) {
	cases := []struct {
		order model.OrderStatus
		want  model.PaymentStatus
	}{
		{model.OrderStatusPending, model.PaymentStatusPending},
		{model.OrderStatusConfirmed, model.PaymentStatusCompleted},
		{model.OrderStatusProcessing, model.PaymentStatusCompleted},
		{model.OrderStatusShipped, model.PaymentStatusCompleted},
		{model.OrderStatusDelivered, model.PaymentStatusCompleted},
		{model.OrderStatusCancelled, model.PaymentStatusFailed},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, model.DerivePaymentStatus(c.order), "order status %s", c.order)
	}
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, model.ValidOrderStatus("pending"))
	assert.True(t, model.ValidOrderStatus("cancelled"))
	assert.False(t, model.ValidOrderStatus("lost"))
	assert.False(t, model.ValidOrderStatus(""))
}

func TestValidPaymentType(t *testing.T) {
	assert.True(t, model.ValidPaymentType("cash"))
	assert.True(t, model.ValidPaymentType("check"))
	assert.False(t, model.ValidPaymentType("card"))
}

func TestValidPaymentStatus(t *testing.T) {
	assert.True(t, model.ValidPaymentStatus("pending"))
	assert.True(t, model.ValidPaymentStatus("completed"))
	assert.True(t, model.ValidPaymentStatus("failed"))
	assert.False(t, model.ValidPaymentStatus("refunded"))
}
