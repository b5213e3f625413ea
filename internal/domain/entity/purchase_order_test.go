package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MohamedNAGYYS/erp-system/internal/domain/entity"
)

func TestCanTransitionPurchase(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{entity.PurchaseStatusDraft, entity.PurchaseStatusSent, true},
		{entity.PurchaseStatusSent, entity.PurchaseStatusConfirmed, true},
		{entity.PurchaseStatusConfirmed, entity.PurchaseStatusReceived, true},
		{entity.PurchaseStatusDraft, entity.PurchaseStatusReceived, true}, // skipping forward is allowed
		{entity.PurchaseStatusReceived, entity.PurchaseStatusConfirmed, false},
		{entity.PurchaseStatusSent, entity.PurchaseStatusDraft, false},
		{entity.PurchaseStatusReceived, entity.PurchaseStatusCancelled, true}, // triggers return to supplier
		{entity.PurchaseStatusCancelled, entity.PurchaseStatusDraft, false},
		{entity.PurchaseStatusSent, entity.PurchaseStatusSent, true}, // same-status re-save
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, entity.CanTransitionPurchase(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestPurchaseOrderRecalculateTotals_IncludesShipping(t *testing.T) {
	order := &entity.PurchaseOrder{
		TaxAmount:    decimal.NewFromInt(3),
		ShippingCost: decimal.NewFromInt(12),
	}
	item := &entity.PurchaseOrderItem{Quantity: 5, UnitCost: decimal.NewFromInt(4)}
	item.ComputeSubtotal()

	order.RecalculateTotals([]*entity.PurchaseOrderItem{item})

	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(20)))
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(35)), "got %s", order.TotalAmount)
}
