package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MohamedNAGYYS/erp-system/internal/domain/entity"
)

func TestCanTransitionSales(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{entity.SalesStatusDraft, entity.SalesStatusConfirmed, true},
		{entity.SalesStatusConfirmed, entity.SalesStatusProcessing, true},
		{entity.SalesStatusProcessing, entity.SalesStatusShipped, true},
		{entity.SalesStatusShipped, entity.SalesStatusDelivered, true},
		{entity.SalesStatusDraft, entity.SalesStatusShipped, true}, // skipping forward is allowed
		{entity.SalesStatusConfirmed, entity.SalesStatusDraft, false},
		{entity.SalesStatusDelivered, entity.SalesStatusShipped, false},
		{entity.SalesStatusDraft, entity.SalesStatusCancelled, true},
		{entity.SalesStatusShipped, entity.SalesStatusCancelled, true},
		{entity.SalesStatusDelivered, entity.SalesStatusCancelled, false}, // delivered is terminal
		{entity.SalesStatusCancelled, entity.SalesStatusDraft, false},    // cancelled is terminal
		{entity.SalesStatusConfirmed, entity.SalesStatusConfirmed, true}, // same-status re-save
		{"bogus", entity.SalesStatusDraft, false},
		{entity.SalesStatusDraft, "bogus", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, entity.CanTransitionSales(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestValidSalesStatus(t *testing.T) {
	for _, s := range []string{
		entity.SalesStatusDraft, entity.SalesStatusConfirmed, entity.SalesStatusProcessing,
		entity.SalesStatusShipped, entity.SalesStatusDelivered, entity.SalesStatusCancelled,
	} {
		assert.True(t, entity.ValidSalesStatus(s), s)
	}
	assert.False(t, entity.ValidSalesStatus("pending"))
	assert.False(t, entity.ValidSalesStatus(""))
}

func TestSalesOrderRecalculateTotals(t *testing.T) {
	order := &entity.SalesOrder{TaxAmount: decimal.RequireFromString("1.50")}
	items := []*entity.SalesOrderItem{
		{Quantity: 3, UnitPrice: decimal.RequireFromString("2.00")},
		{Quantity: 1, UnitPrice: decimal.RequireFromString("4.25")},
	}
	for _, item := range items {
		item.ComputeSubtotal()
	}

	order.RecalculateTotals(items)

	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("10.25")), "got %s", order.Subtotal)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("11.75")), "got %s", order.TotalAmount)
}

func TestSalesOrderRecalculateTotals_Empty(t *testing.T) {
	order := &entity.SalesOrder{TaxAmount: decimal.NewFromInt(2)}
	order.RecalculateTotals(nil)
	assert.True(t, order.Subtotal.IsZero())
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(2)))
}
