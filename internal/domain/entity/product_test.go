package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MohamedNAGYYS/erp-system/internal/domain/entity"
)

func TestProductProfitMargin(t *testing.T) {
	p := &entity.Product{
		CostPrice:    decimal.RequireFromString("5.00"),
		SellingPrice: decimal.RequireFromString("7.50"),
	}
	assert.True(t, p.ProfitMargin().Equal(decimal.RequireFromString("50.00")), "got %s", p.ProfitMargin())
	assert.True(t, p.ProfitPerUnit().Equal(decimal.RequireFromString("2.50")))
}

func TestProductProfitMargin_ZeroCost(t *testing.T) {
	p := &entity.Product{
		CostPrice:    decimal.Zero,
		SellingPrice: decimal.NewFromInt(10),
	}
	assert.True(t, p.ProfitMargin().IsZero(), "no division by zero cost")
}

func TestProductTotalStockValue(t *testing.T) {
	p := &entity.Product{
		CostPrice:    decimal.RequireFromString("2.50"),
		CurrentStock: 40,
	}
	assert.True(t, p.TotalStockValue().Equal(decimal.NewFromInt(100)))
}

func TestProductIsLowStock(t *testing.T) {
	p := &entity.Product{CurrentStock: 9}
	assert.True(t, p.IsLowStock(entity.DefaultLowStockThreshold))
	p.CurrentStock = 10
	assert.False(t, p.IsLowStock(entity.DefaultLowStockThreshold), "threshold is exclusive")
}

func TestCustomerCredit(t *testing.T) {
	c := &entity.Customer{
		CreditLimit:    decimal.NewFromInt(1000),
		CurrentBalance: decimal.NewFromInt(800),
		IsActive:       true,
	}
	assert.True(t, c.AvailableCredit().Equal(decimal.NewFromInt(200)))
	assert.True(t, c.CanPurchase(decimal.NewFromInt(200)), "exactly the available credit is allowed")
	assert.False(t, c.CanPurchase(decimal.RequireFromString("200.01")))

	c.IsActive = false
	assert.False(t, c.CanPurchase(decimal.NewFromInt(1)), "inactive customers cannot purchase")
}

func TestSupplierExpectedDelivery(t *testing.T) {
	s := &entity.Supplier{LeadTimeDays: 10}
	orderDate := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 9, 4, 9, 0, 0, 0, time.UTC), s.ExpectedDelivery(orderDate))
}

func TestValidPaymentTerms(t *testing.T) {
	for _, terms := range []string{
		entity.PaymentTermsNet7, entity.PaymentTermsNet15, entity.PaymentTermsNet30,
		entity.PaymentTermsCOD, entity.PaymentTermsPrepaid,
	} {
		assert.True(t, entity.ValidPaymentTerms(terms), terms)
	}
	assert.False(t, entity.ValidPaymentTerms("net_90"))
	assert.False(t, entity.ValidPaymentTerms(""))
}
