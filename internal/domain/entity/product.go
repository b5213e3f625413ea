package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold is the stock level under which a product is
// flagged for replenishment.
const DefaultLowStockThreshold int64 = 10

// Product is a catalog SKU. CostPrice is the weighted-average cost,
// recalculated on every purchase receipt; CurrentStock is mutated only by
// order reconciliation or explicit stock adjustments.
type Product struct {
	ID           string
	SKU          string // unique
	Name         string
	Description  string
	CategoryID   *string
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	CurrentStock int64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfitMargin returns (selling - cost) / cost * 100 rounded to 2 decimal
// places, or zero when cost is not positive.
func (p *Product) ProfitMargin() decimal.Decimal {
	if !p.CostPrice.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	return p.SellingPrice.Sub(p.CostPrice).
		Div(p.CostPrice).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

// ProfitPerUnit returns selling price minus cost price.
func (p *Product) ProfitPerUnit() decimal.Decimal {
	return p.SellingPrice.Sub(p.CostPrice)
}

// TotalStockValue returns current stock valued at cost.
func (p *Product) TotalStockValue() decimal.Decimal {
	return p.CostPrice.Mul(decimal.NewFromInt(p.CurrentStock))
}

// IsLowStock reports whether stock is below the threshold.
func (p *Product) IsLowStock(threshold int64) bool {
	return p.CurrentStock < threshold
}
