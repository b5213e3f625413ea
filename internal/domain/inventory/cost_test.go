package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MohamedNAGYYS/erp-system/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestWeightedAverageCost(t *testing.T) {
	tests := []struct {
		name         string
		currentStock int64
		currentCost  string
		receivedQty  int64
		receivedCost string
		want         string
	}{
		{"reference case", 10, "5.00", 10, "7.00", "6.00"},
		{"zero stock adopts received cost", 0, "5.00", 4, "7.50", "7.50"},
		{"uneven weights", 30, "2.00", 10, "6.00", "3.00"},
		{"rounds to cents", 3, "1.00", 1, "2.00", "1.25"},
		{"repeating decimal rounds", 1, "1.00", 2, "2.00", "1.67"},
		{"same cost stays put", 100, "9.99", 50, "9.99", "9.99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inventory.WeightedAverageCost(tt.currentStock, d(tt.currentCost), tt.receivedQty, d(tt.receivedCost))
			assert.True(t, got.Equal(d(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestWeightedAverageCost_NonPositiveTotalKeepsCurrent(t *testing.T) {
	got := inventory.WeightedAverageCost(0, d("5.00"), 0, d("7.00"))
	assert.True(t, got.Equal(d("5.00")))
}

// No float drift: many small receipts at the same cost never move the average.
func TestWeightedAverageCost_StableUnderRepeatedReceipts(t *testing.T) {
	cost := d("3.33")
	stock := int64(1)
	for i := 0; i < 1000; i++ {
		cost = inventory.WeightedAverageCost(stock, cost, 1, d("3.33"))
		stock++
	}
	assert.True(t, cost.Equal(d("3.33")), "drifted to %s", cost)
}
