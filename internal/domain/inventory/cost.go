package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost blends the recorded cost of existing stock with the
// cost of a newly received quantity, weighted by units:
//
//	newCost = (currentStock*currentCost + receivedQty*receivedCost) / (currentStock + receivedQty)
//
// The result is rounded to 2 decimal places. When the combined quantity is
// not positive the current cost is kept unchanged.
func WeightedAverageCost(currentStock int64, currentCost decimal.Decimal, receivedQty int64, receivedCost decimal.Decimal) decimal.Decimal {
	total := currentStock + receivedQty
	if total <= 0 {
		return currentCost
	}
	existing := currentCost.Mul(decimal.NewFromInt(currentStock))
	received := receivedCost.Mul(decimal.NewFromInt(receivedQty))
	return existing.Add(received).Div(decimal.NewFromInt(total)).Round(2)
}
