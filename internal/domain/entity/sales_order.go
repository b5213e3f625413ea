package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sales order statuses.
const (
	SalesStatusDraft      = "draft"
	SalesStatusConfirmed  = "confirmed"
	SalesStatusProcessing = "processing"
	SalesStatusShipped    = "shipped"
	SalesStatusDelivered  = "delivered"
	SalesStatusCancelled  = "cancelled"
)

// salesStatusRank orders the forward progression of a sales order.
// Cancelled is outside the rank: it is reachable from any non-terminal state.
var salesStatusRank = map[string]int{
	SalesStatusDraft:      0,
	SalesStatusConfirmed:  1,
	SalesStatusProcessing: 2,
	SalesStatusShipped:    3,
	SalesStatusDelivered:  4,
}

// ValidSalesStatus reports whether s is a member of the sales status enum.
func ValidSalesStatus(s string) bool {
	if s == SalesStatusCancelled {
		return true
	}
	_, ok := salesStatusRank[s]
	return ok
}

// CanTransitionSales reports whether a sales order may move from one status
// to another. Progression is forward-only; cancelled and delivered are
// terminal. A same-status transition is allowed (it is a no-op re-save).
func CanTransitionSales(from, to string) bool {
	if !ValidSalesStatus(from) || !ValidSalesStatus(to) {
		return false
	}
	if from == to {
		return true
	}
	if from == SalesStatusCancelled || from == SalesStatusDelivered {
		return false
	}
	if to == SalesStatusCancelled {
		return true
	}
	return salesStatusRank[to] > salesStatusRank[from]
}

// SalesOrder is the order header. Subtotal is the sum of item subtotals and
// TotalAmount = Subtotal + TaxAmount; both are recomputed on every item
// mutation while the order is in draft.
type SalesOrder struct {
	ID          string
	OrderNumber string // "SO-NNN", unique
	CustomerID  string
	OrderDate   time.Time
	Status      string
	Subtotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
	Notes       string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecalculateTotals recomputes Subtotal and TotalAmount from the given items.
func (o *SalesOrder) RecalculateTotals(items []*SalesOrderItem) {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal)
	}
	o.Subtotal = subtotal
	o.TotalAmount = subtotal.Add(o.TaxAmount)
}

// SalesOrderItem is one order line. Subtotal = Quantity * UnitPrice,
// recomputed on save.
type SalesOrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int64 // > 0
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// ComputeSubtotal sets Subtotal from Quantity and UnitPrice.
func (i *SalesOrderItem) ComputeSubtotal() {
	i.Subtotal = i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}
