package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase order statuses.
const (
	PurchaseStatusDraft     = "draft"
	PurchaseStatusSent      = "sent"
	PurchaseStatusConfirmed = "confirmed"
	PurchaseStatusReceived  = "received"
	PurchaseStatusCancelled = "cancelled"
)

var purchaseStatusRank = map[string]int{
	PurchaseStatusDraft:     0,
	PurchaseStatusSent:      1,
	PurchaseStatusConfirmed: 2,
	PurchaseStatusReceived:  3,
}

// ValidPurchaseStatus reports whether s is a member of the purchase status enum.
func ValidPurchaseStatus(s string) bool {
	if s == PurchaseStatusCancelled {
		return true
	}
	_, ok := purchaseStatusRank[s]
	return ok
}

// CanTransitionPurchase reports whether a purchase order may move from one
// status to another. Progression is forward-only; cancelled is terminal and
// reachable from any other state, including received (which returns stock to
// the supplier).
func CanTransitionPurchase(from, to string) bool {
	if !ValidPurchaseStatus(from) || !ValidPurchaseStatus(to) {
		return false
	}
	if from == to {
		return true
	}
	if from == PurchaseStatusCancelled {
		return false
	}
	if to == PurchaseStatusCancelled {
		return true
	}
	return purchaseStatusRank[to] > purchaseStatusRank[from]
}

// PurchaseOrder is the order header. Subtotal is the sum of item subtotals
// and TotalAmount = Subtotal + TaxAmount + ShippingCost.
type PurchaseOrder struct {
	ID               string
	OrderNumber      string // "PO-NNN", unique
	SupplierID       string
	OrderDate        time.Time
	ExpectedDelivery *time.Time
	Status           string
	Subtotal         decimal.Decimal
	TaxAmount        decimal.Decimal
	ShippingCost     decimal.Decimal
	TotalAmount      decimal.Decimal
	Notes            string
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RecalculateTotals recomputes Subtotal and TotalAmount from the given items.
func (o *PurchaseOrder) RecalculateTotals(items []*PurchaseOrderItem) {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal)
	}
	o.Subtotal = subtotal
	o.TotalAmount = subtotal.Add(o.TaxAmount).Add(o.ShippingCost)
}

// PurchaseOrderItem is one order line. Subtotal = Quantity * UnitCost,
// recomputed on save.
type PurchaseOrderItem struct {
	ID       string
	OrderID  string
	ProductID string
	Quantity int64 // > 0
	UnitCost decimal.Decimal
	Subtotal decimal.Decimal
}

// ComputeSubtotal sets Subtotal from Quantity and UnitCost.
func (i *PurchaseOrderItem) ComputeSubtotal() {
	i.Subtotal = i.UnitCost.Mul(decimal.NewFromInt(i.Quantity))
}
