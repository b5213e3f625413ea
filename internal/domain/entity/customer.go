package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a sales counterparty. CurrentBalance tracks the amount owed;
// it increases when a sales order is confirmed and decreases when a confirmed
// order is cancelled.
type Customer struct {
	ID             string
	Name           string
	ContactPerson  string
	Email          string
	Phone          string
	Address        string
	TaxID          string
	IsBusiness     bool
	CreditLimit    decimal.Decimal
	CurrentBalance decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AvailableCredit returns credit limit minus current balance.
func (c *Customer) AvailableCredit() decimal.Decimal {
	return c.CreditLimit.Sub(c.CurrentBalance)
}

// CanPurchase reports whether the customer is active and has enough
// available credit to cover amount.
func (c *Customer) CanPurchase(amount decimal.Decimal) bool {
	return c.IsActive && c.AvailableCredit().GreaterThanOrEqual(amount)
}
