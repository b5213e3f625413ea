package entity

import "time"

// Supplier payment terms.
const (
	PaymentTermsNet7    = "net_7"
	PaymentTermsNet15   = "net_15"
	PaymentTermsNet30   = "net_30"
	PaymentTermsCOD     = "cod"
	PaymentTermsPrepaid = "prepaid"
)

// ValidPaymentTerms reports whether terms is a known payment-terms value.
func ValidPaymentTerms(terms string) bool {
	switch terms {
	case PaymentTermsNet7, PaymentTermsNet15, PaymentTermsNet30, PaymentTermsCOD, PaymentTermsPrepaid:
		return true
	}
	return false
}

// Supplier is a purchasing counterparty. LeadTimeDays drives the default
// expected delivery date of new purchase orders.
type Supplier struct {
	ID            string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	TaxID         string
	PaymentTerms  string
	LeadTimeDays  int // >= 1
	Rating        int // 1..5
	IsActive      bool
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ExpectedDelivery returns the default delivery date for an order placed at
// orderDate: orderDate plus the supplier's lead time.
func (s *Supplier) ExpectedDelivery(orderDate time.Time) time.Time {
	return orderDate.AddDate(0, 0, s.LeadTimeDays)
}
