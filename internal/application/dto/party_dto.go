package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest input for creating a customer.
type CreateCustomerRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	ContactPerson string          `json:"contact_person" validate:"omitempty,max=100"`
	Email         string          `json:"email" validate:"omitempty,email"`
	Phone         string          `json:"phone" validate:"omitempty,max=20"`
	Address       string          `json:"address"`
	TaxID         string          `json:"tax_id" validate:"omitempty,max=50"`
	IsBusiness    bool            `json:"is_business"`
	CreditLimit   decimal.Decimal `json:"credit_limit"`
}

// UpdateCustomerRequest input for updating a customer. CurrentBalance is not
// editable; it changes through order confirmation and cancellation.
type UpdateCustomerRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	ContactPerson *string          `json:"contact_person"`
	Email         *string          `json:"email" validate:"omitempty,email"`
	Phone         *string          `json:"phone"`
	Address       *string          `json:"address"`
	TaxID         *string          `json:"tax_id"`
	IsBusiness    *bool            `json:"is_business"`
	CreditLimit   *decimal.Decimal `json:"credit_limit"`
	IsActive      *bool            `json:"is_active"`
}

// CustomerResponse customer output with derived credit fields.
type CustomerResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	ContactPerson   string          `json:"contact_person"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	Address         string          `json:"address"`
	TaxID           string          `json:"tax_id"`
	IsBusiness      bool            `json:"is_business"`
	CreditLimit     decimal.Decimal `json:"credit_limit"`
	CurrentBalance  decimal.Decimal `json:"current_balance"`
	AvailableCredit decimal.Decimal `json:"available_credit"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CustomerListResponse paginated customer list.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateSupplierRequest input for creating a supplier.
type CreateSupplierRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	ContactPerson string `json:"contact_person" validate:"omitempty,max=100"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"omitempty,max=20"`
	Address       string `json:"address"`
	TaxID         string `json:"tax_id" validate:"omitempty,max=50"`
	PaymentTerms  string `json:"payment_terms" validate:"omitempty"`
	LeadTimeDays  int    `json:"lead_time_days" validate:"omitempty,min=1"`
	Rating        int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Notes         string `json:"notes"`
}

// UpdateSupplierRequest input for updating a supplier.
type UpdateSupplierRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	TaxID         *string `json:"tax_id"`
	PaymentTerms  *string `json:"payment_terms"`
	LeadTimeDays  *int    `json:"lead_time_days" validate:"omitempty,min=1"`
	Rating        *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	IsActive      *bool   `json:"is_active"`
	Notes         *string `json:"notes"`
}

// SupplierResponse supplier output.
type SupplierResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	TaxID         string    `json:"tax_id"`
	PaymentTerms  string    `json:"payment_terms"`
	LeadTimeDays  int       `json:"lead_time_days"`
	Rating        int       `json:"rating"`
	IsActive      bool      `json:"is_active"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SupplierListResponse paginated supplier list.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
