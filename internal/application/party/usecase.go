package party

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MohamedNAGYYS/erp-system/internal/application/dto"
	"github.com/MohamedNAGYYS/erp-system/internal/domain"
	"github.com/MohamedNAGYYS/erp-system/internal/domain/entity"
	"github.com/MohamedNAGYYS/erp-system/internal/domain/repository"
)

// Default attribute values for new parties.
var defaultCreditLimit = decimal.NewFromInt(10000)

const (
	defaultLeadTimeDays = 7
	defaultRating       = 3
)

// UseCase covers the party store: customers and suppliers with their
// credit and lead-time attributes.
type UseCase struct {
	customers repository.CustomerRepository
	suppliers repository.SupplierRepository
}

// NewUseCase builds the party use case.
func NewUseCase(customers repository.CustomerRepository, suppliers repository.SupplierRepository) *UseCase {
	return &UseCase{customers: customers, suppliers: suppliers}
}

// ── Customers ─────────────────────────────────────────────────────────────────

// CreateCustomer creates a customer. Credit limit defaults to 10000 when
// zero and must not be negative.
func (uc *UseCase) CreateCustomer(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	limit := in.CreditLimit
	if limit.IsZero() {
		limit = defaultCreditLimit
	}
	if limit.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("credit limit must not be negative: %w", domain.ErrInvalidInput)
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:             uuid.New().String(),
		Name:           in.Name,
		ContactPerson:  in.ContactPerson,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
		TaxID:          in.TaxID,
		IsBusiness:     in.IsBusiness,
		CreditLimit:    limit,
		CurrentBalance: decimal.Zero,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.customers.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetCustomer fetches a customer by ID. Returns nil when absent.
func (uc *UseCase) GetCustomer(id string) (*dto.CustomerResponse, error) {
	customer, err := uc.customers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	return toCustomerResponse(customer), nil
}

// UpdateCustomer applies a partial update. The balance is not editable; it
// moves with order confirmation and cancellation.
func (uc *UseCase) UpdateCustomer(id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.customers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.ContactPerson != nil {
		customer.ContactPerson = *in.ContactPerson
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	if in.TaxID != nil {
		customer.TaxID = *in.TaxID
	}
	if in.IsBusiness != nil {
		customer.IsBusiness = *in.IsBusiness
	}
	if in.CreditLimit != nil {
		if in.CreditLimit.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("credit limit must not be negative: %w", domain.ErrInvalidInput)
		}
		customer.CreditLimit = *in.CreditLimit
	}
	if in.IsActive != nil {
		customer.IsActive = *in.IsActive
	}
	customer.UpdatedAt = time.Now()
	if err := uc.customers.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// ListCustomers lists customers with pagination.
func (uc *UseCase) ListCustomers(limit, offset int) (*dto.CustomerListResponse, error) {
	list, err := uc.customers.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// DeleteCustomer deletes a customer. Blocked (ErrProtected) while orders
// reference them; deactivating is the supported alternative.
func (uc *UseCase) DeleteCustomer(id string) error {
	return uc.customers.Delete(id)
}

// ── Suppliers ─────────────────────────────────────────────────────────────────

// CreateSupplier creates a supplier. Lead time defaults to 7 days, rating to
// 3 stars, payment terms to net 30.
func (uc *UseCase) CreateSupplier(in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	terms := in.PaymentTerms
	if terms == "" {
		terms = entity.PaymentTermsNet30
	}
	if !entity.ValidPaymentTerms(terms) {
		return nil, fmt.Errorf("payment terms %q: %w", terms, domain.ErrInvalidInput)
	}
	leadTime := in.LeadTimeDays
	if leadTime == 0 {
		leadTime = defaultLeadTimeDays
	}
	if leadTime < 1 {
		return nil, fmt.Errorf("lead time must be at least one day: %w", domain.ErrInvalidInput)
	}
	rating := in.Rating
	if rating == 0 {
		rating = defaultRating
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be 1..5: %w", domain.ErrInvalidInput)
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:            uuid.New().String(),
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		TaxID:         in.TaxID,
		PaymentTerms:  terms,
		LeadTimeDays:  leadTime,
		Rating:        rating,
		IsActive:      true,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.suppliers.Create(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetSupplier fetches a supplier by ID. Returns nil when absent.
func (uc *UseCase) GetSupplier(id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.suppliers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, nil
	}
	return toSupplierResponse(supplier), nil
}

// UpdateSupplier applies a partial update.
func (uc *UseCase) UpdateSupplier(id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.suppliers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, nil
	}
	if in.Name != nil {
		supplier.Name = *in.Name
	}
	if in.ContactPerson != nil {
		supplier.ContactPerson = *in.ContactPerson
	}
	if in.Email != nil {
		supplier.Email = *in.Email
	}
	if in.Phone != nil {
		supplier.Phone = *in.Phone
	}
	if in.Address != nil {
		supplier.Address = *in.Address
	}
	if in.TaxID != nil {
		supplier.TaxID = *in.TaxID
	}
	if in.PaymentTerms != nil {
		if !entity.ValidPaymentTerms(*in.PaymentTerms) {
			return nil, fmt.Errorf("payment terms %q: %w", *in.PaymentTerms, domain.ErrInvalidInput)
		}
		supplier.PaymentTerms = *in.PaymentTerms
	}
	if in.LeadTimeDays != nil {
		if *in.LeadTimeDays < 1 {
			return nil, fmt.Errorf("lead time must be at least one day: %w", domain.ErrInvalidInput)
		}
		supplier.LeadTimeDays = *in.LeadTimeDays
	}
	if in.Rating != nil {
		if *in.Rating < 1 || *in.Rating > 5 {
			return nil, fmt.Errorf("rating must be 1..5: %w", domain.ErrInvalidInput)
		}
		supplier.Rating = *in.Rating
	}
	if in.IsActive != nil {
		supplier.IsActive = *in.IsActive
	}
	if in.Notes != nil {
		supplier.Notes = *in.Notes
	}
	supplier.UpdatedAt = time.Now()
	if err := uc.suppliers.Update(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// ListSuppliers lists suppliers with pagination.
func (uc *UseCase) ListSuppliers(limit, offset int) (*dto.SupplierListResponse, error) {
	list, err := uc.suppliers.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// DeleteSupplier deletes a supplier. Blocked (ErrProtected) while purchase
// orders reference them.
func (uc *UseCase) DeleteSupplier(id string) error {
	return uc.suppliers.Delete(id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:              c.ID,
		Name:            c.Name,
		ContactPerson:   c.ContactPerson,
		Email:           c.Email,
		Phone:           c.Phone,
		Address:         c.Address,
		TaxID:           c.TaxID,
		IsBusiness:      c.IsBusiness,
		CreditLimit:     c.CreditLimit,
		CurrentBalance:  c.CurrentBalance,
		AvailableCredit: c.AvailableCredit(),
		IsActive:        c.IsActive,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		Address:       s.Address,
		TaxID:         s.TaxID,
		PaymentTerms:  s.PaymentTerms,
		LeadTimeDays:  s.LeadTimeDays,
		Rating:        s.Rating,
		IsActive:      s.IsActive,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
