package repository

import (
	"github.com/shopspring/decimal"

	"github.com/MohamedNAGYYS/erp-system/internal/domain/entity"
)

// CustomerRepository is the persistence port for Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	// GetForUpdate locks the customer row so the credit check and the balance
	// update run as one unit inside the confirmation transaction.
	GetForUpdate(id string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	UpdateBalance(customerID string, balance decimal.Decimal) error
	List(limit, offset int) ([]*entity.Customer, error)
	Delete(id string) error
}
