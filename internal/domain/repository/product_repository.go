package repository

import (
	"github.com/shopspring/decimal"

	"github.com/MohamedNAGYYS/erp-system/internal/domain/entity"
)

// ProductRepository is the persistence port for Product. Stock and cost are
// updated only through the dedicated methods so reconciliation can run them
// under a row lock.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate locks the product row (SELECT FOR UPDATE) so that the
	// stock-sufficiency check and the following mutation are serialized.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, stock int64) error
	UpdateCost(productID string, cost decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
	ListLowStock(threshold int64) ([]*entity.Product, error)
	Delete(id string) error
}
