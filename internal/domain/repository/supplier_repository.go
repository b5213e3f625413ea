package repository

import "github.com/MohamedNAGYYS/erp-system/internal/domain/entity"

// SupplierRepository is the persistence port for Supplier.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	List(limit, offset int) ([]*entity.Supplier, error)
	Delete(id string) error
}
