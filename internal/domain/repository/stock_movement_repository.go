package repository

import "github.com/MohamedNAGYYS/erp-system/internal/domain/entity"

// StockMovementRepository is the persistence port for the movement ledger.
// The ledger is append-only: there is no update or delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByReference(reference string) ([]*entity.StockMovement, error)
}
