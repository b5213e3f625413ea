package catalog

import (
	"context"

	"github.com/MohamedNAGYYS/erp-system/internal/domain/repository"
)

// TxRunner executes a function inside a database transaction, passing
// repositories bound to that transaction. Used for stock adjustments so the
// stock mutation and its ledger entry commit or roll back together.
type TxRunner interface {
	RunInventory(ctx context.Context, fn func(
		products repository.ProductRepository,
		movements repository.StockMovementRepository,
	) error) error
}
