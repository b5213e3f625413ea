package sales

import (
	"context"

	"github.com/MohamedNAGYYS/erp-system/internal/domain/repository"
)

// TxRunner executes a function inside a database transaction, passing
// repositories bound to that transaction. Order creation, item addition and
// status transitions each run as one unit.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		orders repository.SalesOrderRepository,
		products repository.ProductRepository,
		movements repository.StockMovementRepository,
		customers repository.CustomerRepository,
		sequences repository.SequenceRepository,
	) error) error
}
