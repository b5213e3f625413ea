package purchasing

import (
	"context"

	"github.com/MohamedNAGYYS/erp-system/internal/domain/entity"
	"github.com/MohamedNAGYYS/erp-system/internal/domain/repository"
)

// TxRunner executes a function inside a database transaction, passing
// repositories bound to that transaction. Receiving an order mutates stock,
// cost and the ledger together, so all of it commits or rolls back as one.
type TxRunner interface {
	RunPurchasing(ctx context.Context, fn func(
		orders repository.PurchaseOrderRepository,
		products repository.ProductRepository,
		movements repository.StockMovementRepository,
		sequences repository.SequenceRepository,
	) error) error
}

// OrderPDFGenerator renders a purchase order as a printable document for
// sending to the supplier.
type OrderPDFGenerator interface {
	Generate(order *entity.PurchaseOrder, items []*entity.PurchaseOrderItem,
		supplier *entity.Supplier, productNames map[string]string) ([]byte, error)
}
