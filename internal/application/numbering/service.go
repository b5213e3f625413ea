package numbering

import (
	"fmt"

	"github.com/MohamedNAGYYS/erp-system/internal/domain"
	"github.com/MohamedNAGYYS/erp-system/internal/domain/repository"
)

// Order types with their number prefixes.
const (
	TypeSalesOrder    = "sales_order"
	TypePurchaseOrder = "purchase_order"
)

var prefixes = map[string]string{
	TypeSalesOrder:    "SO",
	TypePurchaseOrder: "PO",
}

// Next assigns the next sequential order number for an order type using the
// explicit per-type counter. It must be called with a sequence repository
// bound to the order-creation transaction, so a failed creation also rolls
// back the counter increment. Numbers never depend on previously inserted
// rows, so deletions cannot cause collisions or skips.
func Next(sequences repository.SequenceRepository, orderType string) (string, error) {
	prefix, ok := prefixes[orderType]
	if !ok {
		return "", fmt.Errorf("order type %q: %w", orderType, domain.ErrInvalidInput)
	}
	n, err := sequences.Next(orderType)
	if err != nil {
		return "", fmt.Errorf("next %s number: %w", orderType, err)
	}
	return Format(prefix, n), nil
}

// Format renders an order number as <PREFIX>-<NNN>, zero-padded to three
// digits and widening as needed beyond 999.
func Format(prefix string, n int64) string {
	return fmt.Sprintf("%s-%03d", prefix, n)
}
