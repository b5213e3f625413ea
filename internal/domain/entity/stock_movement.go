package entity

import "time"

// Stock movement types.
const (
	MovementTypePurchase         = "purchase"           // purchase order received
	MovementTypeSale             = "sale"               // sales order confirmed
	MovementTypeReturn           = "return"             // confirmed sales order cancelled
	MovementTypeReturnToSupplier = "return_to_supplier" // received purchase order cancelled
	MovementTypeAdjustment       = "adjustment"         // direct stock correction
)

// StockMovement is an append-only ledger entry. Quantity is signed: positive
// for stock entering, negative for stock leaving. The sum of a product's
// movements equals its current stock minus initial stock. Entries are never
// updated or deleted.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string
	Quantity  int64
	Reference string // order number or adjustment note reference
	Notes     string
	CreatedAt time.Time
	CreatedBy string // externally managed identity reference
}
