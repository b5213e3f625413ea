package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseOrderRequest input for creating a purchase order (status
// draft). ExpectedDelivery defaults to order date plus the supplier's lead
// time when omitted.
type CreatePurchaseOrderRequest struct {
	SupplierID       string          `json:"supplier_id" validate:"required"`
	ExpectedDelivery *time.Time      `json:"expected_delivery"`
	TaxAmount        decimal.Decimal `json:"tax_amount"`
	ShippingCost     decimal.Decimal `json:"shipping_cost"`
	Notes            string          `json:"notes"`
}

// AddPurchaseOrderItemRequest input for adding a line to a draft order.
type AddPurchaseOrderItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"required,min=1"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// PurchaseOrderItemResponse one order line.
type PurchaseOrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PurchaseOrderResponse order header plus items.
type PurchaseOrderResponse struct {
	ID               string                      `json:"id"`
	OrderNumber      string                      `json:"order_number"`
	SupplierID       string                      `json:"supplier_id"`
	OrderDate        time.Time                   `json:"order_date"`
	ExpectedDelivery *time.Time                  `json:"expected_delivery,omitempty"`
	Status           string                      `json:"status"`
	Subtotal         decimal.Decimal             `json:"subtotal"`
	TaxAmount        decimal.Decimal             `json:"tax_amount"`
	ShippingCost     decimal.Decimal             `json:"shipping_cost"`
	TotalAmount      decimal.Decimal             `json:"total_amount"`
	Notes            string                      `json:"notes"`
	CreatedBy        string                      `json:"created_by,omitempty"`
	Items            []PurchaseOrderItemResponse `json:"items"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}

// PurchaseOrderListResponse paginated order list (headers only).
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
