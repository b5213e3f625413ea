package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSalesOrderRequest input for creating a sales order (status draft).
type CreateSalesOrderRequest struct {
	CustomerID string          `json:"customer_id" validate:"required"`
	TaxAmount  decimal.Decimal `json:"tax_amount"`
	Notes      string          `json:"notes"`
}

// AddSalesOrderItemRequest input for adding a line to a draft order.
type AddSalesOrderItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// UpdateOrderStatusRequest input for a status transition.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SalesOrderItemResponse one order line.
type SalesOrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SalesOrderResponse order header plus items.
type SalesOrderResponse struct {
	ID          string                   `json:"id"`
	OrderNumber string                   `json:"order_number"`
	CustomerID  string                   `json:"customer_id"`
	OrderDate   time.Time                `json:"order_date"`
	Status      string                   `json:"status"`
	Subtotal    decimal.Decimal          `json:"subtotal"`
	TaxAmount   decimal.Decimal          `json:"tax_amount"`
	TotalAmount decimal.Decimal          `json:"total_amount"`
	Notes       string                   `json:"notes"`
	CreatedBy   string                   `json:"created_by,omitempty"`
	Items       []SalesOrderItemResponse `json:"items"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// SalesOrderListResponse paginated order list (headers only).
type SalesOrderListResponse struct {
	Items []SalesOrderResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
