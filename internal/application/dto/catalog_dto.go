package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCategoryRequest input for creating a category. Slug is derived from
// the name when empty.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description"`
	Slug        string `json:"slug" validate:"omitempty,max=100"`
}

// UpdateCategoryRequest input for updating a category.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// CategoryResponse category output.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Slug        string    `json:"slug"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProductRequest input for creating a product. InitialStock seeds
// current stock; later changes go through orders or stock adjustments.
type CreateProductRequest struct {
	SKU          string          `json:"sku" validate:"required,min=1,max=50"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description"`
	CategoryID   *string         `json:"category_id"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	InitialStock int64           `json:"initial_stock" validate:"omitempty,min=0"`
}

// UpdateProductRequest input for updating a product. Stock and cost are not
// editable here; they change through reconciliation and adjustments.
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description"`
	CategoryID   *string          `json:"category_id"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
	IsActive     *bool            `json:"is_active"`
}

// AdjustStockRequest input for a direct stock correction. Quantity is a
// signed delta; the adjustment is recorded in the movement ledger.
type AdjustStockRequest struct {
	Quantity int64  `json:"quantity" validate:"required"`
	Notes    string `json:"notes" validate:"required,min=3"`
}

// ProductResponse product output including derived read-only computations.
type ProductResponse struct {
	ID              string          `json:"id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	CategoryID      *string         `json:"category_id,omitempty"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	CurrentStock    int64           `json:"current_stock"`
	IsActive        bool            `json:"is_active"`
	ProfitMargin    decimal.Decimal `json:"profit_margin"`
	ProfitPerUnit   decimal.Decimal `json:"profit_per_unit"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
	IsLowStock      bool            `json:"is_low_stock"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductListResponse paginated product list.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CategoryListResponse paginated category list.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockMovementResponse one ledger entry.
type StockMovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	Reference string    `json:"reference"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by,omitempty"`
}

// StockMovementListResponse ledger entries for a product.
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
