package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MohamedNAGYYS/erp-system/internal/application/dto"
	"github.com/MohamedNAGYYS/erp-system/internal/domain"
	"github.com/MohamedNAGYYS/erp-system/internal/domain/entity"
	"github.com/MohamedNAGYYS/erp-system/internal/domain/repository"
	"github.com/MohamedNAGYYS/erp-system/pkg/logger"
	"github.com/MohamedNAGYYS/erp-system/pkg/slug"
)

// UseCase covers the catalog store: product and category CRUD, direct stock
// adjustments and movement-ledger queries.
type UseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	movements  repository.StockMovementRepository
	txRunner   TxRunner
	log        *logger.Logger
}

// NewUseCase builds the catalog use case.
func NewUseCase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	movements repository.StockMovementRepository,
	txRunner TxRunner,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		products:   products,
		categories: categories,
		movements:  movements,
		txRunner:   txRunner,
		log:        log,
	}
}

// ── Categories ────────────────────────────────────────────────────────────────

// CreateCategory creates a category, deriving the slug from the name when empty.
func (uc *UseCase) CreateCategory(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	s := in.Slug
	if s == "" {
		s = slug.Make(in.Name)
	}
	if s == "" {
		return nil, fmt.Errorf("category slug: %w", domain.ErrInvalidInput)
	}
	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Slug:        s,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categories.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetCategory fetches a category by ID. Returns nil when absent.
func (uc *UseCase) GetCategory(id string) (*dto.CategoryResponse, error) {
	category, err := uc.categories.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	return toCategoryResponse(category), nil
}

// GetCategoryBySlug fetches a category by its slug. Returns nil when absent.
func (uc *UseCase) GetCategoryBySlug(s string) (*dto.CategoryResponse, error) {
	category, err := uc.categories.GetBySlug(s)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	return toCategoryResponse(category), nil
}

// UpdateCategory applies a partial update.
func (uc *UseCase) UpdateCategory(id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.categories.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	if in.Name != nil {
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}
	category.UpdatedAt = time.Now()
	if err := uc.categories.Update(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// ListCategories lists categories with pagination.
func (uc *UseCase) ListCategories(limit, offset int) (*dto.CategoryListResponse, error) {
	list, err := uc.categories.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// DeleteCategory deletes a category. Products keep a nullable reference, so
// deletion is never blocked by catalog contents.
func (uc *UseCase) DeleteCategory(id string) error {
	return uc.categories.Delete(id)
}

// ── Products ──────────────────────────────────────────────────────────────────

// CreateProduct creates a product. Prices must not be negative; the SKU must
// be unique.
func (uc *UseCase) CreateProduct(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.CostPrice.LessThan(decimal.Zero) || in.SellingPrice.LessThan(decimal.Zero) || in.InitialStock < 0 {
		return nil, fmt.Errorf("product prices and stock must not be negative: %w", domain.ErrInvalidInput)
	}
	existing, err := uc.products.GetBySKU(in.SKU)
	if err != nil {
		return nil, fmt.Errorf("check SKU %s: %w", in.SKU, err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          in.SKU,
		Name:         in.Name,
		Description:  in.Description,
		CategoryID:   in.CategoryID,
		CostPrice:    in.CostPrice,
		SellingPrice: in.SellingPrice,
		CurrentStock: in.InitialStock,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.products.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetProduct fetches a product by ID. Returns nil when absent.
func (uc *UseCase) GetProduct(id string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// UpdateProduct applies a partial update. Stock and cost are not editable
// here; they change through orders and stock adjustments.
func (uc *UseCase) UpdateProduct(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		product.CategoryID = in.CategoryID
	}
	if in.SellingPrice != nil {
		if in.SellingPrice.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("selling price must not be negative: %w", domain.ErrInvalidInput)
		}
		product.SellingPrice = *in.SellingPrice
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()
	if err := uc.products.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// ListProducts lists products with pagination.
func (uc *UseCase) ListProducts(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.products.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// ListLowStock lists active products below the threshold (default 10).
func (uc *UseCase) ListLowStock(threshold int64) (*dto.ProductListResponse, error) {
	if threshold <= 0 {
		threshold = entity.DefaultLowStockThreshold
	}
	list, err := uc.products.ListLowStock(threshold)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items}, nil
}

// DeleteProduct deletes a product. Blocked (ErrProtected) when the product
// is referenced by order lines or the movement ledger.
func (uc *UseCase) DeleteProduct(id string) error {
	return uc.products.Delete(id)
}

// AdjustStock applies a direct stock correction: the product's stock changes
// by the signed delta and an adjustment entry is appended to the ledger, in
// one transaction. Negative adjustments cannot take stock below zero.
func (uc *UseCase) AdjustStock(ctx context.Context, productID, userID string, in dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	if in.Quantity == 0 {
		return nil, fmt.Errorf("adjustment quantity must not be zero: %w", domain.ErrInvalidInput)
	}

	var adjusted *entity.Product
	err := uc.txRunner.RunInventory(ctx, func(
		products repository.ProductRepository,
		movements repository.StockMovementRepository,
	) error {
		product, err := products.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		newStock := product.CurrentStock + in.Quantity
		if newStock < 0 {
			return &domain.InsufficientStockError{
				ProductID: product.ID,
				SKU:       product.SKU,
				Requested: -in.Quantity,
				Available: product.CurrentStock,
			}
		}
		if err := products.UpdateStock(product.ID, newStock); err != nil {
			return err
		}
		movement := &entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Type:      entity.MovementTypeAdjustment,
			Quantity:  in.Quantity,
			Reference: "stock adjustment",
			Notes:     in.Notes,
			CreatedAt: time.Now(),
			CreatedBy: userID,
		}
		if err := movements.Create(movement); err != nil {
			return err
		}
		product.CurrentStock = newStock
		adjusted = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("product_id", productID).
		Int64("quantity", in.Quantity).
		Int64("stock", adjusted.CurrentStock).
		Msg("stock adjusted")
	return toProductResponse(adjusted), nil
}

// ListMovements returns the movement ledger for a product, newest first.
func (uc *UseCase) ListMovements(productID string, limit, offset int) (*dto.StockMovementListResponse, error) {
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.movements.ListByProduct(productID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.StockMovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Reference: m.Reference,
			Notes:     m.Notes,
			CreatedAt: m.CreatedAt,
			CreatedBy: m.CreatedBy,
		})
	}
	return &dto.StockMovementListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// ListMovementsByReference returns every ledger entry tied to one order
// number, oldest first, so a confirmation and its cancellation read as a pair.
func (uc *UseCase) ListMovementsByReference(reference string) (*dto.StockMovementListResponse, error) {
	if reference == "" {
		return nil, fmt.Errorf("reference: %w", domain.ErrInvalidInput)
	}
	list, err := uc.movements.ListByReference(reference)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.StockMovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Reference: m.Reference,
			Notes:     m.Notes,
			CreatedAt: m.CreatedAt,
			CreatedBy: m.CreatedBy,
		})
	}
	return &dto.StockMovementListResponse{Items: items, Page: dto.PageResponse{Limit: len(items), Offset: 0}}, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Slug:        c.Slug,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:              p.ID,
		SKU:             p.SKU,
		Name:            p.Name,
		Description:     p.Description,
		CategoryID:      p.CategoryID,
		CostPrice:       p.CostPrice,
		SellingPrice:    p.SellingPrice,
		CurrentStock:    p.CurrentStock,
		IsActive:        p.IsActive,
		ProfitMargin:    p.ProfitMargin(),
		ProfitPerUnit:   p.ProfitPerUnit(),
		TotalStockValue: p.TotalStockValue(),
		IsLowStock:      p.IsLowStock(entity.DefaultLowStockThreshold),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
