package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MohamedNAGYYS/erp-system/internal/application/dto"
	"github.com/MohamedNAGYYS/erp-system/internal/application/numbering"
	"github.com/MohamedNAGYYS/erp-system/internal/domain"
	"github.com/MohamedNAGYYS/erp-system/internal/domain/entity"
	"github.com/MohamedNAGYYS/erp-system/internal/domain/inventory"
	"github.com/MohamedNAGYYS/erp-system/internal/domain/repository"
	"github.com/MohamedNAGYYS/erp-system/pkg/logger"
)

// UseCase covers the purchasing side of reconciliation: order lifecycle,
// stock and weighted-average-cost updates on receipt, and the conditional
// return when a received order is cancelled.
type UseCase struct {
	orders    repository.PurchaseOrderRepository
	suppliers repository.SupplierRepository
	products  repository.ProductRepository
	txRunner  TxRunner
	pdf       OrderPDFGenerator
	log       *logger.Logger
}

// NewUseCase builds the purchasing use case.
func NewUseCase(
	orders repository.PurchaseOrderRepository,
	suppliers repository.SupplierRepository,
	products repository.ProductRepository,
	txRunner TxRunner,
	pdf OrderPDFGenerator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		orders:    orders,
		suppliers: suppliers,
		products:  products,
		txRunner:  txRunner,
		pdf:       pdf,
		log:       log,
	}
}

// Create opens a draft purchase order for a supplier and assigns its number
// from the purchase counter, both inside one transaction. Expected delivery
// defaults to order date plus the supplier's lead time.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if in.TaxAmount.LessThan(decimal.Zero) || in.ShippingCost.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("tax and shipping must not be negative: %w", domain.ErrInvalidInput)
	}
	supplier, err := uc.suppliers.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("supplier %s: %w", in.SupplierID, domain.ErrNotFound)
	}
	if !supplier.IsActive {
		return nil, fmt.Errorf("supplier %s is inactive: %w", in.SupplierID, domain.ErrInvalidInput)
	}

	var order *entity.PurchaseOrder
	err = uc.txRunner.RunPurchasing(ctx, func(
		orders repository.PurchaseOrderRepository,
		_ repository.ProductRepository,
		_ repository.StockMovementRepository,
		sequences repository.SequenceRepository,
	) error {
		number, err := numbering.Next(sequences, numbering.TypePurchaseOrder)
		if err != nil {
			return err
		}
		now := time.Now()
		expected := in.ExpectedDelivery
		if expected == nil {
			d := supplier.ExpectedDelivery(now)
			expected = &d
		}
		order = &entity.PurchaseOrder{
			ID:               uuid.New().String(),
			OrderNumber:      number,
			SupplierID:       in.SupplierID,
			OrderDate:        now,
			ExpectedDelivery: expected,
			Status:           entity.PurchaseStatusDraft,
			Subtotal:         decimal.Zero,
			TaxAmount:        in.TaxAmount,
			ShippingCost:     in.ShippingCost,
			TotalAmount:      in.TaxAmount.Add(in.ShippingCost),
			Notes:            in.Notes,
			CreatedBy:        userID,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		return orders.Create(order)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_number", order.OrderNumber).
		Str("supplier_id", order.SupplierID).
		Msg("purchase order created")
	return uc.toResponse(order, nil), nil
}

// AddItem adds a line to a draft order and recomputes the header totals in
// the same transaction. The unit cost defaults to the product's recorded
// cost when omitted.
func (uc *UseCase) AddItem(ctx context.Context, orderID string, in dto.AddPurchaseOrderItemRequest) (*dto.PurchaseOrderResponse, error) {
	if in.Quantity < 1 {
		return nil, fmt.Errorf("item quantity must be positive: %w", domain.ErrInvalidInput)
	}
	if in.UnitCost.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("unit cost must not be negative: %w", domain.ErrInvalidInput)
	}

	var (
		order *entity.PurchaseOrder
		items []*entity.PurchaseOrderItem
	)
	err := uc.txRunner.RunPurchasing(ctx, func(
		orders repository.PurchaseOrderRepository,
		products repository.ProductRepository,
		_ repository.StockMovementRepository,
		_ repository.SequenceRepository,
	) error {
		var err error
		order, err = orders.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.PurchaseStatusDraft {
			return fmt.Errorf("items can only be added while the order is draft (status %s): %w",
				order.Status, domain.ErrInvalidStatus)
		}
		product, err := products.GetByID(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("product %s: %w", in.ProductID, domain.ErrNotFound)
		}
		cost := in.UnitCost
		if cost.IsZero() {
			cost = product.CostPrice
		}
		if !cost.IsPositive() {
			return fmt.Errorf("product %s has no cost price and none was given: %w",
				product.SKU, domain.ErrInvalidInput)
		}
		item := &entity.PurchaseOrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  in.Quantity,
			UnitCost:  cost,
		}
		item.ComputeSubtotal()
		if err := orders.AddItem(item); err != nil {
			return err
		}
		items, err = orders.ListItems(order.ID)
		if err != nil {
			return err
		}
		order.RecalculateTotals(items)
		order.UpdatedAt = time.Now()
		return orders.UpdateHeader(order)
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(order, items), nil
}

// Get fetches an order with its items. Returns nil when absent.
func (uc *UseCase) Get(id string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	items, err := uc.orders.ListItems(id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(order, items), nil
}

// GetByNumber fetches an order by its assigned number.
func (uc *UseCase) GetByNumber(orderNumber string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orders.GetByNumber(orderNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	items, err := uc.orders.ListItems(order.ID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(order, items), nil
}

// List lists order headers, optionally filtered by status.
func (uc *UseCase) List(status string, limit, offset int) (*dto.PurchaseOrderListResponse, error) {
	if status != "" && !entity.ValidPurchaseStatus(status) {
		return nil, fmt.Errorf("status %q: %w", status, domain.ErrInvalidStatus)
	}
	list, err := uc.orders.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *uc.toResponse(o, nil))
	}
	return &dto.PurchaseOrderListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// ListBySupplier lists a supplier's order headers.
func (uc *UseCase) ListBySupplier(supplierID string, limit, offset int) (*dto.PurchaseOrderListResponse, error) {
	list, err := uc.orders.ListBySupplier(supplierID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *uc.toResponse(o, nil))
	}
	return &dto.PurchaseOrderListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// SetStatus transitions an order. Saving the persisted status again is a
// no-op, so a retried receipt cannot double stock. Moving to received books
// the stock in and re-averages each product's cost; cancelling a received
// order returns what is still on hand.
func (uc *UseCase) SetStatus(ctx context.Context, orderID, userID, newStatus string) (*dto.PurchaseOrderResponse, error) {
	if !entity.ValidPurchaseStatus(newStatus) {
		return nil, fmt.Errorf("status %q: %w", newStatus, domain.ErrInvalidStatus)
	}

	var (
		order *entity.PurchaseOrder
		items []*entity.PurchaseOrderItem
	)
	err := uc.txRunner.RunPurchasing(ctx, func(
		orders repository.PurchaseOrderRepository,
		products repository.ProductRepository,
		movements repository.StockMovementRepository,
		_ repository.SequenceRepository,
	) error {
		var err error
		order, err = orders.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		items, err = orders.ListItems(order.ID)
		if err != nil {
			return err
		}

		// Idempotence: comparing against the persisted status, not the
		// caller's belief, means a duplicate request changes nothing.
		if order.Status == newStatus {
			return nil
		}
		if !entity.CanTransitionPurchase(order.Status, newStatus) {
			return fmt.Errorf("purchase order %s: %s -> %s: %w",
				order.OrderNumber, order.Status, newStatus, domain.ErrInvalidTransition)
		}

		switch {
		case newStatus == entity.PurchaseStatusReceived:
			if err := uc.receive(products, movements, order, items, userID); err != nil {
				return err
			}
		case newStatus == entity.PurchaseStatusCancelled && order.Status == entity.PurchaseStatusReceived:
			if err := uc.cancelReceived(products, movements, order, items, userID); err != nil {
				return err
			}
		}

		order.Status = newStatus
		order.UpdatedAt = time.Now()
		return orders.UpdateStatus(order.ID, newStatus)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_number", order.OrderNumber).
		Str("status", order.Status).
		Msg("purchase order status set")
	return uc.toResponse(order, items), nil
}

// receive books every line in: stock increases, the product cost becomes the
// weighted average of on-hand and received units, and a purchase entry lands
// in the ledger.
func (uc *UseCase) receive(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	order *entity.PurchaseOrder,
	items []*entity.PurchaseOrderItem,
	userID string,
) error {
	if len(items) == 0 {
		return fmt.Errorf("purchase order %s has no items: %w", order.OrderNumber, domain.ErrInvalidInput)
	}
	for _, item := range items {
		product, err := products.GetForUpdate(item.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("product %s: %w", item.ProductID, domain.ErrNotFound)
		}
		newCost := inventory.WeightedAverageCost(product.CurrentStock, product.CostPrice, item.Quantity, item.UnitCost)
		if err := products.UpdateCost(product.ID, newCost); err != nil {
			return err
		}
		if err := products.UpdateStock(product.ID, product.CurrentStock+item.Quantity); err != nil {
			return err
		}
		movement := &entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Type:      entity.MovementTypePurchase,
			Quantity:  item.Quantity,
			Reference: order.OrderNumber,
			CreatedAt: time.Now(),
			CreatedBy: userID,
		}
		if err := movements.Create(movement); err != nil {
			return err
		}
	}
	return nil
}

// cancelReceived returns received goods to the supplier. A line is skipped
// when the stock has already been sold down below the received quantity;
// the skip is logged, not an error, because the cancellation must still
// land. The recorded cost is left as is.
func (uc *UseCase) cancelReceived(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	order *entity.PurchaseOrder,
	items []*entity.PurchaseOrderItem,
	userID string,
) error {
	for _, item := range items {
		product, err := products.GetForUpdate(item.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("product %s: %w", item.ProductID, domain.ErrNotFound)
		}
		if product.CurrentStock < item.Quantity {
			uc.log.Warn().
				Str("order_number", order.OrderNumber).
				Str("product_id", product.ID).
				Str("sku", product.SKU).
				Int64("received", item.Quantity).
				Int64("on_hand", product.CurrentStock).
				Msg("cancellation skips return, stock already consumed")
			continue
		}
		if err := products.UpdateStock(product.ID, product.CurrentStock-item.Quantity); err != nil {
			return err
		}
		movement := &entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Type:      entity.MovementTypeReturnToSupplier,
			Quantity:  -item.Quantity,
			Reference: order.OrderNumber,
			Notes:     "order cancelled after receipt",
			CreatedAt: time.Now(),
			CreatedBy: userID,
		}
		if err := movements.Create(movement); err != nil {
			return err
		}
	}
	return nil
}

// GeneratePDF renders the order as a document for the supplier.
func (uc *UseCase) GeneratePDF(orderID string) ([]byte, string, error) {
	order, err := uc.orders.GetByID(orderID)
	if err != nil {
		return nil, "", err
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}
	items, err := uc.orders.ListItems(orderID)
	if err != nil {
		return nil, "", err
	}
	supplier, err := uc.suppliers.GetByID(order.SupplierID)
	if err != nil {
		return nil, "", err
	}
	if supplier == nil {
		return nil, "", fmt.Errorf("supplier %s: %w", order.SupplierID, domain.ErrNotFound)
	}

	names := make(map[string]string, len(items))
	for _, item := range items {
		product, err := uc.products.GetByID(item.ProductID)
		if err != nil {
			return nil, "", err
		}
		if product != nil {
			names[item.ProductID] = fmt.Sprintf("%s (%s)", product.Name, product.SKU)
		}
	}

	data, err := uc.pdf.Generate(order, items, supplier, names)
	if err != nil {
		return nil, "", fmt.Errorf("render purchase order %s: %w", order.OrderNumber, err)
	}
	return data, fmt.Sprintf("%s.pdf", order.OrderNumber), nil
}

func (uc *UseCase) toResponse(o *entity.PurchaseOrder, items []*entity.PurchaseOrderItem) *dto.PurchaseOrderResponse {
	resp := &dto.PurchaseOrderResponse{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		SupplierID:       o.SupplierID,
		OrderDate:        o.OrderDate,
		ExpectedDelivery: o.ExpectedDelivery,
		Status:           o.Status,
		Subtotal:         o.Subtotal,
		TaxAmount:        o.TaxAmount,
		ShippingCost:     o.ShippingCost,
		TotalAmount:      o.TotalAmount,
		Notes:            o.Notes,
		CreatedBy:        o.CreatedBy,
		Items:            make([]dto.PurchaseOrderItemResponse, 0, len(items)),
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.PurchaseOrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
			Subtotal:  item.Subtotal,
		})
	}
	return resp
}
