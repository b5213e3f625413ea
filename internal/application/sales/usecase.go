package sales

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
	"github.com/MohamedNAGYYS/erp-system/internal/domain/repository"
	"github.com/MohamedNAGYYS/erp-system/pkg/logger"
)

// UseCase covers the sales side of reconciliation: order lifecycle, the
// atomic stock decrement on confirmation and the symmetric return on
// cancellation.
type UseCase struct {
	orders    repository.SalesOrderRepository
	customers repository.CustomerRepository
	txRunner  TxRunner
	log       *logger.Logger
}

// NewUseCase builds the sales use case.
func NewUseCase(
	orders repository.SalesOrderRepository,
	customers repository.CustomerRepository,
	txRunner TxRunner,
	log *logger.Logger,
) *UseCase {
	return &UseCase{orders: orders, customers: customers, txRunner: txRunner, log: log}
}

// Create opens a draft sales order for a customer and assigns its number
// from the sales counter, both inside one transaction.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateSalesOrderRequest) (*dto.SalesOrderResponse, error) {
	if in.TaxAmount.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("tax amount must not be negative: %w", domain.ErrInvalidInput)
	}
	customer, err := uc.customers.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("customer %s: %w", in.CustomerID, domain.ErrNotFound)
	}
	if !customer.IsActive {
		return nil, fmt.Errorf("customer %s is inactive: %w", in.CustomerID, domain.ErrInvalidInput)
	}

	var order *entity.SalesOrder
	err = uc.txRunner.RunSales(ctx, func(
		orders repository.SalesOrderRepository,
		_ repository.ProductRepository,
		_ repository.StockMovementRepository,
		_ repository.CustomerRepository,
		sequences repository.SequenceRepository,
	) error {
		number, err := numbering.Next(sequences, numbering.TypeSalesOrder)
		if err != nil {
			return err
		}
		now := time.Now()
		order = &entity.SalesOrder{
			ID:          uuid.New().String(),
			OrderNumber: number,
			CustomerID:  in.CustomerID,
			OrderDate:   now,
			Status:      entity.SalesStatusDraft,
			Subtotal:    decimal.Zero,
			TaxAmount:   in.TaxAmount,
			TotalAmount: in.TaxAmount,
			Notes:       in.Notes,
			CreatedBy:   userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return orders.Create(order)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_number", order.OrderNumber).
		Str("customer_id", order.CustomerID).
		Msg("sales order created")
	return uc.toResponse(order, nil), nil
}

// AddItem adds a line to a draft order and recomputes the header totals in
// the same transaction. Stock is not checked here; availability is settled
// at confirmation.
func (uc *UseCase) AddItem(ctx context.Context, orderID string, in dto.AddSalesOrderItemRequest) (*dto.SalesOrderResponse, error) {
	if in.Quantity < 1 {
		return nil, fmt.Errorf("item quantity must be positive: %w", domain.ErrInvalidInput)
	}
	if in.UnitPrice.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("unit price must not be negative: %w", domain.ErrInvalidInput)
	}

	var (
		order *entity.SalesOrder
		items []*entity.SalesOrderItem
	)
	err := uc.txRunner.RunSales(ctx, func(
		orders repository.SalesOrderRepository,
		products repository.ProductRepository,
		_ repository.StockMovementRepository,
		_ repository.CustomerRepository,
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
		if order.Status != entity.SalesStatusDraft {
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
		price := in.UnitPrice
		if price.IsZero() {
			price = product.SellingPrice
		}
		if !price.IsPositive() {
			return fmt.Errorf("product %s has no selling price and none was given: %w",
				product.SKU, domain.ErrInvalidInput)
		}
		item := &entity.SalesOrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  in.Quantity,
			UnitPrice: price,
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
func (uc *UseCase) Get(id string) (*dto.SalesOrderResponse, error) {
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
func (uc *UseCase) GetByNumber(orderNumber string) (*dto.SalesOrderResponse, error) {
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
func (uc *UseCase) List(status string, limit, offset int) (*dto.SalesOrderListResponse, error) {
	if status != "" && !entity.ValidSalesStatus(status) {
		return nil, fmt.Errorf("status %q: %w", status, domain.ErrInvalidStatus)
	}
	list, err := uc.orders.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SalesOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *uc.toResponse(o, nil))
	}
	return &dto.SalesOrderListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// ListByCustomer lists a customer's order headers.
func (uc *UseCase) ListByCustomer(customerID string, limit, offset int) (*dto.SalesOrderListResponse, error) {
	list, err := uc.orders.ListByCustomer(customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SalesOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *uc.toResponse(o, nil))
	}
	return &dto.SalesOrderListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// SetStatus transitions an order. Saving the persisted status again is a
// no-op, so a retried confirmation cannot decrement stock twice. Moving to
// confirmed runs the atomic reconciliation; cancelling a confirmed (or
// later, pre-delivery) order returns the stock.
func (uc *UseCase) SetStatus(ctx context.Context, orderID, userID, newStatus string) (*dto.SalesOrderResponse, error) {
	if !entity.ValidSalesStatus(newStatus) {
		return nil, fmt.Errorf("status %q: %w", newStatus, domain.ErrInvalidStatus)
	}

	var (
		order *entity.SalesOrder
		items []*entity.SalesOrderItem
	)
	err := uc.txRunner.RunSales(ctx, func(
		orders repository.SalesOrderRepository,
		products repository.ProductRepository,
		movements repository.StockMovementRepository,
		customers repository.CustomerRepository,
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
		if !entity.CanTransitionSales(order.Status, newStatus) {
			return fmt.Errorf("sales order %s: %s -> %s: %w",
				order.OrderNumber, order.Status, newStatus, domain.ErrInvalidTransition)
		}

		wasConfirmed := order.Status != entity.SalesStatusDraft
		switch {
		case newStatus == entity.SalesStatusConfirmed:
			if err := uc.confirm(orders, products, movements, customers, order, items, userID); err != nil {
				return err
			}
		case newStatus == entity.SalesStatusCancelled && wasConfirmed:
			if err := uc.cancelConfirmed(products, movements, customers, order, items, userID); err != nil {
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
		Msg("sales order status set")
	return uc.toResponse(order, items), nil
}

// confirm runs the all-or-nothing reconciliation. Every product row is
// locked and validated before any stock is touched, so a shortfall on the
// last line leaves the first untouched. The customer's balance absorbs the
// order total after a credit check on the locked row.
func (uc *UseCase) confirm(
	orders repository.SalesOrderRepository,
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	customers repository.CustomerRepository,
	order *entity.SalesOrder,
	items []*entity.SalesOrderItem,
	userID string,
) error {
	if len(items) == 0 {
		return fmt.Errorf("sales order %s has no items: %w", order.OrderNumber, domain.ErrInvalidInput)
	}

	// Lines may repeat a product, so demand is aggregated per product and
	// validated once against the locked row.
	demand := make(map[string]int64, len(items))
	var productIDs []string
	for _, item := range items {
		if _, seen := demand[item.ProductID]; !seen {
			productIDs = append(productIDs, item.ProductID)
		}
		demand[item.ProductID] += item.Quantity
	}

	// Pass 1: lock and validate everything.
	locked := make(map[string]*entity.Product, len(productIDs))
	for _, id := range productIDs {
		product, err := products.GetForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
		}
		if product.CurrentStock < demand[id] {
			return &domain.InsufficientStockError{
				ProductID: product.ID,
				SKU:       product.SKU,
				Requested: demand[id],
				Available: product.CurrentStock,
			}
		}
		locked[id] = product
	}

	customer, err := customers.GetForUpdate(order.CustomerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return fmt.Errorf("customer %s: %w", order.CustomerID, domain.ErrNotFound)
	}
	if !customer.CanPurchase(order.TotalAmount) {
		return fmt.Errorf("customer %s: order total %s, available credit %s: %w",
			customer.Name, order.TotalAmount, customer.AvailableCredit(), domain.ErrCreditLimitExceeded)
	}

	// Pass 2: everything validated, mutate. One decrement per product, one
	// ledger entry per line, so the ledger sum matches the stock delta.
	for _, id := range productIDs {
		product := locked[id]
		if err := products.UpdateStock(product.ID, product.CurrentStock-demand[id]); err != nil {
			return err
		}
	}
	for _, item := range items {
		movement := &entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: item.ProductID,
			Type:      entity.MovementTypeSale,
			Quantity:  -item.Quantity,
			Reference: order.OrderNumber,
			CreatedAt: time.Now(),
			CreatedBy: userID,
		}
		if err := movements.Create(movement); err != nil {
			return err
		}
	}
	return customers.UpdateBalance(customer.ID, customer.CurrentBalance.Add(order.TotalAmount))
}

// cancelConfirmed reverses a confirmed order: stock returns, paired return
// entries land in the ledger and the customer's balance is released.
func (uc *UseCase) cancelConfirmed(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	customers repository.CustomerRepository,
	order *entity.SalesOrder,
	items []*entity.SalesOrderItem,
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
		if err := products.UpdateStock(product.ID, product.CurrentStock+item.Quantity); err != nil {
			return err
		}
		movement := &entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Type:      entity.MovementTypeReturn,
			Quantity:  item.Quantity,
			Reference: order.OrderNumber,
			Notes:     "order cancelled",
			CreatedAt: time.Now(),
			CreatedBy: userID,
		}
		if err := movements.Create(movement); err != nil {
			return err
		}
	}

	customer, err := customers.GetForUpdate(order.CustomerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return fmt.Errorf("customer %s: %w", order.CustomerID, domain.ErrNotFound)
	}
	return customers.UpdateBalance(customer.ID, customer.CurrentBalance.Sub(order.TotalAmount))
}

func (uc *UseCase) toResponse(o *entity.SalesOrder, items []*entity.SalesOrderItem) *dto.SalesOrderResponse {
	resp := &dto.SalesOrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		CustomerID:  o.CustomerID,
		OrderDate:   o.OrderDate,
		Status:      o.Status,
		Subtotal:    o.Subtotal,
		TaxAmount:   o.TaxAmount,
		TotalAmount: o.TotalAmount,
		Notes:       o.Notes,
		CreatedBy:   o.CreatedBy,
		Items:       make([]dto.SalesOrderItemResponse, 0, len(items)),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.SalesOrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}
	return resp
}
