package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/MohamedNAGYYS/erp-system/internal/domain"
	"github.com/MohamedNAGYYS/erp-system/internal/domain/entity"
	"github.com/MohamedNAGYYS/erp-system/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const purchaseOrderColumns = `id, order_number, supplier_id, order_date, expected_delivery, status, subtotal, tax_amount, shipping_cost, total_amount, notes, created_by, created_at, updated_at`

// PurchaseOrderRepo implements PurchaseOrderRepository (usable with pool or tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository builds the purchase order persistence adapter.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.SupplierID, &o.OrderDate, &o.ExpectedDelivery, &o.Status,
		&o.Subtotal, &o.TaxAmount, &o.ShippingCost, &o.TotalAmount, &o.Notes, &o.CreatedBy,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persists a new order header. A unique index on order_number backs
// the counter.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (` + purchaseOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.OrderNumber, order.SupplierID, order.OrderDate, order.ExpectedDelivery,
		order.Status, order.Subtotal, order.TaxAmount, order.ShippingCost, order.TotalAmount,
		order.Notes, order.CreatedBy, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.NumberConflictError{OrderNumber: order.OrderNumber}
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// GetByID fetches an order header by ID.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	o, err := scanPurchaseOrder(r.q.QueryRow(context.Background(),
		`SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return o, nil
}

// GetByNumber fetches an order header by order number.
func (r *PurchaseOrderRepo) GetByNumber(orderNumber string) (*entity.PurchaseOrder, error) {
	o, err := scanPurchaseOrder(r.q.QueryRow(context.Background(),
		`SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE order_number = $1`, orderNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order by number: %w", err)
	}
	return o, nil
}

// UpdateHeader updates the mutable header fields (totals, delivery, notes).
func (r *PurchaseOrderRepo) UpdateHeader(order *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders
		SET expected_delivery = $2, subtotal = $3, tax_amount = $4, shipping_cost = $5,
		    total_amount = $6, notes = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.ExpectedDelivery, order.Subtotal, order.TaxAmount, order.ShippingCost,
		order.TotalAmount, order.Notes, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	return nil
}

// UpdateStatus sets the order status.
func (r *PurchaseOrderRepo) UpdateStatus(orderID, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`,
		orderID, status,
	)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	return nil
}

// List lists order headers, optionally filtered by status, newest first.
func (r *PurchaseOrderRepo) List(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders
		WHERE ($1 = '' OR status = $1) ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	return collectPurchaseOrders(rows)
}

// ListBySupplier lists a supplier's order headers, newest first.
func (r *PurchaseOrderRepo) ListBySupplier(supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+purchaseOrderColumns+` FROM purchase_orders
		 WHERE supplier_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		supplierID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders by supplier: %w", err)
	}
	defer rows.Close()
	return collectPurchaseOrders(rows)
}

func collectPurchaseOrders(rows pgx.Rows) ([]*entity.PurchaseOrder, error) {
	var list []*entity.PurchaseOrder
	for rows.Next() {
		o, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// AddItem persists an order line.
func (r *PurchaseOrderRepo) AddItem(item *entity.PurchaseOrderItem) error {
	query := `
		INSERT INTO purchase_order_items (id, order_id, product_id, quantity, unit_cost, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitCost, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order item: %w", err)
	}
	return nil
}

// ListItems lists an order's lines in insertion order.
func (r *PurchaseOrderRepo) ListItems(orderID string) ([]*entity.PurchaseOrderItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, order_id, product_id, quantity, unit_cost, subtotal
		 FROM purchase_order_items WHERE order_id = $1 ORDER BY id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrderItem
	for rows.Next() {
		var i entity.PurchaseOrderItem
		if err := rows.Scan(&i.ID, &i.OrderID, &i.ProductID, &i.Quantity, &i.UnitCost, &i.Subtotal); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}
