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

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

const salesOrderColumns = `id, order_number, customer_id, order_date, status, subtotal, tax_amount, total_amount, notes, created_by, created_at, updated_at`

// SalesOrderRepo implements SalesOrderRepository (usable with pool or tx).
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository builds the sales order persistence adapter.
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

func scanSalesOrder(row pgx.Row) (*entity.SalesOrder, error) {
	var o entity.SalesOrder
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerID, &o.OrderDate, &o.Status,
		&o.Subtotal, &o.TaxAmount, &o.TotalAmount, &o.Notes, &o.CreatedBy,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persists a new order header. A unique index on order_number backs
// the counter: a collision surfaces as a typed conflict instead of a silent
// duplicate.
func (r *SalesOrderRepo) Create(order *entity.SalesOrder) error {
	query := `
		INSERT INTO sales_orders (` + salesOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.OrderNumber, order.CustomerID, order.OrderDate, order.Status,
		order.Subtotal, order.TaxAmount, order.TotalAmount, order.Notes, order.CreatedBy,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.NumberConflictError{OrderNumber: order.OrderNumber}
		}
		return fmt.Errorf("insert sales order: %w", err)
	}
	return nil
}

// GetByID fetches an order header by ID.
func (r *SalesOrderRepo) GetByID(id string) (*entity.SalesOrder, error) {
	o, err := scanSalesOrder(r.q.QueryRow(context.Background(),
		`SELECT `+salesOrderColumns+` FROM sales_orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	return o, nil
}

// GetByNumber fetches an order header by order number.
func (r *SalesOrderRepo) GetByNumber(orderNumber string) (*entity.SalesOrder, error) {
	o, err := scanSalesOrder(r.q.QueryRow(context.Background(),
		`SELECT `+salesOrderColumns+` FROM sales_orders WHERE order_number = $1`, orderNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order by number: %w", err)
	}
	return o, nil
}

// UpdateHeader updates the mutable header fields (totals, notes).
func (r *SalesOrderRepo) UpdateHeader(order *entity.SalesOrder) error {
	query := `
		UPDATE sales_orders
		SET subtotal = $2, tax_amount = $3, total_amount = $4, notes = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Subtotal, order.TaxAmount, order.TotalAmount, order.Notes, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sales order: %w", err)
	}
	return nil
}

// UpdateStatus sets the order status.
func (r *SalesOrderRepo) UpdateStatus(orderID, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sales_orders SET status = $2, updated_at = now() WHERE id = $1`,
		orderID, status,
	)
	if err != nil {
		return fmt.Errorf("update sales order status: %w", err)
	}
	return nil
}

// List lists order headers, optionally filtered by status, newest first.
func (r *SalesOrderRepo) List(status string, limit, offset int) ([]*entity.SalesOrder, error) {
	query := `SELECT ` + salesOrderColumns + ` FROM sales_orders
		WHERE ($1 = '' OR status = $1) ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	defer rows.Close()
	return collectSalesOrders(rows)
}

// ListByCustomer lists a customer's order headers, newest first.
func (r *SalesOrderRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.SalesOrder, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+salesOrderColumns+` FROM sales_orders
		 WHERE customer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		customerID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list sales orders by customer: %w", err)
	}
	defer rows.Close()
	return collectSalesOrders(rows)
}

func collectSalesOrders(rows pgx.Rows) ([]*entity.SalesOrder, error) {
	var list []*entity.SalesOrder
	for rows.Next() {
		o, err := scanSalesOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sales order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// AddItem persists an order line.
func (r *SalesOrderRepo) AddItem(item *entity.SalesOrderItem) error {
	query := `
		INSERT INTO sales_order_items (id, order_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert sales order item: %w", err)
	}
	return nil
}

// ListItems lists an order's lines in insertion order.
func (r *SalesOrderRepo) ListItems(orderID string) ([]*entity.SalesOrderItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, order_id, product_id, quantity, unit_price, subtotal
		 FROM sales_order_items WHERE order_id = $1 ORDER BY id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list sales order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesOrderItem
	for rows.Next() {
		var i entity.SalesOrderItem
		if err := rows.Scan(&i.ID, &i.OrderID, &i.ProductID, &i.Quantity, &i.UnitPrice, &i.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sales order item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}
