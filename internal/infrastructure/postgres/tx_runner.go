package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MohamedNAGYYS/erp-system/internal/application/catalog"
	"github.com/MohamedNAGYYS/erp-system/internal/application/purchasing"
	"github.com/MohamedNAGYYS/erp-system/internal/application/sales"
	"github.com/MohamedNAGYYS/erp-system/internal/domain/repository"
)

var (
	_ catalog.TxRunner    = (*TxRunner)(nil)
	_ sales.TxRunner      = (*TxRunner)(nil)
	_ purchasing.TxRunner = (*TxRunner)(nil)
)

// TxRunner executes callbacks inside a PostgreSQL transaction, handing the
// callback repositories bound to that transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunInventory wraps a stock adjustment: product mutation and ledger entry
// commit or roll back together.
func (r *TxRunner) RunInventory(ctx context.Context, fn func(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProductRepository(tx), NewStockMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSales wraps sales-order work: creation with its counter increment, item
// addition with header totals, and confirmation or cancellation touching
// stock, ledger and customer balance.
func (r *TxRunner) RunSales(ctx context.Context, fn func(
	orders repository.SalesOrderRepository,
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	customers repository.CustomerRepository,
	sequences repository.SequenceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewSalesOrderRepository(tx),
		NewProductRepository(tx),
		NewStockMovementRepository(tx),
		NewCustomerRepository(tx),
		NewSequenceRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPurchasing wraps purchase-order work, including the receipt that moves
// stock, cost and ledger in one unit.
func (r *TxRunner) RunPurchasing(ctx context.Context, fn func(
	orders repository.PurchaseOrderRepository,
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	sequences repository.SequenceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewPurchaseOrderRepository(tx),
		NewProductRepository(tx),
		NewStockMovementRepository(tx),
		NewSequenceRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
