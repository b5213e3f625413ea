package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/MohamedNAGYYS/erp-system/internal/domain/entity"
	"github.com/MohamedNAGYYS/erp-system/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, type, quantity, reference, notes, created_at, created_by`

// StockMovementRepo implements the append-only movement ledger. There is no
// update or delete on purpose.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository builds the ledger persistence adapter.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create appends a ledger entry.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.Reference, movement.Notes, movement.CreatedAt, movement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByProduct lists a product's ledger entries, newest first.
func (r *StockMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+movementColumns+` FROM stock_movements
		 WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		productID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListByReference lists the entries tied to one order number, oldest first,
// so a confirmation and its cancellation read as a pair.
func (r *StockMovementRepo) ListByReference(reference string) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+movementColumns+` FROM stock_movements
		 WHERE reference = $1 ORDER BY created_at ASC`,
		reference,
	)
	if err != nil {
		return nil, fmt.Errorf("list stock movements by reference: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity,
			&m.Reference, &m.Notes, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
