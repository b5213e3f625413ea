package postgres

import (
	"context"
	"fmt"

	"github.com/MohamedNAGYYS/erp-system/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo implements the per-type order counter on an explicit table.
// The upsert increments atomically, so concurrent transactions serialize on
// the counter row and never read the same value.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository builds the counter persistence adapter. Must run
// inside the order-creation transaction so a failed insert rolls the
// increment back.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next returns the next number for an order type.
func (r *SequenceRepo) Next(orderType string) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO order_counters (order_type, last_number)
		 VALUES ($1, 1)
		 ON CONFLICT (order_type)
		 DO UPDATE SET last_number = order_counters.last_number + 1
		 RETURNING last_number`,
		orderType,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next order number: %w", err)
	}
	return n, nil
}
