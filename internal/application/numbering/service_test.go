package numbering_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamedNAGYYS/erp-system/internal/application/numbering"
	"github.com/MohamedNAGYYS/erp-system/internal/domain"
)

// memSequenceRepo is an in-memory counter keyed per order type.
type memSequenceRepo struct {
	counters map[string]int64
}

func newMemSequenceRepo() *memSequenceRepo {
	return &memSequenceRepo{counters: make(map[string]int64)}
}

func (r *memSequenceRepo) Next(orderType string) (int64, error) {
	r.counters[orderType]++
	return r.counters[orderType], nil
}

func TestFormat_ZeroPaddedToThreeDigits(t *testing.T) {
	assert.Equal(t, "SO-001", numbering.Format("SO", 1))
	assert.Equal(t, "SO-042", numbering.Format("SO", 42))
	assert.Equal(t, "PO-999", numbering.Format("PO", 999))
}

func TestFormat_WidensBeyond999(t *testing.T) {
	assert.Equal(t, "PO-1000", numbering.Format("PO", 1000))
	assert.Equal(t, "SO-12345", numbering.Format("SO", 12345))
}

func TestNext_SequentialPerType(t *testing.T) {
	seq := newMemSequenceRepo()

	so1, err := numbering.Next(seq, numbering.TypeSalesOrder)
	require.NoError(t, err)
	po1, err := numbering.Next(seq, numbering.TypePurchaseOrder)
	require.NoError(t, err)
	so2, err := numbering.Next(seq, numbering.TypeSalesOrder)
	require.NoError(t, err)

	assert.Equal(t, "SO-001", so1)
	assert.Equal(t, "PO-001", po1, "counters are independent per order type")
	assert.Equal(t, "SO-002", so2)
}

func TestNext_UnknownTypeRejected(t *testing.T) {
	_, err := numbering.Next(newMemSequenceRepo(), "work_order")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// One thousand sequential assignments must never repeat a number, even
// crossing the three-digit boundary.
func TestNext_ThousandSequentialAssignmentsUnique(t *testing.T) {
	seq := newMemSequenceRepo()
	seen := make(map[string]bool, 1000)

	for i := 0; i < 1000; i++ {
		number, err := numbering.Next(seq, numbering.TypeSalesOrder)
		require.NoError(t, err)
		require.False(t, seen[number], "number %s issued twice (iteration %d)", number, i)
		seen[number] = true
	}

	assert.Len(t, seen, 1000)
	assert.True(t, seen["SO-999"])
	assert.True(t, seen["SO-1000"], fmt.Sprintf("numbers must widen past 999: %v", seen["SO-1000"]))
}
