package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamedNAGYYS/erp-system/internal/application/apptest"
	"github.com/MohamedNAGYYS/erp-system/internal/application/dto"
	"github.com/MohamedNAGYYS/erp-system/internal/application/sales"
	"github.com/MohamedNAGYYS/erp-system/internal/domain"
	"github.com/MohamedNAGYYS/erp-system/internal/domain/entity"
	"github.com/MohamedNAGYYS/erp-system/pkg/logger"
)

func newFixture(t *testing.T) (*sales.UseCase, *apptest.Store) {
	t.Helper()
	store := apptest.NewStore()
	log := logger.New(logger.Config{Level: "error"})
	return sales.NewUseCase(store.SalesOrders, store.Customers, store, log), store
}

func seedProduct(t *testing.T, store *apptest.Store, sku string, stock int64, price decimal.Decimal) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          sku,
		Name:         "product " + sku,
		CostPrice:    price.Div(decimal.NewFromInt(2)),
		SellingPrice: price,
		CurrentStock: stock,
		IsActive:     true,
	}
	require.NoError(t, store.Products.Create(p))
	return p
}

func seedCustomer(t *testing.T, store *apptest.Store, limit decimal.Decimal) *entity.Customer {
	t.Helper()
	c := &entity.Customer{
		ID:          uuid.New().String(),
		Name:        "Acme Retail",
		CreditLimit: limit,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
	require.NoError(t, store.Customers.Create(c))
	return c
}

func TestCreate_AssignsSequentialNumbers(t *testing.T) {
	uc, store := newFixture(t)
	customer := seedCustomer(t, store, decimal.NewFromInt(100000))

	first, err := uc.Create(context.Background(), "u1", dto.CreateSalesOrderRequest{CustomerID: customer.ID})
	require.NoError(t, err)
	second, err := uc.Create(context.Background(), "u1", dto.CreateSalesOrderRequest{CustomerID: customer.ID})
	require.NoError(t, err)

	assert.Equal(t, "SO-001", first.OrderNumber)
	assert.Equal(t, "SO-002", second.OrderNumber)
	assert.Equal(t, entity.SalesStatusDraft, first.Status)
}

func TestCreate_UnknownCustomerRejected(t *testing.T) {
	uc, _ := newFixture(t)
	_, err := uc.Create(context.Background(), "u1", dto.CreateSalesOrderRequest{CustomerID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddItem_RecalculatesTotals(t *testing.T) {
	uc, store := newFixture(t)
	customer := seedCustomer(t, store, decimal.NewFromInt(100000))
	widget := seedProduct(t, store, "WID-1", 50, decimal.NewFromInt(10))
	gadget := seedProduct(t, store, "GAD-1", 50, decimal.NewFromInt(25))

	order, err := uc.Create(context.Background(), "u1", dto.CreateSalesOrderRequest{
		CustomerID: customer.ID,
		TaxAmount:  decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	_, err = uc.AddItem(context.Background(), order.ID, dto.AddSalesOrderItemRequest{
		ProductID: widget.ID, Quantity: 3, UnitPrice: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	got, err := uc.AddItem(context.Background(), order.ID, dto.AddSalesOrderItemRequest{
		ProductID: gadget.ID, Quantity: 2, // defaults to the selling price
	})
	require.NoError(t, err)

	assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(80)), "subtotal = 3*10 + 2*25, got %s", got.Subtotal)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(85)), "total includes tax, got %s", got.TotalAmount)
	assert.Len(t, got.Items, 2)
}

func TestAddItem_OnlyWhileDraft(t *testing.T) {
	uc, store := newFixture(t)
	customer := seedCustomer(t, store, decimal.NewFromInt(100000))
	widget := seedProduct(t, store, "WID-1", 50, decimal.NewFromInt(10))

	order, err := uc.Create(context.Background(), "u1", dto.CreateSalesOrderRequest{CustomerID: customer.ID})
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), order.ID, dto.AddSalesOrderItemRequest{ProductID: widget.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = uc.SetStatus(context.Background(), order.ID, "u1", entity.SalesStatusConfirmed)
	require.NoError(t, err)

	_, err = uc.AddItem(context.Background(), order.ID, dto.AddSalesOrderItemRequest{ProductID: widget.ID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestConfirm_DecrementsStockAndBooksMovements(t *testing.T) {
	uc, store := newFixture(t)
	customer := seedCustomer(t, store, decimal.NewFromInt(100000))
	widget := seedProduct(t, store, "WID-1", 50, decimal.NewFromInt(10))

	order, err := uc.Create(context.Background(), "u1", dto.CreateSalesOrderRequest{CustomerID: customer.ID})
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), order.ID, dto.AddSalesOrderItemRequest{ProductID: widget.ID, Quantity: 8})
	require.NoError(t, err)

	got, err := uc.SetStatus(context.Background(), order.ID, "u1", entity.SalesStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, entity.SalesStatusConfirmed, got.Status)

	p, err := store.Products.GetByID(widget.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.CurrentStock)

	ledger, err := store.Movements.ListByReference(order.OrderNumber)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.Equal(t, entity.MovementTypeSale, ledger[0].Type)
	assert.Equal(t, int64(-8), ledger[0].Quantity)

	c, err := store.Customers.GetByID(customer.ID)
	require.NoError(t, err)
	assert.True(t, c.CurrentBalance.Equal(decimal.NewFromInt(80)), "balance absorbs the order total, got %s", c.CurrentBalance)
}

// A shortfall on any line must leave every product untouched, including the
// lines validated before it.
func TestConfirm_AtomicAcrossLines(t *testing.T) {
	uc, store := newFixture(t)
	customer := seedCustomer(t, store, decimal.NewFromInt(100000))
	plenty := seedProduct(t, store, "WID-1", 100, decimal.NewFromInt(10))
	scarce := seedProduct(t, store, "GAD-1", 3, decimal.NewFromInt(25))

	order, err := uc.Create(context.Background(), "u1", dto.CreateSalesOrderRequest{CustomerID: customer.ID})
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), order.ID, dto.AddSalesOrderItemRequest{ProductID: plenty.ID, Quantity: 10})
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), order.ID, dto.AddSalesOrderItemRequest{ProductID: scarce.ID, Quantity: 5})
	require.NoError(t, err)

	_, err = uc.SetStatus(context.Background(), order.ID, "u1", entity.SalesStatusConfirmed)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "GAD-1", stockErr.SKU)
	assert.Equal(t, int64(5), stockErr.Requested)
	assert.Equal(t, int64(3), stockErr.Available)

	p1, _ := store.Products.GetByID(plenty.ID)
	p2, _ := store.Products.GetByID(scarce.ID)
	assert.Equal(t, int64(100), p1.CurrentStock, "validated line must not be decremented")
	assert.Equal(t, int64(3), p2.CurrentStock)
	assert.Empty(t, store.Movements.All(), "no ledger entries on a failed confirmation")

	got, err := uc.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SalesStatusDraft, got.Status, "order stays draft")
}

func TestConfirm_EmptyOrderRejected(t *testing.T) {
	uc, store := newFixture(t)
	customer := seedCustomer(t, store, decimal.NewFromInt(100000))

	order, err := uc.Create(context.Background(), "u1", dto.CreateSalesOrderRequest{CustomerID: customer.ID})
	require.NoError(t, err)

	_, err = uc.SetStatus(context.Background(), order.ID, "u1", entity.SalesStatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfirm_CreditLimitEnforced(t *testing.T) {
	uc, store := newFixture(t)
	customer := seedCustomer(t, store, decimal.NewFromInt(50))
	widget := seedProduct(t, store, "WID-1", 100, decimal.NewFromInt(10))

	order, err := uc.Create(context.Background(), "u1", dto.CreateSalesOrderRequest{CustomerID: customer.ID})
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), order.ID, dto.AddSalesOrderItemRequest{ProductID: widget.ID, Quantity: 6})
	require.NoError(t, err)

	_, err = uc.SetStatus(context.Background(), order.ID, "u1", entity.SalesStatusConfirmed)
	require.ErrorIs(t, err, domain.ErrCreditLimitExceeded)

	p, _ := store.Products.GetByID(widget.ID)
	assert.Equal(t, int64(100), p.CurrentStock, "credit rejection must not touch stock")
}

// Re-sending the current status is a no-op: a retried confirmation cannot
// decrement stock or grow the balance twice.
func TestSetStatus_IdempotentResave(t *testing.T) {
	uc, store := newFixture(t)
	customer := seedCustomer(t, store, decimal.NewFromInt(100000))
	widget := seedProduct(t, store, "WID-1", 50, decimal.NewFromInt(10))

	order, err := uc.Create(context.Background(), "u1", dto.CreateSalesOrderRequest{CustomerID: customer.ID})
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), order.ID, dto.AddSalesOrderItemRequest{ProductID: widget.ID, Quantity: 8})
	require.NoError(t, err)

	_, err = uc.SetStatus(context.Background(), order.ID, "u1", entity.SalesStatusConfirmed)
	require.NoError(t, err)
	_, err = uc.SetStatus(context.Background(), order.ID, "u1", entity.SalesStatusConfirmed)
	require.NoError(t, err)

	p, _ := store.Products.GetByID(widget.ID)
	assert.Equal(t, int64(42), p.CurrentStock, "stock decremented exactly once")
	assert.Len(t, store.Movements.All(), 1, "one ledger entry, not two")

	c, _ := store.Customers.GetByID(customer.ID)
	assert.True(t, c.CurrentBalance.Equal(decimal.NewFromInt(80)))
}

func TestSetStatus_BackwardTransitionRejected(t *testing.T) {
	uc, store := newFixture(t)
	customer := seedCustomer(t, store, decimal.NewFromInt(100000))
	widget := seedProduct(t, store, "WID-1", 50, decimal.NewFromInt(10))

	order, err := uc.Create(context.Background(), "u1", dto.CreateSalesOrderRequest{CustomerID: customer.ID})
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), order.ID, dto.AddSalesOrderItemRequest{ProductID: widget.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = uc.SetStatus(context.Background(), order.ID, "u1", entity.SalesStatusConfirmed)
	require.NoError(t, err)

	_, err = uc.SetStatus(context.Background(), order.ID, "u1", entity.SalesStatusDraft)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Confirm then cancel is a round trip: stock, ledger sum and balance all
// return to their starting point, with paired entries left in the ledger.
func TestCancelConfirmed_RoundTrip(t *testing.T) {
	uc, store := newFixture(t)
	customer := seedCustomer(t, store, decimal.NewFromInt(100000))
	widget := seedProduct(t, store, "WID-1", 50, decimal.NewFromInt(10))

	order, err := uc.Create(context.Background(), "u1", dto.CreateSalesOrderRequest{CustomerID: customer.ID})
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), order.ID, dto.AddSalesOrderItemRequest{ProductID: widget.ID, Quantity: 8})
	require.NoError(t, err)
	_, err = uc.SetStatus(context.Background(), order.ID, "u1", entity.SalesStatusConfirmed)
	require.NoError(t, err)

	got, err := uc.SetStatus(context.Background(), order.ID, "u1", entity.SalesStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.SalesStatusCancelled, got.Status)

	p, _ := store.Products.GetByID(widget.ID)
	assert.Equal(t, int64(50), p.CurrentStock, "stock restored to the pre-confirmation level")

	ledger, err := store.Movements.ListByReference(order.OrderNumber)
	require.NoError(t, err)
	require.Len(t, ledger, 2, "sale and return entries both kept")
	assert.Equal(t, entity.MovementTypeSale, ledger[0].Type)
	assert.Equal(t, entity.MovementTypeReturn, ledger[1].Type)
	assert.Equal(t, int64(0), ledger[0].Quantity+ledger[1].Quantity)

	c, _ := store.Customers.GetByID(customer.ID)
	assert.True(t, c.CurrentBalance.IsZero(), "balance released, got %s", c.CurrentBalance)
}

// Cancelling a draft never touches stock: nothing was decremented at
// confirmation, so nothing comes back.
func TestCancelDraft_NoStockChange(t *testing.T) {
	uc, store := newFixture(t)
	customer := seedCustomer(t, store, decimal.NewFromInt(100000))
	widget := seedProduct(t, store, "WID-1", 50, decimal.NewFromInt(10))

	order, err := uc.Create(context.Background(), "u1", dto.CreateSalesOrderRequest{CustomerID: customer.ID})
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), order.ID, dto.AddSalesOrderItemRequest{ProductID: widget.ID, Quantity: 8})
	require.NoError(t, err)

	_, err = uc.SetStatus(context.Background(), order.ID, "u1", entity.SalesStatusCancelled)
	require.NoError(t, err)

	p, _ := store.Products.GetByID(widget.ID)
	assert.Equal(t, int64(50), p.CurrentStock)
	assert.Empty(t, store.Movements.All())
}

func TestSetStatus_TerminalStatesLocked(t *testing.T) {
	uc, store := newFixture(t)
	customer := seedCustomer(t, store, decimal.NewFromInt(100000))
	widget := seedProduct(t, store, "WID-1", 50, decimal.NewFromInt(10))

	order, err := uc.Create(context.Background(), "u1", dto.CreateSalesOrderRequest{CustomerID: customer.ID})
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), order.ID, dto.AddSalesOrderItemRequest{ProductID: widget.ID, Quantity: 1})
	require.NoError(t, err)

	for _, status := range []string{
		entity.SalesStatusConfirmed,
		entity.SalesStatusProcessing,
		entity.SalesStatusShipped,
		entity.SalesStatusDelivered,
	} {
		_, err = uc.SetStatus(context.Background(), order.ID, "u1", status)
		require.NoError(t, err, "forward transition to %s", status)
	}

	_, err = uc.SetStatus(context.Background(), order.ID, "u1", entity.SalesStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "delivered is terminal")
}

func TestList_FiltersByStatus(t *testing.T) {
	uc, store := newFixture(t)
	customer := seedCustomer(t, store, decimal.NewFromInt(100000))
	widget := seedProduct(t, store, "WID-1", 50, decimal.NewFromInt(10))

	draft, err := uc.Create(context.Background(), "u1", dto.CreateSalesOrderRequest{CustomerID: customer.ID})
	require.NoError(t, err)
	confirmed, err := uc.Create(context.Background(), "u1", dto.CreateSalesOrderRequest{CustomerID: customer.ID})
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), confirmed.ID, dto.AddSalesOrderItemRequest{ProductID: widget.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = uc.SetStatus(context.Background(), confirmed.ID, "u1", entity.SalesStatusConfirmed)
	require.NoError(t, err)

	list, err := uc.List(entity.SalesStatusDraft, 50, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, draft.ID, list.Items[0].ID)

	_, err = uc.List("bogus", 50, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestConfirm_AggregatesDuplicateProductLines(t *testing.T) {
	uc, store := newFixture(t)
	customer := seedCustomer(t, store, decimal.NewFromInt(100000))
	widget := seedProduct(t, store, "WID-1", 10, decimal.NewFromInt(10))

	order, err := uc.Create(context.Background(), "u1", dto.CreateSalesOrderRequest{CustomerID: customer.ID})
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = uc.AddItem(context.Background(), order.ID, dto.AddSalesOrderItemRequest{ProductID: widget.ID, Quantity: 6})
		require.NoError(t, err)
	}

	// Combined demand is 12 against stock 10, even though each line alone fits.
	_, err = uc.SetStatus(context.Background(), order.ID, "u1", entity.SalesStatusConfirmed)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(12), stockErr.Requested)
	assert.Equal(t, int64(10), stockErr.Available)

	p, err := store.Products.GetByID(widget.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), p.CurrentStock, "stock unchanged on rejection")
	assert.Empty(t, store.Movements.All(), "no ledger entries on rejection")

	got, err := uc.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SalesStatusDraft, got.Status)
}

func TestConfirm_DuplicateLinesDecrementOnce(t *testing.T) {
	uc, store := newFixture(t)
	customer := seedCustomer(t, store, decimal.NewFromInt(100000))
	widget := seedProduct(t, store, "WID-1", 10, decimal.NewFromInt(10))

	order, err := uc.Create(context.Background(), "u1", dto.CreateSalesOrderRequest{CustomerID: customer.ID})
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), order.ID, dto.AddSalesOrderItemRequest{ProductID: widget.ID, Quantity: 4})
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), order.ID, dto.AddSalesOrderItemRequest{ProductID: widget.ID, Quantity: 5})
	require.NoError(t, err)

	_, err = uc.SetStatus(context.Background(), order.ID, "u1", entity.SalesStatusConfirmed)
	require.NoError(t, err)

	p, err := store.Products.GetByID(widget.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.CurrentStock, "both lines applied exactly once")

	ledger, err := store.Movements.ListByReference(order.OrderNumber)
	require.NoError(t, err)
	require.Len(t, ledger, 2, "one entry per line")
	var sum int64
	for _, m := range ledger {
		sum += m.Quantity
	}
	assert.Equal(t, int64(-9), sum, "ledger sum matches the stock delta")
}

func TestAddItem_ZeroEffectivePriceRejected(t *testing.T) {
	uc, store := newFixture(t)
	customer := seedCustomer(t, store, decimal.NewFromInt(100000))
	unpriced := seedProduct(t, store, "FREE-1", 50, decimal.Zero)

	order, err := uc.Create(context.Background(), "u1", dto.CreateSalesOrderRequest{CustomerID: customer.ID})
	require.NoError(t, err)

	// No explicit price and the product's recorded price is zero.
	_, err = uc.AddItem(context.Background(), order.ID, dto.AddSalesOrderItemRequest{ProductID: unpriced.ID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	items, err := store.SalesOrders.ListItems(order.ID)
	require.NoError(t, err)
	assert.Empty(t, items, "no zero-priced line persisted")
}
