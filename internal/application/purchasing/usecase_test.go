package purchasing_test

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
	"github.com/MohamedNAGYYS/erp-system/internal/application/purchasing"
	"github.com/MohamedNAGYYS/erp-system/internal/domain"
	"github.com/MohamedNAGYYS/erp-system/internal/domain/entity"
	"github.com/MohamedNAGYYS/erp-system/pkg/logger"
)

type stubPDF struct{ calls int }

func (s *stubPDF) Generate(order *entity.PurchaseOrder, items []*entity.PurchaseOrderItem,
	supplier *entity.Supplier, productNames map[string]string) ([]byte, error) {
	s.calls++
	return []byte("%PDF-1.7 " + order.OrderNumber), nil
}

func newFixture(t *testing.T) (*purchasing.UseCase, *apptest.Store, *stubPDF) {
	t.Helper()
	store := apptest.NewStore()
	pdf := &stubPDF{}
	log := logger.New(logger.Config{Level: "error"})
	uc := purchasing.NewUseCase(store.PurchaseOrders, store.Suppliers, store.Products, store, pdf, log)
	return uc, store, pdf
}

func seedSupplier(t *testing.T, store *apptest.Store, leadTimeDays int) *entity.Supplier {
	t.Helper()
	s := &entity.Supplier{
		ID:           uuid.New().String(),
		Name:         "Global Parts Co",
		PaymentTerms: entity.PaymentTermsNet30,
		LeadTimeDays: leadTimeDays,
		Rating:       4,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, store.Suppliers.Create(s))
	return s
}

func seedProduct(t *testing.T, store *apptest.Store, sku string, stock int64, cost decimal.Decimal) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          sku,
		Name:         "product " + sku,
		CostPrice:    cost,
		SellingPrice: cost.Mul(decimal.NewFromInt(2)),
		CurrentStock: stock,
		IsActive:     true,
	}
	require.NoError(t, store.Products.Create(p))
	return p
}

func TestCreate_DefaultsExpectedDeliveryFromLeadTime(t *testing.T) {
	uc, store, _ := newFixture(t)
	supplier := seedSupplier(t, store, 10)

	order, err := uc.Create(context.Background(), "u1", dto.CreatePurchaseOrderRequest{SupplierID: supplier.ID})
	require.NoError(t, err)

	assert.Equal(t, "PO-001", order.OrderNumber)
	assert.Equal(t, entity.PurchaseStatusDraft, order.Status)
	require.NotNil(t, order.ExpectedDelivery)
	expected := order.OrderDate.AddDate(0, 0, 10)
	assert.WithinDuration(t, expected, *order.ExpectedDelivery, time.Second)
}

func TestCreate_ExplicitExpectedDeliveryKept(t *testing.T) {
	uc, store, _ := newFixture(t)
	supplier := seedSupplier(t, store, 10)
	want := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	order, err := uc.Create(context.Background(), "u1", dto.CreatePurchaseOrderRequest{
		SupplierID:       supplier.ID,
		ExpectedDelivery: &want,
	})
	require.NoError(t, err)
	require.NotNil(t, order.ExpectedDelivery)
	assert.True(t, want.Equal(*order.ExpectedDelivery))
}

func TestAddItem_TotalsIncludeShipping(t *testing.T) {
	uc, store, _ := newFixture(t)
	supplier := seedSupplier(t, store, 7)
	widget := seedProduct(t, store, "WID-1", 0, decimal.NewFromInt(4))

	order, err := uc.Create(context.Background(), "u1", dto.CreatePurchaseOrderRequest{
		SupplierID:   supplier.ID,
		TaxAmount:    decimal.NewFromInt(3),
		ShippingCost: decimal.NewFromInt(12),
	})
	require.NoError(t, err)

	got, err := uc.AddItem(context.Background(), order.ID, dto.AddPurchaseOrderItemRequest{
		ProductID: widget.ID, Quantity: 5, UnitCost: decimal.NewFromInt(4),
	})
	require.NoError(t, err)

	assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(20)))
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(35)), "subtotal + tax + shipping, got %s", got.TotalAmount)
}

// The reference case for cost re-averaging: 10 units at $5.00 on hand,
// 10 received at $7.00, the recorded cost becomes $6.00 and stock 20.
func TestReceive_WeightedAverageCost(t *testing.T) {
	uc, store, _ := newFixture(t)
	supplier := seedSupplier(t, store, 7)
	widget := seedProduct(t, store, "WID-1", 10, decimal.NewFromInt(5))

	order, err := uc.Create(context.Background(), "u1", dto.CreatePurchaseOrderRequest{SupplierID: supplier.ID})
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), order.ID, dto.AddPurchaseOrderItemRequest{
		ProductID: widget.ID, Quantity: 10, UnitCost: decimal.NewFromInt(7),
	})
	require.NoError(t, err)

	got, err := uc.SetStatus(context.Background(), order.ID, "u1", entity.PurchaseStatusReceived)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusReceived, got.Status)

	p, err := store.Products.GetByID(widget.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20), p.CurrentStock)
	assert.True(t, p.CostPrice.Equal(decimal.RequireFromString("6.00")), "got %s", p.CostPrice)

	ledger, err := store.Movements.ListByReference(order.OrderNumber)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.Equal(t, entity.MovementTypePurchase, ledger[0].Type)
	assert.Equal(t, int64(10), ledger[0].Quantity)
}

// Receiving into a zero-stock product adopts the received cost outright.
func TestReceive_ZeroStockAdoptsReceivedCost(t *testing.T) {
	uc, store, _ := newFixture(t)
	supplier := seedSupplier(t, store, 7)
	widget := seedProduct(t, store, "WID-1", 0, decimal.NewFromInt(5))

	order, err := uc.Create(context.Background(), "u1", dto.CreatePurchaseOrderRequest{SupplierID: supplier.ID})
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), order.ID, dto.AddPurchaseOrderItemRequest{
		ProductID: widget.ID, Quantity: 4, UnitCost: decimal.RequireFromString("7.50"),
	})
	require.NoError(t, err)
	_, err = uc.SetStatus(context.Background(), order.ID, "u1", entity.PurchaseStatusReceived)
	require.NoError(t, err)

	p, _ := store.Products.GetByID(widget.ID)
	assert.Equal(t, int64(4), p.CurrentStock)
	assert.True(t, p.CostPrice.Equal(decimal.RequireFromString("7.50")))
}

// Re-sending received is a no-op: stock and cost cannot be doubled by a
// retried receipt.
func TestSetStatus_IdempotentReceive(t *testing.T) {
	uc, store, _ := newFixture(t)
	supplier := seedSupplier(t, store, 7)
	widget := seedProduct(t, store, "WID-1", 10, decimal.NewFromInt(5))

	order, err := uc.Create(context.Background(), "u1", dto.CreatePurchaseOrderRequest{SupplierID: supplier.ID})
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), order.ID, dto.AddPurchaseOrderItemRequest{
		ProductID: widget.ID, Quantity: 10, UnitCost: decimal.NewFromInt(7),
	})
	require.NoError(t, err)

	_, err = uc.SetStatus(context.Background(), order.ID, "u1", entity.PurchaseStatusReceived)
	require.NoError(t, err)
	_, err = uc.SetStatus(context.Background(), order.ID, "u1", entity.PurchaseStatusReceived)
	require.NoError(t, err)

	p, _ := store.Products.GetByID(widget.ID)
	assert.Equal(t, int64(20), p.CurrentStock, "stock booked exactly once")
	assert.True(t, p.CostPrice.Equal(decimal.RequireFromString("6.00")), "cost averaged exactly once, got %s", p.CostPrice)
	assert.Len(t, store.Movements.All(), 1)
}

func TestSetStatus_ForwardOnly(t *testing.T) {
	uc, store, _ := newFixture(t)
	supplier := seedSupplier(t, store, 7)

	order, err := uc.Create(context.Background(), "u1", dto.CreatePurchaseOrderRequest{SupplierID: supplier.ID})
	require.NoError(t, err)

	_, err = uc.SetStatus(context.Background(), order.ID, "u1", entity.PurchaseStatusSent)
	require.NoError(t, err)
	_, err = uc.SetStatus(context.Background(), order.ID, "u1", entity.PurchaseStatusDraft)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Cancelling a received order returns the goods and leaves the recorded
// cost alone.
func TestCancelReceived_ReturnsStock(t *testing.T) {
	uc, store, _ := newFixture(t)
	supplier := seedSupplier(t, store, 7)
	widget := seedProduct(t, store, "WID-1", 10, decimal.NewFromInt(5))

	order, err := uc.Create(context.Background(), "u1", dto.CreatePurchaseOrderRequest{SupplierID: supplier.ID})
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), order.ID, dto.AddPurchaseOrderItemRequest{
		ProductID: widget.ID, Quantity: 10, UnitCost: decimal.NewFromInt(7),
	})
	require.NoError(t, err)
	_, err = uc.SetStatus(context.Background(), order.ID, "u1", entity.PurchaseStatusReceived)
	require.NoError(t, err)

	_, err = uc.SetStatus(context.Background(), order.ID, "u1", entity.PurchaseStatusCancelled)
	require.NoError(t, err)

	p, _ := store.Products.GetByID(widget.ID)
	assert.Equal(t, int64(10), p.CurrentStock, "received units returned")
	assert.True(t, p.CostPrice.Equal(decimal.RequireFromString("6.00")), "cost stays averaged, got %s", p.CostPrice)

	ledger, err := store.Movements.ListByReference(order.OrderNumber)
	require.NoError(t, err)
	require.Len(t, ledger, 2)
	assert.Equal(t, entity.MovementTypeReturnToSupplier, ledger[1].Type)
	assert.Equal(t, int64(-10), ledger[1].Quantity)
}

// When received stock has already been sold below the received quantity,
// the cancellation still lands but that line's return is skipped.
func TestCancelReceived_SkipsConsumedStock(t *testing.T) {
	uc, store, _ := newFixture(t)
	supplier := seedSupplier(t, store, 7)
	widget := seedProduct(t, store, "WID-1", 0, decimal.NewFromInt(5))

	order, err := uc.Create(context.Background(), "u1", dto.CreatePurchaseOrderRequest{SupplierID: supplier.ID})
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), order.ID, dto.AddPurchaseOrderItemRequest{
		ProductID: widget.ID, Quantity: 10, UnitCost: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	_, err = uc.SetStatus(context.Background(), order.ID, "u1", entity.PurchaseStatusReceived)
	require.NoError(t, err)

	// Most of the received stock leaves through sales before the cancellation.
	require.NoError(t, store.Products.UpdateStock(widget.ID, 3))

	got, err := uc.SetStatus(context.Background(), order.ID, "u1", entity.PurchaseStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusCancelled, got.Status, "cancellation lands despite the skip")

	p, _ := store.Products.GetByID(widget.ID)
	assert.Equal(t, int64(3), p.CurrentStock, "no negative stock, return skipped")

	ledger, err := store.Movements.ListByReference(order.OrderNumber)
	require.NoError(t, err)
	assert.Len(t, ledger, 1, "only the purchase entry, no return")
}

func TestCancelDraft_NoStockChange(t *testing.T) {
	uc, store, _ := newFixture(t)
	supplier := seedSupplier(t, store, 7)
	widget := seedProduct(t, store, "WID-1", 10, decimal.NewFromInt(5))

	order, err := uc.Create(context.Background(), "u1", dto.CreatePurchaseOrderRequest{SupplierID: supplier.ID})
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), order.ID, dto.AddPurchaseOrderItemRequest{
		ProductID: widget.ID, Quantity: 10, UnitCost: decimal.NewFromInt(7),
	})
	require.NoError(t, err)

	_, err = uc.SetStatus(context.Background(), order.ID, "u1", entity.PurchaseStatusCancelled)
	require.NoError(t, err)

	p, _ := store.Products.GetByID(widget.ID)
	assert.Equal(t, int64(10), p.CurrentStock)
	assert.Empty(t, store.Movements.All())
}

func TestGeneratePDF_RendersDocument(t *testing.T) {
	uc, store, pdf := newFixture(t)
	supplier := seedSupplier(t, store, 7)
	widget := seedProduct(t, store, "WID-1", 0, decimal.NewFromInt(4))

	order, err := uc.Create(context.Background(), "u1", dto.CreatePurchaseOrderRequest{SupplierID: supplier.ID})
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), order.ID, dto.AddPurchaseOrderItemRequest{
		ProductID: widget.ID, Quantity: 2, UnitCost: decimal.NewFromInt(4),
	})
	require.NoError(t, err)

	data, filename, err := uc.GeneratePDF(order.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, order.OrderNumber+".pdf", filename)
	assert.Equal(t, 1, pdf.calls)
}

func TestGeneratePDF_UnknownOrder(t *testing.T) {
	uc, _, _ := newFixture(t)
	_, _, err := uc.GeneratePDF("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddItem_ZeroEffectiveCostRejected(t *testing.T) {
	uc, store, _ := newFixture(t)
	supplier := seedSupplier(t, store, 7)
	uncosted := seedProduct(t, store, "FREE-1", 0, decimal.Zero)

	order, err := uc.Create(context.Background(), "u1", dto.CreatePurchaseOrderRequest{SupplierID: supplier.ID})
	require.NoError(t, err)

	// No explicit cost and the product's recorded cost is zero.
	_, err = uc.AddItem(context.Background(), order.ID, dto.AddPurchaseOrderItemRequest{ProductID: uncosted.ID, Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	items, err := store.PurchaseOrders.ListItems(order.ID)
	require.NoError(t, err)
	assert.Empty(t, items, "no zero-cost line persisted")
}
