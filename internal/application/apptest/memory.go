// Package apptest provides in-memory repository implementations for
// exercising use cases without a database. The store hands out copies, so a
// caller's mutations only land through the repository write methods, the
// same contract the SQL implementations honor.
package apptest

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MohamedNAGYYS/erp-system/internal/domain"
	"github.com/MohamedNAGYYS/erp-system/internal/domain/entity"
	"github.com/MohamedNAGYYS/erp-system/internal/domain/repository"
)

// Store is an in-memory database holding every repository. Run* methods
// satisfy the use-case TxRunner ports; they pass the store's own
// repositories through without transactional semantics.
type Store struct {
	Products       *MemProducts
	Categories     *MemCategories
	Customers      *MemCustomers
	Suppliers      *MemSuppliers
	Movements      *MemMovements
	SalesOrders    *MemSalesOrders
	PurchaseOrders *MemPurchaseOrders
	Sequences      *MemSequences
}

// NewStore builds an empty store.
func NewStore() *Store {
	return &Store{
		Products:       &MemProducts{byID: map[string]*entity.Product{}},
		Categories:     &MemCategories{byID: map[string]*entity.Category{}},
		Customers:      &MemCustomers{byID: map[string]*entity.Customer{}},
		Suppliers:      &MemSuppliers{byID: map[string]*entity.Supplier{}},
		Movements:      &MemMovements{},
		SalesOrders:    &MemSalesOrders{byID: map[string]*entity.SalesOrder{}, items: map[string][]*entity.SalesOrderItem{}},
		PurchaseOrders: &MemPurchaseOrders{byID: map[string]*entity.PurchaseOrder{}, items: map[string][]*entity.PurchaseOrderItem{}},
		Sequences:      &MemSequences{counters: map[string]int64{}},
	}
}

func (s *Store) RunInventory(_ context.Context, fn func(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
) error) error {
	return fn(s.Products, s.Movements)
}

func (s *Store) RunSales(_ context.Context, fn func(
	orders repository.SalesOrderRepository,
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	customers repository.CustomerRepository,
	sequences repository.SequenceRepository,
) error) error {
	return fn(s.SalesOrders, s.Products, s.Movements, s.Customers, s.Sequences)
}

func (s *Store) RunPurchasing(_ context.Context, fn func(
	orders repository.PurchaseOrderRepository,
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	sequences repository.SequenceRepository,
) error) error {
	return fn(s.PurchaseOrders, s.Products, s.Movements, s.Sequences)
}

// ── Products ──────────────────────────────────────────────────────────────────

type MemProducts struct {
	byID  map[string]*entity.Product
	order []string
}

var _ repository.ProductRepository = (*MemProducts)(nil)

func (r *MemProducts) Create(p *entity.Product) error {
	for _, existing := range r.byID {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.byID[p.ID] = &cp
	r.order = append(r.order, p.ID)
	return nil
}

func (r *MemProducts) GetByID(id string) (*entity.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *MemProducts) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.byID {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemProducts) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *MemProducts) Update(p *entity.Product) error {
	if _, ok := r.byID[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *MemProducts) UpdateStock(productID string, stock int64) error {
	p, ok := r.byID[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = stock
	return nil
}

func (r *MemProducts) UpdateCost(productID string, cost decimal.Decimal) error {
	p, ok := r.byID[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.CostPrice = cost
	return nil
}

func (r *MemProducts) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, id := range page(r.order, limit, offset) {
		cp := *r.byID[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MemProducts) ListLowStock(threshold int64) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, id := range r.order {
		p := r.byID[id]
		if p.IsActive && p.CurrentStock < threshold {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemProducts) Delete(id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	r.order = remove(r.order, id)
	return nil
}

// ── Categories ────────────────────────────────────────────────────────────────

type MemCategories struct {
	byID  map[string]*entity.Category
	order []string
}

var _ repository.CategoryRepository = (*MemCategories)(nil)

func (r *MemCategories) Create(c *entity.Category) error {
	for _, existing := range r.byID {
		if strings.EqualFold(existing.Slug, c.Slug) {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	r.byID[c.ID] = &cp
	r.order = append(r.order, c.ID)
	return nil
}

func (r *MemCategories) GetByID(id string) (*entity.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *MemCategories) GetBySlug(slug string) (*entity.Category, error) {
	for _, c := range r.byID {
		if strings.EqualFold(c.Slug, slug) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemCategories) Update(c *entity.Category) error {
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *MemCategories) List(limit, offset int) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, id := range page(r.order, limit, offset) {
		cp := *r.byID[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MemCategories) Delete(id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	r.order = remove(r.order, id)
	return nil
}

// ── Customers ─────────────────────────────────────────────────────────────────

type MemCustomers struct {
	byID  map[string]*entity.Customer
	order []string
}

var _ repository.CustomerRepository = (*MemCustomers)(nil)

func (r *MemCustomers) Create(c *entity.Customer) error {
	cp := *c
	r.byID[c.ID] = &cp
	r.order = append(r.order, c.ID)
	return nil
}

func (r *MemCustomers) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *MemCustomers) GetForUpdate(id string) (*entity.Customer, error) {
	return r.GetByID(id)
}

func (r *MemCustomers) Update(c *entity.Customer) error {
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *MemCustomers) UpdateBalance(customerID string, balance decimal.Decimal) error {
	c, ok := r.byID[customerID]
	if !ok {
		return domain.ErrNotFound
	}
	c.CurrentBalance = balance
	return nil
}

func (r *MemCustomers) List(limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, id := range page(r.order, limit, offset) {
		cp := *r.byID[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MemCustomers) Delete(id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	r.order = remove(r.order, id)
	return nil
}

// ── Suppliers ─────────────────────────────────────────────────────────────────

type MemSuppliers struct {
	byID  map[string]*entity.Supplier
	order []string
}

var _ repository.SupplierRepository = (*MemSuppliers)(nil)

func (r *MemSuppliers) Create(s *entity.Supplier) error {
	cp := *s
	r.byID[s.ID] = &cp
	r.order = append(r.order, s.ID)
	return nil
}

func (r *MemSuppliers) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *MemSuppliers) Update(s *entity.Supplier) error {
	if _, ok := r.byID[s.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *s
	r.byID[s.ID] = &cp
	return nil
}

func (r *MemSuppliers) List(limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, id := range page(r.order, limit, offset) {
		cp := *r.byID[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MemSuppliers) Delete(id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	r.order = remove(r.order, id)
	return nil
}

// ── Stock movements ───────────────────────────────────────────────────────────

type MemMovements struct {
	entries []*entity.StockMovement
}

var _ repository.StockMovementRepository = (*MemMovements)(nil)

func (r *MemMovements) Create(m *entity.StockMovement) error {
	cp := *m
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *MemMovements) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].ProductID == productID {
			cp := *r.entries[i]
			out = append(out, &cp)
		}
	}
	return pageSlice(out, limit, offset), nil
}

func (r *MemMovements) ListByReference(reference string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.entries {
		if m.Reference == reference {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

// All returns every ledger entry in insertion order, for assertions.
func (r *MemMovements) All() []*entity.StockMovement {
	return r.entries
}

// ── Sales orders ──────────────────────────────────────────────────────────────

type MemSalesOrders struct {
	byID  map[string]*entity.SalesOrder
	order []string
	items map[string][]*entity.SalesOrderItem
}

var _ repository.SalesOrderRepository = (*MemSalesOrders)(nil)

func (r *MemSalesOrders) Create(o *entity.SalesOrder) error {
	for _, existing := range r.byID {
		if existing.OrderNumber == o.OrderNumber {
			return &domain.NumberConflictError{OrderNumber: o.OrderNumber}
		}
	}
	cp := *o
	r.byID[o.ID] = &cp
	r.order = append(r.order, o.ID)
	return nil
}

func (r *MemSalesOrders) GetByID(id string) (*entity.SalesOrder, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *MemSalesOrders) GetByNumber(orderNumber string) (*entity.SalesOrder, error) {
	for _, o := range r.byID {
		if o.OrderNumber == orderNumber {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemSalesOrders) UpdateHeader(o *entity.SalesOrder) error {
	if _, ok := r.byID[o.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *o
	r.byID[o.ID] = &cp
	return nil
}

func (r *MemSalesOrders) UpdateStatus(orderID, status string) error {
	o, ok := r.byID[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

func (r *MemSalesOrders) List(status string, limit, offset int) ([]*entity.SalesOrder, error) {
	var out []*entity.SalesOrder
	for _, id := range r.order {
		o := r.byID[id]
		if status == "" || o.Status == status {
			cp := *o
			out = append(out, &cp)
		}
	}
	return pageSlice(out, limit, offset), nil
}

func (r *MemSalesOrders) ListByCustomer(customerID string, limit, offset int) ([]*entity.SalesOrder, error) {
	var out []*entity.SalesOrder
	for _, id := range r.order {
		o := r.byID[id]
		if o.CustomerID == customerID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return pageSlice(out, limit, offset), nil
}

func (r *MemSalesOrders) AddItem(item *entity.SalesOrderItem) error {
	cp := *item
	r.items[item.OrderID] = append(r.items[item.OrderID], &cp)
	return nil
}

func (r *MemSalesOrders) ListItems(orderID string) ([]*entity.SalesOrderItem, error) {
	var out []*entity.SalesOrderItem
	for _, item := range r.items[orderID] {
		cp := *item
		out = append(out, &cp)
	}
	return out, nil
}

// ── Purchase orders ───────────────────────────────────────────────────────────

type MemPurchaseOrders struct {
	byID  map[string]*entity.PurchaseOrder
	order []string
	items map[string][]*entity.PurchaseOrderItem
}

var _ repository.PurchaseOrderRepository = (*MemPurchaseOrders)(nil)

func (r *MemPurchaseOrders) Create(o *entity.PurchaseOrder) error {
	for _, existing := range r.byID {
		if existing.OrderNumber == o.OrderNumber {
			return &domain.NumberConflictError{OrderNumber: o.OrderNumber}
		}
	}
	cp := *o
	r.byID[o.ID] = &cp
	r.order = append(r.order, o.ID)
	return nil
}

func (r *MemPurchaseOrders) GetByID(id string) (*entity.PurchaseOrder, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *MemPurchaseOrders) GetByNumber(orderNumber string) (*entity.PurchaseOrder, error) {
	for _, o := range r.byID {
		if o.OrderNumber == orderNumber {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemPurchaseOrders) UpdateHeader(o *entity.PurchaseOrder) error {
	if _, ok := r.byID[o.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *o
	r.byID[o.ID] = &cp
	return nil
}

func (r *MemPurchaseOrders) UpdateStatus(orderID, status string) error {
	o, ok := r.byID[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

func (r *MemPurchaseOrders) List(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, id := range r.order {
		o := r.byID[id]
		if status == "" || o.Status == status {
			cp := *o
			out = append(out, &cp)
		}
	}
	return pageSlice(out, limit, offset), nil
}

func (r *MemPurchaseOrders) ListBySupplier(supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, id := range r.order {
		o := r.byID[id]
		if o.SupplierID == supplierID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return pageSlice(out, limit, offset), nil
}

func (r *MemPurchaseOrders) AddItem(item *entity.PurchaseOrderItem) error {
	cp := *item
	r.items[item.OrderID] = append(r.items[item.OrderID], &cp)
	return nil
}

func (r *MemPurchaseOrders) ListItems(orderID string) ([]*entity.PurchaseOrderItem, error) {
	var out []*entity.PurchaseOrderItem
	for _, item := range r.items[orderID] {
		cp := *item
		out = append(out, &cp)
	}
	return out, nil
}

// ── Sequences ─────────────────────────────────────────────────────────────────

type MemSequences struct {
	counters map[string]int64
}

var _ repository.SequenceRepository = (*MemSequences)(nil)

func (r *MemSequences) Next(orderType string) (int64, error) {
	r.counters[orderType]++
	return r.counters[orderType], nil
}

func remove(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func page(ids []string, limit, offset int) []string {
	if offset >= len(ids) {
		return nil
	}
	ids = ids[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	return ids
}

func pageSlice[T any](s []T, limit, offset int) []T {
	if offset >= len(s) {
		return nil
	}
	s = s[offset:]
	if limit > 0 && limit < len(s) {
		s = s[:limit]
	}
	return s
}
