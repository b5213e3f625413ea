package repository

import "github.com/MohamedNAGYYS/erp-system/internal/domain/entity"

// PurchaseOrderRepository is the persistence port for purchase orders and their items.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	GetByNumber(orderNumber string) (*entity.PurchaseOrder, error)
	UpdateHeader(order *entity.PurchaseOrder) error
	UpdateStatus(orderID, status string) error
	List(status string, limit, offset int) ([]*entity.PurchaseOrder, error)
	ListBySupplier(supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error)
	AddItem(item *entity.PurchaseOrderItem) error
	ListItems(orderID string) ([]*entity.PurchaseOrderItem, error)
}
