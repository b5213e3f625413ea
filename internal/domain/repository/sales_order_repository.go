package repository

import "github.com/MohamedNAGYYS/erp-system/internal/domain/entity"

// SalesOrderRepository is the persistence port for sales orders and their items.
type SalesOrderRepository interface {
	Create(order *entity.SalesOrder) error
	GetByID(id string) (*entity.SalesOrder, error)
	GetByNumber(orderNumber string) (*entity.SalesOrder, error)
	UpdateHeader(order *entity.SalesOrder) error
	UpdateStatus(orderID, status string) error
	List(status string, limit, offset int) ([]*entity.SalesOrder, error)
	ListByCustomer(customerID string, limit, offset int) ([]*entity.SalesOrder, error)
	AddItem(item *entity.SalesOrderItem) error
	ListItems(orderID string) ([]*entity.SalesOrderItem, error)
}
