package domain

import (
	"errors"
	"fmt"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrDuplicate           = errors.New("duplicate resource")
	ErrProtected           = errors.New("resource is referenced by protected records")
	ErrInvalidStatus       = errors.New("invalid status value")
	ErrInvalidTransition   = errors.New("status transition not allowed")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrCreditLimitExceeded = errors.New("customer credit limit exceeded")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
)

// InsufficientStockError reports which product blocked a sales confirmation
// and how far short the stock fell. Unwraps to ErrInsufficientStock.
type InsufficientStockError struct {
	ProductID string
	SKU       string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (%s): requested %d, available %d",
		e.SKU, e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// NumberConflictError reports a duplicate order number assignment.
// Unwraps to ErrDuplicate.
type NumberConflictError struct {
	OrderNumber string
}

func (e *NumberConflictError) Error() string {
	return fmt.Sprintf("order number %s already assigned", e.OrderNumber)
}

func (e *NumberConflictError) Unwrap() error { return ErrDuplicate }
