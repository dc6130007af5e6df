package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCustomerNotFound       = errors.New("customer does not exist")
	ErrProductNotFound        = errors.New("one or more products do not exist")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrConcurrentModification = errors.New("stock was modified concurrently, retry the order")
	ErrOrderNotFound          = errors.New("order not found")

	ErrEmptyItems       = errors.New("order must contain at least one product")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrInvalidProductID = errors.New("product id is required")
	ErrInvalidCustomer  = errors.New("customer id is required")
)

// ProductNotFoundError lists the requested product ids that did not resolve.
type ProductNotFoundError struct {
	IDs []string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrProductNotFound.Error(), strings.Join(e.IDs, ", "))
}

func (e *ProductNotFoundError) Is(target error) bool { return target == ErrProductNotFound }

// InsufficientStockError identifies the first product whose stock cannot cover the request.
type InsufficientStockError struct {
	ProductID string
	Name      string
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("product %q (%s) does not have enough quantity: available %d, requested %d",
		e.Name, e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }
