package orders

import (
	"errors"
	"fmt"

	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/application"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
)

// Application error types carried across the workflow boundary.
const (
	ErrTypeCustomerNotFound       = "CustomerNotFound"
	ErrTypeProductNotFound        = "ProductNotFound"
	ErrTypeInsufficientStock      = "InsufficientStock"
	ErrTypeConcurrentModification = "ConcurrentModification"
	ErrTypeEmptyItems             = "EmptyItems"
	ErrTypeInvalidQuantity        = "InvalidQuantity"
	ErrTypeInvalidProductID       = "InvalidProductID"
	ErrTypeInvalidCustomer        = "InvalidCustomer"
)

var invalidInputTypes = map[string]error{
	ErrTypeEmptyItems:       domain.ErrEmptyItems,
	ErrTypeInvalidQuantity:  domain.ErrInvalidQuantity,
	ErrTypeInvalidProductID: domain.ErrInvalidProductID,
	ErrTypeInvalidCustomer:  domain.ErrInvalidCustomer,
}

// NonRetryableErrorTypes lists the rejections no retry can fix.
func NonRetryableErrorTypes() []string {
	return []string{
		ErrTypeCustomerNotFound,
		ErrTypeProductNotFound,
		ErrTypeInsufficientStock,
		ErrTypeEmptyItems,
		ErrTypeInvalidQuantity,
		ErrTypeInvalidProductID,
		ErrTypeInvalidCustomer,
	}
}

// ToApplicationError encodes a service error as a typed Temporal application error.
func ToApplicationError(err error) error {
	if err == nil {
		return nil
	}
	var productErr *domain.ProductNotFoundError
	var stockErr *domain.InsufficientStockError
	switch {
	case errors.As(err, &productErr):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeProductNotFound, err, productErr.IDs)
	case errors.As(err, &stockErr):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInsufficientStock, err, *stockErr)
	case errors.Is(err, domain.ErrCustomerNotFound):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeCustomerNotFound, err)
	case errors.Is(err, domain.ErrConcurrentModification):
		return temporal.NewApplicationErrorWithCause(err.Error(), ErrTypeConcurrentModification, err)
	}
	for errType, sentinel := range invalidInputTypes {
		if errors.Is(err, sentinel) {
			return temporal.NewNonRetryableApplicationError(err.Error(), errType, err)
		}
	}
	return err
}

// FromApplicationError turns a workflow failure back into the domain error it was encoded from.
// Errors without a known application error type are returned unchanged.
func FromApplicationError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case ErrTypeProductNotFound:
		var ids []string
		if !appErr.HasDetails() || appErr.Details(&ids) != nil || len(ids) == 0 {
			return fmt.Errorf("%w: %s", domain.ErrProductNotFound, appErr.Error())
		}
		return &domain.ProductNotFoundError{IDs: ids}
	case ErrTypeInsufficientStock:
		var stockErr domain.InsufficientStockError
		if !appErr.HasDetails() || appErr.Details(&stockErr) != nil || stockErr.ProductID == "" {
			return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, appErr.Error())
		}
		return &stockErr
	case ErrTypeCustomerNotFound:
		return domain.ErrCustomerNotFound
	case ErrTypeConcurrentModification:
		return &application.StorageError{Op: "workflow", Err: fmt.Errorf("%w: %s", domain.ErrConcurrentModification, appErr.Error())}
	}
	if sentinel, ok := invalidInputTypes[appErr.Type()]; ok {
		return fmt.Errorf("%w: %w", application.ErrInvalidInput, sentinel)
	}
	return err
}
