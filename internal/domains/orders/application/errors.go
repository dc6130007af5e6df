package application

import (
	"errors"
	"fmt"

	catalogports "github.com/Apurer/go-gin-orders-api/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid order input")

// StorageError wraps a persistence failure. The operation was not applied and
// the caller may retry the whole request.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	var existing *StorageError
	if errors.As(err, &existing) {
		return err
	}
	if errors.Is(err, catalogports.ErrStockConflict) && !errors.Is(err, domain.ErrConcurrentModification) {
		err = fmt.Errorf("%w: %w", domain.ErrConcurrentModification, err)
	}
	return &StorageError{Op: op, Err: err}
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrEmptyItems),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidProductID),
		errors.Is(err, domain.ErrInvalidCustomer):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrOrderNotFound):
		return err
	}
	return storageError("commit", err)
}

// IsRetryable reports whether a failed CreateOrder may succeed when repeated unchanged.
func IsRetryable(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}
