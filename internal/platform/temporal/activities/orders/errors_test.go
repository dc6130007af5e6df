package orders

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	catalogports "github.com/Apurer/go-gin-orders-api/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/application"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
)

func TestToApplicationError_Types(t *testing.T) {
	cases := []struct {
		name         string
		err          error
		wantType     string
		nonRetryable bool
	}{
		{"customer", domain.ErrCustomerNotFound, ErrTypeCustomerNotFound, true},
		{"product", &domain.ProductNotFoundError{IDs: []string{"P9"}}, ErrTypeProductNotFound, true},
		{"stock", &domain.InsufficientStockError{ProductID: "P2", Available: 2, Requested: 3}, ErrTypeInsufficientStock, true},
		{"quantity", fmt.Errorf("%w: %w", application.ErrInvalidInput, domain.ErrInvalidQuantity), ErrTypeInvalidQuantity, true},
		{"conflict", &application.StorageError{Op: "update stock", Err: fmt.Errorf("%w: %w", domain.ErrConcurrentModification, catalogports.ErrStockConflict)}, ErrTypeConcurrentModification, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var appErr *temporal.ApplicationError
			require.True(t, errors.As(ToApplicationError(tc.err), &appErr))
			require.Equal(t, tc.wantType, appErr.Type())
			require.Equal(t, tc.nonRetryable, appErr.NonRetryable())
		})
	}
}

func TestToApplicationError_LeavesStorageFailuresRetryable(t *testing.T) {
	boom := &application.StorageError{Op: "create order", Err: errors.New("connection reset")}
	require.Same(t, error(boom), ToApplicationError(boom))
}

func TestFromApplicationError_RestoresDetails(t *testing.T) {
	err := FromApplicationError(ToApplicationError(&domain.ProductNotFoundError{IDs: []string{"P8", "P9"}}))
	var notFound *domain.ProductNotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, []string{"P8", "P9"}, notFound.IDs)

	err = FromApplicationError(ToApplicationError(fmt.Errorf("%w: %w", application.ErrInvalidInput, domain.ErrEmptyItems)))
	require.ErrorIs(t, err, application.ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyItems)

	err = FromApplicationError(ToApplicationError(fmt.Errorf("%w: retry", domain.ErrConcurrentModification)))
	require.ErrorIs(t, err, domain.ErrConcurrentModification)
	require.True(t, application.IsRetryable(err))

	plain := errors.New("plain")
	require.Equal(t, plain, FromApplicationError(plain))
}

func TestFromApplicationError_UndecodableDetailsKeepMessage(t *testing.T) {
	err := FromApplicationError(temporal.NewNonRetryableApplicationError("products P7 missing", ErrTypeProductNotFound, nil, 42))
	require.ErrorIs(t, err, domain.ErrProductNotFound)
	require.Contains(t, err.Error(), "products P7 missing")

	err = FromApplicationError(temporal.NewNonRetryableApplicationError("stock exhausted for P2", ErrTypeInsufficientStock, nil, "not a stock error"))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	require.Contains(t, err.Error(), "stock exhausted for P2")
	var stockErr *domain.InsufficientStockError
	require.False(t, errors.As(err, &stockErr))

	err = FromApplicationError(temporal.NewNonRetryableApplicationError("no details", ErrTypeProductNotFound, nil))
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}
