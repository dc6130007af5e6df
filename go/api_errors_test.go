package ordersserver

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderapp "github.com/Apurer/go-gin-orders-api/internal/domains/orders/application"
	orderdomain "github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
)

func TestMapOrderError_Retryable(t *testing.T) {
	storage := &orderapp.StorageError{Op: "create order", Err: errors.New("connection reset")}
	problem, ok := mapOrderError(storage)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, problem.Status)
	assert.Equal(t, true, problem.Extensions["retryable"])
	assert.NotContains(t, problem.Detail, "connection reset")

	conflict := &orderapp.StorageError{Op: "update stock", Err: fmt.Errorf("%w: lost race", orderdomain.ErrConcurrentModification)}
	problem, ok = mapOrderError(conflict)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, problem.Status)
	assert.Equal(t, true, problem.Extensions["retryable"])

	_, ok = mapOrderError(errors.New("unrelated"))
	assert.False(t, ok)
}
