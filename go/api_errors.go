package ordersserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/Apurer/go-gin-orders-api/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-gin-orders-api/internal/domains/catalog/ports"
	customerapp "github.com/Apurer/go-gin-orders-api/internal/domains/customers/application"
	customerports "github.com/Apurer/go-gin-orders-api/internal/domains/customers/ports"
	orderapp "github.com/Apurer/go-gin-orders-api/internal/domains/orders/application"
	orderdomain "github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	apierrors "github.com/Apurer/go-gin-orders-api/internal/shared/errors"
)

var responder = apierrors.NewChainedResponder("", mapOrderError, mapCustomerError, mapCatalogError)

// respondError maps transport-level failures (binding, params) to a problem response.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	switch status {
	case http.StatusBadRequest:
		responder.BadRequest(c, err.Error())
	case http.StatusNotFound:
		responder.Respond(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	default:
		responder.RespondError(c, err)
	}
}

// respondServiceError maps domain and application errors through the chained responder.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

func mapOrderError(err error) (apierrors.ProblemDetail, bool) {
	var stockErr *orderdomain.InsufficientStockError
	var productErr *orderdomain.ProductNotFoundError
	switch {
	case errors.As(err, &stockErr):
		return apierrors.NewInsufficientStockProblem(stockErr.ProductID, stockErr.Available, stockErr.Requested), true
	case errors.As(err, &productErr):
		return apierrors.NewNotFoundProblem("product", productErr.IDs...), true
	case errors.Is(err, orderdomain.ErrProductNotFound):
		return apierrors.NewNotFoundProblem("product"), true
	case errors.Is(err, orderdomain.ErrCustomerNotFound):
		return apierrors.NewNotFoundProblem("customer").WithDetail(err.Error()), true
	case errors.Is(err, orderdomain.ErrOrderNotFound):
		return apierrors.NewNotFoundProblem("order").WithDetail(err.Error()), true
	case errors.Is(err, orderapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, orderdomain.ErrConcurrentModification):
		return apierrors.ErrConflict.WithDetail(err.Error()).Retryable(), true
	}
	if orderapp.IsRetryable(err) {
		return apierrors.ErrInternal.WithDetail("order storage unavailable").Retryable(), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapCustomerError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, customerports.ErrNotFound):
		return apierrors.NewNotFoundProblem("customer").WithDetail(err.Error()), true
	case errors.Is(err, customerports.ErrEmailTaken):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, customerapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapCatalogError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogports.ErrNotFound):
		return apierrors.NewNotFoundProblem("product").WithDetail(err.Error()), true
	case errors.Is(err, catalogports.ErrNameTaken):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
