package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
)

// CreateOrderActivityName places an order against the configured stores.
const CreateOrderActivityName = "orders.activities.CreateOrder"

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ports.Service
}

// NewActivities wires the order service into the Temporal activities bundle.
func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

// CreateOrder runs one attempt of order creation. Business rejections are returned as
// non-retryable application errors; storage failures are left to the retry policy.
func (a *Activities) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order activity not initialized", "customerId", input.CustomerID)
		return nil, errors.New("order activity not initialized")
	}
	logger.Info("CreateOrder activity started", "customerId", input.CustomerID, "items", len(input.Items))
	order, err := a.service.CreateOrder(ctx, input)
	if err != nil {
		logger.Error("CreateOrder activity failed", "customerId", input.CustomerID, "error", err)
		return nil, ToApplicationError(err)
	}
	logger.Info("CreateOrder activity completed", "orderId", order.ID)
	return order, nil
}
