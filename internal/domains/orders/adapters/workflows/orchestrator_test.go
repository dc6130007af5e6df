package workflows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	customerdomain "github.com/Apurer/go-gin-orders-api/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
)

type stubService struct {
	calls int
	input ports.CreateOrderInput
}

func (s *stubService) CreateOrder(_ context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	s.calls++
	s.input = input
	return &domain.Order{ID: "O1", Customer: customerdomain.Customer{ID: input.CustomerID}}, nil
}

func (s *stubService) GetOrder(context.Context, string) (*domain.Order, error) {
	return nil, domain.ErrOrderNotFound
}

func TestInlineOrderWorkflows_DelegatesToService(t *testing.T) {
	svc := &stubService{}
	orchestrator := NewInlineOrderWorkflows(svc)

	order, err := orchestrator.CreateOrder(context.Background(), ports.CreateOrderInput{CustomerID: "C1"})
	require.NoError(t, err)
	require.Equal(t, "O1", order.ID)
	require.Equal(t, 1, svc.calls)
	require.Equal(t, "C1", svc.input.CustomerID)
}

func TestOrchestrators_RequireCollaborators(t *testing.T) {
	_, err := NewInlineOrderWorkflows(nil).CreateOrder(context.Background(), ports.CreateOrderInput{})
	require.Error(t, err)
	_, err = NewTemporalOrderWorkflows(nil).CreateOrder(context.Background(), ports.CreateOrderInput{})
	require.Error(t, err)
}
