package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	customerdomain "github.com/Apurer/go-gin-orders-api/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
)

var _ ports.OrderStore = (*OrderStore)(nil)

// OrderStore is an in-memory order persistence adapter.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
	now    func() time.Time
	newID  func() string
}

func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders: map[string]*domain.Order{},
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// WithClock overrides the time source for deterministic testing.
func (s *OrderStore) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Create assigns an identifier and timestamp and stores the order.
func (s *OrderStore) Create(_ context.Context, customer *customerdomain.Customer, items []domain.OrderItem) (*domain.Order, error) {
	order, err := s.prepare(customer, items)
	if err != nil {
		return nil, err
	}
	s.insert(order)
	return cloneOrder(order), nil
}

func (s *OrderStore) FindByID(_ context.Context, id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

// Count returns the number of stored orders.
func (s *OrderStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

func (s *OrderStore) prepare(customer *customerdomain.Customer, items []domain.OrderItem) (*domain.Order, error) {
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyItems
	}
	return &domain.Order{
		ID:        s.newID(),
		Customer:  *customer,
		Items:     append([]domain.OrderItem(nil), items...),
		CreatedAt: s.now(),
	}, nil
}

func (s *OrderStore) insert(order *domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = cloneOrder(order)
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Items = append([]domain.OrderItem(nil), order.Items...)
	return &clone
}
