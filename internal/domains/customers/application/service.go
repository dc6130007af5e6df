package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-orders-api/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/customers/ports"
)

// Service orchestrates customer use cases.
type Service struct {
	repo  ports.Repository
	newID func() string
}

// Option customizes the service.
type Option func(*Service)

// WithIDGenerator overrides how new customer identifiers are produced.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, newID: uuid.NewString}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateCustomer registers a customer; emails are unique across customers.
func (s *Service) CreateCustomer(ctx context.Context, input ports.CreateCustomerInput) (*domain.Customer, error) {
	customer, err := domain.NewCustomer(s.newID(), input.Name, input.Email)
	if err != nil {
		return nil, mapError(err)
	}
	existing, err := s.repo.FindByEmail(ctx, customer.Email)
	switch {
	case err == nil && existing != nil:
		return nil, ports.ErrEmailTaken
	case err != nil && !errors.Is(err, ports.ErrNotFound):
		return nil, err
	}
	return s.repo.Save(ctx, customer)
}

func (s *Service) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ports.ErrNotFound
	}
	return s.repo.FindByID(ctx, id)
}

var _ ports.Service = (*Service)(nil)
