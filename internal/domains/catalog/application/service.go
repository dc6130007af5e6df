package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-orders-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/catalog/ports"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid product input")

// Service orchestrates catalog use cases.
type Service struct {
	repo  ports.Repository
	newID func() string
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo, newID: uuid.NewString}
}

// CreateProduct adds a product; names are unique across the catalog.
func (s *Service) CreateProduct(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	product, err := domain.NewProduct(s.newID(), input.Name, input.Price, input.Quantity)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	existing, err := s.repo.FindByName(ctx, product.Name)
	switch {
	case err == nil && existing != nil:
		return nil, ports.ErrNameTaken
	case err != nil && !errors.Is(err, ports.ErrNotFound):
		return nil, err
	}
	return s.repo.Save(ctx, product)
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ports.ErrNotFound
	}
	return s.repo.FindByID(ctx, id)
}

var _ ports.Service = (*Service)(nil)
