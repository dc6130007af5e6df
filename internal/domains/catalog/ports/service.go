package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-orders-api/internal/domains/catalog/domain"
)

// CreateProductInput carries the fields accepted when adding a product to the catalog.
type CreateProductInput struct {
	Name     string
	Price    decimal.Decimal
	Quantity int64
}

// Service exposes catalog use cases to adapters.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}
