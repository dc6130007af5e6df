package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-orders-api/internal/domains/catalog/domain"
)

var (
	ErrNotFound  = errors.New("product not found")
	ErrNameTaken = errors.New("a product with this name already exists")
	// ErrStockConflict means a stock write found a different value than the one it was computed from.
	ErrStockConflict = errors.New("product stock changed concurrently")
)

// Repository persists products and their stock levels.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindByName(ctx context.Context, name string) (*domain.Product, error)
	// FindAllByID returns the products that exist among ids; unknown ids are omitted.
	FindAllByID(ctx context.Context, ids []string) ([]*domain.Product, error)
	// UpdateQuantity applies every update or none.
	UpdateQuantity(ctx context.Context, updates []domain.StockUpdate) error
}
