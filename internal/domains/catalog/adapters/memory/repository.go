package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Apurer/go-gin-orders-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product catalog.
type Repository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	now      func() time.Time
}

func NewRepository() *Repository {
	return &Repository{products: map[string]*domain.Product{}, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	if clone.ID == "" {
		return nil, errors.New("product id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.products {
		if id != clone.ID && existing.Name == clone.Name {
			return nil, ports.ErrNameTaken
		}
	}
	now := r.now()
	if existing, ok := r.products[clone.ID]; ok {
		clone.CreatedAt = existing.CreatedAt
	} else {
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now
	r.products[clone.ID] = &clone
	saved := clone
	return &saved, nil
}

func (r *Repository) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *Repository) FindByName(_ context.Context, name string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, product := range r.products {
		if product.Name == name {
			clone := *product
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}

// FindAllByID returns products in the order of ids, skipping unknown and repeated ids.
func (r *Repository) FindAllByID(_ context.Context, ids []string) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{}, len(ids))
	result := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if product, ok := r.products[id]; ok {
			clone := *product
			result = append(result, &clone)
		}
	}
	return result, nil
}

// UpdateQuantity validates the whole batch before touching any product.
func (r *Repository) UpdateQuantity(_ context.Context, updates []domain.StockUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, update := range updates {
		product, ok := r.products[update.ProductID]
		if !ok {
			return fmt.Errorf("%w: %s", ports.ErrNotFound, update.ProductID)
		}
		if update.Quantity < 0 {
			return fmt.Errorf("%w: %s", domain.ErrNegativeQuantity, update.ProductID)
		}
		if product.Quantity != update.Previous {
			return fmt.Errorf("%w: %s", ports.ErrStockConflict, update.ProductID)
		}
	}
	now := r.now()
	for _, update := range updates {
		product := r.products[update.ProductID]
		product.Quantity = update.Quantity
		product.UpdatedAt = now
	}
	return nil
}
