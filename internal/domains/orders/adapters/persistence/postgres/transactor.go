package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	catalogpostgres "github.com/Apurer/go-gin-orders-api/internal/domains/catalog/adapters/persistence/postgres"
	customerpostgres "github.com/Apurer/go-gin-orders-api/internal/domains/customers/adapters/persistence/postgres"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
	platformpostgres "github.com/Apurer/go-gin-orders-api/internal/platform/postgres"
)

var _ ports.Transactor = (*Transactor)(nil)

// Transactor runs each unit of work in a database transaction. Products read inside it are
// locked FOR UPDATE until commit.
type Transactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos ports.Repositories) error) error {
	if t == nil || t.db == nil {
		return errors.New("postgres transactor not configured")
	}
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, ports.Repositories{
			Customers: customerpostgres.NewRepository(tx),
			Products:  catalogpostgres.NewRepository(tx, catalogpostgres.WithRowLocks()),
			Orders:    NewOrderStore(tx),
		})
	})
	if err != nil && platformpostgres.IsSerializationFailure(err) && !errors.Is(err, domain.ErrConcurrentModification) {
		return fmt.Errorf("%w: %w", domain.ErrConcurrentModification, err)
	}
	return err
}
