package ports

import (
	"context"

	catalogdomain "github.com/Apurer/go-gin-orders-api/internal/domains/catalog/domain"
	customerdomain "github.com/Apurer/go-gin-orders-api/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
)

// CustomerLookup resolves the customer an order is placed for.
// Absent customers are reported with customers/ports.ErrNotFound.
type CustomerLookup interface {
	FindByID(ctx context.Context, id string) (*customerdomain.Customer, error)
}

// ProductCatalog reads products in batch and overwrites their stock.
type ProductCatalog interface {
	// FindAllByID returns only the products that exist among ids.
	FindAllByID(ctx context.Context, ids []string) ([]*catalogdomain.Product, error)
	// UpdateQuantity overwrites stock with absolute values, for every update or none.
	UpdateQuantity(ctx context.Context, updates []catalogdomain.StockUpdate) error
}

// OrderStore is the sole writer of order identifiers.
type OrderStore interface {
	Create(ctx context.Context, customer *customerdomain.Customer, items []domain.OrderItem) (*domain.Order, error)
	// FindByID returns domain.ErrOrderNotFound when the order does not exist.
	FindByID(ctx context.Context, id string) (*domain.Order, error)
}

// Repositories groups the collaborators one unit of work operates on.
type Repositories struct {
	Customers CustomerLookup
	Products  ProductCatalog
	Orders    OrderStore
}

// Transactor runs fn as a single atomic unit. The repositories handed to fn are bound to that unit;
// when fn returns an error nothing it wrote becomes visible.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// Direct returns a Transactor that calls fn with repos and no enclosing transaction.
// Writes are not rolled back, so it only suits single-writer setups.
func Direct(repos Repositories) Transactor {
	return directTransactor{repos: repos}
}

type directTransactor struct {
	repos Repositories
}

func (d directTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return fn(ctx, d.repos)
}
