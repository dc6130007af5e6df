package memory

import (
	"context"
	"sync"

	catalogdomain "github.com/Apurer/go-gin-orders-api/internal/domains/catalog/domain"
	customerdomain "github.com/Apurer/go-gin-orders-api/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
)

var _ ports.Transactor = (*Transactor)(nil)

// Transactor serializes units of work behind one mutex and stages their writes.
// Staged stock updates and orders are applied only when the unit returns nil.
type Transactor struct {
	mu        sync.Mutex
	customers ports.CustomerLookup
	products  ports.ProductCatalog
	orders    *OrderStore
}

// NewTransactor wires the in-memory unit of work over the given collaborators.
func NewTransactor(customers ports.CustomerLookup, products ports.ProductCatalog, orders *OrderStore) *Transactor {
	return &Transactor{customers: customers, products: products, orders: orders}
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos ports.Repositories) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	catalog := &stagedCatalog{base: t.products, pending: map[string]catalogdomain.StockUpdate{}}
	orders := &stagedOrders{base: t.orders}
	if err := fn(ctx, ports.Repositories{Customers: t.customers, Products: catalog, Orders: orders}); err != nil {
		return err
	}
	if len(catalog.order) > 0 {
		updates := make([]catalogdomain.StockUpdate, 0, len(catalog.order))
		for _, id := range catalog.order {
			updates = append(updates, catalog.pending[id])
		}
		if err := t.products.UpdateQuantity(ctx, updates); err != nil {
			return err
		}
	}
	for _, order := range orders.pending {
		t.orders.insert(order)
	}
	return nil
}

type stagedCatalog struct {
	base    ports.ProductCatalog
	pending map[string]catalogdomain.StockUpdate
	order   []string
}

func (c *stagedCatalog) FindAllByID(ctx context.Context, ids []string) ([]*catalogdomain.Product, error) {
	products, err := c.base.FindAllByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, product := range products {
		if update, ok := c.pending[product.ID]; ok {
			product.Quantity = update.Quantity
		}
	}
	return products, nil
}

// UpdateQuantity keeps the first observed stock as the guard for the final write.
func (c *stagedCatalog) UpdateQuantity(_ context.Context, updates []catalogdomain.StockUpdate) error {
	for _, update := range updates {
		if update.Quantity < 0 {
			return catalogdomain.ErrNegativeQuantity
		}
		if staged, ok := c.pending[update.ProductID]; ok {
			update.Previous = staged.Previous
		} else {
			c.order = append(c.order, update.ProductID)
		}
		c.pending[update.ProductID] = update
	}
	return nil
}

type stagedOrders struct {
	base    *OrderStore
	pending []*domain.Order
}

func (o *stagedOrders) Create(_ context.Context, customer *customerdomain.Customer, items []domain.OrderItem) (*domain.Order, error) {
	order, err := o.base.prepare(customer, items)
	if err != nil {
		return nil, err
	}
	o.pending = append(o.pending, order)
	return cloneOrder(order), nil
}

func (o *stagedOrders) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	for _, order := range o.pending {
		if order.ID == id {
			return cloneOrder(order), nil
		}
	}
	return o.base.FindByID(ctx, id)
}
