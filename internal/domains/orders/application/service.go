package application

import (
	"context"
	"errors"
	"strings"

	catalogdomain "github.com/Apurer/go-gin-orders-api/internal/domains/catalog/domain"
	customerports "github.com/Apurer/go-gin-orders-api/internal/domains/customers/ports"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
)

// Service places and loads orders.
type Service struct {
	repos      ports.Repositories
	transactor ports.Transactor
}

// Option customizes the service.
type Option func(*Service)

// WithTransactor makes every order creation run inside the given unit of work.
func WithTransactor(tx ports.Transactor) Option {
	return func(s *Service) {
		if tx != nil {
			s.transactor = tx
		}
	}
}

// NewService wires the order service with its collaborators. Without WithTransactor the
// collaborators are called directly and the two writes are not atomic.
func NewService(customers ports.CustomerLookup, products ports.ProductCatalog, orders ports.OrderStore, opts ...Option) *Service {
	s := &Service{repos: ports.Repositories{Customers: customers, Products: products, Orders: orders}}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.transactor == nil {
		s.transactor = ports.Direct(s.repos)
	}
	return s
}

// CreateOrder validates the customer, products and stock, then records the order and
// decrements stock as one unit. Validation failures leave no trace.
func (s *Service) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	customerID := strings.TrimSpace(input.CustomerID)
	if customerID == "" {
		return nil, mapError(domain.ErrInvalidCustomer)
	}
	requested, err := domain.AggregateItems(input.Items)
	if err != nil {
		return nil, mapError(err)
	}

	var created *domain.Order
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, repos ports.Repositories) error {
		order, err := placeOrder(ctx, repos, customerID, requested)
		if err != nil {
			return err
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// GetOrder loads a previously created order.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrOrderNotFound
	}
	order, err := s.repos.Orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, err
		}
		return nil, storageError("find order", err)
	}
	return order, nil
}

func placeOrder(ctx context.Context, repos ports.Repositories, customerID string, requested []domain.ItemRequest) (*domain.Order, error) {
	customer, err := repos.Customers.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, customerports.ErrNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, storageError("find customer", err)
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	ids := make([]string, 0, len(requested))
	for _, item := range requested {
		ids = append(ids, item.ProductID)
	}
	products, err := repos.Products.FindAllByID(ctx, ids)
	if err != nil {
		return nil, storageError("find products", err)
	}
	byID := make(map[string]*catalogdomain.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	var missing []string
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.ProductNotFoundError{IDs: missing}
	}

	for _, item := range requested {
		product := byID[item.ProductID]
		if product.Quantity-item.Quantity < 0 {
			return nil, &domain.InsufficientStockError{
				ProductID: product.ID,
				Name:      product.Name,
				Available: product.Quantity,
				Requested: item.Quantity,
			}
		}
	}

	items := make([]domain.OrderItem, 0, len(requested))
	updates := make([]catalogdomain.StockUpdate, 0, len(requested))
	for _, item := range requested {
		product := byID[item.ProductID]
		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Price:     product.Price,
			Quantity:  item.Quantity,
		})
		updates = append(updates, catalogdomain.StockUpdate{
			ProductID: product.ID,
			Quantity:  product.Quantity - item.Quantity,
			Previous:  product.Quantity,
		})
	}

	order, err := repos.Orders.Create(ctx, customer, items)
	if err != nil {
		return nil, storageError("create order", err)
	}
	if err := repos.Products.UpdateQuantity(ctx, updates); err != nil {
		return nil, storageError("update stock", err)
	}
	return order, nil
}

var _ ports.Service = (*Service)(nil)
