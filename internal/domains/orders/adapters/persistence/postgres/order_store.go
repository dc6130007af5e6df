package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogpostgres "github.com/Apurer/go-gin-orders-api/internal/domains/catalog/adapters/persistence/postgres"
	customerpostgres "github.com/Apurer/go-gin-orders-api/internal/domains/customers/adapters/persistence/postgres"
	customerdomain "github.com/Apurer/go-gin-orders-api/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
)

var _ ports.OrderStore = (*OrderStore)(nil)

// OrderStore persists orders and their line items in PostgreSQL using GORM.
type OrderStore struct {
	db    *gorm.DB
	now   func() time.Time
	newID func() string
}

// NewOrderStore wires a PostgreSQL-backed order store. db may be a transaction handle.
func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{
		db:    db,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// OrderRecord maps the order header to the orders table.
type OrderRecord struct {
	ID         string                          `gorm:"primaryKey;column:id;type:varchar(64)"`
	CustomerID string                          `gorm:"column:customer_id;type:varchar(64);not null;index"`
	Customer   customerpostgres.CustomerRecord `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
	Items      []OrderItemRecord               `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time                       `gorm:"column:created_at;index"`
}

func (OrderRecord) TableName() string { return "orders" }

// OrderItemRecord is one price snapshot line of an order.
type OrderItemRecord struct {
	ID        int64                         `gorm:"primaryKey;autoIncrement;column:id"`
	OrderID   string                        `gorm:"column:order_id;type:varchar(64);not null;uniqueIndex:idx_order_items_order_position"`
	Position  int                           `gorm:"column:position;not null;uniqueIndex:idx_order_items_order_position"`
	ProductID string                        `gorm:"column:product_id;type:varchar(64);not null;index"`
	Product   catalogpostgres.ProductRecord `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	Price     decimal.Decimal               `gorm:"column:price;type:numeric(12,2);not null"`
	Quantity  int64                         `gorm:"column:quantity;not null;check:quantity > 0"`
}

func (OrderItemRecord) TableName() string { return "order_items" }

// Create inserts the order header and its items in one transaction.
func (s *OrderStore) Create(ctx context.Context, customer *customerdomain.Customer, items []domain.OrderItem) (*domain.Order, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyItems
	}
	record := OrderRecord{
		ID:         s.newID(),
		CustomerID: customer.ID,
		CreatedAt:  s.now(),
	}
	for i, item := range items {
		record.Items = append(record.Items, OrderItemRecord{
			OrderID:   record.ID,
			Position:  i,
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&record).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(&record.Items).Error
	})
	if err != nil {
		return nil, err
	}
	order := record.toDomain()
	order.Customer = *customer
	return order, nil
}

// FindByID loads an order with its customer and items in submission order.
func (s *OrderStore) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record OrderRecord
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (s *OrderStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres order store not configured")
	}
	return nil
}

func (r OrderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		Items:     make([]domain.OrderItem, 0, len(r.Items)),
	}
	if r.Customer.ID != "" {
		order.Customer = *r.Customer.ToDomain()
	}
	for _, item := range r.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return order
}
