package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-orders-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/catalog/ports"
	platformpostgres "github.com/Apurer/go-gin-orders-api/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists products in PostgreSQL using GORM. Schema is owned by platform/migrations.
type Repository struct {
	db       *gorm.DB
	lockRows bool
}

// Option customizes the repository.
type Option func(*Repository)

// WithRowLocks makes FindAllByID take FOR UPDATE locks. Only meaningful on a transaction handle.
func WithRowLocks() Option {
	return func(r *Repository) {
		r.lockRows = true
	}
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle,
// and may pass a transaction handle.
func NewRepository(db *gorm.DB, opts ...Option) *Repository {
	repo := &Repository{db: db}
	for _, opt := range opts {
		if opt != nil {
			opt(repo)
		}
	}
	return repo
}

// ProductRecord maps the product entity to the products table.
type ProductRecord struct {
	ID        string          `gorm:"primaryKey;column:id;type:varchar(64)"`
	Name      string          `gorm:"column:name;not null;uniqueIndex"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Quantity  int64           `gorm:"column:quantity;not null;check:quantity >= 0"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (ProductRecord) TableName() string { return "products" }

// Save inserts or updates a product keyed by id.
func (r *Repository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	record := ToRecord(&clone)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "price", "quantity", "updated_at"}),
		}).
		Create(&record).Error; err != nil {
		if platformpostgres.IsUniqueViolation(err) {
			return nil, ports.ErrNameTaken
		}
		return nil, err
	}
	return r.FindByID(ctx, record.ID)
}

// FindByID fetches a product by identifier.
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.first(ctx, "id = ?", strings.TrimSpace(id))
}

// FindByName fetches a product by its unique name.
func (r *Repository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	return r.first(ctx, "name = ?", strings.TrimSpace(name))
}

// FindAllByID loads the existing products among ids in one query, preserving the order of ids.
// Rows are locked in primary-key order so concurrent lockers cannot deadlock on each other.
func (r *Repository) FindAllByID(ctx context.Context, ids []string) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	query := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id")
	if r.lockRows {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var records []ProductRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]*ProductRecord, len(records))
	for i := range records {
		byID[records[i].ID] = &records[i]
	}
	products := make([]*domain.Product, 0, len(records))
	for _, id := range ids {
		record, ok := byID[id]
		if !ok {
			continue
		}
		delete(byID, id)
		products = append(products, record.ToDomain())
	}
	return products, nil
}

// UpdateQuantity writes absolute stock values guarded by the previously observed stock.
// Any mismatch aborts the whole batch with ports.ErrStockConflict.
func (r *Repository) UpdateQuantity(ctx context.Context, updates []domain.StockUpdate) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, update := range updates {
			if update.Quantity < 0 {
				return fmt.Errorf("%w: %s", domain.ErrNegativeQuantity, update.ProductID)
			}
			result := tx.Model(&ProductRecord{}).
				Where("id = ? AND quantity = ?", update.ProductID, update.Previous).
				Updates(map[string]any{
					"quantity":   update.Quantity,
					"updated_at": gorm.Expr("NOW()"),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", ports.ErrStockConflict, update.ProductID)
			}
		}
		return nil
	})
}

func (r *Repository) first(ctx context.Context, query string, arg any) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record ProductRecord
	if err := r.db.WithContext(ctx).First(&record, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.ToDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

// ToRecord converts the domain entity into its table row.
func ToRecord(product *domain.Product) ProductRecord {
	return ProductRecord{
		ID:        product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  product.Quantity,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}

// ToDomain converts a table row into the domain entity.
func (r ProductRecord) ToDomain() *domain.Product {
	return &domain.Product{
		ID:        r.ID,
		Name:      r.Name,
		Price:     r.Price,
		Quantity:  r.Quantity,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
