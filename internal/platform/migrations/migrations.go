package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Tables are created in dependency order.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&customerRecord{},
		&productRecord{},
		&orderRecord{},
		&orderItemRecord{},
	)
}

// Customer schema mirrors the customers Postgres adapter.
type customerRecord struct {
	ID        string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	Name      string    `gorm:"column:name;not null"`
	Email     string    `gorm:"column:email;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (customerRecord) TableName() string { return "customers" }

// Product schema mirrors the catalog Postgres adapter. quantity is the stock column.
type productRecord struct {
	ID        string          `gorm:"primaryKey;column:id;type:varchar(64)"`
	Name      string          `gorm:"column:name;not null;uniqueIndex"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null;check:chk_products_price,price >= 0"`
	Quantity  int64           `gorm:"column:quantity;not null;check:chk_products_quantity,quantity >= 0"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID         string            `gorm:"primaryKey;column:id;type:varchar(64)"`
	CustomerID string            `gorm:"column:customer_id;type:varchar(64);not null;index"`
	Customer   customerRecord    `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
	Items      []orderItemRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time         `gorm:"column:created_at;index"`
}

func (orderRecord) TableName() string { return "orders" }

// Order item schema holds the price snapshot taken when the order was placed.
type orderItemRecord struct {
	ID        int64           `gorm:"primaryKey;autoIncrement;column:id"`
	OrderID   string          `gorm:"column:order_id;type:varchar(64);not null;uniqueIndex:idx_order_items_order_position"`
	Position  int             `gorm:"column:position;not null;uniqueIndex:idx_order_items_order_position"`
	ProductID string          `gorm:"column:product_id;type:varchar(64);not null;index"`
	Product   productRecord   `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Quantity  int64           `gorm:"column:quantity;not null;check:chk_order_items_quantity,quantity > 0"`
}

func (orderItemRecord) TableName() string { return "order_items" }
