package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName        = errors.New("product name is required")
	ErrNegativePrice    = errors.New("product price must be non-negative")
	ErrNegativeQuantity = errors.New("product quantity must be non-negative")
	ErrPricePrecision   = errors.New("product price must have at most 2 decimal places and 10 integer digits")
)

// PriceScale and priceLimit mirror the numeric(12,2) price column.
const PriceScale = 2

var priceLimit = decimal.New(1, 10)

// Product is a sellable item with its current price and stock level.
type Product struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	Quantity  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProduct validates and constructs a product.
func NewProduct(id, name string, price decimal.Decimal, quantity int64) (*Product, error) {
	product := &Product{ID: id, Name: strings.TrimSpace(name), Price: price, Quantity: quantity}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// Validate enforces invariants on the entity.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if !p.Price.Equal(p.Price.Round(PriceScale)) || p.Price.GreaterThanOrEqual(priceLimit) {
		return ErrPricePrecision
	}
	if p.Quantity < 0 {
		return ErrNegativeQuantity
	}
	return nil
}

// StockUpdate overwrites a product's stock with an absolute value.
// Previous is the stock observed when Quantity was computed; adapters refuse the
// write when the stored stock no longer matches it.
type StockUpdate struct {
	ProductID string
	Quantity  int64
	Previous  int64
}
