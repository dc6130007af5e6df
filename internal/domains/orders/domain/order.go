package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	customerdomain "github.com/Apurer/go-gin-orders-api/internal/domains/customers/domain"
)

// OrderItem is a line item: a product reference plus the price snapshot taken when the order was placed.
type OrderItem struct {
	ProductID string
	Price     decimal.Decimal
	Quantity  int64
}

// Subtotal is price × quantity for the line.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

// Order is created exactly once and never mutated afterwards.
type Order struct {
	ID        string
	Customer  customerdomain.Customer
	Items     []OrderItem
	CreatedAt time.Time
}

// Total sums every line subtotal.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ItemRequest is one requested (product, quantity) pair as submitted by the caller.
type ItemRequest struct {
	ProductID string
	Quantity  int64
}

// Validate rejects blank product ids and non-positive quantities.
func (r ItemRequest) Validate() error {
	if r.ProductID == "" {
		return ErrInvalidProductID
	}
	if r.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// AggregateItems validates the requested lines and folds repeated product ids into one line,
// summing quantities and keeping first-appearance order. A sum beyond int64 is ErrInvalidQuantity.
func AggregateItems(items []ItemRequest) ([]ItemRequest, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}
	index := make(map[string]int, len(items))
	result := make([]ItemRequest, 0, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if pos, ok := index[item.ProductID]; ok {
			if item.Quantity > math.MaxInt64-result[pos].Quantity {
				return nil, ErrInvalidQuantity
			}
			result[pos].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(result)
		result = append(result, item)
	}
	return result, nil
}
