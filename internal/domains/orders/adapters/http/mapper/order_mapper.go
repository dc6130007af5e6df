package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	customermapper "github.com/Apurer/go-gin-orders-api/internal/domains/customers/adapters/http/mapper"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
)

// CreateOrderRequest is the JSON body accepted by POST /orders.
type CreateOrderRequest struct {
	CustomerID string             `json:"customer_id" binding:"required"`
	Products   []OrderProductLine `json:"products" binding:"required"`
}

// OrderProductLine is one requested product in a CreateOrderRequest.
type OrderProductLine struct {
	ID       string `json:"id"`
	Quantity int64  `json:"quantity"`
}

// Order is the JSON representation returned to clients.
type Order struct {
	ID            string                  `json:"id"`
	Customer      customermapper.Customer `json:"customer"`
	OrderProducts []OrderProduct          `json:"order_products"`
	Total         decimal.Decimal         `json:"total"`
	CreatedAt     time.Time               `json:"created_at"`
}

// OrderProduct is the price snapshot of one ordered product.
type OrderProduct struct {
	ProductID string          `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

// ToCreateInput converts the transport payload into the service input.
func ToCreateInput(req CreateOrderRequest) orderports.CreateOrderInput {
	items := make([]domain.ItemRequest, 0, len(req.Products))
	for _, line := range req.Products {
		items = append(items, domain.ItemRequest{ProductID: line.ID, Quantity: line.Quantity})
	}
	return orderports.CreateOrderInput{CustomerID: req.CustomerID, Items: items}
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *domain.Order) Order {
	if order == nil {
		return Order{}
	}
	products := make([]OrderProduct, 0, len(order.Items))
	for _, item := range order.Items {
		products = append(products, OrderProduct{
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return Order{
		ID:            order.ID,
		Customer:      customermapper.FromDomainCustomer(&order.Customer),
		OrderProducts: products,
		Total:         order.Total(),
		CreatedAt:     order.CreatedAt,
	}
}
