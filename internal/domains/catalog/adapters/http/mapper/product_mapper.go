package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/Apurer/go-gin-orders-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-orders-api/internal/domains/catalog/ports"
)

// CreateProductRequest is the JSON body accepted by POST /products.
type CreateProductRequest struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

// Product is the JSON representation returned to clients.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToCreateInput converts the transport payload into the service input.
func ToCreateInput(req CreateProductRequest) catalogports.CreateProductInput {
	return catalogports.CreateProductInput{Name: req.Name, Price: req.Price, Quantity: req.Quantity}
}

// FromDomainProduct converts a domain product to the transport representation.
func FromDomainProduct(product *catalogdomain.Product) Product {
	if product == nil {
		return Product{}
	}
	return Product{
		ID:        product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  product.Quantity,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}
