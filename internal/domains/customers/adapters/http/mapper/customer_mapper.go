package mapper

import (
	"time"

	customerdomain "github.com/Apurer/go-gin-orders-api/internal/domains/customers/domain"
	customerports "github.com/Apurer/go-gin-orders-api/internal/domains/customers/ports"
)

// CreateCustomerRequest is the JSON body accepted by POST /customers.
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// Customer is the JSON representation returned to clients.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCreateInput converts the transport payload into the service input.
func ToCreateInput(req CreateCustomerRequest) customerports.CreateCustomerInput {
	return customerports.CreateCustomerInput{Name: req.Name, Email: req.Email}
}

// FromDomainCustomer converts a domain customer to the transport representation.
func FromDomainCustomer(customer *customerdomain.Customer) Customer {
	if customer == nil {
		return Customer{}
	}
	return Customer{
		ID:        customer.ID,
		Name:      customer.Name,
		Email:     customer.Email,
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
	}
}
