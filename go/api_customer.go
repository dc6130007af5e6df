package ordersserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	customermapper "github.com/Apurer/go-gin-orders-api/internal/domains/customers/adapters/http/mapper"
	customerports "github.com/Apurer/go-gin-orders-api/internal/domains/customers/ports"
)

// CustomerAPI wires HTTP transport with the customers bounded context.
type CustomerAPI struct {
	service customerports.Service
}

func NewCustomerAPI(service customerports.Service) CustomerAPI {
	return CustomerAPI{service: service}
}

// Post /customers
// Registers a customer
func (api *CustomerAPI) CreateCustomer(c *gin.Context) {
	var payload customermapper.CreateCustomerRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	customer, err := api.service.CreateCustomer(c.Request.Context(), customermapper.ToCreateInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customermapper.FromDomainCustomer(customer))
}

// Get /customers/:customerId
// Find customer by ID
func (api *CustomerAPI) GetCustomerById(c *gin.Context) {
	customer, err := api.service.GetCustomer(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customermapper.FromDomainCustomer(customer))
}
