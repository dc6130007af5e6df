package ordersserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/Apurer/go-gin-orders-api/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/go-gin-orders-api/internal/domains/catalog/ports"
)

// ProductAPI wires HTTP transport with the product catalog.
type ProductAPI struct {
	service catalogports.Service
}

func NewProductAPI(service catalogports.Service) ProductAPI {
	return ProductAPI{service: service}
}

// Post /products
// Adds a product to the catalog
func (api *ProductAPI) CreateProduct(c *gin.Context) {
	var payload catalogmapper.CreateProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := api.service.CreateProduct(c.Request.Context(), catalogmapper.ToCreateInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProduct(product))
}

// Get /products/:productId
// Find product by ID
func (api *ProductAPI) GetProductById(c *gin.Context) {
	product, err := api.service.GetProduct(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProduct(product))
}
