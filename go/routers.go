package ordersserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every API.
type ApiHandleFunctions struct {
	CustomerAPI CustomerAPI
	OrderAPI    OrderAPI
	ProductAPI  ProductAPI
}

// NewRouterWithGinEngine adds the routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes without a handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"CreateCustomer",
			http.MethodPost,
			"/customers",
			handleFunctions.CustomerAPI.CreateCustomer,
		},
		{
			"GetCustomerById",
			http.MethodGet,
			"/customers/:customerId",
			handleFunctions.CustomerAPI.GetCustomerById,
		},
		{
			"CreateProduct",
			http.MethodPost,
			"/products",
			handleFunctions.ProductAPI.CreateProduct,
		},
		{
			"GetProductById",
			http.MethodGet,
			"/products/:productId",
			handleFunctions.ProductAPI.GetProductById,
		},
		{
			"CreateOrder",
			http.MethodPost,
			"/orders",
			handleFunctions.OrderAPI.CreateOrder,
		},
		{
			"GetOrderById",
			http.MethodGet,
			"/orders/:orderId",
			handleFunctions.OrderAPI.GetOrderById,
		},
	}
}
