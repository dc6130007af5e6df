package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	ordersserver "github.com/Apurer/go-gin-orders-api/go"

	catalogports "github.com/Apurer/go-gin-orders-api/internal/domains/catalog/ports"
	customerports "github.com/Apurer/go-gin-orders-api/internal/domains/customers/ports"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	orderworkflows "github.com/Apurer/go-gin-orders-api/internal/domains/orders/adapters/workflows"
	orderports "github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
	platformobservability "github.com/Apurer/go-gin-orders-api/internal/platform/observability"
)

func TestBuildStores_FallsBackToMemory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	stores, cleanup, err := BuildStores(context.Background(), "", logger)
	require.NoError(t, err)
	defer cleanup()
	assert.Equal(t, "memory", stores.Backend)
	assert.NotNil(t, stores.Transactor)
}

func TestBuildServices_PlacesOrderEndToEnd(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	stores, cleanup, err := BuildStores(context.Background(), "", logger)
	require.NoError(t, err)
	defer cleanup()
	services := BuildServices(stores, nil)
	ctx := context.Background()

	customer, err := services.Customers.CreateCustomer(ctx, customerports.CreateCustomerInput{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	product, err := services.Products.CreateProduct(ctx, catalogports.CreateProductInput{Name: "Keyboard", Price: decimal.NewFromInt(10), Quantity: 1})
	require.NoError(t, err)

	order, err := services.Orders.CreateOrder(ctx, orderports.CreateOrderInput{
		CustomerID: customer.ID,
		Items:      []domain.ItemRequest{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.True(t, order.Total().Equal(decimal.NewFromInt(10)))

	_, err = services.Orders.CreateOrder(ctx, orderports.CreateOrderInput{
		CustomerID: customer.ID,
		Items:      []domain.ItemRequest{{ProductID: product.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestNewHTTPHandler_RecordsServerSpans(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	instruments := &platformobservability.Instruments{
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		TracerProvider: tp,
	}

	stores, cleanup, err := BuildStores(context.Background(), "", instruments.Logger)
	require.NoError(t, err)
	defer cleanup()
	services := BuildServices(stores, instruments)
	router := NewHTTPHandler("orders-api", ordersserver.ApiHandleFunctions{
		CustomerAPI: ordersserver.NewCustomerAPI(services.Customers),
		ProductAPI:  ordersserver.NewProductAPI(services.Products),
		OrderAPI:    ordersserver.NewOrderAPI(services.Orders, orderworkflows.NewInlineOrderWorkflows(services.Orders)),
	}, instruments)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/missing", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var server, lookup sdktrace.ReadOnlySpan
	for _, span := range recorder.Ended() {
		switch {
		case span.SpanKind() == trace.SpanKindServer:
			server = span
		case span.Name() == "OrderService.GetOrder":
			lookup = span
		}
	}
	require.NotNil(t, server, "expected an HTTP server span")
	assert.Equal(t, "/orders/:orderId", server.Name())
	require.NotNil(t, lookup)
	assert.Equal(t, server.SpanContext().SpanID(), lookup.Parent().SpanID())
}
