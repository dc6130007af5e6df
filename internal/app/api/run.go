package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	ordersserver "github.com/Apurer/go-gin-orders-api/go"

	catalogmemory "github.com/Apurer/go-gin-orders-api/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/Apurer/go-gin-orders-api/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/Apurer/go-gin-orders-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/go-gin-orders-api/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-gin-orders-api/internal/domains/catalog/ports"
	customermemory "github.com/Apurer/go-gin-orders-api/internal/domains/customers/adapters/memory"
	customerobs "github.com/Apurer/go-gin-orders-api/internal/domains/customers/adapters/observability"
	customerpostgres "github.com/Apurer/go-gin-orders-api/internal/domains/customers/adapters/persistence/postgres"
	customerapp "github.com/Apurer/go-gin-orders-api/internal/domains/customers/application"
	customerports "github.com/Apurer/go-gin-orders-api/internal/domains/customers/ports"
	ordermemory "github.com/Apurer/go-gin-orders-api/internal/domains/orders/adapters/memory"
	orderobs "github.com/Apurer/go-gin-orders-api/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/Apurer/go-gin-orders-api/internal/domains/orders/adapters/persistence/postgres"
	orderworkflows "github.com/Apurer/go-gin-orders-api/internal/domains/orders/adapters/workflows"
	orderapp "github.com/Apurer/go-gin-orders-api/internal/domains/orders/application"
	orderports "github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-orders-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-orders-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-orders-api/internal/platform/postgres"
)

// Stores bundles the persistence adapters shared by the API and the worker.
type Stores struct {
	Customers  customerports.Repository
	Products   catalogports.Repository
	Orders     orderports.OrderStore
	Transactor orderports.Transactor
	Backend    string
}

// Services bundles the decorated application services.
type Services struct {
	Customers customerports.Service
	Products  catalogports.Service
	Orders    orderports.Service
}

// Run boots the orders HTTP API with observability, repositories, and workflows wired.
// It returns when ctx is cancelled or the server fails.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Observability)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	stores, cleanupStores, err := BuildStores(ctx, cfg.PostgresDSN, logger)
	if err != nil {
		return err
	}
	defer cleanupStores()
	services := BuildServices(stores, instruments)

	var orderWorkflows orderports.WorkflowOrchestrator = orderworkflows.NewInlineOrderWorkflows(services.Orders)
	if temporalClient, err := ConnectTemporalClient(cfg, instruments, "temporal-client"); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline CreateOrder", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = orderworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := ordersserver.ApiHandleFunctions{
		CustomerAPI: ordersserver.NewCustomerAPI(services.Customers),
		ProductAPI:  ordersserver.NewProductAPI(services.Products),
		OrderAPI:    ordersserver.NewOrderAPI(services.Orders, orderWorkflows),
	}

	router := NewHTTPHandler(cfg.Observability.ServiceName, handlers, instruments)
	server := &http.Server{Addr: cfg.Addr(), Handler: router}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Orders API listening", slog.String("addr", server.Addr), slog.String("storage", stores.Backend))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("Orders API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	logger.Info("Orders API shutting down")
	return server.Shutdown(shutdownCtx)
}

// NewHTTPHandler builds the gin engine with request logging, recovery and otelgin installed
// before any route is registered, so every route carries a server span.
func NewHTTPHandler(serviceName string, handlers ordersserver.ApiHandleFunctions, instruments *platformobservability.Instruments) *gin.Engine {
	var opts []otelgin.Option
	if instruments != nil && instruments.TracerProvider != nil {
		opts = append(opts, otelgin.WithTracerProvider(instruments.TracerProvider))
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), otelgin.Middleware(serviceName, opts...))
	return ordersserver.NewRouterWithGinEngine(router, handlers)
}

// BuildStores connects to PostgreSQL when dsn is set, applying the schema, and falls back to
// in-memory adapters otherwise. The returned cleanup closes the connection.
func BuildStores(ctx context.Context, dsn string, logger *slog.Logger) (Stores, func(), error) {
	db, cleanup := platformpostgres.ConnectDSN(ctx, dsn, logger)
	if db == nil {
		customers := customermemory.NewRepository()
		products := catalogmemory.NewRepository()
		orders := ordermemory.NewOrderStore()
		return Stores{
			Customers:  customers,
			Products:   products,
			Orders:     orders,
			Transactor: ordermemory.NewTransactor(customers, products, orders),
			Backend:    "memory",
		}, cleanup, nil
	}
	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		cleanup()
		return Stores{}, func() {}, fmt.Errorf("failed to apply schema: %w", err)
	}
	return Stores{
		Customers:  customerpostgres.NewRepository(db),
		Products:   catalogpostgres.NewRepository(db),
		Orders:     orderpostgres.NewOrderStore(db),
		Transactor: orderpostgres.NewTransactor(db),
		Backend:    "postgres",
	}, cleanup, nil
}

// BuildServices wires the application services over stores and wraps them with observability.
func BuildServices(stores Stores, instruments *platformobservability.Instruments) Services {
	logger := effectiveLogger(instruments)
	return Services{
		Customers: customerobs.New(
			customerapp.NewService(stores.Customers),
			customerobs.WithLogger(logger),
			customerobs.WithTracer(instruments.Tracer("internal.customers.application")),
			customerobs.WithMeter(instruments.Meter("internal.customers.application")),
		),
		Products: catalogobs.New(
			catalogapp.NewService(stores.Products),
			catalogobs.WithLogger(logger),
			catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
			catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
		),
		Orders: orderobs.New(
			orderapp.NewService(stores.Customers, stores.Products, stores.Orders, orderapp.WithTransactor(stores.Transactor)),
			orderobs.WithLogger(logger),
			orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
			orderobs.WithMeter(instruments.Meter("internal.orders.application")),
		),
	}
}

// ConnectTemporalClient dials Temporal with tracing and structured logging, unless disabled.
func ConnectTemporalClient(cfg Config, instruments *platformobservability.Instruments, tracerName string) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer(tracerName)
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.Default()
}
