//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	pacttest "github.com/Apurer/go-gin-orders-api/test/pact"

	ordersserver "github.com/Apurer/go-gin-orders-api/go"
	"github.com/Apurer/go-gin-orders-api/internal/app/api"
	catalogdomain "github.com/Apurer/go-gin-orders-api/internal/domains/catalog/domain"
	customerdomain "github.com/Apurer/go-gin-orders-api/internal/domains/customers/domain"
	orderworkflows "github.com/Apurer/go-gin-orders-api/internal/domains/orders/adapters/workflows"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestOrdersProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCatalogSeeded: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedCatalog(t)
			}
			return nil, nil
		},
		pacttest.StateCustomerMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedProducts(t)
			}
			return nil, nil
		},
		pacttest.StateOrderMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset(t)
			return nil
		},
	})
	require.NoError(t, err)
}

// contractProviderApp serves the real router over fresh in-memory stores that each state can replace.
type contractProviderApp struct {
	mu     sync.RWMutex
	router http.Handler
	stores api.Stores
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset(t)
	app.server = httptest.NewServer(app)
	t.Cleanup(app.server.Close)
	return app
}

func (a *contractProviderApp) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	router := a.router
	a.mu.RUnlock()
	router.ServeHTTP(w, r)
}

func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	stores, _, err := api.BuildStores(context.Background(), "", logger)
	require.NoError(t, err)
	services := api.BuildServices(stores, nil)

	handlers := ordersserver.ApiHandleFunctions{
		CustomerAPI: ordersserver.NewCustomerAPI(services.Customers),
		ProductAPI:  ordersserver.NewProductAPI(services.Products),
		OrderAPI:    ordersserver.NewOrderAPI(services.Orders, orderworkflows.NewInlineOrderWorkflows(services.Orders)),
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router = ordersserver.NewRouterWithGinEngine(router, handlers)

	a.mu.Lock()
	a.router = router
	a.stores = stores
	a.mu.Unlock()
}

func (a *contractProviderApp) seedCatalog(t testing.TB) {
	t.Helper()
	customer, err := customerdomain.NewCustomer(pacttest.ExistingCustomerID, "Pact Customer", "pact.customer@example.com")
	require.NoError(t, err)
	_, err = a.stores.Customers.Save(context.Background(), customer)
	require.NoError(t, err)
	a.seedProducts(t)
}

func (a *contractProviderApp) seedProducts(t testing.TB) {
	t.Helper()
	for _, seeded := range pacttest.SeededProducts() {
		product, err := catalogdomain.NewProduct(seeded.ID, seeded.Name, decimal.RequireFromString(seeded.Price), seeded.Quantity)
		require.NoError(t, err)
		_, err = a.stores.Products.Save(context.Background(), product)
		require.NoError(t, err)
	}
}
