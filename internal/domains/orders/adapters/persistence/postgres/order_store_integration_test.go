//go:build integration

package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	catalogpostgres "github.com/Apurer/go-gin-orders-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogdomain "github.com/Apurer/go-gin-orders-api/internal/domains/catalog/domain"
	customerpostgres "github.com/Apurer/go-gin-orders-api/internal/domains/customers/adapters/persistence/postgres"
	customerdomain "github.com/Apurer/go-gin-orders-api/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/application"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-orders-api/internal/platform/migrations"
)

func setupOrdersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("orders_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

// seed inserts customer C1 and products P1{price:10, quantity:5}, P2{price:20, quantity:2}.
func seed(t *testing.T, db *gorm.DB) {
	t.Helper()
	ctx := context.Background()

	customer, err := customerdomain.NewCustomer("C1", "Ada", "ada@example.com")
	require.NoError(t, err)
	_, err = customerpostgres.NewRepository(db).Save(ctx, customer)
	require.NoError(t, err)

	products := catalogpostgres.NewRepository(db)
	p1, err := catalogdomain.NewProduct("P1", "Keyboard", decimal.NewFromInt(10), 5)
	require.NoError(t, err)
	_, err = products.Save(ctx, p1)
	require.NoError(t, err)
	p2, err := catalogdomain.NewProduct("P2", "Mouse", decimal.NewFromInt(20), 2)
	require.NoError(t, err)
	_, err = products.Save(ctx, p2)
	require.NoError(t, err)
}

func newService(db *gorm.DB) *application.Service {
	return application.NewService(
		customerpostgres.NewRepository(db),
		catalogpostgres.NewRepository(db),
		NewOrderStore(db),
		application.WithTransactor(NewTransactor(db)),
	)
}

func stock(t *testing.T, db *gorm.DB, id string) int64 {
	t.Helper()
	product, err := catalogpostgres.NewRepository(db).FindByID(context.Background(), id)
	require.NoError(t, err)
	return product.Quantity
}

func countOrders(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&OrderRecord{}).Count(&count).Error)
	return count
}

func TestOrderStore_CreateAndFindByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()
	seed(t, db)

	ctx := context.Background()
	customer, err := customerpostgres.NewRepository(db).FindByID(ctx, "C1")
	require.NoError(t, err)

	store := NewOrderStore(db)
	created, err := store.Create(ctx, customer, []domain.OrderItem{
		{ProductID: "P2", Price: decimal.NewFromInt(20), Quantity: 1},
		{ProductID: "P1", Price: decimal.NewFromInt(10), Quantity: 3},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	fetched, err := store.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "C1", fetched.Customer.ID)
	assert.Equal(t, "ada@example.com", fetched.Customer.Email)
	require.Len(t, fetched.Items, 2)
	assert.Equal(t, "P2", fetched.Items[0].ProductID)
	assert.Equal(t, "P1", fetched.Items[1].ProductID)
	assert.True(t, fetched.Total().Equal(decimal.NewFromInt(50)))

	_, err = store.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestService_CreateOrderDecrementsStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()
	seed(t, db)

	svc := newService(db)
	order, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		CustomerID: "C1",
		Items: []domain.ItemRequest{
			{ProductID: "P1", Quantity: 2},
			{ProductID: "P2", Quantity: 2},
		},
	})
	require.NoError(t, err)
	assert.True(t, order.Total().Equal(decimal.NewFromInt(60)))
	assert.Equal(t, int64(3), stock(t, db, "P1"))
	assert.Equal(t, int64(0), stock(t, db, "P2"))
	assert.Equal(t, int64(1), countOrders(t, db))
}

func TestService_FailuresLeaveNoTrace(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()
	seed(t, db)

	svc := newService(db)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, ports.CreateOrderInput{CustomerID: "C1", Items: []domain.ItemRequest{{ProductID: "P2", Quantity: 3}}})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = svc.CreateOrder(ctx, ports.CreateOrderInput{CustomerID: "C1", Items: []domain.ItemRequest{{ProductID: "P1", Quantity: 1}, {ProductID: "P9", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = svc.CreateOrder(ctx, ports.CreateOrderInput{CustomerID: "C9", Items: []domain.ItemRequest{{ProductID: "P1", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	assert.Equal(t, int64(5), stock(t, db, "P1"))
	assert.Equal(t, int64(2), stock(t, db, "P2"))
	assert.Equal(t, int64(0), countOrders(t, db))
}

func TestService_ConcurrentOrdersForLastUnits(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()
	seed(t, db)

	svc := newService(db)
	const buyers = 6

	var wg sync.WaitGroup
	results := make(chan error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
				CustomerID: "C1",
				Items:      []domain.ItemRequest{{ProductID: "P2", Quantity: 1}},
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded int
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		if !errors.Is(err, domain.ErrInsufficientStock) && !errors.Is(err, domain.ErrConcurrentModification) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 2, succeeded)
	assert.Equal(t, int64(0), stock(t, db, "P2"))
	assert.Equal(t, int64(2), countOrders(t, db))
}
