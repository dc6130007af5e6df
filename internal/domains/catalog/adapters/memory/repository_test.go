package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-orders-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/catalog/ports"
)

func seed(t *testing.T, repo *Repository, id string, quantity int64) {
	t.Helper()
	product, err := domain.NewProduct(id, "product "+id, decimal.NewFromInt(10), quantity)
	require.NoError(t, err)
	_, err = repo.Save(context.Background(), product)
	require.NoError(t, err)
}

func TestFindAllByID_OmitsUnknown(t *testing.T) {
	repo := NewRepository()
	seed(t, repo, "p1", 5)
	seed(t, repo, "p2", 2)

	found, err := repo.FindAllByID(context.Background(), []string{"p2", "p9", "p1", "p2"})
	require.NoError(t, err)
	require.Len(t, found, 2)
	require.Equal(t, "p2", found[0].ID)
	require.Equal(t, "p1", found[1].ID)
}

func TestUpdateQuantity_AllOrNothing(t *testing.T) {
	repo := NewRepository()
	seed(t, repo, "p1", 5)
	seed(t, repo, "p2", 2)

	err := repo.UpdateQuantity(context.Background(), []domain.StockUpdate{
		{ProductID: "p1", Quantity: 3, Previous: 5},
		{ProductID: "p2", Quantity: 0, Previous: 1},
	})
	require.ErrorIs(t, err, ports.ErrStockConflict)

	p1, err := repo.FindByID(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, int64(5), p1.Quantity)

	err = repo.UpdateQuantity(context.Background(), []domain.StockUpdate{
		{ProductID: "p1", Quantity: 3, Previous: 5},
		{ProductID: "p2", Quantity: 0, Previous: 2},
	})
	require.NoError(t, err)
	p2, err := repo.FindByID(context.Background(), "p2")
	require.NoError(t, err)
	require.Equal(t, int64(0), p2.Quantity)
}

func TestUpdateQuantity_UnknownProduct(t *testing.T) {
	repo := NewRepository()
	err := repo.UpdateQuantity(context.Background(), []domain.StockUpdate{{ProductID: "p9", Quantity: 1}})
	require.ErrorIs(t, err, ports.ErrNotFound)
}
