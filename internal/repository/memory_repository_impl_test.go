package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alimikegami/bulknest-server/internal/domain"
	"github.com/alimikegami/bulknest-server/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProduct(t *testing.T, r ProductRepository, p domain.Product) string {
	t.Helper()
	id, err := r.AddProduct(context.Background(), p)
	require.NoError(t, err)
	return id.Hex()
}

func TestMemoryProductRepository_GetProducts(t *testing.T) {
	ctx := context.Background()
	repo := CreateNewMemoryProductRepository()

	first := seedProduct(t, repo, domain.Product{Name: "Rice", Category: "grocery", MainQuantity: 100, MinSellQuantity: 10, UserEmail: "s@x.com"})
	second := seedProduct(t, repo, domain.Product{Name: "Soap", Category: "care", MainQuantity: 5, MinSellQuantity: 10, UserEmail: "s@x.com"})
	third := seedProduct(t, repo, domain.Product{Name: "Oil", Category: "grocery", MainQuantity: 10, MinSellQuantity: 10, UserEmail: "t@x.com"})

	type TestCase struct {
		Name     string
		Filter   domain.ProductFilter
		Expected []string
	}

	testCases := []TestCase{
		{Name: "All newest first", Filter: domain.ProductFilter{}, Expected: []string{third, second, first}},
		{Name: "Available only", Filter: domain.ProductFilter{AvailableOnly: true}, Expected: []string{third, first}},
		{Name: "Category", Filter: domain.ProductFilter{Category: "grocery"}, Expected: []string{third, first}},
		{Name: "Seller", Filter: domain.ProductFilter{UserEmail: "s@x.com"}, Expected: []string{second, first}},
		{Name: "No match", Filter: domain.ProductFilter{Category: "toys"}, Expected: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			data, err := repo.GetProducts(ctx, tc.Filter)
			require.NoError(t, err)

			ids := []string{}
			for _, p := range data {
				ids = append(ids, p.ID.Hex())
			}
			assert.Equal(t, tc.Expected, ids)
		})
	}
}

func TestMemoryProductRepository_Lookup(t *testing.T) {
	ctx := context.Background()
	repo := CreateNewMemoryProductRepository()

	_, err := repo.GetProductByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, errs.ErrInvalidID)

	_, err = repo.GetProductByID(ctx, "64b7f0c2a1b2c3d4e5f60718")
	assert.ErrorIs(t, err, errs.ErrProductNotFound)

	id := seedProduct(t, repo, domain.Product{Name: "Rice"})
	p, err := repo.GetProductByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Rice", p.Name)
}

func TestMemoryProductRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := CreateNewMemoryProductRepository()
	id := seedProduct(t, repo, domain.Product{Name: "Rice", Price: 10, MainQuantity: 50})

	name := "Brown rice"
	require.NoError(t, repo.UpdateProduct(ctx, id, domain.ProductUpdate{Name: &name}))

	p, err := repo.GetProductByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Brown rice", p.Name)
	assert.Equal(t, float64(10), p.Price)
	assert.Equal(t, int64(50), p.MainQuantity)

	assert.ErrorIs(t, repo.UpdateProduct(ctx, id, domain.ProductUpdate{}), errs.ErrClient)

	require.NoError(t, repo.DeleteProduct(ctx, id))
	assert.ErrorIs(t, repo.DeleteProduct(ctx, id), errs.ErrProductNotFound)
	assert.ErrorIs(t, repo.UpdateProduct(ctx, id, domain.ProductUpdate{Name: &name}), errs.ErrProductNotFound)
}

func TestMemoryProductRepository_DecrementStock(t *testing.T) {
	ctx := context.Background()
	repo := CreateNewMemoryProductRepository()
	id := seedProduct(t, repo, domain.Product{MainQuantity: 10})

	ok, err := repo.DecrementStock(ctx, id, 11)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.DecrementStock(ctx, id, 10)
	require.NoError(t, err)
	assert.True(t, ok)

	p, _ := repo.GetProductByID(ctx, id)
	assert.Equal(t, int64(0), p.MainQuantity)

	ok, err = repo.IncrementStock(ctx, id, 4)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IncrementStock(ctx, "64b7f0c2a1b2c3d4e5f60718", 4)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryProductRepository_DecrementStockConcurrent(t *testing.T) {
	ctx := context.Background()
	repo := CreateNewMemoryProductRepository()
	id := seedProduct(t, repo, domain.Product{MainQuantity: 25})

	var wg sync.WaitGroup
	var succeeded int64
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.DecrementStock(ctx, id, 1)
			if err == nil && ok {
				atomic.AddInt64(&succeeded, 1)
			}
		}()
	}
	wg.Wait()

	p, err := repo.GetProductByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(25), succeeded)
	assert.Equal(t, int64(0), p.MainQuantity)
}

func TestMemoryOrderRepository(t *testing.T) {
	ctx := context.Background()
	repo := CreateNewMemoryOrderRepository()

	a, err := repo.AddOrder(ctx, domain.Order{ProductID: "p1", OrderedFrom: "b@x.com", SellerEmail: "s@x.com", Quantity: 2})
	require.NoError(t, err)
	b, err := repo.AddOrder(ctx, domain.Order{ProductID: "p2", OrderedFrom: "b@x.com", SellerEmail: "t@x.com", Quantity: 3})
	require.NoError(t, err)

	data, err := repo.GetOrders(ctx, domain.OrderFilter{OrderedFrom: "b@x.com"})
	require.NoError(t, err)
	require.Len(t, data, 2)
	assert.Equal(t, b, data[0].ID)
	assert.Equal(t, a, data[1].ID)

	data, err = repo.GetOrders(ctx, domain.OrderFilter{SellerEmail: "s@x.com"})
	require.NoError(t, err)
	require.Len(t, data, 1)
	assert.Equal(t, a, data[0].ID)

	data, err = repo.GetOrders(ctx, domain.OrderFilter{OrderedFrom: "nobody@x.com"})
	require.NoError(t, err)
	assert.Empty(t, data)
	assert.NotNil(t, data)

	deleted, err := repo.DeleteOrder(ctx, a.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = repo.DeleteOrder(ctx, a.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)

	_, err = repo.GetOrderByID(ctx, a.Hex())
	assert.ErrorIs(t, err, errs.ErrOrderNotFound)

	_, err = repo.DeleteOrder(ctx, "bad")
	assert.ErrorIs(t, err, errs.ErrInvalidID)
}

func TestMemoryUserRepository_UpsertOnLogin(t *testing.T) {
	ctx := context.Background()
	repo := CreateNewMemoryUserRepository()

	_, err := repo.GetUserByEmail(ctx, "u@x.com")
	assert.ErrorIs(t, err, errs.ErrAccountNotFound)

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	user, created, err := repo.UpsertOnLogin(ctx, domain.User{Email: "u@x.com", Role: domain.RoleCustomer}, first)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, first, user.CreatedAt)

	second := first.Add(time.Hour)
	user, created, err = repo.UpsertOnLogin(ctx, domain.User{Email: "u@x.com", Role: domain.RoleCustomer}, second)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first, user.CreatedAt)
	assert.Equal(t, second, user.LastLoggedIn)
	assert.Equal(t, domain.RoleCustomer, user.Role)
}
