package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/alimikegami/bulknest-server/internal/domain"
	"github.com/alimikegami/bulknest-server/internal/infrastructure/database/mongodb"
	"github.com/alimikegami/bulknest-server/pkg/errs"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDBRepositoryTestSuite runs against a live server and is skipped unless
// MONGODB_TEST_URI is set.
type MongoDBRepositoryTestSuite struct {
	suite.Suite
	db       *mongo.Database
	products ProductRepository
	orders   OrderRepository
	users    UserRepository
}

func TestMongoDBRepositoryTestSuite(t *testing.T) {
	if os.Getenv("MONGODB_TEST_URI") == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}
	suite.Run(t, new(MongoDBRepositoryTestSuite))
}

func (s *MongoDBRepositoryTestSuite) SetupSuite() {
	dbName := fmt.Sprintf("bulknest_test_%d", time.Now().UnixNano())

	db, err := mongodb.ConnectToMongoDB(os.Getenv("MONGODB_TEST_URI"), dbName)
	s.Require().NoError(err)
	s.Require().NoError(EnsureIndexes(context.Background(), db))

	s.db = db
	s.products = CreateNewMongoDBProductRepository(db)
	s.orders = CreateNewMongoDBOrderRepository(db)
	s.users = CreateNewMongoDBUserRepository(db)
}

func (s *MongoDBRepositoryTestSuite) TearDownSuite() {
	ctx := context.Background()
	s.NoError(s.db.Drop(ctx))
	s.NoError(s.db.Client().Disconnect(ctx))
}

func (s *MongoDBRepositoryTestSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.db.Collection(productsCollection).Drop(ctx))
	s.Require().NoError(s.db.Collection(ordersCollection).Drop(ctx))
}

func (s *MongoDBRepositoryTestSuite) Test_ProductRoundTrip() {
	ctx := context.Background()
	created := time.Now().UTC().Truncate(time.Millisecond)

	in := domain.Product{
		Name:            "Rice",
		Brand:           "Fields",
		Image:           "rice.png",
		Category:        "grocery",
		Description:     "25kg",
		Price:           31.5,
		MainQuantity:    400,
		MinSellQuantity: 20,
		UserEmail:       "seller@example.com",
		CreatedAt:       created,
	}

	id, err := s.products.AddProduct(ctx, in)
	s.Require().NoError(err)

	out, err := s.products.GetProductByID(ctx, id.Hex())
	s.Require().NoError(err)

	in.ID = id
	s.Equal(in, out)

	name := "Brown rice"
	s.Require().NoError(s.products.UpdateProduct(ctx, id.Hex(), domain.ProductUpdate{Name: &name}))

	out, err = s.products.GetProductByID(ctx, id.Hex())
	s.Require().NoError(err)
	in.Name = name
	s.Equal(in, out)
}

func (s *MongoDBRepositoryTestSuite) Test_ProductFilters() {
	ctx := context.Background()

	first, err := s.products.AddProduct(ctx, domain.Product{Category: "grocery", MainQuantity: 100, MinSellQuantity: 10, UserEmail: "a@x.com"})
	s.Require().NoError(err)
	second, err := s.products.AddProduct(ctx, domain.Product{Category: "care", MainQuantity: 1, MinSellQuantity: 10, UserEmail: "a@x.com"})
	s.Require().NoError(err)

	all, err := s.products.GetProducts(ctx, domain.ProductFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal(second, all[0].ID)
	s.Equal(first, all[1].ID)

	available, err := s.products.GetProducts(ctx, domain.ProductFilter{AvailableOnly: true})
	s.Require().NoError(err)
	s.Require().Len(available, 1)
	s.Equal(first, available[0].ID)

	none, err := s.products.GetProducts(ctx, domain.ProductFilter{Category: "toys"})
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)
}

func (s *MongoDBRepositoryTestSuite) Test_ConditionalDecrement() {
	ctx := context.Background()

	id, err := s.products.AddProduct(ctx, domain.Product{MainQuantity: 10})
	s.Require().NoError(err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.products.DecrementStock(ctx, id.Hex(), 1)
			if err == nil && ok {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	p, err := s.products.GetProductByID(ctx, id.Hex())
	s.Require().NoError(err)
	s.Equal(10, succeeded)
	s.Equal(int64(0), p.MainQuantity)

	ok, err := s.products.IncrementStock(ctx, id.Hex(), 3)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *MongoDBRepositoryTestSuite) Test_Orders() {
	ctx := context.Background()

	id, err := s.orders.AddOrder(ctx, domain.Order{ProductID: "p", OrderedFrom: "b@x.com", SellerEmail: "s@x.com", Quantity: 2, Date: time.Now().UTC()})
	s.Require().NoError(err)

	byBuyer, err := s.orders.GetOrders(ctx, domain.OrderFilter{OrderedFrom: "b@x.com"})
	s.Require().NoError(err)
	s.Len(byBuyer, 1)

	bySeller, err := s.orders.GetOrders(ctx, domain.OrderFilter{SellerEmail: "s@x.com"})
	s.Require().NoError(err)
	s.Len(bySeller, 1)

	deleted, err := s.orders.DeleteOrder(ctx, id.Hex())
	s.Require().NoError(err)
	s.Equal(int64(1), deleted)

	_, err = s.orders.GetOrderByID(ctx, id.Hex())
	s.ErrorIs(err, errs.ErrOrderNotFound)
}

func (s *MongoDBRepositoryTestSuite) Test_OrderExtraFields() {
	ctx := context.Background()

	id, err := s.orders.AddOrder(ctx, domain.Order{
		ProductID:   "p",
		OrderedFrom: "b@x.com",
		Quantity:    1,
		Date:        time.Now().UTC(),
		Extra: map[string]interface{}{
			"phone": "0123",
			"gift":  map[string]interface{}{"wrap": true},
		},
	})
	s.Require().NoError(err)

	out, err := s.orders.GetOrderByID(ctx, id.Hex())
	s.Require().NoError(err)
	s.Equal("0123", out.Extra["phone"])
	s.Equal(primitive.M{"wrap": true}, out.Extra["gift"])
	s.NotContains(out.Extra, "productId")
}

func (s *MongoDBRepositoryTestSuite) Test_UserUpsert() {
	ctx := context.Background()
	email := fmt.Sprintf("user-%d@example.com", time.Now().UnixNano())
	first := time.Now().UTC().Truncate(time.Millisecond)

	user, created, err := s.users.UpsertOnLogin(ctx, domain.User{Email: email, Role: domain.RoleCustomer}, first)
	s.Require().NoError(err)
	s.True(created)
	s.Equal(domain.RoleCustomer, user.Role)

	later := first.Add(time.Minute)
	user, created, err = s.users.UpsertOnLogin(ctx, domain.User{Email: email, Role: domain.RoleCustomer}, later)
	s.Require().NoError(err)
	s.False(created)
	s.True(user.CreatedAt.Equal(first))
	s.True(user.LastLoggedIn.Equal(later))
}
