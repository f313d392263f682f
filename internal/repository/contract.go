package repository

import (
	"context"
	"time"

	"github.com/alimikegami/bulknest-server/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	productsCollection = "products"
	ordersCollection   = "orders"
	usersCollection    = "users"
)

type ProductRepository interface {
	AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error)
	GetProductByID(ctx context.Context, id string) (product domain.Product, err error)
	GetProducts(ctx context.Context, filter domain.ProductFilter) (data []domain.Product, err error)
	UpdateProduct(ctx context.Context, id string, update domain.ProductUpdate) (err error)
	DeleteProduct(ctx context.Context, id string) (err error)
	// DecrementStock subtracts quantity only when main_quantity >= quantity.
	// ok is false when nothing matched.
	DecrementStock(ctx context.Context, id string, quantity int64) (ok bool, err error)
	IncrementStock(ctx context.Context, id string, quantity int64) (ok bool, err error)
}

type OrderRepository interface {
	AddOrder(ctx context.Context, data domain.Order) (id primitive.ObjectID, err error)
	GetOrderByID(ctx context.Context, id string) (order domain.Order, err error)
	GetOrders(ctx context.Context, filter domain.OrderFilter) (data []domain.Order, err error)
	DeleteOrder(ctx context.Context, id string) (deletedCount int64, err error)
}

type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (user domain.User, err error)
	// UpsertOnLogin creates the account from data when the email is unknown,
	// otherwise only lastLoggedIn is moved to now.
	UpsertOnLogin(ctx context.Context, data domain.User, now time.Time) (user domain.User, created bool, err error)
}
