package service

import (
	"context"

	"github.com/alimikegami/bulknest-server/internal/domain"
	"github.com/alimikegami/bulknest-server/internal/dto"
)

// Methods taking principal and email run the authorization gate first:
// principal is the verified token email, email the one the caller supplied.

type ProductService interface {
	GetProducts(ctx context.Context, availableOnly bool) (data []domain.Product, err error)
	GetProductsByCategory(ctx context.Context, principal, email, category string) (data []domain.Product, err error)
	GetProductByID(ctx context.Context, principal, email, id string) (data domain.Product, err error)
	GetProductsByOwner(ctx context.Context, principal, email string) (data []domain.Product, err error)
	AddProduct(ctx context.Context, principal, email string, req dto.ProductRequest) (data dto.CreateProductResponse, err error)
	UpdateProduct(ctx context.Context, principal, email, id string, req dto.ProductPatchRequest) (err error)
	DeleteProduct(ctx context.Context, principal, email, id string) (err error)
}

type OrderService interface {
	GetOrdersByEmail(ctx context.Context, principal, email string) (data []dto.OrderResponse, err error)
	GetSellerOrders(ctx context.Context, principal, email string) (data []dto.OrderResponse, err error)
	PlaceOrder(ctx context.Context, principal, email string, req dto.OrderRequest) (data dto.PlaceOrderResponse, err error)
	DeleteOrder(ctx context.Context, principal, email, id, deleteType string) (data dto.DeleteOrderResponse, err error)
}

type UserService interface {
	UpsertOnLogin(ctx context.Context, req dto.UserRequest) (user domain.User, created bool, err error)
	GetRole(ctx context.Context, email string) (data dto.RoleResponse, err error)
}

type EventPublisher interface {
	Publish(ctx context.Context, eventType string, key string, data interface{}) error
}
