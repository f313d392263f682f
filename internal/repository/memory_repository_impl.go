package repository

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/alimikegami/bulknest-server/internal/domain"
	"github.com/alimikegami/bulknest-server/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repositories back DB_DRIVER=memory and the service tests.
// Each store guards its map with one mutex so the conditional stock
// update is as atomic as the Mongo filter+$inc.

type MemoryProductRepositoryImpl struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]domain.Product
}

func CreateNewMemoryProductRepository() *MemoryProductRepositoryImpl {
	return &MemoryProductRepositoryImpl{products: map[primitive.ObjectID]domain.Product{}}
}

func newestFirst(a, b primitive.ObjectID) bool {
	return bytes.Compare(a[:], b[:]) > 0
}

func (r *MemoryProductRepositoryImpl) AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data.ID = primitive.NewObjectID()
	r.products[data.ID] = data

	return data.ID, nil
}

func (r *MemoryProductRepositoryImpl) GetProductByID(ctx context.Context, id string) (product domain.Product, err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return product, errs.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[productID]
	if !ok {
		return product, errs.ErrProductNotFound
	}

	return product, nil
}

func (r *MemoryProductRepositoryImpl) GetProducts(ctx context.Context, filter domain.ProductFilter) (data []domain.Product, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data = []domain.Product{}
	for _, p := range r.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.UserEmail != "" && p.UserEmail != filter.UserEmail {
			continue
		}
		if filter.AvailableOnly && !p.Available() {
			continue
		}
		data = append(data, p)
	}

	sort.Slice(data, func(i, j int) bool { return newestFirst(data[i].ID, data[j].ID) })

	return data, nil
}

func (r *MemoryProductRepositoryImpl) UpdateProduct(ctx context.Context, id string, update domain.ProductUpdate) (err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrInvalidID
	}
	if update.IsEmpty() {
		return errs.ErrClient
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[productID]
	if !ok {
		return errs.ErrProductNotFound
	}

	update.Apply(&product)
	r.products[productID] = product

	return nil
}

func (r *MemoryProductRepositoryImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[productID]; !ok {
		return errs.ErrProductNotFound
	}
	delete(r.products, productID)

	return nil
}

func (r *MemoryProductRepositoryImpl) DecrementStock(ctx context.Context, id string, quantity int64) (ok bool, err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, errs.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product, found := r.products[productID]
	if !found || product.MainQuantity < quantity {
		return false, nil
	}

	product.MainQuantity -= quantity
	r.products[productID] = product

	return true, nil
}

func (r *MemoryProductRepositoryImpl) IncrementStock(ctx context.Context, id string, quantity int64) (ok bool, err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, errs.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product, found := r.products[productID]
	if !found {
		return false, nil
	}

	product.MainQuantity += quantity
	r.products[productID] = product

	return true, nil
}

type MemoryOrderRepositoryImpl struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]domain.Order
}

func CreateNewMemoryOrderRepository() *MemoryOrderRepositoryImpl {
	return &MemoryOrderRepositoryImpl{orders: map[primitive.ObjectID]domain.Order{}}
}

func (r *MemoryOrderRepositoryImpl) AddOrder(ctx context.Context, data domain.Order) (id primitive.ObjectID, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data.ID = primitive.NewObjectID()
	r.orders[data.ID] = data

	return data.ID, nil
}

func (r *MemoryOrderRepositoryImpl) GetOrderByID(ctx context.Context, id string) (order domain.Order, err error) {
	orderID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return order, errs.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return order, errs.ErrOrderNotFound
	}

	return order, nil
}

func (r *MemoryOrderRepositoryImpl) GetOrders(ctx context.Context, filter domain.OrderFilter) (data []domain.Order, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data = []domain.Order{}
	for _, o := range r.orders {
		if filter.OrderedFrom != "" && o.OrderedFrom != filter.OrderedFrom {
			continue
		}
		if filter.SellerEmail != "" && o.SellerEmail != filter.SellerEmail {
			continue
		}
		data = append(data, o)
	}

	sort.Slice(data, func(i, j int) bool { return newestFirst(data[i].ID, data[j].ID) })

	return data, nil
}

func (r *MemoryOrderRepositoryImpl) DeleteOrder(ctx context.Context, id string) (deletedCount int64, err error) {
	orderID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, errs.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[orderID]; !ok {
		return 0, nil
	}
	delete(r.orders, orderID)

	return 1, nil
}

type MemoryUserRepositoryImpl struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func CreateNewMemoryUserRepository() *MemoryUserRepositoryImpl {
	return &MemoryUserRepositoryImpl{users: map[string]domain.User{}}
}

func (r *MemoryUserRepositoryImpl) GetUserByEmail(ctx context.Context, email string) (user domain.User, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[email]
	if !ok {
		return user, errs.ErrAccountNotFound
	}

	return user, nil
}

func (r *MemoryUserRepositoryImpl) UpsertOnLogin(ctx context.Context, data domain.User, now time.Time) (user domain.User, created bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[data.Email]
	if !ok {
		user = data
		user.ID = primitive.NewObjectID()
		user.CreatedAt = now
		created = true
	}
	user.LastLoggedIn = now
	r.users[data.Email] = user

	return user, created, nil
}
