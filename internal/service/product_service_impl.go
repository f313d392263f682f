package service

import (
	"context"
	"time"

	"github.com/alimikegami/bulknest-server/internal/domain"
	"github.com/alimikegami/bulknest-server/internal/dto"
	"github.com/alimikegami/bulknest-server/internal/repository"
	"github.com/alimikegami/bulknest-server/pkg/errs"
)

type ProductServiceImpl struct {
	productRepo repository.ProductRepository
	publisher   EventPublisher
}

func CreateProductService(productRepo repository.ProductRepository, publisher EventPublisher) ProductService {
	return &ProductServiceImpl{productRepo: productRepo, publisher: publisher}
}

func (s *ProductServiceImpl) GetProducts(ctx context.Context, availableOnly bool) (data []domain.Product, err error) {
	return s.productRepo.GetProducts(ctx, domain.ProductFilter{AvailableOnly: availableOnly})
}

func (s *ProductServiceImpl) GetProductsByCategory(ctx context.Context, principal, email, category string) (data []domain.Product, err error) {
	if err = Authorize(principal, email); err != nil {
		return
	}

	return s.productRepo.GetProducts(ctx, domain.ProductFilter{Category: category})
}

func (s *ProductServiceImpl) GetProductByID(ctx context.Context, principal, email, id string) (data domain.Product, err error) {
	if err = Authorize(principal, email); err != nil {
		return
	}

	return s.productRepo.GetProductByID(ctx, id)
}

func (s *ProductServiceImpl) GetProductsByOwner(ctx context.Context, principal, email string) (data []domain.Product, err error) {
	if err = Authorize(principal, email); err != nil {
		return
	}

	return s.productRepo.GetProducts(ctx, domain.ProductFilter{UserEmail: email})
}

func (s *ProductServiceImpl) AddProduct(ctx context.Context, principal, email string, req dto.ProductRequest) (data dto.CreateProductResponse, err error) {
	if err = Authorize(principal, email); err != nil {
		return
	}

	product := req.ToDomain(email)
	product.CreatedAt = time.Now().UTC()

	productID, err := s.productRepo.AddProduct(ctx, product)
	if err != nil {
		return
	}

	publish(ctx, s.publisher, dto.EventProductCreated, productID.Hex(), dto.ProductEvent{
		ProductID: productID.Hex(),
		UserEmail: email,
	})

	return dto.CreateProductResponse{InsertedID: productID.Hex()}, nil
}

// ownedProduct loads the product and checks that principal owns it.
func (s *ProductServiceImpl) ownedProduct(ctx context.Context, principal, id string) (product domain.Product, err error) {
	product, err = s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return
	}

	if product.UserEmail != principal {
		return product, errs.ErrNotOwner
	}

	return product, nil
}

func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, principal, email, id string, req dto.ProductPatchRequest) (err error) {
	if err = Authorize(principal, email); err != nil {
		return
	}

	update := req.ToDomain()
	if update.IsEmpty() {
		return errs.ErrClient
	}

	if _, err = s.ownedProduct(ctx, principal, id); err != nil {
		return
	}

	if err = s.productRepo.UpdateProduct(ctx, id, update); err != nil {
		return
	}

	publish(ctx, s.publisher, dto.EventProductUpdated, id, dto.ProductEvent{ProductID: id, UserEmail: principal})

	return nil
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, principal, email, id string) (err error) {
	if err = Authorize(principal, email); err != nil {
		return
	}

	if _, err = s.ownedProduct(ctx, principal, id); err != nil {
		return
	}

	if err = s.productRepo.DeleteProduct(ctx, id); err != nil {
		return
	}

	publish(ctx, s.publisher, dto.EventProductDeleted, id, dto.ProductEvent{ProductID: id, UserEmail: principal})

	return nil
}
