package dto

import "github.com/alimikegami/bulknest-server/internal/domain"

type ProductRequest struct {
	Name            string  `json:"name" validate:"required"`
	Brand           string  `json:"brand"`
	Image           string  `json:"image"`
	Category        string  `json:"category" validate:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" validate:"gte=0"`
	MainQuantity    int64   `json:"main_quantity" validate:"gte=0"`
	MinSellQuantity int64   `json:"min_sell_quantity" validate:"gte=1"`
	UserName        string  `json:"userName"`
}

func (r ProductRequest) ToDomain(ownerEmail string) domain.Product {
	return domain.Product{
		Name:            r.Name,
		Brand:           r.Brand,
		Image:           r.Image,
		Category:        r.Category,
		Description:     r.Description,
		Price:           r.Price,
		MainQuantity:    r.MainQuantity,
		MinSellQuantity: r.MinSellQuantity,
		UserEmail:       ownerEmail,
		UserName:        r.UserName,
	}
}

// ProductPatchRequest is a partial product; absent fields are left as they are.
// The owner email cannot be changed through it.
type ProductPatchRequest struct {
	Name            *string  `json:"name" validate:"omitempty,min=1"`
	Brand           *string  `json:"brand"`
	Image           *string  `json:"image"`
	Category        *string  `json:"category" validate:"omitempty,min=1"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price" validate:"omitempty,gte=0"`
	MainQuantity    *int64   `json:"main_quantity" validate:"omitempty,gte=0"`
	MinSellQuantity *int64   `json:"min_sell_quantity" validate:"omitempty,gte=1"`
}

func (r ProductPatchRequest) ToDomain() domain.ProductUpdate {
	return domain.ProductUpdate{
		Name:            r.Name,
		Brand:           r.Brand,
		Image:           r.Image,
		Category:        r.Category,
		Description:     r.Description,
		Price:           r.Price,
		MainQuantity:    r.MainQuantity,
		MinSellQuantity: r.MinSellQuantity,
	}
}
