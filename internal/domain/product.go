package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name            string             `bson:"name" json:"name"`
	Brand           string             `bson:"brand" json:"brand"`
	Image           string             `bson:"image" json:"image"`
	Category        string             `bson:"category" json:"category"`
	Description     string             `bson:"description" json:"description"`
	Price           float64            `bson:"price" json:"price"`
	MainQuantity    int64              `bson:"main_quantity" json:"main_quantity"`
	MinSellQuantity int64              `bson:"min_sell_quantity" json:"min_sell_quantity"`
	UserEmail       string             `bson:"userEmail" json:"userEmail"`
	UserName        string             `bson:"userName,omitempty" json:"userName,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// Available reports whether at least one minimum-size order can be served.
func (p Product) Available() bool {
	return p.MainQuantity >= p.MinSellQuantity
}

// ProductFilter is an equality filter; zero fields are ignored.
type ProductFilter struct {
	Category      string
	UserEmail     string
	AvailableOnly bool
}

// ProductUpdate carries the fields of a partial update. Nil fields stay untouched.
type ProductUpdate struct {
	Name            *string
	Brand           *string
	Image           *string
	Category        *string
	Description     *string
	Price           *float64
	MainQuantity    *int64
	MinSellQuantity *int64
}

func (u ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Brand == nil && u.Image == nil && u.Category == nil &&
		u.Description == nil && u.Price == nil && u.MainQuantity == nil && u.MinSellQuantity == nil
}

// Apply writes the non-nil fields onto p.
func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Brand != nil {
		p.Brand = *u.Brand
	}
	if u.Image != nil {
		p.Image = *u.Image
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.MainQuantity != nil {
		p.MainQuantity = *u.MainQuantity
	}
	if u.MinSellQuantity != nil {
		p.MinSellQuantity = *u.MinSellQuantity
	}
}
