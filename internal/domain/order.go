package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DeleteTypeCancel = "cancel"
	DeleteTypePlain  = "plain"
)

// Order references its product by id only; the product may be gone.
type Order struct {
	ID              primitive.ObjectID     `bson:"_id,omitempty" json:"_id"`
	ProductID       string                 `bson:"productId" json:"productId"`
	OrderedFrom     string                 `bson:"orderedFrom" json:"orderedFrom"`
	SellerEmail     string                 `bson:"sellerEmail" json:"sellerEmail"`
	Quantity        int64                  `bson:"quantity" json:"quantity"`
	BuyerName       string                 `bson:"buyerName,omitempty" json:"buyerName,omitempty"`
	DeliveryAddress string                 `bson:"deliveryAddress,omitempty" json:"deliveryAddress,omitempty"`
	Metadata        map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`
	Date            time.Time              `bson:"date" json:"date"`

	// Extra holds the caller's other top-level order fields, stored inline.
	Extra map[string]interface{} `bson:",inline" json:"-"`
}

type OrderFilter struct {
	OrderedFrom string
	SellerEmail string
}
