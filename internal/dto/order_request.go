package dto

import (
	"encoding/json"
	"strings"

	"github.com/alimikegami/bulknest-server/internal/domain"
)

// reservedOrderFields are set by the server or returned in order views, so
// a caller cannot supply them as extra fields.
var reservedOrderFields = map[string]bool{
	"_id":             true,
	"productId":       true,
	"orderedFrom":     true,
	"sellerEmail":     true,
	"quantity":        true,
	"buyerName":       true,
	"deliveryAddress": true,
	"metadata":        true,
	"date":            true,
	"productName":     true,
	"productBrand":    true,
	"productImage":    true,
	"totalPrice":      true,
}

type OrderRequest struct {
	ProductID       string                 `json:"productId" validate:"required"`
	Quantity        int64                  `json:"quantity" validate:"gt=0"`
	BuyerName       string                 `json:"buyerName"`
	DeliveryAddress string                 `json:"deliveryAddress"`
	Metadata        map[string]interface{} `json:"metadata"`

	// Extra collects every other top-level field of the body.
	Extra map[string]interface{} `json:"-"`
}

func (r *OrderRequest) UnmarshalJSON(b []byte) error {
	type plain OrderRequest
	if err := json.Unmarshal(b, (*plain)(r)); err != nil {
		return err
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}

	r.Extra = nil
	for key, value := range fields {
		// keys mongo cannot store as field names are dropped
		if reservedOrderFields[key] || key == "" || strings.HasPrefix(key, "$") || strings.Contains(key, ".") {
			continue
		}
		if r.Extra == nil {
			r.Extra = map[string]interface{}{}
		}
		r.Extra[key] = value
	}

	return nil
}

func (r OrderRequest) ToDomain(orderedFrom string) domain.Order {
	return domain.Order{
		ProductID:       r.ProductID,
		OrderedFrom:     orderedFrom,
		Quantity:        r.Quantity,
		BuyerName:       r.BuyerName,
		DeliveryAddress: r.DeliveryAddress,
		Metadata:        r.Metadata,
		Extra:           r.Extra,
	}
}
