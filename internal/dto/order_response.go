package dto

import (
	"encoding/json"

	"github.com/alimikegami/bulknest-server/internal/domain"
)

// OrderResponse is an order joined with its product's display fields.
// The product fields stay empty when the product no longer exists.
type OrderResponse struct {
	domain.Order
	ProductName  string   `json:"productName,omitempty"`
	ProductBrand string   `json:"productBrand,omitempty"`
	ProductImage string   `json:"productImage,omitempty"`
	TotalPrice   *float64 `json:"totalPrice,omitempty"`
}

// MarshalJSON writes the order's extra fields next to the known ones.
func (r OrderResponse) MarshalJSON() ([]byte, error) {
	type plain OrderResponse
	body, err := json.Marshal(plain(r))
	if err != nil || len(r.Extra) == 0 {
		return body, err
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}

	for key, value := range r.Extra {
		if _, taken := fields[key]; taken {
			continue
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		fields[key] = raw
	}

	return json.Marshal(fields)
}

type PlaceOrderResponse struct {
	OrderID string `json:"orderId"`
}

type DeleteOrderResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}
