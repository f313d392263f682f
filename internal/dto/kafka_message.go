package dto

const (
	EventOrderPlaced    = "order_placed"
	EventOrderDeleted   = "order_deleted"
	EventOrderCancelled = "order_cancelled"
	EventProductCreated = "product_created"
	EventProductUpdated = "product_updated"
	EventProductDeleted = "product_deleted"
	EventUserCreated    = "user_created"
)

type KafkaMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}

type OrderEvent struct {
	OrderID     string `json:"order_id"`
	ProductID   string `json:"product_id"`
	OrderedFrom string `json:"ordered_from"`
	SellerEmail string `json:"seller_email"`
	Quantity    int64  `json:"quantity"`
}

type ProductEvent struct {
	ProductID string `json:"product_id"`
	UserEmail string `json:"user_email"`
}

type UserEvent struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}
