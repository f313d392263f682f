package dto

type CreateProductResponse struct {
	InsertedID string `json:"insertedId"`
}
