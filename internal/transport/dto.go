package transport

import (
	"encoding/json"

	"github.com/Skotchmaster/storefront/internal/models"
)

type CreateUserRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateProductRequest uses pointers so that zero values count as present.
type CreateProductRequest struct {
	Name     string   `json:"name"     validate:"required"`
	Price    *float64 `json:"price"    validate:"required"`
	Stock    *int     `json:"stock"    validate:"required"`
	Currency *string  `json:"currency" validate:"required"`
	Vat      *int64   `json:"vat"      validate:"required"`
}

type VatRequest struct {
	Description string   `json:"description" validate:"required"`
	Amount      *float64 `json:"amount"      validate:"required"`
	Region      string   `json:"region"      validate:"required"`
}

// CartRequest keeps the raw values; they are coerced to integers by the
// cart service. A nil Amount means the field was absent.
type CartRequest struct {
	ProductID json.RawMessage `json:"product_id"`
	Amount    json.RawMessage `json:"amount"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UserResponse struct {
	Message string      `json:"message"`
	User    models.User `json:"user"`
}

type ProductResponse struct {
	Message string         `json:"message"`
	Product models.Product `json:"product"`
}

type VatResponse struct {
	Message string      `json:"message"`
	Vat     *models.Vat `json:"vat,omitempty"`
}
