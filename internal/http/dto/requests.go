package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RegisterUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreateItemRequest carries no managed_by: ownership is always taken from
// the authenticated principal, never from the client.
type CreateItemRequest struct {
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	Quantity    *int             `json:"quantity,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    *uuid.UUID       `json:"category,omitempty"`
}

type UpdateItemRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Quantity    *int             `json:"quantity,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    *uuid.UUID       `json:"category,omitempty"`
}
