package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InventoryItem struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  *uuid.UUID      `json:"category,omitempty"`
	DateAdded   time.Time       `json:"date_added"`
	LastUpdated time.Time       `json:"last_updated"`
	ManagedBy   uuid.UUID       `json:"managed_by"`

	// Joined fields (not always populated).
	CategoryName      *string `json:"category_name,omitempty"`
	ManagedByUsername string  `json:"managed_by_username,omitempty"`
}

// ValidatePrice enforces the NUMERIC(10,2) contract: non-negative with at
// most two fractional digits.
func ValidatePrice(p decimal.Decimal) error {
	if p.IsNegative() {
		return fmt.Errorf("price must not be negative")
	}
	if !p.Equal(p.Round(2)) {
		return fmt.Errorf("price must have at most 2 decimal places")
	}
	return nil
}
