package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreate  = "CREATE"
	ActionUpdate  = "UPDATE"
	ActionRestock = "RESTOCK"
	ActionSale    = "SALE"
	ActionDelete  = "DELETE"
)

// ChangeLog is one row of the append-only audit ledger. ItemID and UserID
// are nulled by the store when the referenced rows are deleted; ItemName is
// a snapshot taken at event time so the record stays meaningful on its own.
type ChangeLog struct {
	ID              uuid.UUID  `json:"id"`
	ItemID          *uuid.UUID `json:"item,omitempty"`
	ItemName        string     `json:"item_name"`
	UserID          *uuid.UUID `json:"user,omitempty"`
	Action          string     `json:"action"`
	QuantityChanged int        `json:"quantity_changed"`
	Timestamp       time.Time  `json:"timestamp"`
	Remarks         *string    `json:"remarks,omitempty"`

	// Joined field (not always populated).
	UserUsername *string `json:"user_username,omitempty"`
}

// ItemSnapshot captures the fields of an item that drive audit
// classification, at a specific point in time.
type ItemSnapshot struct {
	ID       uuid.UUID
	Name     string
	Quantity int
}

func SnapshotOf(it *InventoryItem) ItemSnapshot {
	return ItemSnapshot{ID: it.ID, Name: it.Name, Quantity: it.Quantity}
}

// DeriveChange classifies the business event described by a before/after
// pair of item snapshots and returns the audit entry to append:
//
//	before == nil           -> CREATE, quantity_changed = after quantity
//	both present, qty up    -> RESTOCK, positive delta
//	both present, qty down  -> SALE, negative delta
//	both present, qty same  -> UPDATE, zero delta (whatever else changed)
//	after == nil            -> DELETE, delta = -before quantity, no item ref
//
// Only quantity drives classification. The caller fills in UserID and
// persists the entry; DeriveChange itself has no side effects.
func DeriveChange(before, after *ItemSnapshot) (ChangeLog, error) {
	switch {
	case before == nil && after == nil:
		return ChangeLog{}, fmt.Errorf("derive change: both snapshots are nil")

	case before == nil:
		return ChangeLog{
			ItemID:          &after.ID,
			ItemName:        after.Name,
			Action:          ActionCreate,
			QuantityChanged: after.Quantity,
			Remarks:         remarks("Initial creation"),
		}, nil

	case after == nil:
		return ChangeLog{
			ItemID:          nil,
			ItemName:        before.Name,
			Action:          ActionDelete,
			QuantityChanged: -before.Quantity,
			Remarks:         remarks(fmt.Sprintf("Item '%s' deleted", before.Name)),
		}, nil
	}

	entry := ChangeLog{
		ItemID:          &after.ID,
		ItemName:        after.Name,
		QuantityChanged: after.Quantity - before.Quantity,
	}

	switch {
	case after.Quantity > before.Quantity:
		entry.Action = ActionRestock
	case after.Quantity < before.Quantity:
		entry.Action = ActionSale
	default:
		entry.Action = ActionUpdate
		entry.Remarks = remarks("Item details updated")
		return entry, nil
	}

	entry.Remarks = remarks(fmt.Sprintf("Quantity updated from %d to %d", before.Quantity, after.Quantity))
	return entry, nil
}

func remarks(s string) *string {
	return &s
}
