package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestDeriveChange(t *testing.T) {
	itemID := uuid.New()

	tests := []struct {
		name        string
		before      *ItemSnapshot
		after       *ItemSnapshot
		wantAction  string
		wantDelta   int
		wantItemRef bool
		wantRemarks string
	}{
		{
			name:        "create",
			after:       &ItemSnapshot{ID: itemID, Name: "Widget", Quantity: 20},
			wantAction:  ActionCreate,
			wantDelta:   20,
			wantItemRef: true,
			wantRemarks: "Initial creation",
		},
		{
			name:        "create with zero quantity",
			after:       &ItemSnapshot{ID: itemID, Name: "Widget", Quantity: 0},
			wantAction:  ActionCreate,
			wantDelta:   0,
			wantItemRef: true,
			wantRemarks: "Initial creation",
		},
		{
			name:        "restock",
			before:      &ItemSnapshot{ID: itemID, Name: "Widget", Quantity: 5},
			after:       &ItemSnapshot{ID: itemID, Name: "Widget", Quantity: 12},
			wantAction:  ActionRestock,
			wantDelta:   7,
			wantItemRef: true,
			wantRemarks: "Quantity updated from 5 to 12",
		},
		{
			name:        "sale",
			before:      &ItemSnapshot{ID: itemID, Name: "Widget", Quantity: 20},
			after:       &ItemSnapshot{ID: itemID, Name: "Widget", Quantity: 15},
			wantAction:  ActionSale,
			wantDelta:   -5,
			wantItemRef: true,
			wantRemarks: "Quantity updated from 20 to 15",
		},
		{
			name:        "quantity unchanged is a plain update",
			before:      &ItemSnapshot{ID: itemID, Name: "Widget", Quantity: 15},
			after:       &ItemSnapshot{ID: itemID, Name: "Widget v2", Quantity: 15},
			wantAction:  ActionUpdate,
			wantDelta:   0,
			wantItemRef: true,
			wantRemarks: "Item details updated",
		},
		{
			name:        "delete",
			before:      &ItemSnapshot{ID: itemID, Name: "Widget", Quantity: 15},
			wantAction:  ActionDelete,
			wantDelta:   -15,
			wantItemRef: false,
			wantRemarks: "Item 'Widget' deleted",
		},
		{
			name:        "delete with negative quantity negates it",
			before:      &ItemSnapshot{ID: itemID, Name: "Widget", Quantity: -3},
			wantAction:  ActionDelete,
			wantDelta:   3,
			wantItemRef: false,
			wantRemarks: "Item 'Widget' deleted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := DeriveChange(tt.before, tt.after)
			if err != nil {
				t.Fatalf("DeriveChange() error = %v", err)
			}
			if entry.Action != tt.wantAction {
				t.Errorf("action = %q, want %q", entry.Action, tt.wantAction)
			}
			if entry.QuantityChanged != tt.wantDelta {
				t.Errorf("quantity_changed = %d, want %d", entry.QuantityChanged, tt.wantDelta)
			}
			if tt.wantItemRef {
				if entry.ItemID == nil || *entry.ItemID != itemID {
					t.Errorf("item ref = %v, want %v", entry.ItemID, itemID)
				}
			} else if entry.ItemID != nil {
				t.Errorf("item ref = %v, want nil", entry.ItemID)
			}
			if entry.Remarks == nil || *entry.Remarks != tt.wantRemarks {
				t.Errorf("remarks = %v, want %q", entry.Remarks, tt.wantRemarks)
			}
		})
	}
}

func TestDeriveChangeBothNil(t *testing.T) {
	if _, err := DeriveChange(nil, nil); err == nil {
		t.Error("DeriveChange(nil, nil) should fail")
	}
}

func TestDeriveChangeSnapshotsName(t *testing.T) {
	before := &ItemSnapshot{ID: uuid.New(), Name: "Gadget", Quantity: 8}

	entry, err := DeriveChange(before, nil)
	if err != nil {
		t.Fatalf("DeriveChange() error = %v", err)
	}
	if entry.ItemName != "Gadget" {
		t.Errorf("item_name = %q, want %q", entry.ItemName, "Gadget")
	}
}

// Full lifecycle from the item's point of view: create, sell, touch, delete.
func TestDeriveChangeLifecycle(t *testing.T) {
	id := uuid.New()

	steps := []struct {
		before, after *ItemSnapshot
		wantAction    string
		wantDelta     int
	}{
		{nil, &ItemSnapshot{ID: id, Name: "A", Quantity: 20}, ActionCreate, 20},
		{&ItemSnapshot{ID: id, Name: "A", Quantity: 20}, &ItemSnapshot{ID: id, Name: "A", Quantity: 15}, ActionSale, -5},
		{&ItemSnapshot{ID: id, Name: "A", Quantity: 15}, &ItemSnapshot{ID: id, Name: "A", Quantity: 15}, ActionUpdate, 0},
		{&ItemSnapshot{ID: id, Name: "A", Quantity: 15}, nil, ActionDelete, -15},
	}

	for i, step := range steps {
		entry, err := DeriveChange(step.before, step.after)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if entry.Action != step.wantAction || entry.QuantityChanged != step.wantDelta {
			t.Errorf("step %d: got (%s, %d), want (%s, %d)",
				i, entry.Action, entry.QuantityChanged, step.wantAction, step.wantDelta)
		}
	}
}
