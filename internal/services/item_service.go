package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stocktrail/backend/internal/models"
	"github.com/stocktrail/backend/internal/repositories"
	"go.uber.org/zap"
)

// ItemService sequences every catalog mutation with exactly one audit
// append. Each Create/Update/Delete runs in a single transaction: either
// the item change and its log entry both land, or neither does.
type ItemService struct {
	pool     *pgxpool.Pool
	itemRepo *repositories.ItemRepo
	logRepo  *repositories.ChangeLogRepo
	log      *zap.Logger
}

func NewItemService(
	pool *pgxpool.Pool,
	itemRepo *repositories.ItemRepo,
	logRepo *repositories.ChangeLogRepo,
	log *zap.Logger,
) *ItemService {
	return &ItemService{
		pool:     pool,
		itemRepo: itemRepo,
		logRepo:  logRepo,
		log:      log,
	}
}

type CreateItemInput struct {
	Name        string
	Description *string
	Quantity    *int
	Price       *decimal.Decimal
	CategoryID  *uuid.UUID
}

func (s *ItemService) Create(ctx context.Context, actorID uuid.UUID, in CreateItemInput) (*models.InventoryItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Price == nil {
		return nil, fmt.Errorf("%w: price is required", ErrValidation)
	}
	if err := models.ValidatePrice(*in.Price); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	quantity := 0
	if in.Quantity != nil {
		quantity = *in.Quantity
	}

	it := &models.InventoryItem{
		Name:        name,
		Description: in.Description,
		Quantity:    quantity,
		Price:       *in.Price,
		CategoryID:  in.CategoryID,
		ManagedBy:   actorID,
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := s.itemRepo.Create(ctx, tx, it); err != nil {
		if isPgCode(err, pgForeignKeyViolation) {
			return nil, fmt.Errorf("%w: category", ErrNotFound)
		}
		return nil, err
	}

	after := models.SnapshotOf(it)
	entry, err := models.DeriveChange(nil, &after)
	if err != nil {
		return nil, err
	}
	entry.UserID = &actorID
	if err := s.logRepo.Append(ctx, tx, &entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.log.Info("item created",
		zap.String("item_id", it.ID.String()),
		zap.Int("quantity", it.Quantity))
	return s.itemRepo.GetByID(ctx, it.ID)
}

type UpdateItemInput struct {
	Name        *string
	Description *string
	Quantity    *int
	Price       *decimal.Decimal
	CategoryID  *uuid.UUID
}

// Update applies the patch and appends the derived RESTOCK/SALE/UPDATE
// entry. Ownership never changes here: managed_by is not patchable. The
// item row is locked until commit so two concurrent restocks cannot both
// read the same before-quantity.
func (s *ItemService) Update(ctx context.Context, itemID, actorID uuid.UUID, in UpdateItemInput) (*models.InventoryItem, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	it, err := s.itemRepo.GetByIDForUpdate(ctx, tx, itemID)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%w: item", ErrNotFound)
		}
		return nil, err
	}
	if it.ManagedBy != actorID {
		return nil, fmt.Errorf("%w: only the managing user may modify this item", ErrForbidden)
	}

	before := models.SnapshotOf(it)

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		it.Name = name
	}
	if in.Description != nil {
		it.Description = in.Description
	}
	if in.Quantity != nil {
		it.Quantity = *in.Quantity
	}
	if in.Price != nil {
		if err := models.ValidatePrice(*in.Price); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		it.Price = *in.Price
	}
	if in.CategoryID != nil {
		it.CategoryID = in.CategoryID
	}

	if err := s.itemRepo.Update(ctx, tx, it); err != nil {
		if isPgCode(err, pgForeignKeyViolation) {
			return nil, fmt.Errorf("%w: category", ErrNotFound)
		}
		return nil, err
	}

	after := models.SnapshotOf(it)
	entry, err := models.DeriveChange(&before, &after)
	if err != nil {
		return nil, err
	}
	entry.UserID = &actorID
	if err := s.logRepo.Append(ctx, tx, &entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.log.Info("item updated",
		zap.String("item_id", itemID.String()),
		zap.String("action", entry.Action),
		zap.Int("quantity_changed", entry.QuantityChanged))
	return s.itemRepo.GetByID(ctx, itemID)
}

// Delete appends the DELETE entry in the same transaction that removes the
// item, so the audit record exists exactly when the deletion commits. The
// entry carries no item reference and keeps the name snapshot, so it
// survives the row removal.
func (s *ItemService) Delete(ctx context.Context, itemID, actorID uuid.UUID) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	it, err := s.itemRepo.GetByIDForUpdate(ctx, tx, itemID)
	if err != nil {
		if isNoRows(err) {
			return fmt.Errorf("%w: item", ErrNotFound)
		}
		return err
	}
	if it.ManagedBy != actorID {
		return fmt.Errorf("%w: only the managing user may modify this item", ErrForbidden)
	}

	before := models.SnapshotOf(it)
	entry, err := models.DeriveChange(&before, nil)
	if err != nil {
		return err
	}
	entry.UserID = &actorID
	if err := s.logRepo.Append(ctx, tx, &entry); err != nil {
		return err
	}

	if err := s.itemRepo.Delete(ctx, tx, itemID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.log.Info("item deleted",
		zap.String("item_id", itemID.String()),
		zap.Int("quantity_changed", entry.QuantityChanged))
	return nil
}

func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	it, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%w: item", ErrNotFound)
		}
		return nil, err
	}
	return it, nil
}

func (s *ItemService) List(ctx context.Context, f repositories.ItemFilter) ([]models.InventoryItem, error) {
	return s.itemRepo.List(ctx, f)
}

func (s *ItemService) ListLowStock(ctx context.Context, threshold int) ([]models.InventoryItem, error) {
	return s.itemRepo.ListLowStock(ctx, threshold)
}
