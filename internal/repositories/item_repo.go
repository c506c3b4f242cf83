package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stocktrail/backend/internal/models"
)

const itemColumns = `
	i.id, i.name, i.description, i.quantity, i.price, i.category_id,
	i.date_added, i.last_updated, i.managed_by, c.name, u.username
`

type ItemRepo struct {
	pool *pgxpool.Pool
}

func NewItemRepo(pool *pgxpool.Pool) *ItemRepo {
	return &ItemRepo{pool: pool}
}

func (r *ItemRepo) Create(ctx context.Context, q Querier, it *models.InventoryItem) error {
	return q.QueryRow(ctx, `
		INSERT INTO items (name, description, quantity, price, category_id, managed_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, date_added, last_updated
	`, it.Name, it.Description, it.Quantity, it.Price, it.CategoryID, it.ManagedBy,
	).Scan(&it.ID, &it.DateAdded, &it.LastUpdated)
}

func (r *ItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	var it models.InventoryItem
	err := r.pool.QueryRow(ctx, `
		SELECT `+itemColumns+`
		FROM items i
		LEFT JOIN categories c ON c.id = i.category_id
		JOIN users u ON u.id = i.managed_by
		WHERE i.id = $1
	`, id).Scan(&it.ID, &it.Name, &it.Description, &it.Quantity, &it.Price, &it.CategoryID,
		&it.DateAdded, &it.LastUpdated, &it.ManagedBy, &it.CategoryName, &it.ManagedByUsername)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// GetByIDForUpdate locks the item row for the rest of the transaction so
// concurrent quantity changes cannot read the same before-state.
func (r *ItemRepo) GetByIDForUpdate(ctx context.Context, q Querier, id uuid.UUID) (*models.InventoryItem, error) {
	var it models.InventoryItem
	err := q.QueryRow(ctx, `
		SELECT id, name, description, quantity, price, category_id,
		       date_added, last_updated, managed_by
		FROM items WHERE id = $1
		FOR UPDATE
	`, id).Scan(&it.ID, &it.Name, &it.Description, &it.Quantity, &it.Price, &it.CategoryID,
		&it.DateAdded, &it.LastUpdated, &it.ManagedBy)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *ItemRepo) Update(ctx context.Context, q Querier, it *models.InventoryItem) error {
	return q.QueryRow(ctx, `
		UPDATE items SET name = $1, description = $2, quantity = $3, price = $4,
		       category_id = $5, last_updated = now()
		WHERE id = $6
		RETURNING last_updated
	`, it.Name, it.Description, it.Quantity, it.Price, it.CategoryID, it.ID,
	).Scan(&it.LastUpdated)
}

func (r *ItemRepo) Delete(ctx context.Context, q Querier, id uuid.UUID) error {
	_, err := q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	return err
}

type ItemFilter struct {
	CategoryID *uuid.UUID
	Price      *decimal.Decimal
	Search     string
	Ordering   string // name, quantity, price, date_added; "-" prefix for desc
	Limit      int
	Offset     int
}

var itemOrderings = map[string]string{
	"name":       "i.name",
	"quantity":   "i.quantity",
	"price":      "i.price",
	"date_added": "i.date_added",
}

func (r *ItemRepo) List(ctx context.Context, f ItemFilter) ([]models.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items i
		LEFT JOIN categories c ON c.id = i.category_id
		JOIN users u ON u.id = i.managed_by
	`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.CategoryID != nil {
		where = append(where, fmt.Sprintf("i.category_id = $%d", argIdx))
		args = append(args, *f.CategoryID)
		argIdx++
	}
	if f.Price != nil {
		where = append(where, fmt.Sprintf("i.price = $%d", argIdx))
		args = append(args, *f.Price)
		argIdx++
	}
	if f.Search != "" {
		where = append(where, fmt.Sprintf("(i.name ILIKE $%d OR i.description ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+f.Search+"%")
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	orderBy := "i.date_added DESC"
	if f.Ordering != "" {
		dir := "ASC"
		field := f.Ordering
		if strings.HasPrefix(field, "-") {
			dir = "DESC"
			field = field[1:]
		}
		if col, ok := itemOrderings[field]; ok {
			orderBy = col + " " + dir
		}
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY %s LIMIT $%d OFFSET $%d", orderBy, argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	return r.queryItems(ctx, query, args...)
}

// ListLowStock returns items whose quantity is strictly below threshold.
func (r *ItemRepo) ListLowStock(ctx context.Context, threshold int) ([]models.InventoryItem, error) {
	return r.queryItems(ctx, `
		SELECT `+itemColumns+`
		FROM items i
		LEFT JOIN categories c ON c.id = i.category_id
		JOIN users u ON u.id = i.managed_by
		WHERE i.quantity < $1
		ORDER BY i.quantity
	`, threshold)
}

func (r *ItemRepo) queryItems(ctx context.Context, query string, args ...any) ([]models.InventoryItem, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.InventoryItem
	for rows.Next() {
		var it models.InventoryItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Quantity, &it.Price, &it.CategoryID,
			&it.DateAdded, &it.LastUpdated, &it.ManagedBy, &it.CategoryName, &it.ManagedByUsername); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
