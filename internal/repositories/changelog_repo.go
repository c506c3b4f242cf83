package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stocktrail/backend/internal/models"
)

// ChangeLogRepo appends to and reads the audit ledger. There is no update
// or delete path: the ledger is append-only.
type ChangeLogRepo struct {
	pool *pgxpool.Pool
}

func NewChangeLogRepo(pool *pgxpool.Pool) *ChangeLogRepo {
	return &ChangeLogRepo{pool: pool}
}

func (r *ChangeLogRepo) Append(ctx context.Context, q Querier, entry *models.ChangeLog) error {
	return q.QueryRow(ctx, `
		INSERT INTO change_log (item_id, item_name, user_id, action, quantity_changed, remarks)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, timestamp
	`, entry.ItemID, entry.ItemName, entry.UserID, entry.Action, entry.QuantityChanged, entry.Remarks,
	).Scan(&entry.ID, &entry.Timestamp)
}

func (r *ChangeLogRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ChangeLog, error) {
	var l models.ChangeLog
	err := r.pool.QueryRow(ctx, `
		SELECT l.id, l.item_id, l.item_name, l.user_id, l.action,
		       l.quantity_changed, l.timestamp, l.remarks, u.username
		FROM change_log l
		LEFT JOIN users u ON u.id = l.user_id
		WHERE l.id = $1
	`, id).Scan(&l.ID, &l.ItemID, &l.ItemName, &l.UserID, &l.Action,
		&l.QuantityChanged, &l.Timestamp, &l.Remarks, &l.UserUsername)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

type ChangeLogFilter struct {
	ItemID   *uuid.UUID
	UserID   *uuid.UUID
	Action   *string
	Ordering string // timestamp or -timestamp
	Limit    int
	Offset   int
}

func (r *ChangeLogRepo) List(ctx context.Context, f ChangeLogFilter) ([]models.ChangeLog, error) {
	query := `
		SELECT l.id, l.item_id, l.item_name, l.user_id, l.action,
		       l.quantity_changed, l.timestamp, l.remarks, u.username
		FROM change_log l
		LEFT JOIN users u ON u.id = l.user_id
	`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.ItemID != nil {
		where = append(where, fmt.Sprintf("l.item_id = $%d", argIdx))
		args = append(args, *f.ItemID)
		argIdx++
	}
	if f.UserID != nil {
		where = append(where, fmt.Sprintf("l.user_id = $%d", argIdx))
		args = append(args, *f.UserID)
		argIdx++
	}
	if f.Action != nil {
		where = append(where, fmt.Sprintf("l.action = $%d", argIdx))
		args = append(args, *f.Action)
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	orderBy := "l.timestamp DESC"
	if f.Ordering == "timestamp" {
		orderBy = "l.timestamp ASC"
	}

	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY %s LIMIT $%d OFFSET $%d", orderBy, argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.ChangeLog
	for rows.Next() {
		var l models.ChangeLog
		if err := rows.Scan(&l.ID, &l.ItemID, &l.ItemName, &l.UserID, &l.Action,
			&l.QuantityChanged, &l.Timestamp, &l.Remarks, &l.UserUsername); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
