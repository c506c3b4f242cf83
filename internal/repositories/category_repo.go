package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stocktrail/backend/internal/models"
)

type CategoryRepo struct {
	pool *pgxpool.Pool
}

func NewCategoryRepo(pool *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{pool: pool}
}

func (r *CategoryRepo) Create(ctx context.Context, c *models.Category) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING id
	`, c.Name, c.Description).Scan(&c.ID)
}

func (r *CategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var c models.Category
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, description FROM categories WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepo) Update(ctx context.Context, c *models.Category) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE categories SET name = $1, description = $2 WHERE id = $3
	`, c.Name, c.Description, c.ID)
	return err
}

// Delete removes the category; items referencing it get category_id nulled
// by the FK, never deleted.
func (r *CategoryRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
