package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yamdb/yamdb-backend/internal/models"
	repo "github.com/yamdb/yamdb-backend/internal/repository"
)

type categoriesRepo struct{ pool *pgxpool.Pool }

func NewCategories(pool *pgxpool.Pool) repo.Categories {
	return &categoriesRepo{pool: pool}
}

func (r *categoriesRepo) Create(ctx context.Context, c models.Category) (models.Category, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO categories(name, slug) VALUES($1,$2) RETURNING id`,
		c.Name, c.Slug,
	).Scan(&c.ID)
	return c, mapErr(err)
}

func (r *categoriesRepo) GetBySlug(ctx context.Context, slug string) (models.Category, error) {
	var c models.Category
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, slug FROM categories WHERE slug=$1`, slug,
	).Scan(&c.ID, &c.Name, &c.Slug)
	return c, mapErr(err)
}

func (r *categoriesRepo) List(ctx context.Context, search string, limit, offset int) ([]models.Category, int, error) {
	pattern := "%" + search + "%"
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM categories WHERE name ILIKE $1`, pattern).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, slug FROM categories WHERE name ILIKE $1
		 ORDER BY name LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	out := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, 0, mapErr(err)
		}
		out = append(out, c)
	}
	return out, total, mapErr(rows.Err())
}

func (r *categoriesRepo) Delete(ctx context.Context, slug string) error {
	// titles.category_id is ON DELETE SET NULL, dependent titles survive
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE slug=$1`, slug)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
