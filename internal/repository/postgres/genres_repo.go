package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yamdb/yamdb-backend/internal/models"
	repo "github.com/yamdb/yamdb-backend/internal/repository"
)

type genresRepo struct{ pool *pgxpool.Pool }

func NewGenres(pool *pgxpool.Pool) repo.Genres {
	return &genresRepo{pool: pool}
}

func (r *genresRepo) Create(ctx context.Context, g models.Genre) (models.Genre, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO genres(name, slug) VALUES($1,$2) RETURNING id`,
		g.Name, g.Slug,
	).Scan(&g.ID)
	return g, mapErr(err)
}

func (r *genresRepo) GetBySlug(ctx context.Context, slug string) (models.Genre, error) {
	var g models.Genre
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, slug FROM genres WHERE slug=$1`, slug,
	).Scan(&g.ID, &g.Name, &g.Slug)
	return g, mapErr(err)
}

// GetBySlugs resolves every slug or fails with ErrNotFound if any is unknown.
func (r *genresRepo) GetBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	if len(slugs) == 0 {
		return []models.Genre{}, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, slug FROM genres WHERE slug = ANY($1) ORDER BY name`, slugs)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	found := map[string]models.Genre{}
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug); err != nil {
			return nil, mapErr(err)
		}
		found[g.Slug] = g
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}

	out := make([]models.Genre, 0, len(slugs))
	for _, s := range slugs {
		g, ok := found[s]
		if !ok {
			return nil, repo.ErrNotFound
		}
		out = append(out, g)
	}
	return out, nil
}

func (r *genresRepo) List(ctx context.Context, search string, limit, offset int) ([]models.Genre, int, error) {
	pattern := "%" + search + "%"
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM genres WHERE name ILIKE $1`, pattern).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, slug FROM genres WHERE name ILIKE $1
		 ORDER BY name LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	out := []models.Genre{}
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug); err != nil {
			return nil, 0, mapErr(err)
		}
		out = append(out, g)
	}
	return out, total, mapErr(rows.Err())
}

func (r *genresRepo) Delete(ctx context.Context, slug string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM genres WHERE slug=$1`, slug)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
