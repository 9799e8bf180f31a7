package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yamdb/yamdb-backend/internal/models"
	repo "github.com/yamdb/yamdb-backend/internal/repository"
)

type titlesRepo struct{ pool *pgxpool.Pool }

func NewTitles(pool *pgxpool.Pool) repo.Titles {
	return &titlesRepo{pool: pool}
}

func (r *titlesRepo) Create(ctx context.Context, t models.Title) (models.Title, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return models.Title{}, mapErr(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var categoryID *int64
	if t.Category != nil {
		categoryID = &t.Category.ID
	}
	if err := tx.QueryRow(ctx,
		`INSERT INTO titles(name, year, description, category_id) VALUES($1,$2,$3,$4) RETURNING id`,
		t.Name, t.Year, t.Description, categoryID,
	).Scan(&t.ID); err != nil {
		return models.Title{}, mapErr(err)
	}
	if err := replaceGenreLinks(ctx, tx, t.ID, t.Genres); err != nil {
		return models.Title{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return models.Title{}, mapErr(err)
	}
	return r.GetByID(ctx, t.ID)
}

func (r *titlesRepo) Update(ctx context.Context, t models.Title) (models.Title, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return models.Title{}, mapErr(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var categoryID *int64
	if t.Category != nil {
		categoryID = &t.Category.ID
	}
	tag, err := tx.Exec(ctx,
		`UPDATE titles SET name=$2, year=$3, description=$4, category_id=$5 WHERE id=$1`,
		t.ID, t.Name, t.Year, t.Description, categoryID,
	)
	if err != nil {
		return models.Title{}, mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return models.Title{}, repo.ErrNotFound
	}
	if err := replaceGenreLinks(ctx, tx, t.ID, t.Genres); err != nil {
		return models.Title{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return models.Title{}, mapErr(err)
	}
	return r.GetByID(ctx, t.ID)
}

func replaceGenreLinks(ctx context.Context, tx pgx.Tx, titleID int64, genres []models.Genre) error {
	if _, err := tx.Exec(ctx, `DELETE FROM genre_title WHERE title_id=$1`, titleID); err != nil {
		return mapErr(err)
	}
	for _, g := range genres {
		if _, err := tx.Exec(ctx,
			`INSERT INTO genre_title(title_id, genre_id) VALUES($1,$2) ON CONFLICT DO NOTHING`,
			titleID, g.ID); err != nil {
			return mapErr(err)
		}
	}
	return nil
}

func (r *titlesRepo) GetByID(ctx context.Context, id int64) (models.Title, error) {
	var (
		t            models.Title
		catID        *int64
		catName      *string
		catSlug      *string
	)
	err := r.pool.QueryRow(ctx,
		`SELECT t.id, t.name, t.year, t.description, c.id, c.name, c.slug
		 FROM titles t LEFT JOIN categories c ON c.id = t.category_id
		 WHERE t.id=$1`, id,
	).Scan(&t.ID, &t.Name, &t.Year, &t.Description, &catID, &catName, &catSlug)
	if err != nil {
		return models.Title{}, mapErr(err)
	}
	if catID != nil {
		t.Category = &models.Category{ID: *catID, Name: *catName, Slug: *catSlug}
	}
	genres, err := r.genresForTitles(ctx, []int64{t.ID})
	if err != nil {
		return models.Title{}, err
	}
	t.Genres = genres[t.ID]
	return t, nil
}

func (r *titlesRepo) List(ctx context.Context, f models.TitleFilter, limit, offset int) ([]models.Title, int, error) {
	where := `WHERE ($1 = '' OR c.slug = $1)
		AND ($2 = '' OR EXISTS (
			SELECT 1 FROM genre_title gt JOIN genres g ON g.id = gt.genre_id
			WHERE gt.title_id = t.id AND g.slug = $2))
		AND ($3 = '' OR t.name ILIKE '%' || $3 || '%')
		AND ($4 = 0 OR t.year = $4)`
	args := []any{f.CategorySlug, f.GenreSlug, f.Name, f.Year}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM titles t LEFT JOIN categories c ON c.id = t.category_id `+where,
		args...).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT t.id, t.name, t.year, t.description, c.id, c.name, c.slug
		 FROM titles t LEFT JOIN categories c ON c.id = t.category_id `+where+`
		 ORDER BY t.year DESC, t.name LIMIT $5 OFFSET $6`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	out := []models.Title{}
	ids := []int64{}
	for rows.Next() {
		var (
			t       models.Title
			catID   *int64
			catName *string
			catSlug *string
		)
		if err := rows.Scan(&t.ID, &t.Name, &t.Year, &t.Description, &catID, &catName, &catSlug); err != nil {
			return nil, 0, mapErr(err)
		}
		if catID != nil {
			t.Category = &models.Category{ID: *catID, Name: *catName, Slug: *catSlug}
		}
		out = append(out, t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapErr(err)
	}

	genres, err := r.genresForTitles(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range out {
		out[i].Genres = genres[out[i].ID]
	}
	return out, total, nil
}

// genresForTitles loads genre links for a batch of titles in one query.
func (r *titlesRepo) genresForTitles(ctx context.Context, titleIDs []int64) (map[int64][]models.Genre, error) {
	out := make(map[int64][]models.Genre, len(titleIDs))
	for _, id := range titleIDs {
		out[id] = []models.Genre{}
	}
	if len(titleIDs) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT gt.title_id, g.id, g.name, g.slug
		 FROM genre_title gt JOIN genres g ON g.id = gt.genre_id
		 WHERE gt.title_id = ANY($1) ORDER BY g.name`, titleIDs)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			titleID int64
			g       models.Genre
		)
		if err := rows.Scan(&titleID, &g.ID, &g.Name, &g.Slug); err != nil {
			return nil, mapErr(err)
		}
		out[titleID] = append(out[titleID], g)
	}
	return out, mapErr(rows.Err())
}

func (r *titlesRepo) Delete(ctx context.Context, id int64) error {
	// reviews and comments cascade at the schema level
	tag, err := r.pool.Exec(ctx, `DELETE FROM titles WHERE id=$1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
