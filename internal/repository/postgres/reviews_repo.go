package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yamdb/yamdb-backend/internal/models"
	repo "github.com/yamdb/yamdb-backend/internal/repository"
)

type reviewsRepo struct{ pool *pgxpool.Pool }

func NewReviews(pool *pgxpool.Pool) repo.Reviews {
	return &reviewsRepo{pool: pool}
}

const reviewCols = `r.id, r.title_id, r.author_id, u.username, r.text, r.score, r.pub_date`

func (r *reviewsRepo) Create(ctx context.Context, rev models.Review) (models.Review, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO reviews(title_id, author_id, text, score) VALUES($1,$2,$3,$4) RETURNING id`,
		rev.TitleID, rev.AuthorID, rev.Text, rev.Score,
	).Scan(&id)
	if err != nil {
		return models.Review{}, mapErr(err)
	}
	return r.GetByID(ctx, rev.TitleID, id)
}

func (r *reviewsRepo) GetByID(ctx context.Context, titleID, id int64) (models.Review, error) {
	var rev models.Review
	err := r.pool.QueryRow(ctx,
		`SELECT `+reviewCols+` FROM reviews r JOIN users u ON u.id = r.author_id
		 WHERE r.id=$1 AND r.title_id=$2`, id, titleID,
	).Scan(&rev.ID, &rev.TitleID, &rev.AuthorID, &rev.Author, &rev.Text, &rev.Score, &rev.PubDate)
	return rev, mapErr(err)
}

func (r *reviewsRepo) ListByTitle(ctx context.Context, titleID int64, limit, offset int) ([]models.Review, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM reviews WHERE title_id=$1`, titleID).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+reviewCols+` FROM reviews r JOIN users u ON u.id = r.author_id
		 WHERE r.title_id=$1 ORDER BY r.pub_date DESC LIMIT $2 OFFSET $3`,
		titleID, limit, offset)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	out := []models.Review{}
	for rows.Next() {
		var rev models.Review
		if err := rows.Scan(&rev.ID, &rev.TitleID, &rev.AuthorID, &rev.Author, &rev.Text, &rev.Score, &rev.PubDate); err != nil {
			return nil, 0, mapErr(err)
		}
		out = append(out, rev)
	}
	return out, total, mapErr(rows.Err())
}

func (r *reviewsRepo) ExistsByAuthorTitle(ctx context.Context, authorID string, titleID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM reviews WHERE author_id=$1 AND title_id=$2)`,
		authorID, titleID).Scan(&exists)
	return exists, mapErr(err)
}

func (r *reviewsRepo) ScoresByTitle(ctx context.Context, titleID int64) ([]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT score FROM reviews WHERE title_id=$1`, titleID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var scores []int
	for rows.Next() {
		var s int
		if err := rows.Scan(&s); err != nil {
			return nil, mapErr(err)
		}
		scores = append(scores, s)
	}
	return scores, mapErr(rows.Err())
}

func (r *reviewsRepo) Update(ctx context.Context, rev models.Review) (models.Review, error) {
	// pub_date is immutable: only text and score may change
	tag, err := r.pool.Exec(ctx,
		`UPDATE reviews SET text=$2, score=$3 WHERE id=$1`,
		rev.ID, rev.Text, rev.Score)
	if err != nil {
		return models.Review{}, mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return models.Review{}, repo.ErrNotFound
	}
	return r.GetByID(ctx, rev.TitleID, rev.ID)
}

func (r *reviewsRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
