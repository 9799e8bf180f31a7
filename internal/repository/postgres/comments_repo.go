package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yamdb/yamdb-backend/internal/models"
	repo "github.com/yamdb/yamdb-backend/internal/repository"
)

type commentsRepo struct{ pool *pgxpool.Pool }

func NewComments(pool *pgxpool.Pool) repo.Comments {
	return &commentsRepo{pool: pool}
}

const commentCols = `c.id, c.review_id, c.author_id, u.username, c.text, c.pub_date`

func (r *commentsRepo) Create(ctx context.Context, cm models.Comment) (models.Comment, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO comments(review_id, author_id, text) VALUES($1,$2,$3) RETURNING id`,
		cm.ReviewID, cm.AuthorID, cm.Text,
	).Scan(&id)
	if err != nil {
		return models.Comment{}, mapErr(err)
	}
	return r.GetByID(ctx, cm.ReviewID, id)
}

func (r *commentsRepo) GetByID(ctx context.Context, reviewID, id int64) (models.Comment, error) {
	var cm models.Comment
	err := r.pool.QueryRow(ctx,
		`SELECT `+commentCols+` FROM comments c JOIN users u ON u.id = c.author_id
		 WHERE c.id=$1 AND c.review_id=$2`, id, reviewID,
	).Scan(&cm.ID, &cm.ReviewID, &cm.AuthorID, &cm.Author, &cm.Text, &cm.PubDate)
	return cm, mapErr(err)
}

func (r *commentsRepo) ListByReview(ctx context.Context, reviewID int64, limit, offset int) ([]models.Comment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM comments WHERE review_id=$1`, reviewID).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+commentCols+` FROM comments c JOIN users u ON u.id = c.author_id
		 WHERE c.review_id=$1 ORDER BY c.pub_date DESC LIMIT $2 OFFSET $3`,
		reviewID, limit, offset)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	out := []models.Comment{}
	for rows.Next() {
		var cm models.Comment
		if err := rows.Scan(&cm.ID, &cm.ReviewID, &cm.AuthorID, &cm.Author, &cm.Text, &cm.PubDate); err != nil {
			return nil, 0, mapErr(err)
		}
		out = append(out, cm)
	}
	return out, total, mapErr(rows.Err())
}

func (r *commentsRepo) Update(ctx context.Context, cm models.Comment) (models.Comment, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE comments SET text=$2 WHERE id=$1`, cm.ID, cm.Text)
	if err != nil {
		return models.Comment{}, mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return models.Comment{}, repo.ErrNotFound
	}
	return r.GetByID(ctx, cm.ReviewID, cm.ID)
}

func (r *commentsRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id=$1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
