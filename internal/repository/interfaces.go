package repository

import (
	"context"

	"github.com/yamdb/yamdb-backend/internal/models"
)

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	// List returns a page ordered by username plus the total match count.
	List(ctx context.Context, search string, limit, offset int) ([]models.User, int, error)
	Update(ctx context.Context, u models.User) (models.User, error)
	Delete(ctx context.Context, username string) error
	SetConfirmationCode(ctx context.Context, id, code string) error
}

type Categories interface {
	Create(ctx context.Context, c models.Category) (models.Category, error)
	GetBySlug(ctx context.Context, slug string) (models.Category, error)
	List(ctx context.Context, search string, limit, offset int) ([]models.Category, int, error)
	Delete(ctx context.Context, slug string) error
}

type Genres interface {
	Create(ctx context.Context, g models.Genre) (models.Genre, error)
	GetBySlug(ctx context.Context, slug string) (models.Genre, error)
	GetBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error)
	List(ctx context.Context, search string, limit, offset int) ([]models.Genre, int, error)
	Delete(ctx context.Context, slug string) error
}

type Titles interface {
	// Create persists the title; t.Category and t.Genres must carry
	// resolved IDs. Genre links are written to the join table.
	Create(ctx context.Context, t models.Title) (models.Title, error)
	GetByID(ctx context.Context, id int64) (models.Title, error)
	List(ctx context.Context, f models.TitleFilter, limit, offset int) ([]models.Title, int, error)
	// Update rewrites the row and replaces the genre links wholesale.
	Update(ctx context.Context, t models.Title) (models.Title, error)
	Delete(ctx context.Context, id int64) error
}

type Reviews interface {
	Create(ctx context.Context, r models.Review) (models.Review, error)
	GetByID(ctx context.Context, titleID, id int64) (models.Review, error)
	ListByTitle(ctx context.Context, titleID int64, limit, offset int) ([]models.Review, int, error)
	ExistsByAuthorTitle(ctx context.Context, authorID string, titleID int64) (bool, error)
	// ScoresByTitle feeds the read-time rating computation; there is no
	// stored aggregate to invalidate.
	ScoresByTitle(ctx context.Context, titleID int64) ([]int, error)
	Update(ctx context.Context, r models.Review) (models.Review, error)
	Delete(ctx context.Context, id int64) error
}

type Comments interface {
	Create(ctx context.Context, c models.Comment) (models.Comment, error)
	GetByID(ctx context.Context, reviewID, id int64) (models.Comment, error)
	ListByReview(ctx context.Context, reviewID int64, limit, offset int) ([]models.Comment, int, error)
	Update(ctx context.Context, c models.Comment) (models.Comment, error)
	Delete(ctx context.Context, id int64) error
}
