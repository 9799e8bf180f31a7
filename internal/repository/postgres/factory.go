package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/yamdb/yamdb-backend/internal/repository"
)

type Repositories struct {
	Users      repo.Users
	Categories repo.Categories
	Genres     repo.Genres
	Titles     repo.Titles
	Reviews    repo.Reviews
	Comments   repo.Comments
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:      &usersRepo{pool},
		Categories: &categoriesRepo{pool},
		Genres:     &genresRepo{pool},
		Titles:     &titlesRepo{pool},
		Reviews:    &reviewsRepo{pool},
		Comments:   &commentsRepo{pool},
	}
}
