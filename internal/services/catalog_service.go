package services

import (
	"context"
	"errors"

	"github.com/yamdb/yamdb-backend/internal/api/validate"
	"github.com/yamdb/yamdb-backend/internal/models"
	repo "github.com/yamdb/yamdb-backend/internal/repository"
)

// CatalogService manages categories, genres and titles. Title reads carry a
// rating recomputed from the current review set on every call; no aggregate
// is stored anywhere.
type CatalogService struct {
	cats    repo.Categories
	genres  repo.Genres
	titles  repo.Titles
	reviews repo.Reviews
}

func NewCatalogService(cats repo.Categories, genres repo.Genres, titles repo.Titles, reviews repo.Reviews) *CatalogService {
	return &CatalogService{cats: cats, genres: genres, titles: titles, reviews: reviews}
}

// ---------- categories ----------

func (s *CatalogService) ListCategories(ctx context.Context, search string, limit, offset int) ([]models.Category, int, error) {
	return s.cats.List(ctx, search, limit, offset)
}

func (s *CatalogService) CreateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	created, err := s.cats.Create(ctx, c)
	if errors.Is(err, repo.ErrConflict) {
		return models.Category{}, validate.Field("slug", "slug already in use")
	}
	return created, err
}

func (s *CatalogService) DeleteCategory(ctx context.Context, slug string) error {
	return s.cats.Delete(ctx, slug)
}

// ---------- genres ----------

func (s *CatalogService) ListGenres(ctx context.Context, search string, limit, offset int) ([]models.Genre, int, error) {
	return s.genres.List(ctx, search, limit, offset)
}

func (s *CatalogService) CreateGenre(ctx context.Context, g models.Genre) (models.Genre, error) {
	created, err := s.genres.Create(ctx, g)
	if errors.Is(err, repo.ErrConflict) {
		return models.Genre{}, validate.Field("slug", "slug already in use")
	}
	return created, err
}

func (s *CatalogService) DeleteGenre(ctx context.Context, slug string) error {
	return s.genres.Delete(ctx, slug)
}

// ---------- titles ----------

// TitleInput carries title writes; nil fields are left unchanged on update.
// Category and Genre reference existing rows by slug.
type TitleInput struct {
	Name        *string
	Year        *int
	Description *string
	Category    *string
	Genre       *[]string
}

func (s *CatalogService) ListTitles(ctx context.Context, f models.TitleFilter, limit, offset int) ([]models.Title, int, error) {
	titles, total, err := s.titles.List(ctx, f, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for i := range titles {
		if err := s.attachRating(ctx, &titles[i]); err != nil {
			return nil, 0, err
		}
	}
	return titles, total, nil
}

func (s *CatalogService) GetTitle(ctx context.Context, id int64) (models.Title, error) {
	t, err := s.titles.GetByID(ctx, id)
	if err != nil {
		return models.Title{}, err
	}
	if err := s.attachRating(ctx, &t); err != nil {
		return models.Title{}, err
	}
	return t, nil
}

func (s *CatalogService) CreateTitle(ctx context.Context, in TitleInput) (models.Title, error) {
	var t models.Title
	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.Year != nil {
		t.Year = *in.Year
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if err := s.resolveRefs(ctx, &t, in); err != nil {
		return models.Title{}, err
	}
	created, err := s.titles.Create(ctx, t)
	if err != nil {
		return models.Title{}, err
	}
	if err := s.attachRating(ctx, &created); err != nil {
		return models.Title{}, err
	}
	return created, nil
}

func (s *CatalogService) UpdateTitle(ctx context.Context, id int64, in TitleInput) (models.Title, error) {
	t, err := s.titles.GetByID(ctx, id)
	if err != nil {
		return models.Title{}, err
	}
	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.Year != nil {
		t.Year = *in.Year
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if err := s.resolveRefs(ctx, &t, in); err != nil {
		return models.Title{}, err
	}
	updated, err := s.titles.Update(ctx, t)
	if err != nil {
		return models.Title{}, err
	}
	if err := s.attachRating(ctx, &updated); err != nil {
		return models.Title{}, err
	}
	return updated, nil
}

func (s *CatalogService) DeleteTitle(ctx context.Context, id int64) error {
	return s.titles.Delete(ctx, id)
}

// resolveRefs turns category/genre slugs into loaded rows. An unknown slug
// is a field validation error, not a 404: the title is the resource here.
func (s *CatalogService) resolveRefs(ctx context.Context, t *models.Title, in TitleInput) error {
	if in.Category != nil {
		if *in.Category == "" {
			t.Category = nil
		} else {
			c, err := s.cats.GetBySlug(ctx, *in.Category)
			if errors.Is(err, repo.ErrNotFound) {
				return validate.Field("category", "category with this slug does not exist")
			}
			if err != nil {
				return err
			}
			t.Category = &c
		}
	}
	if in.Genre != nil {
		gs, err := s.genres.GetBySlugs(ctx, *in.Genre)
		if errors.Is(err, repo.ErrNotFound) {
			return validate.Field("genre", "genre with this slug does not exist")
		}
		if err != nil {
			return err
		}
		t.Genres = gs
	}
	return nil
}

func (s *CatalogService) attachRating(ctx context.Context, t *models.Title) error {
	scores, err := s.reviews.ScoresByTitle(ctx, t.ID)
	if err != nil {
		return err
	}
	t.Rating = models.Rating(scores)
	return nil
}
