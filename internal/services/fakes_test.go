package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yamdb/yamdb-backend/internal/models"
	repo "github.com/yamdb/yamdb-backend/internal/repository"
)

// In-memory repository fakes. They enforce the same uniqueness rules as the
// database schema so the services' conflict handling is exercised for real.

type fakeUsers struct {
	mu    sync.Mutex
	rows  map[string]models.User // by ID
	nextN int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{rows: map[string]models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u models.User) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.rows {
		if ex.Username == u.Username || ex.Email == u.Email {
			return models.User{}, repo.ErrConflict
		}
	}
	f.nextN++
	u.ID = fmt.Sprintf("u-%d", f.nextN)
	u.CreatedAt = time.Now()
	f.rows[u.ID] = u
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.rows {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.rows {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}

func (f *fakeUsers) List(_ context.Context, search string, limit, offset int) ([]models.User, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []models.User
	for _, u := range f.rows {
		if search == "" || strings.Contains(strings.ToLower(u.Username), strings.ToLower(search)) {
			all = append(all, u)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Username < all[j].Username })
	return page(all, limit, offset), len(all), nil
}

func (f *fakeUsers) Update(_ context.Context, u models.User) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[u.ID]; !ok {
		return models.User{}, repo.ErrNotFound
	}
	for id, ex := range f.rows {
		if id != u.ID && (ex.Username == u.Username || ex.Email == u.Email) {
			return models.User{}, repo.ErrConflict
		}
	}
	f.rows[u.ID] = u
	return u, nil
}

func (f *fakeUsers) Delete(_ context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, u := range f.rows {
		if u.Username == username {
			delete(f.rows, id)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakeUsers) SetConfirmationCode(_ context.Context, id, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.ConfirmationCode = code
	f.rows[id] = u
	return nil
}

type fakeCategories struct {
	mu   sync.Mutex
	rows []models.Category
	next int64
}

func (f *fakeCategories) Create(_ context.Context, c models.Category) (models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.rows {
		if ex.Slug == c.Slug {
			return models.Category{}, repo.ErrConflict
		}
	}
	f.next++
	c.ID = f.next
	f.rows = append(f.rows, c)
	return c, nil
}

func (f *fakeCategories) GetBySlug(_ context.Context, slug string) (models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.rows {
		if c.Slug == slug {
			return c, nil
		}
	}
	return models.Category{}, repo.ErrNotFound
}

func (f *fakeCategories) List(_ context.Context, search string, limit, offset int) ([]models.Category, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []models.Category
	for _, c := range f.rows {
		if search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), len(all), nil
}

func (f *fakeCategories) Delete(_ context.Context, slug string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.rows {
		if c.Slug == slug {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

type fakeGenres struct {
	mu   sync.Mutex
	rows []models.Genre
	next int64
}

func (f *fakeGenres) Create(_ context.Context, g models.Genre) (models.Genre, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.rows {
		if ex.Slug == g.Slug {
			return models.Genre{}, repo.ErrConflict
		}
	}
	f.next++
	g.ID = f.next
	f.rows = append(f.rows, g)
	return g, nil
}

func (f *fakeGenres) GetBySlug(_ context.Context, slug string) (models.Genre, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.rows {
		if g.Slug == slug {
			return g, nil
		}
	}
	return models.Genre{}, repo.ErrNotFound
}

func (f *fakeGenres) GetBySlugs(_ context.Context, slugs []string) ([]models.Genre, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Genre, 0, len(slugs))
	for _, slug := range slugs {
		found := false
		for _, g := range f.rows {
			if g.Slug == slug {
				out = append(out, g)
				found = true
				break
			}
		}
		if !found {
			return nil, repo.ErrNotFound
		}
	}
	return out, nil
}

func (f *fakeGenres) List(_ context.Context, search string, limit, offset int) ([]models.Genre, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []models.Genre
	for _, g := range f.rows {
		if search == "" || strings.Contains(strings.ToLower(g.Name), strings.ToLower(search)) {
			all = append(all, g)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), len(all), nil
}

func (f *fakeGenres) Delete(_ context.Context, slug string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, g := range f.rows {
		if g.Slug == slug {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

type fakeTitles struct {
	mu   sync.Mutex
	rows map[int64]models.Title
	next int64
}

func newFakeTitles() *fakeTitles {
	return &fakeTitles{rows: map[int64]models.Title{}}
}

func (f *fakeTitles) Create(_ context.Context, t models.Title) (models.Title, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	t.ID = f.next
	f.rows[t.ID] = t
	return t, nil
}

func (f *fakeTitles) GetByID(_ context.Context, id int64) (models.Title, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.rows[id]
	if !ok {
		return models.Title{}, repo.ErrNotFound
	}
	return t, nil
}

func (f *fakeTitles) List(_ context.Context, flt models.TitleFilter, limit, offset int) ([]models.Title, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []models.Title
	for _, t := range f.rows {
		if flt.Name != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(flt.Name)) {
			continue
		}
		if flt.Year != 0 && t.Year != flt.Year {
			continue
		}
		if flt.CategorySlug != "" && (t.Category == nil || t.Category.Slug != flt.CategorySlug) {
			continue
		}
		if flt.GenreSlug != "" {
			match := false
			for _, g := range t.Genres {
				if g.Slug == flt.GenreSlug {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Year != all[j].Year {
			return all[i].Year > all[j].Year
		}
		return all[i].Name < all[j].Name
	})
	return page(all, limit, offset), len(all), nil
}

func (f *fakeTitles) Update(_ context.Context, t models.Title) (models.Title, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[t.ID]; !ok {
		return models.Title{}, repo.ErrNotFound
	}
	f.rows[t.ID] = t
	return t, nil
}

func (f *fakeTitles) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeReviews struct {
	mu   sync.Mutex
	rows map[int64]models.Review
	next int64
}

func newFakeReviews() *fakeReviews {
	return &fakeReviews{rows: map[int64]models.Review{}}
}

func (f *fakeReviews) Create(_ context.Context, r models.Review) (models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.rows {
		if ex.AuthorID == r.AuthorID && ex.TitleID == r.TitleID {
			return models.Review{}, repo.ErrConflict
		}
	}
	f.next++
	r.ID = f.next
	r.PubDate = time.Now()
	f.rows[r.ID] = r
	return r, nil
}

func (f *fakeReviews) GetByID(_ context.Context, titleID, id int64) (models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	if !ok || r.TitleID != titleID {
		return models.Review{}, repo.ErrNotFound
	}
	return r, nil
}

func (f *fakeReviews) ListByTitle(_ context.Context, titleID int64, limit, offset int) ([]models.Review, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []models.Review
	for _, r := range f.rows {
		if r.TitleID == titleID {
			all = append(all, r)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].PubDate.After(all[j].PubDate) })
	return page(all, limit, offset), len(all), nil
}

func (f *fakeReviews) ExistsByAuthorTitle(_ context.Context, authorID string, titleID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.AuthorID == authorID && r.TitleID == titleID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviews) ScoresByTitle(_ context.Context, titleID int64) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var scores []int
	for _, r := range f.rows {
		if r.TitleID == titleID {
			scores = append(scores, r.Score)
		}
	}
	return scores, nil
}

func (f *fakeReviews) Update(_ context.Context, r models.Review) (models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ex, ok := f.rows[r.ID]
	if !ok {
		return models.Review{}, repo.ErrNotFound
	}
	ex.Text = r.Text
	ex.Score = r.Score
	f.rows[r.ID] = ex
	return ex, nil
}

func (f *fakeReviews) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeComments struct {
	mu   sync.Mutex
	rows map[int64]models.Comment
	next int64
}

func newFakeComments() *fakeComments {
	return &fakeComments{rows: map[int64]models.Comment{}}
}

func (f *fakeComments) Create(_ context.Context, c models.Comment) (models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	c.ID = f.next
	c.PubDate = time.Now()
	f.rows[c.ID] = c
	return c, nil
}

func (f *fakeComments) GetByID(_ context.Context, reviewID, id int64) (models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.rows[id]
	if !ok || c.ReviewID != reviewID {
		return models.Comment{}, repo.ErrNotFound
	}
	return c, nil
}

func (f *fakeComments) ListByReview(_ context.Context, reviewID int64, limit, offset int) ([]models.Comment, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []models.Comment
	for _, c := range f.rows {
		if c.ReviewID == reviewID {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].PubDate.After(all[j].PubDate) })
	return page(all, limit, offset), len(all), nil
}

func (f *fakeComments) Update(_ context.Context, c models.Comment) (models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ex, ok := f.rows[c.ID]
	if !ok {
		return models.Comment{}, repo.ErrNotFound
	}
	ex.Text = c.Text
	f.rows[c.ID] = ex
	return ex, nil
}

func (f *fakeComments) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
