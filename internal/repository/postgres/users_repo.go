package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yamdb/yamdb-backend/internal/models"
	repo "github.com/yamdb/yamdb-backend/internal/repository"
)

type usersRepo struct{ pool *pgxpool.Pool }

func NewUsers(pool *pgxpool.Pool) repo.Users {
	return &usersRepo{pool: pool}
}

const userCols = `id, username, email, first_name, last_name, bio, role, is_superuser, confirmation_code, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Bio,
		&u.Role, &u.IsSuperuser, &u.ConfirmationCode, &u.CreatedAt, &u.UpdatedAt)
	return u, mapErr(err)
}

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users(id, username, email, first_name, last_name, bio, role, is_superuser, confirmation_code)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.Bio, u.Role, u.IsSuperuser, u.ConfirmationCode,
	)
	if err != nil {
		return models.User{}, mapErr(err)
	}
	return r.GetByID(ctx, u.ID)
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE id=$1`, id))
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE username=$1`, username))
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE email=$1`, email))
}

func (r *usersRepo) List(ctx context.Context, search string, limit, offset int) ([]models.User, int, error) {
	pattern := "%" + search + "%"
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM users WHERE username ILIKE $1`, pattern).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+userCols+` FROM users WHERE username ILIKE $1
		 ORDER BY username LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, mapErr(rows.Err())
}

func (r *usersRepo) Update(ctx context.Context, u models.User) (models.User, error) {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET username=$2, email=$3, first_name=$4, last_name=$5, bio=$6, role=$7, updated_at=now()
		 WHERE id=$1`,
		u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.Bio, u.Role,
	)
	if err != nil {
		return models.User{}, mapErr(err)
	}
	return r.GetByID(ctx, u.ID)
}

func (r *usersRepo) Delete(ctx context.Context, username string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE username=$1`, username)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *usersRepo) SetConfirmationCode(ctx context.Context, id, code string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET confirmation_code=$2, updated_at=now() WHERE id=$1`, id, code)
	return mapErr(err)
}
