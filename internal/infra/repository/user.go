package repository

import (
	"context"
	"time"

	"coworkhub/internal/domain/user"
	"coworkhub/internal/infra"
	"coworkhub/internal/infra/db"

	"github.com/jackc/pgx/v5"
	"github.com/google/uuid"
)

type UserRepository struct {
	q db.Querier
}

func NewUserRepository(q db.Querier) *UserRepository {
	return &UserRepository{q: q}
}

const insertUserSQL = `
INSERT INTO users (id, email, password_hash, display_name, role, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())
`

func (r *UserRepository) Create(ctx context.Context, u *user.User) (uuid.UUID, error) {
	_, err := r.q.Exec(ctx, insertUserSQL,
		u.ID(), u.Email().Value(), u.PasswordHash(), u.DisplayName(), u.Role().String(), u.IsActive(),
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err, infra.KindFromPgError(err))
	}
	return u.ID(), nil
}

const selectUserSQL = `
SELECT id, email, password_hash, display_name, role, last_login, is_active, created_at, updated_at
FROM users
`

func (r *UserRepository) FindByEmail(ctx context.Context, email user.Email) (*user.User, error) {
	row := r.q.QueryRow(ctx, selectUserSQL+"WHERE email = $1", email.Value())
	return scanUser(row)
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row := r.q.QueryRow(ctx, selectUserSQL+"WHERE id = $1", id)
	return scanUser(row)
}

const updateLastLoginSQL = `
UPDATE users SET last_login = $2, updated_at = now() WHERE id = $1
`

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	if _, err := r.q.Exec(ctx, updateLastLoginSQL, userID, at); err != nil {
		return infra.WrapRepoErr("failed to update last login", err, infra.KindFromPgError(err))
	}
	return nil
}

func scanUser(row pgx.Row) (*user.User, error) {
	var (
		id           uuid.UUID
		rawEmail     string
		passwordHash string
		displayName  string
		rawRole      string
		lastLogin    *time.Time
		isActive     bool
		createdAt    time.Time
		updatedAt    time.Time
	)
	if err := row.Scan(&id, &rawEmail, &passwordHash, &displayName, &rawRole, &lastLogin, &isActive, &createdAt, &updatedAt); err != nil {
		return nil, infra.WrapRepoErr("user not found", err, infra.KindFromPgError(err))
	}

	email, err := user.NewEmail(rawEmail)
	if err != nil {
		return nil, infra.WrapRepoErr("stored email is invalid", err)
	}
	role, err := user.NewRole(rawRole)
	if err != nil {
		return nil, infra.WrapRepoErr("stored role is invalid", err)
	}

	return user.ReconstructUser(id, email, passwordHash, displayName, role, lastLogin, isActive, createdAt, updatedAt), nil
}
