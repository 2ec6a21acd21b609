package repository

import (
	"context"
	"time"

	"internlink/internal/domain/user"
	"internlink/internal/infra"
	"internlink/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const createUserQuery = `
INSERT INTO users (id, email, password_hash, role, display_name, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
`

func (r *UserRepository) Create(ctx context.Context, dbtx db.DBTX, u *user.User, now time.Time) (uuid.UUID, error) {
	_, err := dbtx.Exec(ctx, createUserQuery,
		u.ID(), u.Email().Value(), u.PasswordHash(), u.Role().String(), u.DisplayName(), u.IsActive(), now)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}
	return u.ID(), nil
}

const updateLastLoginQuery = `
UPDATE users SET last_login = NOW(), updated_at = NOW()
WHERE id = $1
`

func (r *UserRepository) UpdateLastLogin(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) error {
	_, err := dbtx.Exec(ctx, updateLastLoginQuery, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}
