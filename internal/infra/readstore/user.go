package readstore

import (
	"context"

	"internlink/internal/infra"
	"internlink/internal/infra/db"
	"internlink/internal/pkg/pgconv"
	"internlink/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

const findUserByEmailQuery = `
SELECT id, email, role, display_name, is_active, password_hash, last_login, created_at
FROM users
WHERE email = $1
`

func (s *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	view := &queries.AuthorizedUserView{}
	var hash string
	err := s.db.QueryRow(ctx, findUserByEmailQuery, email).Scan(
		&view.ID, &view.Email, &view.Role, &view.DisplayName, &view.IsActive,
		&hash, &view.LastLogin, &view.CreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.NewRepoErr(infra.KindNotFound, "user not found", err)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	return view, hash, nil
}

const findUserByIDQuery = `
SELECT id, email, role, display_name, is_active, last_login, created_at
FROM users
WHERE id = $1
`

func (s *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	view := &queries.AuthorizedUserView{}
	err := s.db.QueryRow(ctx, findUserByIDQuery, id).Scan(
		&view.ID, &view.Email, &view.Role, &view.DisplayName, &view.IsActive,
		&view.LastLogin, &view.CreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "user not found", err)
		}
		return nil, infra.WrapRepoErr("failed to find user by id", err)
	}
	return view, nil
}

const displayNameByIDQuery = `
SELECT display_name FROM users WHERE id = $1
`

func (s *UserReadStore) DisplayNameByID(ctx context.Context, id uuid.UUID) (string, error) {
	var name string
	err := s.db.QueryRow(ctx, displayNameByIDQuery, id).Scan(&name)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return "", infra.NewRepoErr(infra.KindNotFound, "user not found", err)
		}
		return "", infra.WrapRepoErr("failed to resolve display name", err)
	}
	return name, nil
}
