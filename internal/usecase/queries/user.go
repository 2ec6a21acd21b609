package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type AuthorizedUserView struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	DisplayName string     `json:"display_name"`
	IsActive    bool       `json:"is_active"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type UserReadStore interface {
	// FindByEmail returns the user view together with the password hash.
	FindByEmail(ctx context.Context, email string) (*AuthorizedUserView, string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
	// DisplayNameByID resolves a recipient/actor display name when
	// composing human-readable notification text.
	DisplayNameByID(ctx context.Context, id uuid.UUID) (string, error)
}

type UserQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
}

type userQueriesImpl struct {
	readStore UserReadStore
}

func NewUserQueries(readStore UserReadStore) UserQueries {
	return &userQueriesImpl{readStore: readStore}
}

func (q *userQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error) {
	return q.readStore.FindByID(ctx, id)
}
