package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type NotificationView struct {
	ID               uuid.UUID
	RecipientID      uuid.UUID
	Type             string
	Title            string
	Message          string
	RelatedPostingID *uuid.UUID
	RelatedActorID   *uuid.UUID
	Read             bool
	CreatedAt        time.Time
}

type NotificationReadStore interface {
	ListForRecipient(ctx context.Context, recipientID uuid.UUID, limit int) ([]*NotificationView, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)
}

type NotificationQueries interface {
	// List returns the recipient's notifications, most recent first.
	List(ctx context.Context, recipientID uuid.UUID, limit int) ([]*NotificationView, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)
}

type notificationQueriesImpl struct {
	readStore NotificationReadStore
}

func NewNotificationQueries(readStore NotificationReadStore) NotificationQueries {
	return &notificationQueriesImpl{readStore: readStore}
}

func (q *notificationQueriesImpl) List(ctx context.Context, recipientID uuid.UUID, limit int) ([]*NotificationView, error) {
	return q.readStore.ListForRecipient(ctx, recipientID, ValidateLimit(limit))
}

func (q *notificationQueriesImpl) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	return q.readStore.CountUnread(ctx, recipientID)
}
