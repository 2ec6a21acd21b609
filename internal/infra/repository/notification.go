package repository

import (
	"context"

	"internlink/internal/domain/notification"
	"internlink/internal/infra"
	"internlink/internal/infra/db"

	"github.com/google/uuid"
)

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

const createNotificationQuery = `
INSERT INTO notifications (id, recipient_id, type, title, message, read, related_posting_id, related_actor_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

func (r *NotificationRepository) Create(ctx context.Context, dbtx db.DBTX, n *notification.Notification) error {
	_, err := dbtx.Exec(ctx, createNotificationQuery,
		n.ID(), n.RecipientID(), n.Type().String(), n.Title(), n.Message(),
		n.Read(), n.RelatedPostingID(), n.RelatedActorID(), n.CreatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create notification", err)
	}
	return nil
}

const markReadQuery = `
UPDATE notifications SET read = TRUE
WHERE id = $1 AND recipient_id = $2
`

// MarkRead matches on recipient so a user can only touch their own
// notifications. No read = FALSE predicate: re-marking is a no-op, not
// an error.
func (r *NotificationRepository) MarkRead(ctx context.Context, dbtx db.DBTX, id, recipientID uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, markReadQuery, id, recipientID)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification read", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "notification not found", nil)
	}
	return nil
}

const markAllReadQuery = `
UPDATE notifications SET read = TRUE
WHERE recipient_id = $1 AND read = FALSE
`

func (r *NotificationRepository) MarkAllRead(ctx context.Context, dbtx db.DBTX, recipientID uuid.UUID) (int64, error) {
	tag, err := dbtx.Exec(ctx, markAllReadQuery, recipientID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to mark all notifications read", err)
	}
	return tag.RowsAffected(), nil
}

const deleteNotificationQuery = `
DELETE FROM notifications
WHERE id = $1 AND recipient_id = $2
`

func (r *NotificationRepository) Delete(ctx context.Context, dbtx db.DBTX, id, recipientID uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, deleteNotificationQuery, id, recipientID)
	if err != nil {
		return infra.WrapRepoErr("failed to delete notification", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "notification not found", nil)
	}
	return nil
}
