package readstore

import (
	"context"

	"internlink/internal/infra"
	"internlink/internal/infra/db"
	"internlink/internal/usecase/queries"

	"github.com/google/uuid"
)

type NotificationReadStore struct {
	db db.DBTX
}

func NewNotificationReadStore(dbtx db.DBTX) *NotificationReadStore {
	return &NotificationReadStore{db: dbtx}
}

const listNotificationsQuery = `
SELECT id, recipient_id, type, title, message, related_posting_id, related_actor_id, read, created_at
FROM notifications
WHERE recipient_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2
`

func (s *NotificationReadStore) ListForRecipient(ctx context.Context, recipientID uuid.UUID, limit int) ([]*queries.NotificationView, error) {
	rows, err := s.db.Query(ctx, listNotificationsQuery, recipientID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list notifications", err)
	}
	defer rows.Close()

	result := make([]*queries.NotificationView, 0)
	for rows.Next() {
		view := &queries.NotificationView{}
		err := rows.Scan(&view.ID, &view.RecipientID, &view.Type, &view.Title, &view.Message,
			&view.RelatedPostingID, &view.RelatedActorID, &view.Read, &view.CreatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate notification rows", err)
	}
	return result, nil
}

const countUnreadQuery = `
SELECT COUNT(*) FROM notifications
WHERE recipient_id = $1 AND read = FALSE
`

func (s *NotificationReadStore) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	if err := s.db.QueryRow(ctx, countUnreadQuery, recipientID).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count unread notifications", err)
	}
	return count, nil
}
