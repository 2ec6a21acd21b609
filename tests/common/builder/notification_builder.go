//go:build unit || e2e

package builder

import (
	"time"

	domnotification "internlink/internal/domain/notification"

	"github.com/google/uuid"
)

type NotificationBuilder struct {
	RecipientID      uuid.UUID
	Type             string
	Title            string
	Message          string
	RelatedPostingID *uuid.UUID
	RelatedActorID   *uuid.UUID
	CreatedAt        time.Time
}

func NewNotificationBuilder() *NotificationBuilder {
	return &NotificationBuilder{
		RecipientID: uuid.New(),
		Type:        string(domnotification.TypeMessage),
		Title:       "New microtask assigned",
		Message:     "You have been assigned a microtask.",
		CreatedAt:   time.Now(),
	}
}

func (n *NotificationBuilder) With(mutate func(*NotificationBuilder)) *NotificationBuilder {
	mutate(n)
	return n
}

func (n *NotificationBuilder) BuildSpec() domnotification.Spec {
	return domnotification.Spec{
		RecipientID:      n.RecipientID,
		Type:             domnotification.Type(n.Type),
		Title:            n.Title,
		Message:          n.Message,
		RelatedPostingID: n.RelatedPostingID,
		RelatedActorID:   n.RelatedActorID,
	}
}

func (n *NotificationBuilder) BuildDomain() (*domnotification.Notification, error) {
	return domnotification.New(n.BuildSpec(), n.CreatedAt)
}

// Fluent builder methods
func (n *NotificationBuilder) WithRecipientID(id uuid.UUID) *NotificationBuilder {
	n.RecipientID = id
	return n
}

func (n *NotificationBuilder) WithType(t string) *NotificationBuilder {
	n.Type = t
	return n
}

func (n *NotificationBuilder) WithTitle(title string) *NotificationBuilder {
	n.Title = title
	return n
}

func (n *NotificationBuilder) WithRelatedPostingID(id uuid.UUID) *NotificationBuilder {
	n.RelatedPostingID = &id
	return n
}

func (n *NotificationBuilder) WithRelatedActorID(id uuid.UUID) *NotificationBuilder {
	n.RelatedActorID = &id
	return n
}
