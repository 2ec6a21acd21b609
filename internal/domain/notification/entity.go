package notification

import (
	"time"

	"internlink/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrMissingRecipient = errs.New("notification requires a recipient")
	ErrInvalidType      = errs.New("invalid notification type")
	ErrEmptyTitle       = errs.New("notification title is empty")
)

type Type string

const (
	TypeApplication   Type = "application"
	TypeStatusUpdate  Type = "status_update"
	TypeMessage       Type = "message"
	TypeNewInternship Type = "new_internship"
)

func (t Type) String() string { return string(t) }

func (t Type) IsValid() bool {
	switch t {
	case TypeApplication, TypeStatusUpdate, TypeMessage, TypeNewInternship:
		return true
	default:
		return false
	}
}

// Spec is the caller-supplied part of a notification. Producers build a
// Spec and hand it to the Notifier; id, read flag and createdAt are owned
// by the store.
type Spec struct {
	RecipientID      uuid.UUID
	Type             Type
	Title            string
	Message          string
	RelatedPostingID *uuid.UUID
	RelatedActorID   *uuid.UUID
}

func (s Spec) Validate() error {
	if s.RecipientID == uuid.Nil {
		return ErrMissingRecipient
	}
	if !s.Type.IsValid() {
		return ErrInvalidType
	}
	if s.Title == "" {
		return ErrEmptyTitle
	}
	return nil
}

// Notification is a durable record of an event directed at a recipient.
// Immutable except for the read flag.
type Notification struct {
	id               uuid.UUID
	recipientID      uuid.UUID
	notifType        Type
	title            string
	message          string
	relatedPostingID *uuid.UUID
	relatedActorID   *uuid.UUID
	read             bool
	createdAt        time.Time
}

func New(spec Spec, now time.Time) (*Notification, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &Notification{
		id:               uuid.New(),
		recipientID:      spec.RecipientID,
		notifType:        spec.Type,
		title:            spec.Title,
		message:          spec.Message,
		relatedPostingID: spec.RelatedPostingID,
		relatedActorID:   spec.RelatedActorID,
		read:             false,
		createdAt:        now,
	}, nil
}

// Reconstruct rebuilds a Notification from persisted state.
func Reconstruct(id, recipientID uuid.UUID, notifType Type, title, message string, relatedPostingID, relatedActorID *uuid.UUID, read bool, createdAt time.Time) *Notification {
	return &Notification{
		id:               id,
		recipientID:      recipientID,
		notifType:        notifType,
		title:            title,
		message:          message,
		relatedPostingID: relatedPostingID,
		relatedActorID:   relatedActorID,
		read:             read,
		createdAt:        createdAt,
	}
}

func (n *Notification) ID() uuid.UUID                { return n.id }
func (n *Notification) RecipientID() uuid.UUID       { return n.recipientID }
func (n *Notification) Type() Type                   { return n.notifType }
func (n *Notification) Title() string                { return n.title }
func (n *Notification) Message() string              { return n.message }
func (n *Notification) RelatedPostingID() *uuid.UUID { return n.relatedPostingID }
func (n *Notification) RelatedActorID() *uuid.UUID   { return n.relatedActorID }
func (n *Notification) Read() bool                   { return n.read }
func (n *Notification) CreatedAt() time.Time         { return n.createdAt }
