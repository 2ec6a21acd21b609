package shared

import (
	"context"
	"time"

	"internlink/internal/domain/notification"
	"internlink/internal/domain/posting"
	"internlink/internal/domain/user"
	"internlink/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic.
	// Serialization failures and aggregate version conflicts re-run fn.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Postings() PostingRepository
	Notifications() NotificationRepository
	Applications() ApplicationRepository
	Users() UserRepository
	DB() db.DBTX
}

type CommandReads interface {
	ApplicationByID(ctx context.Context, id uuid.UUID) (*ApplicationSnapshot, error)
}

// Minimal snapshot for command read operations
type ApplicationSnapshot struct {
	ID          uuid.UUID
	PostingID   uuid.UUID
	ApplicantID uuid.UUID
	Status      string
	CreatedAt   time.Time
}

// PostingRepository persists the posting aggregate. Save is the single
// read-modify-write path: it matches on the loaded lock_version and
// reports a version conflict when another writer got there first.
type PostingRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, p *posting.Posting) error
	Load(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*posting.Posting, error)
	Save(ctx context.Context, dbtx db.DBTX, p *posting.Posting) error
}

type NotificationRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, n *notification.Notification) error
	MarkRead(ctx context.Context, dbtx db.DBTX, id, recipientID uuid.UUID) error
	MarkAllRead(ctx context.Context, dbtx db.DBTX, recipientID uuid.UUID) (int64, error)
	Delete(ctx context.Context, dbtx db.DBTX, id, recipientID uuid.UUID) error
}

type ApplicationRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, postingID, applicantID uuid.UUID, coverLetter string, now time.Time) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status posting.ApplicationStatus, now time.Time) error
}

type UserRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, u *user.User, now time.Time) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) error
}
