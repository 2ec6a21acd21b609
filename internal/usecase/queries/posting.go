package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type QuizQuestionView struct {
	Question     string
	Options      []string
	CorrectIndex int
}

type SubmissionView struct {
	SubmittedAt time.Time
	Kind        string
	Content     string
	Answers     []*int
}

type MicrotaskView struct {
	ID            uuid.UUID
	Title         string
	Kind          string
	Instructions  string
	QuizQuestions []QuizQuestionView
	AssignedTo    *uuid.UUID
	AssignedAt    *time.Time
	DueDate       *time.Time
	Status        string
	Submission    *SubmissionView
	Score         *int
	Feedback      *string
}

type PostingView struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description string
	Status      string
	Tasks       []MicrotaskView
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type PostingReadStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*PostingView, error)
	ListPublished(ctx context.Context, limit int) ([]*PostingView, error)
	// ApplicantIDsForOwner returns the distinct applicants across the
	// owner's postings; the publish producer notifies this audience.
	ApplicantIDsForOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)
}

type PostingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*PostingView, error)
	ListPublished(ctx context.Context, limit int) ([]*PostingView, error)
}

type postingQueriesImpl struct {
	readStore PostingReadStore
}

func NewPostingQueries(readStore PostingReadStore) PostingQueries {
	return &postingQueriesImpl{readStore: readStore}
}

func (q *postingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*PostingView, error) {
	return q.readStore.GetByID(ctx, id)
}

func (q *postingQueriesImpl) ListPublished(ctx context.Context, limit int) ([]*PostingView, error) {
	return q.readStore.ListPublished(ctx, ValidateLimit(limit))
}
