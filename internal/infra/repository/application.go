package repository

import (
	"context"
	"time"

	"internlink/internal/domain/posting"
	"internlink/internal/infra"
	"internlink/internal/infra/db"

	"github.com/google/uuid"
)

type ApplicationRepository struct{}

func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{}
}

const createApplicationQuery = `
INSERT INTO applications (id, posting_id, applicant_id, cover_letter, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
`

// Create relies on the (posting_id, applicant_id) unique constraint to
// enforce one application per student per posting.
func (r *ApplicationRepository) Create(ctx context.Context, dbtx db.DBTX, postingID, applicantID uuid.UUID, coverLetter string, now time.Time) (uuid.UUID, error) {
	id := uuid.New()
	_, err := dbtx.Exec(ctx, createApplicationQuery,
		id, postingID, applicantID, coverLetter, posting.ApplicationPending.String(), now)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create application", err)
	}
	return id, nil
}

const updateApplicationStatusQuery = `
UPDATE applications SET status = $1, updated_at = $2
WHERE id = $3
`

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status posting.ApplicationStatus, now time.Time) error {
	tag, err := dbtx.Exec(ctx, updateApplicationStatusQuery, status.String(), now, id)
	if err != nil {
		return infra.WrapRepoErr("failed to update application status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "application not found", nil)
	}
	return nil
}
