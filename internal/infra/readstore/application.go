package readstore

import (
	"context"

	"internlink/internal/infra"
	"internlink/internal/infra/db"
	"internlink/internal/pkg/pgconv"
	"internlink/internal/usecase/shared"

	"github.com/google/uuid"
)

type ApplicationReadStore struct {
	db db.DBTX
}

func NewApplicationReadStore(dbtx db.DBTX) *ApplicationReadStore {
	return &ApplicationReadStore{db: dbtx}
}

const findApplicationByIDQuery = `
SELECT id, posting_id, applicant_id, status, created_at
FROM applications
WHERE id = $1
`

func (s *ApplicationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.ApplicationSnapshot, error) {
	snap := &shared.ApplicationSnapshot{}
	err := s.db.QueryRow(ctx, findApplicationByIDQuery, id).Scan(
		&snap.ID, &snap.PostingID, &snap.ApplicantID, &snap.Status, &snap.CreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "application not found", err)
		}
		return nil, infra.WrapRepoErr("failed to find application", err)
	}
	return snap, nil
}
