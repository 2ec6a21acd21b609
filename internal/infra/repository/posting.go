package repository

import (
	"context"
	"time"

	"internlink/internal/domain/posting"
	"internlink/internal/infra"
	"internlink/internal/infra/db"
	"internlink/internal/infra/repository/converter"
	"internlink/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type PostingRepository struct{}

func NewPostingRepository() *PostingRepository {
	return &PostingRepository{}
}

const createPostingQuery = `
INSERT INTO postings (id, owner_id, title, description, status, microtasks, lock_version, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8)
`

func (r *PostingRepository) Create(ctx context.Context, dbtx db.DBTX, p *posting.Posting) error {
	tasks, err := converter.MarshalTasks(p.Tasks())
	if err != nil {
		return infra.NewRepoErr(infra.KindDBFailure, "failed to encode microtasks", err)
	}
	_, err = dbtx.Exec(ctx, createPostingQuery,
		p.ID(), p.OwnerID(), p.Title(), p.Description(), p.Status().String(), tasks, p.CreatedAt(), p.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create posting", err)
	}
	return nil
}

const loadPostingQuery = `
SELECT id, owner_id, title, description, status, microtasks, lock_version, created_at, updated_at
FROM postings
WHERE id = $1
`

func (r *PostingRepository) Load(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*posting.Posting, error) {
	var (
		rowID       uuid.UUID
		ownerID     uuid.UUID
		title       string
		description string
		status      string
		taskData    []byte
		version     int64
		createdAt   time.Time
		updatedAt   time.Time
	)
	err := dbtx.QueryRow(ctx, loadPostingQuery, id).Scan(
		&rowID, &ownerID, &title, &description, &status, &taskData, &version, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "posting not found", err)
		}
		return nil, infra.WrapRepoErr("failed to load posting", err)
	}

	tasks, err := converter.UnmarshalTasks(taskData)
	if err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to decode microtasks", err)
	}
	return posting.Reconstruct(rowID, ownerID, title, description, posting.PostingStatus(status), tasks, version, createdAt, updatedAt), nil
}

const savePostingQuery = `
UPDATE postings
SET title = $1, description = $2, status = $3, microtasks = $4,
    lock_version = lock_version + 1, updated_at = $5
WHERE id = $6 AND lock_version = $7
`

// Save writes back the whole aggregate. The lock_version predicate makes
// the read-modify-write atomic: a concurrent writer bumps the version
// and this update matches zero rows.
func (r *PostingRepository) Save(ctx context.Context, dbtx db.DBTX, p *posting.Posting) error {
	tasks, err := converter.MarshalTasks(p.Tasks())
	if err != nil {
		return infra.NewRepoErr(infra.KindDBFailure, "failed to encode microtasks", err)
	}
	tag, err := dbtx.Exec(ctx, savePostingQuery,
		p.Title(), p.Description(), p.Status().String(), tasks, p.UpdatedAt(), p.ID(), p.Version())
	if err != nil {
		return infra.WrapRepoErr("failed to save posting", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindVersionConflict, "posting modified concurrently", nil)
	}
	return nil
}
