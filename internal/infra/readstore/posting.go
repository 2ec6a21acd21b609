package readstore

import (
	"context"

	"internlink/internal/domain/posting"
	"internlink/internal/infra"
	"internlink/internal/infra/db"
	"internlink/internal/infra/repository/converter"
	"internlink/internal/pkg/pgconv"
	"internlink/internal/usecase/queries"

	"github.com/google/uuid"
)

type PostingReadStore struct {
	db db.DBTX
}

func NewPostingReadStore(dbtx db.DBTX) *PostingReadStore {
	return &PostingReadStore{db: dbtx}
}

const getPostingQuery = `
SELECT id, owner_id, title, description, status, microtasks, lock_version, created_at, updated_at
FROM postings
WHERE id = $1
`

func (s *PostingReadStore) GetByID(ctx context.Context, id uuid.UUID) (*queries.PostingView, error) {
	row := s.db.QueryRow(ctx, getPostingQuery, id)
	view, err := scanPostingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "posting not found", err)
		}
		return nil, infra.WrapRepoErr("failed to get posting", err)
	}
	return view, nil
}

const listPublishedQuery = `
SELECT id, owner_id, title, description, status, microtasks, lock_version, created_at, updated_at
FROM postings
WHERE status = 'published'
ORDER BY created_at DESC, id DESC
LIMIT $1
`

func (s *PostingReadStore) ListPublished(ctx context.Context, limit int) ([]*queries.PostingView, error) {
	rows, err := s.db.Query(ctx, listPublishedQuery, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list published postings", err)
	}
	defer rows.Close()

	result := make([]*queries.PostingView, 0)
	for rows.Next() {
		view, err := scanPostingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan posting row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate posting rows", err)
	}
	return result, nil
}

const applicantIDsForOwnerQuery = `
SELECT DISTINCT a.applicant_id
FROM applications a
JOIN postings p ON p.id = a.posting_id
WHERE p.owner_id = $1
`

func (s *PostingReadStore) ApplicantIDsForOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query(ctx, applicantIDsForOwnerQuery, ownerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list applicants for owner", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan applicant id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate applicant rows", err)
	}
	return ids, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPostingView(row rowScanner) (*queries.PostingView, error) {
	view := &queries.PostingView{}
	var taskData []byte
	err := row.Scan(&view.ID, &view.OwnerID, &view.Title, &view.Description, &view.Status,
		&taskData, &view.Version, &view.CreatedAt, &view.UpdatedAt)
	if err != nil {
		return nil, err
	}

	tasks, err := converter.UnmarshalTasks(taskData)
	if err != nil {
		return nil, err
	}
	view.Tasks = make([]queries.MicrotaskView, 0, len(tasks))
	for _, t := range tasks {
		view.Tasks = append(view.Tasks, toMicrotaskView(t))
	}
	return view, nil
}

func toMicrotaskView(t *posting.Microtask) queries.MicrotaskView {
	view := queries.MicrotaskView{
		ID:           t.ID(),
		Title:        t.Title(),
		Kind:         t.Kind().String(),
		Instructions: t.Instructions(),
		AssignedTo:   t.AssignedTo(),
		AssignedAt:   t.AssignedAt(),
		DueDate:      t.DueDate(),
		Status:       t.Status().String(),
		Score:        t.Score(),
		Feedback:     t.Feedback(),
	}
	for _, q := range t.QuizQuestions() {
		view.QuizQuestions = append(view.QuizQuestions, queries.QuizQuestionView{
			Question:     q.Question,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
		})
	}
	if sub := t.Submission(); sub != nil {
		view.Submission = &queries.SubmissionView{
			SubmittedAt: sub.SubmittedAt,
			Kind:        sub.Kind,
			Content:     sub.Content,
			Answers:     sub.Answers,
		}
	}
	return view
}
