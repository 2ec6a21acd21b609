package response

import (
	"time"

	"internlink/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type QuizQuestionResponse struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

type SubmissionResponse struct {
	SubmittedAt time.Time `json:"submitted_at"`
	Kind        string    `json:"kind,omitempty"`
	Content     string    `json:"content,omitempty"`
	Answers     []*int    `json:"answers,omitempty"`
}

type MicrotaskResponse struct {
	ID            string                 `json:"id"`
	Title         string                 `json:"title"`
	Kind          string                 `json:"kind"`
	Instructions  string                 `json:"instructions,omitempty"`
	QuizQuestions []QuizQuestionResponse `json:"quiz_questions,omitempty"`
	AssignedTo    *string                `json:"assigned_to,omitempty"`
	AssignedAt    *time.Time             `json:"assigned_at,omitempty"`
	DueDate       *time.Time             `json:"due_date,omitempty"`
	Status        string                 `json:"status"`
	Submission    *SubmissionResponse    `json:"submission,omitempty"`
	Score         *int                   `json:"score,omitempty"`
	Feedback      *string                `json:"feedback,omitempty"`
}

type PostingResponse struct {
	ID          string              `json:"id"`
	OwnerID     string              `json:"owner_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      string              `json:"status"`
	Tasks       []MicrotaskResponse `json:"tasks"`
	CreatedAt   int64               `json:"created_at"`
	UpdatedAt   int64               `json:"updated_at"`
}

func FromPostingView(v *queries.PostingView) *PostingResponse {
	resp := &PostingResponse{
		ID:          v.ID.String(),
		OwnerID:     v.OwnerID.String(),
		Title:       v.Title,
		Description: v.Description,
		Status:      v.Status,
		Tasks:       make([]MicrotaskResponse, 0, len(v.Tasks)),
		CreatedAt:   v.CreatedAt.Unix(),
		UpdatedAt:   v.UpdatedAt.Unix(),
	}
	for i := range v.Tasks {
		resp.Tasks = append(resp.Tasks, FromMicrotaskView(&v.Tasks[i]))
	}
	return resp
}

func FromPostingList(items []*queries.PostingView) []*PostingResponse {
	res := make([]*PostingResponse, len(items))
	for i, it := range items {
		res[i] = FromPostingView(it)
	}
	return res
}

// FromMicrotaskView maps the matching fields by name and fixes up the
// uuid-typed ones afterward.
func FromMicrotaskView(v *queries.MicrotaskView) MicrotaskResponse {
	var resp MicrotaskResponse
	_ = copier.Copy(&resp, v)
	resp.ID = v.ID.String()
	if v.AssignedTo != nil {
		s := v.AssignedTo.String()
		resp.AssignedTo = &s
	}
	return resp
}
