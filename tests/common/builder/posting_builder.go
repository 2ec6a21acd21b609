//go:build unit || e2e

package builder

import (
	"time"

	domposting "internlink/internal/domain/posting"
	reqdto "internlink/internal/handler/dto/request"

	"github.com/google/uuid"
)

type PostingBuilder struct {
	OwnerID     uuid.UUID
	Title       string
	Description string
	CreatedAt   time.Time
}

func NewPostingBuilder() *PostingBuilder {
	return &PostingBuilder{
		OwnerID:     uuid.New(),
		Title:       "Backend Internship",
		Description: "Work on our Go services for a summer.",
		CreatedAt:   time.Now(),
	}
}

func (p *PostingBuilder) With(mutate func(*PostingBuilder)) *PostingBuilder {
	mutate(p)
	return p
}

// Build methods
func (p *PostingBuilder) BuildDomain() (*domposting.Posting, error) {
	return domposting.NewPosting(p.OwnerID, p.Title, p.Description, p.CreatedAt)
}

func (p *PostingBuilder) BuildCreateRequestDTO() reqdto.CreatePostingRequest {
	return reqdto.CreatePostingRequest{
		Title:       p.Title,
		Description: p.Description,
	}
}

// Fluent builder methods
func (p *PostingBuilder) WithOwnerID(id uuid.UUID) *PostingBuilder {
	p.OwnerID = id
	return p
}

func (p *PostingBuilder) WithTitle(title string) *PostingBuilder {
	p.Title = title
	return p
}

func (p *PostingBuilder) WithDescription(desc string) *PostingBuilder {
	p.Description = desc
	return p
}

// MicrotaskBuilder produces TaskSpec values for aggregate tests and
// assign request DTOs for API tests.
type MicrotaskBuilder struct {
	Title         string
	Kind          string
	Instructions  string
	QuizQuestions []domposting.QuizQuestion
	AssignedTo    *uuid.UUID
	DueDate       *time.Time
}

func NewMicrotaskBuilder() *MicrotaskBuilder {
	return &MicrotaskBuilder{
		Title:        "Write a README",
		Kind:         string(domposting.KindTask),
		Instructions: "Document the setup steps.",
	}
}

func (m *MicrotaskBuilder) BuildSpec() domposting.TaskSpec {
	return domposting.TaskSpec{
		Title:         m.Title,
		Kind:          domposting.TaskKind(m.Kind),
		Instructions:  m.Instructions,
		QuizQuestions: m.QuizQuestions,
		AssignedTo:    m.AssignedTo,
		DueDate:       m.DueDate,
	}
}

func (m *MicrotaskBuilder) BuildAssignRequestDTO() reqdto.AssignMicrotaskRequest {
	questions := make([]reqdto.QuizQuestionRequest, 0, len(m.QuizQuestions))
	for _, q := range m.QuizQuestions {
		questions = append(questions, reqdto.QuizQuestionRequest{
			Question:     q.Question,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
		})
	}
	if len(questions) == 0 {
		questions = nil
	}
	return reqdto.AssignMicrotaskRequest{
		Title:         m.Title,
		Kind:          m.Kind,
		Instructions:  m.Instructions,
		QuizQuestions: questions,
		AssignedTo:    m.AssignedTo,
		DueDate:       m.DueDate,
	}
}

// Fluent builder methods
func (m *MicrotaskBuilder) WithTitle(title string) *MicrotaskBuilder {
	m.Title = title
	return m
}

func (m *MicrotaskBuilder) WithKind(kind string) *MicrotaskBuilder {
	m.Kind = kind
	return m
}

func (m *MicrotaskBuilder) WithAssignedTo(id uuid.UUID) *MicrotaskBuilder {
	m.AssignedTo = &id
	return m
}

func (m *MicrotaskBuilder) WithDueDate(due time.Time) *MicrotaskBuilder {
	m.DueDate = &due
	return m
}

func (m *MicrotaskBuilder) AsQuiz(questions ...domposting.QuizQuestion) *MicrotaskBuilder {
	m.Kind = string(domposting.KindQuiz)
	if len(questions) == 0 {
		questions = []domposting.QuizQuestion{
			{Question: "Which keyword starts a goroutine?", Options: []string{"go", "run", "spawn"}, CorrectIndex: 0},
			{Question: "Which builtin makes a slice?", Options: []string{"new", "make"}, CorrectIndex: 1},
		}
	}
	m.QuizQuestions = questions
	return m
}
