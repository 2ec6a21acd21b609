package request

import (
	"time"

	"internlink/internal/domain/posting"
	"internlink/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreatePostingRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=5000"`
}

func (r *CreatePostingRequest) ToCommand() commands.CreatePostingRequest {
	return commands.CreatePostingRequest{
		Title:       r.Title,
		Description: r.Description,
	}
}

type QuizQuestionRequest struct {
	Question     string   `json:"question" binding:"required"`
	Options      []string `json:"options" binding:"required,min=2"`
	CorrectIndex int      `json:"correct_index"`
}

type AssignMicrotaskRequest struct {
	Title         string                `json:"title" binding:"required,max=200"`
	Kind          string                `json:"kind" binding:"required,oneof=task quiz external-link"`
	Instructions  string                `json:"instructions" binding:"max=5000"`
	QuizQuestions []QuizQuestionRequest `json:"quiz_questions"`
	AssignedTo    *uuid.UUID            `json:"assigned_to"`
	DueDate       *time.Time            `json:"due_date"`
}

func (r *AssignMicrotaskRequest) ToCommand() commands.AssignMicrotaskRequest {
	questions := make([]posting.QuizQuestion, 0, len(r.QuizQuestions))
	for _, q := range r.QuizQuestions {
		questions = append(questions, posting.QuizQuestion{
			Question:     q.Question,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
		})
	}
	if len(questions) == 0 {
		questions = nil
	}
	return commands.AssignMicrotaskRequest{
		Title:         r.Title,
		Kind:          posting.TaskKind(r.Kind),
		Instructions:  r.Instructions,
		QuizQuestions: questions,
		AssignedTo:    r.AssignedTo,
		DueDate:       r.DueDate,
	}
}

type SubmitMicrotaskRequest struct {
	Kind    string `json:"kind" binding:"max=50"`
	Content string `json:"content" binding:"max=10000"`
	Answers []*int `json:"answers"`
}

func (r *SubmitMicrotaskRequest) ToCommand() commands.SubmitMicrotaskRequest {
	return commands.SubmitMicrotaskRequest{
		Kind:    r.Kind,
		Content: r.Content,
		Answers: r.Answers,
	}
}

type GradeMicrotaskRequest struct {
	Score    int    `json:"score" binding:"min=0,max=100"`
	Feedback string `json:"feedback" binding:"max=5000"`
}

func (r *GradeMicrotaskRequest) ToCommand() commands.GradeMicrotaskRequest {
	return commands.GradeMicrotaskRequest{
		Score:    r.Score,
		Feedback: r.Feedback,
	}
}
