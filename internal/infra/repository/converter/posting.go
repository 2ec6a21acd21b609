package converter

import (
	"encoding/json"
	"time"

	"internlink/internal/domain/posting"
	"internlink/internal/pkg/errs"

	"github.com/google/uuid"
)

// taskDoc is the JSONB shape of one microtask inside the postings row.
// Snapshot format: it stores the exact post-transition state so load
// followed by save round-trips without loss.
type taskDoc struct {
	ID            uuid.UUID         `json:"id"`
	Title         string            `json:"title"`
	Kind          string            `json:"kind"`
	Instructions  string            `json:"instructions,omitempty"`
	QuizQuestions []quizQuestionDoc `json:"quiz_questions,omitempty"`
	AssignedTo    *uuid.UUID        `json:"assigned_to,omitempty"`
	AssignedAt    *time.Time        `json:"assigned_at,omitempty"`
	DueDate       *time.Time        `json:"due_date,omitempty"`
	Status        string            `json:"status"`
	Submission    *submissionDoc    `json:"submission,omitempty"`
	Score         *int              `json:"score,omitempty"`
	Feedback      *string           `json:"feedback,omitempty"`
}

type quizQuestionDoc struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

type submissionDoc struct {
	SubmittedAt time.Time `json:"submitted_at"`
	Kind        string    `json:"kind,omitempty"`
	Content     string    `json:"content,omitempty"`
	Answers     []*int    `json:"answers,omitempty"`
}

func MarshalTasks(tasks []*posting.Microtask) ([]byte, error) {
	docs := make([]taskDoc, 0, len(tasks))
	for _, t := range tasks {
		docs = append(docs, toTaskDoc(t))
	}
	data, err := json.Marshal(docs)
	if err != nil {
		return nil, errs.Wrap(err, "failed to marshal microtasks")
	}
	return data, nil
}

func UnmarshalTasks(data []byte) ([]*posting.Microtask, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var docs []taskDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, errs.Wrap(err, "failed to unmarshal microtasks")
	}
	tasks := make([]*posting.Microtask, 0, len(docs))
	for _, d := range docs {
		tasks = append(tasks, fromTaskDoc(d))
	}
	return tasks, nil
}

func toTaskDoc(t *posting.Microtask) taskDoc {
	doc := taskDoc{
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
		doc.QuizQuestions = append(doc.QuizQuestions, quizQuestionDoc{
			Question:     q.Question,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
		})
	}
	if sub := t.Submission(); sub != nil {
		doc.Submission = &submissionDoc{
			SubmittedAt: sub.SubmittedAt,
			Kind:        sub.Kind,
			Content:     sub.Content,
			Answers:     sub.Answers,
		}
	}
	return doc
}

func fromTaskDoc(d taskDoc) *posting.Microtask {
	questions := make([]posting.QuizQuestion, 0, len(d.QuizQuestions))
	for _, q := range d.QuizQuestions {
		questions = append(questions, posting.QuizQuestion{
			Question:     q.Question,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
		})
	}
	if len(questions) == 0 {
		questions = nil
	}
	var sub *posting.Submission
	if d.Submission != nil {
		sub = &posting.Submission{
			SubmittedAt: d.Submission.SubmittedAt,
			Kind:        d.Submission.Kind,
			Content:     d.Submission.Content,
			Answers:     d.Submission.Answers,
		}
	}
	return posting.ReconstructMicrotask(
		d.ID,
		d.Title,
		posting.TaskKind(d.Kind),
		d.Instructions,
		questions,
		d.AssignedTo,
		d.AssignedAt,
		d.DueDate,
		posting.TaskStatus(d.Status),
		sub,
		d.Score,
		d.Feedback,
	)
}
