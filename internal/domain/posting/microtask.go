package posting

import (
	"time"

	"internlink/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyTaskTitle         = errs.New("microtask title is empty")
	ErrInvalidTaskKind        = errs.New("invalid microtask kind")
	ErrQuizQuestionsRequired  = errs.New("quiz microtask requires questions")
	ErrQuizQuestionsForbidden = errs.New("only quiz microtasks may carry questions")
	ErrEmptyQuizQuestion      = errs.New("quiz question text is empty")
	ErrTooFewQuizOptions      = errs.New("quiz question needs at least two options")
	ErrCorrectIndexOutOfRange = errs.New("correct index out of range")
	ErrInvalidScore           = errs.New("score must be between 0 and 100")
)

// TaskSpec is the owner-supplied definition of a new microtask.
type TaskSpec struct {
	Title         string
	Kind          TaskKind
	Instructions  string
	QuizQuestions []QuizQuestion
	AssignedTo    *uuid.UUID
	DueDate       *time.Time
}

// Submission captures what the assignee handed in. For quizzes Answers
// holds the selected option index per question; nil means skipped.
type Submission struct {
	SubmittedAt time.Time
	Kind        string
	Content     string
	Answers     []*int
}

// Microtask is a unit of work a company assigns to a student within a
// posting. Lives embedded in the Posting aggregate, addressed by id.
type Microtask struct {
	id            uuid.UUID
	title         string
	kind          TaskKind
	instructions  string
	quizQuestions []QuizQuestion
	assignedTo    *uuid.UUID
	assignedAt    *time.Time
	dueDate       *time.Time
	status        TaskStatus
	submission    *Submission
	score         *int
	feedback      *string
}

func NewMicrotask(spec TaskSpec, now time.Time) (*Microtask, error) {
	if spec.Title == "" {
		return nil, ErrEmptyTaskTitle
	}
	if !spec.Kind.IsValid() {
		return nil, ErrInvalidTaskKind
	}
	if spec.Kind == KindQuiz {
		if len(spec.QuizQuestions) == 0 {
			return nil, ErrQuizQuestionsRequired
		}
		for _, q := range spec.QuizQuestions {
			if err := q.Validate(); err != nil {
				return nil, err
			}
		}
	} else if len(spec.QuizQuestions) > 0 {
		return nil, ErrQuizQuestionsForbidden
	}

	m := &Microtask{
		id:            uuid.New(),
		title:         spec.Title,
		kind:          spec.Kind,
		instructions:  spec.Instructions,
		quizQuestions: spec.QuizQuestions,
		dueDate:       spec.DueDate,
		status:        StatusAssigned,
	}
	if spec.AssignedTo != nil {
		m.assignedTo = spec.AssignedTo
		at := now
		m.assignedAt = &at
	}
	return m, nil
}

// ReconstructMicrotask rebuilds a Microtask from persisted state.
func ReconstructMicrotask(id uuid.UUID, title string, kind TaskKind, instructions string, quizQuestions []QuizQuestion, assignedTo *uuid.UUID, assignedAt, dueDate *time.Time, status TaskStatus, submission *Submission, score *int, feedback *string) *Microtask {
	return &Microtask{
		id:            id,
		title:         title,
		kind:          kind,
		instructions:  instructions,
		quizQuestions: quizQuestions,
		assignedTo:    assignedTo,
		assignedAt:    assignedAt,
		dueDate:       dueDate,
		status:        status,
		submission:    submission,
		score:         score,
		feedback:      feedback,
	}
}

// submit records the submission and advances the state machine. Quizzes
// auto-grade and jump straight to graded; everything else waits for a
// manual grade. A repeated submit overwrites the previous one. A task
// never leaves graded: resubmitting a quiz recomputes the score, while
// resubmitting a manually graded task only replaces the submission and
// keeps the grade standing.
func (m *Microtask) submit(submitterID uuid.UUID, sub Submission) error {
	if m.assignedTo == nil {
		return errs.ErrTaskUnassigned
	}
	if *m.assignedTo != submitterID {
		return errs.ErrNotAssignee
	}

	s := sub
	m.submission = &s
	if m.kind == KindQuiz {
		score := GradeQuiz(m.quizQuestions, sub.Answers)
		m.score = &score
		m.status = StatusGraded
		return nil
	}
	if m.status != StatusGraded {
		m.status = StatusSubmitted
	}
	return nil
}

// applyGrade sets score and feedback. Re-grading overwrites.
func (m *Microtask) applyGrade(score int, feedback string) error {
	if score < 0 || score > 100 {
		return ErrInvalidScore
	}
	m.score = &score
	m.feedback = &feedback
	m.status = StatusGraded
	return nil
}

func (m *Microtask) ID() uuid.UUID                 { return m.id }
func (m *Microtask) Title() string                 { return m.title }
func (m *Microtask) Kind() TaskKind                { return m.kind }
func (m *Microtask) Instructions() string          { return m.instructions }
func (m *Microtask) QuizQuestions() []QuizQuestion { return m.quizQuestions }
func (m *Microtask) AssignedTo() *uuid.UUID        { return m.assignedTo }
func (m *Microtask) AssignedAt() *time.Time        { return m.assignedAt }
func (m *Microtask) DueDate() *time.Time           { return m.dueDate }
func (m *Microtask) Status() TaskStatus            { return m.status }
func (m *Microtask) Submission() *Submission       { return m.submission }
func (m *Microtask) Score() *int                   { return m.score }
func (m *Microtask) Feedback() *string             { return m.feedback }
