package commands

import (
	"context"
	"fmt"
	"time"

	"internlink/internal/domain/notification"
	"internlink/internal/domain/posting"
	"internlink/internal/pkg/clock"
	"internlink/internal/usecase"
	"internlink/internal/usecase/queries"
	"internlink/internal/usecase/shared"

	"github.com/google/uuid"
)

type AssignMicrotaskRequest struct {
	Title         string
	Kind          posting.TaskKind
	Instructions  string
	QuizQuestions []posting.QuizQuestion
	AssignedTo    *uuid.UUID
	DueDate       *time.Time
}

type SubmitMicrotaskRequest struct {
	Kind    string
	Content string
	Answers []*int
}

type GradeMicrotaskRequest struct {
	Score    int
	Feedback string
}

// MicrotaskResult is the post-transition snapshot handed back to handlers.
type MicrotaskResult struct {
	PostingID uuid.UUID
	Task      *posting.Microtask
}

type MicrotaskCommands interface {
	Assign(ctx context.Context, postingID uuid.UUID, req AssignMicrotaskRequest, callerID uuid.UUID) (*MicrotaskResult, error)
	Submit(ctx context.Context, postingID, taskID uuid.UUID, req SubmitMicrotaskRequest, submitterID uuid.UUID) (*MicrotaskResult, error)
	Grade(ctx context.Context, postingID, taskID uuid.UUID, req GradeMicrotaskRequest, graderID uuid.UUID) (*MicrotaskResult, error)
}

type microtaskCommandsImpl struct {
	uow      shared.UnitOfWork
	notifier usecase.Notifier
	users    queries.UserReadStore
	clock    clock.Clock
}

func NewMicrotaskCommands(uow shared.UnitOfWork, notifier usecase.Notifier, users queries.UserReadStore, clk clock.Clock) MicrotaskCommands {
	return &microtaskCommandsImpl{uow: uow, notifier: notifier, users: users, clock: clk}
}

// Assign creates a microtask on the posting. Owner-only. When the task
// spec names an assignee the task starts assigned and the assignee is
// notified. The notification is a side channel: its failure never undoes
// the committed task.
func (uc *microtaskCommandsImpl) Assign(ctx context.Context, postingID uuid.UUID, req AssignMicrotaskRequest, callerID uuid.UUID) (*MicrotaskResult, error) {
	var (
		task    *posting.Posting
		created *posting.Microtask
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Postings().Load(ctx, tx.DB(), postingID)
		if err != nil {
			return err
		}
		spec := posting.TaskSpec{
			Title:         req.Title,
			Kind:          req.Kind,
			Instructions:  req.Instructions,
			QuizQuestions: req.QuizQuestions,
			AssignedTo:    req.AssignedTo,
			DueDate:       req.DueDate,
		}
		created, err = p.AssignTask(callerID, spec, uc.clock.Now())
		if err != nil {
			return err
		}
		task = p
		return tx.Postings().Save(ctx, tx.DB(), p)
	})
	if err != nil {
		return nil, err
	}

	if assignee := created.AssignedTo(); assignee != nil {
		uc.notifier.NotifyBestEffort(ctx, notification.Spec{
			RecipientID:      *assignee,
			Type:             notification.TypeMessage,
			Title:            "New microtask assigned",
			Message:          fmt.Sprintf("You have been assigned %q on %q", created.Title(), task.Title()),
			RelatedPostingID: &postingID,
			RelatedActorID:   &callerID,
		})
	}

	return &MicrotaskResult{PostingID: postingID, Task: created}, nil
}

// Submit runs the submit transition. Quizzes auto-grade in the same
// atomic update; the owner always hears about the submission and a
// graded quiz also reports the score back to the submitter.
func (uc *microtaskCommandsImpl) Submit(ctx context.Context, postingID, taskID uuid.UUID, req SubmitMicrotaskRequest, submitterID uuid.UUID) (*MicrotaskResult, error) {
	var (
		ownerID uuid.UUID
		task    *posting.Microtask
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Postings().Load(ctx, tx.DB(), postingID)
		if err != nil {
			return err
		}
		sub := posting.Submission{
			Kind:    req.Kind,
			Content: req.Content,
			Answers: req.Answers,
		}
		task, err = p.SubmitTask(taskID, submitterID, sub, uc.clock.Now())
		if err != nil {
			return err
		}
		ownerID = p.OwnerID()
		return tx.Postings().Save(ctx, tx.DB(), p)
	})
	if err != nil {
		return nil, err
	}

	submitterName := uc.displayName(ctx, submitterID)
	if task.Kind() == posting.KindQuiz {
		// Quiz shortcut: assigned -> graded in one transition.
		score := 0
		if task.Score() != nil {
			score = *task.Score()
		}
		uc.notifier.NotifyBestEffort(ctx, notification.Spec{
			RecipientID:      ownerID,
			Type:             notification.TypeApplication,
			Title:            "Quiz submitted",
			Message:          fmt.Sprintf("%s completed %q with a score of %d", submitterName, task.Title(), score),
			RelatedPostingID: &postingID,
			RelatedActorID:   &submitterID,
		})
		uc.notifier.NotifyBestEffort(ctx, notification.Spec{
			RecipientID:      submitterID,
			Type:             notification.TypeStatusUpdate,
			Title:            "Quiz graded",
			Message:          fmt.Sprintf("You scored %d on %q", score, task.Title()),
			RelatedPostingID: &postingID,
		})
	} else {
		uc.notifier.NotifyBestEffort(ctx, notification.Spec{
			RecipientID:      ownerID,
			Type:             notification.TypeApplication,
			Title:            "Microtask submitted",
			Message:          fmt.Sprintf("%s submitted %q", submitterName, task.Title()),
			RelatedPostingID: &postingID,
			RelatedActorID:   &submitterID,
		})
	}

	return &MicrotaskResult{PostingID: postingID, Task: task}, nil
}

// Grade applies a manual grade. Owner-only. Re-grading overwrites.
func (uc *microtaskCommandsImpl) Grade(ctx context.Context, postingID, taskID uuid.UUID, req GradeMicrotaskRequest, graderID uuid.UUID) (*MicrotaskResult, error) {
	var task *posting.Microtask
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Postings().Load(ctx, tx.DB(), postingID)
		if err != nil {
			return err
		}
		task, err = p.GradeTask(graderID, taskID, req.Score, req.Feedback, uc.clock.Now())
		if err != nil {
			return err
		}
		return tx.Postings().Save(ctx, tx.DB(), p)
	})
	if err != nil {
		return nil, err
	}

	if assignee := task.AssignedTo(); assignee != nil {
		uc.notifier.NotifyBestEffort(ctx, notification.Spec{
			RecipientID:      *assignee,
			Type:             notification.TypeStatusUpdate,
			Title:            "Microtask graded",
			Message:          fmt.Sprintf("Your submission for %q was graded: %d", task.Title(), req.Score),
			RelatedPostingID: &postingID,
			RelatedActorID:   &graderID,
		})
	}

	return &MicrotaskResult{PostingID: postingID, Task: task}, nil
}

func (uc *microtaskCommandsImpl) displayName(ctx context.Context, id uuid.UUID) string {
	name, err := uc.users.DisplayNameByID(ctx, id)
	if err != nil || name == "" {
		return "A student"
	}
	return name
}
