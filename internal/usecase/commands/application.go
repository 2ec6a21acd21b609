package commands

import (
	"context"
	"fmt"

	"internlink/internal/domain/notification"
	"internlink/internal/domain/posting"
	"internlink/internal/pkg/clock"
	"internlink/internal/pkg/errs"
	"internlink/internal/usecase"
	"internlink/internal/usecase/queries"
	"internlink/internal/usecase/shared"

	"github.com/google/uuid"
)

type ApplyRequest struct {
	PostingID   uuid.UUID
	CoverLetter string
}

type ApplicationCommands interface {
	Apply(ctx context.Context, req ApplyRequest, applicantID uuid.UUID) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, applicationID uuid.UUID, status posting.ApplicationStatus, callerID uuid.UUID) error
}

type applicationCommandsImpl struct {
	uow      shared.UnitOfWork
	notifier usecase.Notifier
	users    queries.UserReadStore
	clock    clock.Clock
}

func NewApplicationCommands(uow shared.UnitOfWork, notifier usecase.Notifier, users queries.UserReadStore, clk clock.Clock) ApplicationCommands {
	return &applicationCommandsImpl{uow: uow, notifier: notifier, users: users, clock: clk}
}

// Apply records an application and tells the posting owner. One
// application per student per posting.
func (uc *applicationCommandsImpl) Apply(ctx context.Context, req ApplyRequest, applicantID uuid.UUID) (uuid.UUID, error) {
	var (
		applicationID uuid.UUID
		ownerID       uuid.UUID
		postingTitle  string
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Postings().Load(ctx, tx.DB(), req.PostingID)
		if err != nil {
			return err
		}
		ownerID = p.OwnerID()
		postingTitle = p.Title()
		applicationID, err = tx.Applications().Create(ctx, tx.DB(), req.PostingID, applicantID, req.CoverLetter, uc.clock.Now())
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}

	applicantName := uc.displayName(ctx, applicantID)
	uc.notifier.NotifyBestEffort(ctx, notification.Spec{
		RecipientID:      ownerID,
		Type:             notification.TypeApplication,
		Title:            "New application",
		Message:          fmt.Sprintf("%s applied to %q", applicantName, postingTitle),
		RelatedPostingID: &req.PostingID,
		RelatedActorID:   &applicantID,
	})
	return applicationID, nil
}

// UpdateStatus moves an application through review. Only the posting
// owner may call it; the applicant gets a status_update.
func (uc *applicationCommandsImpl) UpdateStatus(ctx context.Context, applicationID uuid.UUID, status posting.ApplicationStatus, callerID uuid.UUID) error {
	if !status.IsValid() {
		return posting.ErrInvalidApplicationStatus
	}
	var (
		applicantID uuid.UUID
		postingID   uuid.UUID
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := uc.uow.CommandReads().ApplicationByID(ctx, applicationID)
		if err != nil {
			return err
		}
		p, err := tx.Postings().Load(ctx, tx.DB(), snap.PostingID)
		if err != nil {
			return err
		}
		if p.OwnerID() != callerID {
			return errs.ErrNotPostingOwner
		}
		applicantID = snap.ApplicantID
		postingID = snap.PostingID
		return tx.Applications().UpdateStatus(ctx, tx.DB(), applicationID, status, uc.clock.Now())
	})
	if err != nil {
		return err
	}

	uc.notifier.NotifyBestEffort(ctx, notification.Spec{
		RecipientID:      applicantID,
		Type:             notification.TypeStatusUpdate,
		Title:            "Application status updated",
		Message:          fmt.Sprintf("Your application is now %s", status),
		RelatedPostingID: &postingID,
		RelatedActorID:   &callerID,
	})
	return nil
}

func (uc *applicationCommandsImpl) displayName(ctx context.Context, id uuid.UUID) string {
	name, err := uc.users.DisplayNameByID(ctx, id)
	if err != nil || name == "" {
		return "A student"
	}
	return name
}
