package commands

import (
	"context"
	"fmt"
	"log/slog"

	"internlink/internal/domain/notification"
	"internlink/internal/domain/posting"
	"internlink/internal/pkg/clock"
	"internlink/internal/usecase"
	"internlink/internal/usecase/queries"
	"internlink/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreatePostingRequest struct {
	Title       string
	Description string
}

type PostingCommands interface {
	Create(ctx context.Context, req CreatePostingRequest, ownerID uuid.UUID) (uuid.UUID, error)
	Publish(ctx context.Context, postingID, callerID uuid.UUID) error
}

type postingCommandsImpl struct {
	uow      shared.UnitOfWork
	notifier usecase.Notifier
	postings queries.PostingReadStore
	clock    clock.Clock
}

func NewPostingCommands(uow shared.UnitOfWork, notifier usecase.Notifier, postings queries.PostingReadStore, clk clock.Clock) PostingCommands {
	return &postingCommandsImpl{uow: uow, notifier: notifier, postings: postings, clock: clk}
}

func (uc *postingCommandsImpl) Create(ctx context.Context, req CreatePostingRequest, ownerID uuid.UUID) (uuid.UUID, error) {
	p, err := posting.NewPosting(ownerID, req.Title, req.Description, uc.clock.Now())
	if err != nil {
		return uuid.Nil, err
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Postings().Create(ctx, tx.DB(), p)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return p.ID(), nil
}

// Publish flips the posting to published and fans a new_internship
// notification out to every student who previously applied to one of
// the owner's postings. Fan-out happens after the commit so a slow
// audience never holds the posting write open.
func (uc *postingCommandsImpl) Publish(ctx context.Context, postingID, callerID uuid.UUID) error {
	var title string
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Postings().Load(ctx, tx.DB(), postingID)
		if err != nil {
			return err
		}
		if err := p.Publish(callerID, uc.clock.Now()); err != nil {
			return err
		}
		title = p.Title()
		return tx.Postings().Save(ctx, tx.DB(), p)
	})
	if err != nil {
		return err
	}

	audience, err := uc.postings.ApplicantIDsForOwner(ctx, callerID)
	if err != nil {
		// The publish already succeeded; skip the fan-out.
		slog.WarnContext(ctx, "failed to resolve publish audience", "posting_id", postingID, "error", err)
		return nil
	}
	for _, recipientID := range audience {
		uc.notifier.NotifyBestEffort(ctx, notification.Spec{
			RecipientID:      recipientID,
			Type:             notification.TypeNewInternship,
			Title:            "New internship posted",
			Message:          fmt.Sprintf("A new internship %q is open for applications", title),
			RelatedPostingID: &postingID,
			RelatedActorID:   &callerID,
		})
	}
	return nil
}
