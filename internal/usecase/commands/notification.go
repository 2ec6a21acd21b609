package commands

import (
	"context"

	"internlink/internal/usecase/shared"

	"github.com/google/uuid"
)

type NotificationCommands interface {
	MarkRead(ctx context.Context, recipientID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
	Delete(ctx context.Context, recipientID, notificationID uuid.UUID) error
}

type notificationCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewNotificationCommands(uow shared.UnitOfWork) NotificationCommands {
	return &notificationCommandsImpl{uow: uow}
}

// MarkRead is idempotent: re-reading an already-read notification
// succeeds without changing anything.
func (uc *notificationCommandsImpl) MarkRead(ctx context.Context, recipientID, notificationID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Notifications().MarkRead(ctx, tx.DB(), notificationID, recipientID)
	})
}

func (uc *notificationCommandsImpl) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var updated int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		updated, err = tx.Notifications().MarkAllRead(ctx, tx.DB(), recipientID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

func (uc *notificationCommandsImpl) Delete(ctx context.Context, recipientID, notificationID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Notifications().Delete(ctx, tx.DB(), notificationID, recipientID)
	})
}
