package usecase

import (
	"context"
	"log/slog"

	"internlink/internal/domain/notification"
	"internlink/internal/pkg/clock"
	"internlink/internal/usecase/shared"
)

// Pusher best-effort delivers a stored notification to live connections.
// Implementations must not block and must not fail the caller.
type Pusher interface {
	Dispatch(n *notification.Notification)
}

// Notifier is the single path producers use to record and push a
// notification. The durable write is the delivery guarantee; the push is
// a side channel.
type Notifier interface {
	// Notify persists the notification and best-effort pushes it. The
	// returned error reports persistence failure only; push failures are
	// logged and swallowed inside.
	Notify(ctx context.Context, spec notification.Spec) (*notification.Notification, error)
	// NotifyBestEffort is Notify for producers whose primary write has
	// already committed: every failure is logged and suppressed so the
	// triggering operation never observes it.
	NotifyBestEffort(ctx context.Context, spec notification.Spec)
}

type notifierImpl struct {
	uow    shared.UnitOfWork
	pusher Pusher
	clock  clock.Clock
}

func NewNotifier(uow shared.UnitOfWork, pusher Pusher, clk clock.Clock) Notifier {
	return &notifierImpl{uow: uow, pusher: pusher, clock: clk}
}

func (n *notifierImpl) Notify(ctx context.Context, spec notification.Spec) (*notification.Notification, error) {
	rec, err := notification.New(spec, n.clock.Now())
	if err != nil {
		return nil, err
	}

	err = n.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Notifications().Create(ctx, tx.DB(), rec)
	})
	if err != nil {
		return nil, err
	}

	n.pusher.Dispatch(rec)
	return rec, nil
}

func (n *notifierImpl) NotifyBestEffort(ctx context.Context, spec notification.Spec) {
	if _, err := n.Notify(ctx, spec); err != nil {
		slog.Warn("best-effort notification dropped",
			"recipient_id", spec.RecipientID,
			"type", spec.Type,
			"error", err.Error())
	}
}
