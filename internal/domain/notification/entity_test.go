//go:build unit

package notification_test

import (
	"testing"

	"internlink/internal/domain/notification"
	"internlink/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotification(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewNotificationBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, b.RecipientID, actual.RecipientID())
		assert.Equal(t, notification.TypeMessage, actual.Type())
		assert.Equal(t, "New microtask assigned", actual.Title())
		assert.False(t, actual.Read(), "notifications start unread")
		assert.Equal(t, b.CreatedAt, actual.CreatedAt())
	})

	t.Run("spec validation", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*builder.NotificationBuilder)
			errIs  error
		}{
			{
				name:   "missing recipient",
				mutate: func(b *builder.NotificationBuilder) { b.WithRecipientID(uuid.Nil) },
				errIs:  notification.ErrMissingRecipient,
			},
			{
				name:   "invalid type",
				mutate: func(b *builder.NotificationBuilder) { b.WithType("broadcast") },
				errIs:  notification.ErrInvalidType,
			},
			{
				name:   "empty title",
				mutate: func(b *builder.NotificationBuilder) { b.WithTitle("") },
				errIs:  notification.ErrEmptyTitle,
			},
			{
				name:   "application type",
				mutate: func(b *builder.NotificationBuilder) { b.WithType(string(notification.TypeApplication)) },
			},
			{
				name:   "status update type",
				mutate: func(b *builder.NotificationBuilder) { b.WithType(string(notification.TypeStatusUpdate)) },
			},
			{
				name:   "new internship type",
				mutate: func(b *builder.NotificationBuilder) { b.WithType(string(notification.TypeNewInternship)) },
			},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				b := builder.NewNotificationBuilder()
				tc.mutate(b)
				n, err := b.BuildDomain()
				if tc.errIs != nil {
					require.ErrorIs(t, err, tc.errIs)
					require.Nil(t, n)
					return
				}
				require.NoError(t, err)
				require.NotNil(t, n)
			})
		}
	})

	t.Run("related ids carry through", func(t *testing.T) {
		postingID := uuid.New()
		actorID := uuid.New()
		n, err := builder.NewNotificationBuilder().
			WithRelatedPostingID(postingID).
			WithRelatedActorID(actorID).
			BuildDomain()
		require.NoError(t, err)

		require.NotNil(t, n.RelatedPostingID())
		assert.Equal(t, postingID, *n.RelatedPostingID())
		require.NotNil(t, n.RelatedActorID())
		assert.Equal(t, actorID, *n.RelatedActorID())
	})

	t.Run("UUID uniqueness", func(t *testing.T) {
		b := builder.NewNotificationBuilder()
		n1, err := b.BuildDomain()
		require.NoError(t, err)
		n2, err := b.BuildDomain()
		require.NoError(t, err)
		assert.NotEqual(t, n1.ID(), n2.ID())
	})
}
