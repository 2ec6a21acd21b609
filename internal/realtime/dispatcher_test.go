//go:build unit

package realtime_test

import (
	"io"
	"log/slog"
	"testing"

	"internlink/internal/realtime"
	"internlink/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEmit struct {
	ConnectionID string
	Event        string
	Payload      any
}

// recordingEmitter captures emissions and can be told to fail for a
// given connection.
type recordingEmitter struct {
	emits   []recordedEmit
	failFor map[string]error
}

func (e *recordingEmitter) Emit(connectionID, event string, payload any) error {
	e.emits = append(e.emits, recordedEmit{ConnectionID: connectionID, Event: event, Payload: payload})
	if err, ok := e.failFor[connectionID]; ok {
		return err
	}
	return nil
}

func newTestDispatcher(emitter realtime.Emitter) (*realtime.Dispatcher, *realtime.Registry) {
	registry := realtime.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return realtime.NewDispatcher(registry, emitter, logger), registry
}

func TestDispatcher(t *testing.T) {
	t.Run("pushes to every live connection of the recipient", func(t *testing.T) {
		emitter := &recordingEmitter{}
		dispatcher, registry := newTestDispatcher(emitter)

		recipientID := uuid.New()
		registry.Register(recipientID, "conn-1")
		registry.Register(recipientID, "conn-2")
		registry.Register(uuid.New(), "other-conn")

		n, err := builder.NewNotificationBuilder().WithRecipientID(recipientID).BuildDomain()
		require.NoError(t, err)

		dispatcher.Dispatch(n)

		require.Len(t, emitter.emits, 2)
		conns := []string{emitter.emits[0].ConnectionID, emitter.emits[1].ConnectionID}
		assert.ElementsMatch(t, []string{"conn-1", "conn-2"}, conns)
		for _, e := range emitter.emits {
			assert.Equal(t, realtime.EventNewNotification, e.Event)
		}
	})

	t.Run("payload carries the notification fields", func(t *testing.T) {
		emitter := &recordingEmitter{}
		dispatcher, registry := newTestDispatcher(emitter)

		recipientID := uuid.New()
		postingID := uuid.New()
		actorID := uuid.New()
		registry.Register(recipientID, "conn-1")

		n, err := builder.NewNotificationBuilder().
			WithRecipientID(recipientID).
			WithRelatedPostingID(postingID).
			WithRelatedActorID(actorID).
			BuildDomain()
		require.NoError(t, err)

		dispatcher.Dispatch(n)

		require.Len(t, emitter.emits, 1)
		payload, ok := emitter.emits[0].Payload.(realtime.PushPayload)
		require.True(t, ok)
		assert.Equal(t, n.ID().String(), payload.ID)
		assert.Equal(t, "message", payload.Type)
		assert.Equal(t, n.Title(), payload.Title)
		assert.Equal(t, n.Message(), payload.Message)
		require.NotNil(t, payload.RelatedPostingID)
		assert.Equal(t, postingID.String(), *payload.RelatedPostingID)
		require.NotNil(t, payload.RelatedActorID)
		assert.Equal(t, actorID.String(), *payload.RelatedActorID)
		assert.Equal(t, n.CreatedAt(), payload.CreatedAt)
		assert.False(t, payload.Read)
	})

	t.Run("no live connections is a no-op", func(t *testing.T) {
		emitter := &recordingEmitter{}
		dispatcher, _ := newTestDispatcher(emitter)

		n, err := builder.NewNotificationBuilder().BuildDomain()
		require.NoError(t, err)

		dispatcher.Dispatch(n)

		assert.Empty(t, emitter.emits)
	})

	t.Run("a stalled connection does not stop the others", func(t *testing.T) {
		emitter := &recordingEmitter{
			failFor: map[string]error{"conn-stalled": realtime.ErrConnectionStalled},
		}
		dispatcher, registry := newTestDispatcher(emitter)

		recipientID := uuid.New()
		registry.Register(recipientID, "conn-stalled")
		registry.Register(recipientID, "conn-healthy")

		n, err := builder.NewNotificationBuilder().WithRecipientID(recipientID).BuildDomain()
		require.NoError(t, err)

		dispatcher.Dispatch(n)

		assert.Len(t, emitter.emits, 2)
	})
}
