package realtime

import (
	"log/slog"
	"time"

	"internlink/internal/domain/notification"
)

// EventNewNotification is the event name pushed to live connections when
// a notification is created.
const EventNewNotification = "newNotification"

// Emitter hands a named event to a single live connection. The emission
// must be non-blocking or bounded-latency: a broken or stalled connection
// fails fast instead of stalling the caller.
type Emitter interface {
	Emit(connectionID, event string, payload any) error
}

// PushPayload is the wire shape of a pushed notification.
type PushPayload struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"`
	Title            string    `json:"title"`
	Message          string    `json:"message"`
	RelatedPostingID *string   `json:"relatedPostingId,omitempty"`
	RelatedActorID   *string   `json:"relatedActorId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	Read             bool      `json:"read"`
}

// Dispatcher best-effort pushes notifications to every live connection
// of the recipient. It is a side channel: it never returns an error and
// is never part of a transaction boundary. The durable store remains the
// only delivery guarantee.
type Dispatcher struct {
	registry *Registry
	emitter  Emitter
	logger   *slog.Logger
}

func NewDispatcher(registry *Registry, emitter Emitter, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, emitter: emitter, logger: logger}
}

// Dispatch pushes n to the recipient's live connections. Zero live
// connections is a complete no-op; emission failures are logged and
// swallowed.
func (d *Dispatcher) Dispatch(n *notification.Notification) {
	conns := d.registry.Lookup(n.RecipientID())
	if len(conns) == 0 {
		return
	}

	payload := toPushPayload(n)
	for _, conn := range conns {
		if err := d.emitter.Emit(conn, EventNewNotification, payload); err != nil {
			d.logger.Warn("push emit failed",
				"connection_id", conn,
				"notification_id", n.ID(),
				"recipient_id", n.RecipientID(),
				"error", err.Error())
		}
	}
}

func toPushPayload(n *notification.Notification) PushPayload {
	p := PushPayload{
		ID:        n.ID().String(),
		Type:      n.Type().String(),
		Title:     n.Title(),
		Message:   n.Message(),
		CreatedAt: n.CreatedAt(),
		Read:      false,
	}
	if id := n.RelatedPostingID(); id != nil {
		s := id.String()
		p.RelatedPostingID = &s
	}
	if id := n.RelatedActorID(); id != nil {
		s := id.String()
		p.RelatedActorID = &s
	}
	return p
}
