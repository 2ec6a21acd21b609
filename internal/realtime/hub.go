package realtime

import (
	"sync"

	"internlink/internal/pkg/config"
	"internlink/internal/pkg/errs"
)

var (
	ErrUnknownConnection = errs.New("unknown connection")
	ErrConnectionStalled = errs.New("connection send buffer full")
)

// Event is one pushed event as seen by a live connection.
type Event struct {
	Name    string
	Payload any
}

// Hub is the in-process live transport: each connection owns a buffered
// event channel drained by its streaming handler. Emit fails fast when a
// consumer stops draining rather than blocking the dispatcher. Presence
// ownership lives in the Registry; the hub only knows channels.
type Hub struct {
	buffer int

	mu    sync.RWMutex
	conns map[string]chan Event
}

func NewHub(cfg config.RealtimeConfig) *Hub {
	buffer := cfg.EmitBuffer
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		buffer: buffer,
		conns:  map[string]chan Event{},
	}
}

// Add creates the event channel for a new connection.
func (h *Hub) Add(connectionID string) <-chan Event {
	ch := make(chan Event, h.buffer)
	h.mu.Lock()
	h.conns[connectionID] = ch
	h.mu.Unlock()
	return ch
}

// Remove drops the connection and closes its channel so the draining
// handler unblocks.
func (h *Hub) Remove(connectionID string) {
	h.mu.Lock()
	ch, ok := h.conns[connectionID]
	if ok {
		delete(h.conns, connectionID)
	}
	h.mu.Unlock()
	if ok {
		close(ch)
	}
}

// Emit queues the event on the connection's channel. Returns
// ErrConnectionStalled instead of blocking when the buffer is full.
func (h *Hub) Emit(connectionID, event string, payload any) error {
	// The read lock is held across the send so Remove cannot close the
	// channel mid-emit. The send itself never blocks.
	h.mu.RLock()
	defer h.mu.RUnlock()
	ch, ok := h.conns[connectionID]
	if !ok {
		return ErrUnknownConnection
	}
	select {
	case ch <- Event{Name: event, Payload: payload}:
		return nil
	default:
		return ErrConnectionStalled
	}
}
