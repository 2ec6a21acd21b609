// Package realtime holds the volatile delivery side of notifications:
// the presence registry mapping recipients to live connections, the
// best-effort push dispatcher, and the SSE hub backing it. Nothing in
// this package is durable; losing it only shrinks delivery reach.
package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// Registry tracks which live connections currently represent each
// recipient. A recipient may hold several simultaneous connections
// (multiple tabs/devices). Safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	byRecipient map[uuid.UUID]map[string]struct{}
	byConn      map[string]uuid.UUID
}

func NewRegistry() *Registry {
	return &Registry{
		byRecipient: map[uuid.UUID]map[string]struct{}{},
		byConn:      map[string]uuid.UUID{},
	}
}

// Register adds connectionID to the recipient's connection set.
// Re-registering the same connection is idempotent.
func (r *Registry) Register(recipientID uuid.UUID, connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.byConn[connectionID]; ok && prev != recipientID {
		r.removeLocked(prev, connectionID)
	}
	set, ok := r.byRecipient[recipientID]
	if !ok {
		set = map[string]struct{}{}
		r.byRecipient[recipientID] = set
	}
	set[connectionID] = struct{}{}
	r.byConn[connectionID] = recipientID
}

// Deregister removes the connection from whichever recipient owns it.
// No-op for unknown connections.
func (r *Registry) Deregister(connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	recipientID, ok := r.byConn[connectionID]
	if !ok {
		return
	}
	r.removeLocked(recipientID, connectionID)
}

func (r *Registry) removeLocked(recipientID uuid.UUID, connectionID string) {
	delete(r.byConn, connectionID)
	set, ok := r.byRecipient[recipientID]
	if !ok {
		return
	}
	delete(set, connectionID)
	if len(set) == 0 {
		delete(r.byRecipient, recipientID)
	}
}

// Lookup returns the recipient's live connections. An empty result is a
// normal outcome, not an error.
func (r *Registry) Lookup(recipientID uuid.UUID) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.byRecipient[recipientID]
	if !ok {
		return nil
	}
	conns := make([]string, 0, len(set))
	for c := range set {
		conns = append(conns, c)
	}
	return conns
}
