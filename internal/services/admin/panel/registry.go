package panel

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/louisbranch/adminpanel/internal/platform/timeouts"
	"github.com/louisbranch/adminpanel/internal/services/admin/storage"
)

// RegistryConfig configures panel creation and expiry.
type RegistryConfig struct {
	// Factory builds the panel for a new session id.
	Factory func(sessionID string) *Panel
	// Sessions records newly created sessions. Optional.
	Sessions storage.PanelSessionStore
	// TTL evicts panels idle for longer. Defaults to timeouts.PanelSessionTTL.
	TTL time.Duration
	// Now overrides the clock in tests.
	Now func() time.Time
}

type registryEntry struct {
	panel    *Panel
	lastSeen time.Time
}

// Registry maps session ids to panels and tears down idle ones.
type Registry struct {
	factory  func(string) *Panel
	sessions storage.PanelSessionStore
	ttl      time.Duration
	now      func() time.Time

	mu     sync.Mutex
	panels map[string]*registryEntry
	closed bool
}

// NewRegistry builds an empty registry.
func NewRegistry(cfg RegistryConfig) *Registry {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = timeouts.PanelSessionTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Registry{
		factory:  cfg.Factory,
		sessions: cfg.Sessions,
		ttl:      ttl,
		now:      now,
		panels:   make(map[string]*registryEntry),
	}
}

// Acquire returns the panel for sessionID, creating a panel under a fresh id
// when sessionID is unknown, malformed or expired. created reports whether
// the returned panel is new.
func (r *Registry) Acquire(ctx context.Context, sessionID string) (p *Panel, created bool) {
	now := r.now()

	r.mu.Lock()
	expired := r.evictLocked(now)
	if entry, ok := r.panels[sessionID]; ok {
		entry.lastSeen = now
		r.mu.Unlock()
		closePanels(expired)
		return entry.panel, false
	}

	id := uuid.NewString()
	p = r.factory(id)
	closed := r.closed
	if !closed {
		r.panels[id] = &registryEntry{panel: p, lastSeen: now}
	}
	r.mu.Unlock()
	closePanels(expired)
	if closed {
		p.Close()
		return p, true
	}

	if r.sessions != nil {
		if err := r.sessions.PutPanelSession(ctx, id, now.UTC()); err != nil {
			log.Printf("admin panel registry: put session %s: %v", id, err)
		}
	}
	return p, true
}

// Lookup returns an existing, unexpired panel.
func (r *Registry) Lookup(sessionID string) (*Panel, bool) {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.panels[sessionID]
	if !ok || now.Sub(entry.lastSeen) > r.ttl {
		return nil, false
	}
	entry.lastSeen = now
	return entry.panel, true
}

// Len reports the number of live panels.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.panels)
}

// Sweep tears down expired panels and returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	expired := r.evictLocked(r.now())
	r.mu.Unlock()
	closePanels(expired)
	return len(expired)
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = r.ttl / 4
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				log.Printf("admin panel registry: expired %d panels", n)
			}
		}
	}
}

// Close tears down every panel. Later acquisitions return panels that are
// already closed and never replay.
func (r *Registry) Close() {
	r.mu.Lock()
	r.closed = true
	panels := make([]*Panel, 0, len(r.panels))
	for id, entry := range r.panels {
		panels = append(panels, entry.panel)
		delete(r.panels, id)
	}
	r.mu.Unlock()
	closePanels(panels)
}

func (r *Registry) evictLocked(now time.Time) []*Panel {
	var expired []*Panel
	for id, entry := range r.panels {
		if now.Sub(entry.lastSeen) > r.ttl {
			expired = append(expired, entry.panel)
			delete(r.panels, id)
		}
	}
	return expired
}

func closePanels(panels []*Panel) {
	for _, p := range panels {
		p.Close()
	}
}
