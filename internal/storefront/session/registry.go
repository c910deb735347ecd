package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultIdleTTL is how long a session may sit untouched before the janitor
// evicts it.
const DefaultIdleTTL = 30 * time.Minute

// Registry owns every live session, keyed by UUID. Eviction of idle
// sessions is the only way server-side state is reclaimed; the browser never
// has to say goodbye.
type Registry struct {
	cfg     Config
	idleTTL time.Duration
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRegistry builds a registry creating sessions with cfg. idleTTL <= 0
// falls back to DefaultIdleTTL.
func NewRegistry(cfg Config, idleTTL time.Duration) *Registry {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Registry{
		cfg:      cfg,
		idleTTL:  idleTTL,
		now:      now,
		sessions: make(map[string]*Session),
		stop:     make(chan struct{}),
	}
}

// Create mounts a new section instance and starts its catalog load. The
// load is detached from ctx's cancellation so a fast mount response does not
// abort the fetch, while tracing metadata still propagates.
func (r *Registry) Create(ctx context.Context, viewportWidth int) *Session {
	s := New(uuid.NewString(), viewportWidth, r.cfg)

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	go s.Load(context.WithoutCancel(ctx))

	slog.InfoContext(ctx, "session created", "session_id", s.ID, "viewport_width", viewportWidth)
	return s
}

// Get returns the live session with the given ID.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Delete unmounts and removes a session. Unknown IDs are a no-op.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		s.Close()
	}
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// StartJanitor begins periodic eviction of idle sessions. Call Close to
// stop it.
func (r *Registry) StartJanitor(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.stop:
				return
			case <-ticker.C:
				r.evictIdle()
			}
		}
	}()
}

func (r *Registry) evictIdle() {
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	var expired []*Session
	for id, s := range r.sessions {
		if s.IdleSince().Before(cutoff) {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.Close()
		slog.Info("idle session evicted", "session_id", s.ID)
	}
}

// Close stops the janitor and unmounts every session.
func (r *Registry) Close() {
	r.stopOnce.Do(func() { close(r.stop) })

	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
