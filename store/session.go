package store

import (
	"errors"
	"sync"

	"videotube/api"
)

// ErrNotAuthenticated is returned by mutating store operations when no
// session is active. The request is never issued.
var ErrNotAuthenticated = errors.New("store: not authenticated")

// Session is the process-wide authentication state. Exactly one instance
// exists, owned by the SessionHolder.
type Session struct {
	UserID          string
	Profile         *api.User
	IsAuthenticated bool
}

// SessionHolder owns the single Session. It is populated by a successful
// login, registration, or current-user probe, and cleared by logout or by
// the transport client when the refresh protocol gives up.
type SessionHolder struct {
	mu      sync.RWMutex
	session Session
}

// NewSessionHolder returns an empty holder (unauthenticated).
func NewSessionHolder() *SessionHolder {
	return &SessionHolder{}
}

// Set installs the authenticated user's profile.
func (h *SessionHolder) Set(profile *api.User) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if profile == nil {
		h.session = Session{}
		return
	}
	p := *profile
	h.session = Session{
		UserID:          p.ID,
		Profile:         &p,
		IsAuthenticated: true,
	}
}

// Clear destroys the session.
func (h *SessionHolder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.session = Session{}
}

// Current returns a copy of the session.
func (h *SessionHolder) Current() Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s := h.session
	if s.Profile != nil {
		p := *s.Profile
		s.Profile = &p
	}
	return s
}

// requireAuth gates mutating operations on an active session.
func requireAuth(h *SessionHolder) error {
	if !h.Current().IsAuthenticated {
		return ErrNotAuthenticated
	}
	return nil
}
