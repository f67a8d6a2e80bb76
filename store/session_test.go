package store

import (
	"errors"
	"testing"

	"videotube/api"
)

func authedHolder() *SessionHolder {
	h := NewSessionHolder()
	h.Set(&api.User{ID: "u1", UserName: "viewer", FullName: "The Viewer"})
	return h
}

func TestSessionHolderLifecycle(t *testing.T) {
	h := NewSessionHolder()
	if s := h.Current(); s.IsAuthenticated || s.UserID != "" {
		t.Errorf("expected empty session, got %+v", s)
	}

	h.Set(&api.User{ID: "u1", UserName: "alice"})
	s := h.Current()
	if !s.IsAuthenticated || s.UserID != "u1" || s.Profile.UserName != "alice" {
		t.Errorf("unexpected session: %+v", s)
	}

	h.Clear()
	if s := h.Current(); s.IsAuthenticated || s.Profile != nil {
		t.Errorf("expected cleared session, got %+v", s)
	}
}

func TestSessionCurrentReturnsCopy(t *testing.T) {
	h := authedHolder()
	s := h.Current()
	s.Profile.UserName = "mallory"
	if h.Current().Profile.UserName != "viewer" {
		t.Error("mutating the returned copy must not affect the held session")
	}
}

func TestSetNilClearsSession(t *testing.T) {
	h := authedHolder()
	h.Set(nil)
	if h.Current().IsAuthenticated {
		t.Error("expected unauthenticated session after Set(nil)")
	}
}

func TestRequireAuth(t *testing.T) {
	if err := requireAuth(NewSessionHolder()); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if err := requireAuth(authedHolder()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
