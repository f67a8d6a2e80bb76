package store

import (
	"context"
	"errors"

	"videotube/api"
	"videotube/transport"
)

// authAPI is the slice of the auth gateway the store consumes.
type authAPI interface {
	Register(ctx context.Context, in api.RegisterInput) (*api.User, error)
	Login(ctx context.Context, in api.LoginInput) (*api.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*api.User, error)
	UpdateAccount(ctx context.Context, in api.AccountUpdate) (*api.User, error)
	UpdateAvatar(ctx context.Context, avatar api.File) (*api.User, error)
	UpdateCoverImage(ctx context.Context, cover api.File) (*api.User, error)
	ChangePassword(ctx context.Context, in api.PasswordChange) error
}

// AuthStore drives account and session operations and keeps the session
// holder in sync with their outcomes.
type AuthStore struct {
	lifecycle
	sessions *SessionHolder
	api      authAPI
}

// NewAuthStore creates the auth store.
func NewAuthStore(gw authAPI, sessions *SessionHolder) *AuthStore {
	return &AuthStore{sessions: sessions, api: gw}
}

// Register creates an account and starts a session for it.
func (s *AuthStore) Register(ctx context.Context, in api.RegisterInput) (*api.User, error) {
	s.begin()
	user, err := s.api.Register(ctx, in)
	if err != nil {
		return nil, s.fail(err)
	}
	s.sessions.Set(user)
	s.finish()
	return user, nil
}

// Login starts a session.
func (s *AuthStore) Login(ctx context.Context, in api.LoginInput) (*api.User, error) {
	s.begin()
	user, err := s.api.Login(ctx, in)
	if err != nil {
		return nil, s.fail(err)
	}
	s.sessions.Set(user)
	s.finish()
	return user, nil
}

// Logout ends the session. The session holder is cleared even when the
// server call fails: the viewer asked to leave.
func (s *AuthStore) Logout(ctx context.Context) error {
	s.begin()
	err := s.api.Logout(ctx)
	s.sessions.Clear()
	if err != nil {
		return s.fail(err)
	}
	s.finish()
	return nil
}

// Probe resolves the active session from the cookie pair, typically at
// process start. An unauthorized answer is a normal "no session" outcome.
func (s *AuthStore) Probe(ctx context.Context) (*api.User, error) {
	s.begin()
	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, transport.ErrUnauthorized) {
			s.sessions.Clear()
		}
		return nil, s.fail(err)
	}
	s.sessions.Set(user)
	s.finish()
	return user, nil
}

// UpdateAccount patches account details and refreshes the session profile.
func (s *AuthStore) UpdateAccount(ctx context.Context, in api.AccountUpdate) (*api.User, error) {
	return s.updateProfile(ctx, func(ctx context.Context) (*api.User, error) {
		return s.api.UpdateAccount(ctx, in)
	})
}

// UpdateAvatar replaces the avatar and refreshes the session profile.
func (s *AuthStore) UpdateAvatar(ctx context.Context, avatar api.File) (*api.User, error) {
	return s.updateProfile(ctx, func(ctx context.Context) (*api.User, error) {
		return s.api.UpdateAvatar(ctx, avatar)
	})
}

// UpdateCoverImage replaces the cover image and refreshes the session
// profile.
func (s *AuthStore) UpdateCoverImage(ctx context.Context, cover api.File) (*api.User, error) {
	return s.updateProfile(ctx, func(ctx context.Context) (*api.User, error) {
		return s.api.UpdateCoverImage(ctx, cover)
	})
}

// ChangePassword rotates the password. The session stays valid.
func (s *AuthStore) ChangePassword(ctx context.Context, in api.PasswordChange) error {
	if err := requireAuth(s.sessions); err != nil {
		return err
	}
	s.begin()
	if err := s.api.ChangePassword(ctx, in); err != nil {
		return s.fail(err)
	}
	s.finish()
	return nil
}

func (s *AuthStore) updateProfile(ctx context.Context, call func(context.Context) (*api.User, error)) (*api.User, error) {
	if err := requireAuth(s.sessions); err != nil {
		return nil, err
	}
	s.begin()
	user, err := call(ctx)
	if err != nil {
		return nil, s.fail(err)
	}
	s.sessions.Set(user)
	s.finish()
	return user, nil
}
