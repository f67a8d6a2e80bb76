package store

import (
	"context"

	"videotube/api"
)

// channelAPI is the slice of the auth gateway serving channel-page reads.
type channelAPI interface {
	ChannelProfile(ctx context.Context, userName string) (*api.ChannelProfile, error)
	WatchHistory(ctx context.Context) ([]api.Video, error)
	Dashboard(ctx context.Context, userName string) (*api.DashboardStats, error)
}

// ChannelStore caches the channel page being viewed, plus the viewer's
// watch history and creator dashboard.
type ChannelStore struct {
	lifecycle
	sessions *SessionHolder
	api      channelAPI

	profile    *api.ChannelProfile
	profileKey string
	history    []api.Video
	stats      *api.DashboardStats
}

// NewChannelStore creates the channel store.
func NewChannelStore(gw channelAPI, sessions *SessionHolder) *ChannelStore {
	return &ChannelStore{sessions: sessions, api: gw}
}

// LoadProfile fetches a channel page, replacing the cached one. A response
// for a channel the viewer has since navigated away from is discarded.
func (s *ChannelStore) LoadProfile(ctx context.Context, userName string) error {
	s.mu.Lock()
	s.status = StatusPending
	s.err = nil
	s.profile = nil
	s.profileKey = userName
	s.mu.Unlock()

	profile, err := s.api.ChannelProfile(ctx, userName)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profileKey != userName {
		return nil
	}
	if err != nil {
		s.status = StatusFailed
		s.err = err
		return err
	}
	s.profile = profile
	s.status = StatusSucceeded
	return nil
}

// LoadHistory fetches the viewer's watch history.
func (s *ChannelStore) LoadHistory(ctx context.Context) error {
	if err := requireAuth(s.sessions); err != nil {
		return err
	}
	s.begin()
	history, err := s.api.WatchHistory(ctx)
	if err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	s.history = history
	s.status = StatusSucceeded
	s.mu.Unlock()
	return nil
}

// LoadDashboard fetches creator dashboard stats for a channel.
func (s *ChannelStore) LoadDashboard(ctx context.Context, userName string) error {
	if err := requireAuth(s.sessions); err != nil {
		return err
	}
	s.begin()
	stats, err := s.api.Dashboard(ctx, userName)
	if err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	s.stats = stats
	s.status = StatusSucceeded
	s.mu.Unlock()
	return nil
}

// ApplySubscription patches the cached channel page after a subscription
// toggle resolved.
func (s *ChannelStore) ApplySubscription(channelID string, status *api.SubscriptionStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile != nil && s.profile.ID == channelID {
		s.profile.IsSubscribed = status.IsSubscribed
		s.profile.SubscribersCount = status.Subscribers
	}
}

// Profile returns a copy of the cached channel page, or nil.
func (s *ChannelStore) Profile() *api.ChannelProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// History returns a copy of the cached watch history.
func (s *ChannelStore) History() []api.Video {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Video(nil), s.history...)
}

// Dashboard returns a copy of the cached dashboard stats, or nil.
func (s *ChannelStore) Dashboard() *api.DashboardStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stats == nil {
		return nil
	}
	st := *s.stats
	return &st
}

// ClearViewer drops the viewer-scoped caches, e.g. on session end.
func (s *ChannelStore) ClearViewer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.stats = nil
}
