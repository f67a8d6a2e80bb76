package store

import (
	"context"

	"videotube/api"
)

// subscriptionAPI is the slice of the subscription gateway the store
// consumes.
type subscriptionAPI interface {
	Toggle(ctx context.Context, channelID string) (*api.SubscriptionStatus, error)
	Subscribers(ctx context.Context, channelID string) (*api.SubscriberPage, error)
	SubscribedTo(ctx context.Context, userName string) ([]api.ChannelProfile, error)
}

// SubscriptionStore caches a channel's subscriber roster and the viewer's
// subscribed-channels list (the navigation sidebar). Reconciling the latter
// with channel-side counts after a toggle is the Hub's job.
type SubscriptionStore struct {
	lifecycle
	sessions *SessionHolder
	api      subscriptionAPI

	subscribers      []api.Owner
	subscribersCount int
	subscribersKey   string

	subscribedTo    []api.ChannelProfile
	subscribedToKey string
}

// NewSubscriptionStore creates the subscription store.
func NewSubscriptionStore(gw subscriptionAPI, sessions *SessionHolder) *SubscriptionStore {
	return &SubscriptionStore{sessions: sessions, api: gw}
}

// Toggle flips the viewer's subscription to a channel and returns the
// server-authoritative state. Cache reconciliation across stores happens in
// Hub.ToggleSubscription; use that entry point from views.
func (s *SubscriptionStore) Toggle(ctx context.Context, channelID string) (*api.SubscriptionStatus, error) {
	if err := requireAuth(s.sessions); err != nil {
		return nil, err
	}
	s.begin()
	status, err := s.api.Toggle(ctx, channelID)
	if err != nil {
		return nil, s.fail(err)
	}
	s.mu.Lock()
	if !status.IsSubscribed {
		// Targeted patch: drop the channel from the sidebar list right away;
		// the follow-up refetch remains authoritative.
		for i := range s.subscribedTo {
			if s.subscribedTo[i].ID == channelID {
				s.subscribedTo = append(s.subscribedTo[:i:i], s.subscribedTo[i+1:]...)
				break
			}
		}
	}
	if s.subscribersKey == channelID {
		s.subscribersCount = status.Subscribers
	}
	s.status = StatusSucceeded
	s.mu.Unlock()
	return status, nil
}

// LoadSubscribers fetches the subscriber roster of a channel.
func (s *SubscriptionStore) LoadSubscribers(ctx context.Context, channelID string) error {
	s.mu.Lock()
	s.status = StatusPending
	s.err = nil
	s.subscribersKey = channelID
	s.mu.Unlock()

	page, err := s.api.Subscribers(ctx, channelID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subscribersKey != channelID {
		return nil
	}
	if err != nil {
		s.status = StatusFailed
		s.err = err
		return err
	}
	s.subscribers = page.Subscribers
	s.subscribersCount = page.SubscribersCount
	s.status = StatusSucceeded
	return nil
}

// LoadSubscribedTo fetches the channels a user is subscribed to, replacing
// the cached list.
func (s *SubscriptionStore) LoadSubscribedTo(ctx context.Context, userName string) error {
	s.mu.Lock()
	s.status = StatusPending
	s.err = nil
	s.subscribedToKey = userName
	s.mu.Unlock()

	channels, err := s.api.SubscribedTo(ctx, userName)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subscribedToKey != userName {
		return nil
	}
	if err != nil {
		s.status = StatusFailed
		s.err = err
		return err
	}
	s.subscribedTo = channels
	s.status = StatusSucceeded
	return nil
}

// Subscribers returns a copy of the cached roster and its count.
func (s *SubscriptionStore) Subscribers() ([]api.Owner, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Owner(nil), s.subscribers...), s.subscribersCount
}

// SubscribedTo returns a copy of the viewer's subscribed channels.
func (s *SubscriptionStore) SubscribedTo() []api.ChannelProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.ChannelProfile(nil), s.subscribedTo...)
}

// ClearViewer drops the viewer-scoped cache, e.g. on session end.
func (s *SubscriptionStore) ClearViewer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribedTo = nil
	s.subscribedToKey = ""
}
