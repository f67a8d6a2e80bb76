package store

import (
	"context"

	"github.com/rs/zerolog"

	"videotube/api"
)

// Hub wires every store over one gateway set and owns the cross-store
// consistency rules: mutations in one domain that affect data displayed via
// another are reconciled here, not inside the individual stores.
type Hub struct {
	log zerolog.Logger

	Sessions      *SessionHolder
	Auth          *AuthStore
	Videos        *VideoStore
	Comments      *CommentStore
	Likes         *LikeStore
	Subscriptions *SubscriptionStore
	Channels      *ChannelStore
	Playlists     *PlaylistStore
	Tweets        *TweetStore
}

// NewHub creates all stores over the given gateways and session holder.
func NewHub(gw *api.Gateways, sessions *SessionHolder, log zerolog.Logger) *Hub {
	return &Hub{
		log:           log,
		Sessions:      sessions,
		Auth:          NewAuthStore(gw.Auth, sessions),
		Videos:        NewVideoStore(gw.Videos, gw.Likes, sessions),
		Comments:      NewCommentStore(gw.Comments, gw.Likes, sessions),
		Likes:         NewLikeStore(gw.Likes, sessions),
		Subscriptions: NewSubscriptionStore(gw.Subscriptions, sessions),
		Channels:      NewChannelStore(gw.Auth, sessions),
		Playlists:     NewPlaylistStore(gw.Playlists, sessions),
		Tweets:        NewTweetStore(gw.Tweets, gw.Likes, sessions),
	}
}

// ToggleSubscription flips the viewer's subscription to a channel and
// reconciles every cache that displays it: the channel page, the owner
// panel of the video being watched, and the viewer's subscribed-channels
// list. The first two are patched from the toggle response; the sidebar
// list is refetched so it reflects the new membership within one round
// trip. A refetch failure is recorded on the subscription store but does
// not fail the toggle.
func (h *Hub) ToggleSubscription(ctx context.Context, channelID string) (*api.SubscriptionStatus, error) {
	status, err := h.Subscriptions.Toggle(ctx, channelID)
	if err != nil {
		return nil, err
	}

	h.Videos.ApplyOwnerSubscription(channelID, status)
	h.Channels.ApplySubscription(channelID, status)

	if sess := h.Sessions.Current(); sess.Profile != nil {
		if err := h.Subscriptions.LoadSubscribedTo(ctx, sess.Profile.UserName); err != nil {
			h.log.Warn().Err(err).Str("channel_id", channelID).Msg("subscribed channels refetch failed")
		}
	}
	return status, nil
}

// Logout ends the session and drops every viewer-scoped cache.
func (h *Hub) Logout(ctx context.Context) error {
	err := h.Auth.Logout(ctx)
	h.clearViewerCaches()
	return err
}

// SessionExpired is the transport client's refresh-failure hook: the
// session is destroyed and viewer-scoped caches dropped so dependent views
// fall back to the unauthenticated state.
func (h *Hub) SessionExpired() {
	h.log.Warn().Msg("session expired, clearing viewer state")
	h.Sessions.Clear()
	h.clearViewerCaches()
}

func (h *Hub) clearViewerCaches() {
	h.Likes.Clear()
	h.Subscriptions.ClearViewer()
	h.Channels.ClearViewer()
}
