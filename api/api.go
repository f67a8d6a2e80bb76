package api

import "videotube/transport"

// Gateways bundles one gateway per backend resource. Gateways are stateless:
// each holds only the transport client and maps domain operations to single
// API calls.
type Gateways struct {
	Auth          *AuthGateway
	Videos        *VideoGateway
	Comments      *CommentGateway
	Likes         *LikeGateway
	Subscriptions *SubscriptionGateway
	Playlists     *PlaylistGateway
	Tweets        *TweetGateway
}

// New creates the full gateway set over one transport client.
func New(client *transport.Client) *Gateways {
	return &Gateways{
		Auth:          &AuthGateway{client: client},
		Videos:        &VideoGateway{client: client},
		Comments:      &CommentGateway{client: client},
		Likes:         &LikeGateway{client: client},
		Subscriptions: &SubscriptionGateway{client: client},
		Playlists:     &PlaylistGateway{client: client},
		Tweets:        &TweetGateway{client: client},
	}
}
