package api

import (
	"context"
	"net/url"

	"videotube/transport"
)

// SubscriptionGateway covers the /subscriptions endpoints.
type SubscriptionGateway struct {
	client *transport.Client
}

// Toggle flips the viewer's subscription to a channel and returns the
// authoritative state and subscriber count.
func (g *SubscriptionGateway) Toggle(ctx context.Context, channelID string) (*SubscriptionStatus, error) {
	var status SubscriptionStatus
	if err := g.client.Post(ctx, "/subscriptions/c/"+url.PathEscape(channelID), nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Subscribers fetches the subscriber roster of a channel.
func (g *SubscriptionGateway) Subscribers(ctx context.Context, channelID string) (*SubscriberPage, error) {
	var page SubscriberPage
	if err := g.client.Get(ctx, "/subscriptions/c/subscribers/"+url.PathEscape(channelID), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SubscribedTo fetches the channels a user is subscribed to.
func (g *SubscriptionGateway) SubscribedTo(ctx context.Context, userName string) ([]ChannelProfile, error) {
	var channels []ChannelProfile
	if err := g.client.Get(ctx, "/subscriptions/c/subscribed-to/"+url.PathEscape(userName), &channels); err != nil {
		return nil, err
	}
	return channels, nil
}
