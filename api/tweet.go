package api

import (
	"context"
	"net/url"

	"videotube/transport"
)

// TweetGateway covers the /tweets endpoints.
type TweetGateway struct {
	client *transport.Client
}

type tweetBody struct {
	Content string `json:"content"`
}

// Create posts a new tweet and returns it.
func (g *TweetGateway) Create(ctx context.Context, content string) (*Tweet, error) {
	var tweet Tweet
	if err := g.client.Post(ctx, "/tweets", tweetBody{Content: content}, &tweet); err != nil {
		return nil, err
	}
	return &tweet, nil
}

// ForUser fetches all tweets posted by a user's channel.
func (g *TweetGateway) ForUser(ctx context.Context, userName string) ([]Tweet, error) {
	var tweets []Tweet
	if err := g.client.Get(ctx, "/tweets/c/"+url.PathEscape(userName), &tweets); err != nil {
		return nil, err
	}
	return tweets, nil
}

// Update edits a tweet and returns the updated tweet.
func (g *TweetGateway) Update(ctx context.Context, tweetID, content string) (*Tweet, error) {
	var tweet Tweet
	if err := g.client.Patch(ctx, "/tweets/"+url.PathEscape(tweetID), tweetBody{Content: content}, &tweet); err != nil {
		return nil, err
	}
	return &tweet, nil
}

// Delete removes a tweet.
func (g *TweetGateway) Delete(ctx context.Context, tweetID string) error {
	return g.client.Delete(ctx, "/tweets/"+url.PathEscape(tweetID))
}
