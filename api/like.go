package api

import (
	"context"
	"net/url"

	"videotube/transport"
)

// LikeGateway covers the /likes endpoints. Likes are never materialized
// client-side; toggles return the authoritative boolean and count for the
// liked entity.
type LikeGateway struct {
	client *transport.Client
}

// ToggleVideo flips the viewer's like on a video.
func (g *LikeGateway) ToggleVideo(ctx context.Context, videoID string) (*LikeStatus, error) {
	return g.toggle(ctx, "/likes/toggle/v/"+url.PathEscape(videoID))
}

// ToggleComment flips the viewer's like on a comment.
func (g *LikeGateway) ToggleComment(ctx context.Context, commentID string) (*LikeStatus, error) {
	return g.toggle(ctx, "/likes/toggle/c/"+url.PathEscape(commentID))
}

// ToggleTweet flips the viewer's like on a tweet.
func (g *LikeGateway) ToggleTweet(ctx context.Context, tweetID string) (*LikeStatus, error) {
	return g.toggle(ctx, "/likes/toggle/t/"+url.PathEscape(tweetID))
}

// LikedVideos fetches the viewer's liked videos.
func (g *LikeGateway) LikedVideos(ctx context.Context) ([]Video, error) {
	var videos []Video
	if err := g.client.Get(ctx, "/likes/videos", &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

func (g *LikeGateway) toggle(ctx context.Context, path string) (*LikeStatus, error) {
	var status LikeStatus
	if err := g.client.Post(ctx, path, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
