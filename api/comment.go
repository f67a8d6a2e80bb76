package api

import (
	"context"
	"net/url"
	"strconv"

	"videotube/transport"
)

// CommentGateway covers the /comments endpoints.
type CommentGateway struct {
	client *transport.Client
}

type commentBody struct {
	Content string `json:"content"`
}

// List fetches a page of comments for a video, newest first (server order).
func (g *CommentGateway) List(ctx context.Context, videoID string, page, limit int) (*CommentPage, error) {
	v := url.Values{}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	path := "/comments/" + url.PathEscape(videoID)
	if enc := v.Encode(); enc != "" {
		path += "?" + enc
	}

	var comments CommentPage
	if err := g.client.Get(ctx, path, &comments); err != nil {
		return nil, err
	}
	return &comments, nil
}

// Add posts a comment on a video and returns the created comment.
func (g *CommentGateway) Add(ctx context.Context, videoID, content string) (*Comment, error) {
	var comment Comment
	if err := g.client.Post(ctx, "/comments/"+url.PathEscape(videoID), commentBody{Content: content}, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Update edits a comment and returns the updated comment.
func (g *CommentGateway) Update(ctx context.Context, commentID, content string) (*Comment, error) {
	var comment Comment
	if err := g.client.Patch(ctx, "/comments/c/"+url.PathEscape(commentID), commentBody{Content: content}, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete removes a comment.
func (g *CommentGateway) Delete(ctx context.Context, commentID string) error {
	return g.client.Delete(ctx, "/comments/c/"+url.PathEscape(commentID))
}
