package api

import (
	"context"
	"net/url"

	"videotube/transport"
)

// PlaylistGateway covers the /playlists endpoints.
type PlaylistGateway struct {
	client *transport.Client
}

// PlaylistInput holds the create/update payload.
type PlaylistInput struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// Create makes a new empty playlist.
func (g *PlaylistGateway) Create(ctx context.Context, in PlaylistInput) (*Playlist, error) {
	var playlist Playlist
	if err := g.client.Post(ctx, "/playlists", in, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// Get fetches one playlist with its video summaries.
func (g *PlaylistGateway) Get(ctx context.Context, playlistID string) (*Playlist, error) {
	var playlist Playlist
	if err := g.client.Get(ctx, "/playlists/"+url.PathEscape(playlistID), &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// ForUser fetches all playlists owned by a user.
func (g *PlaylistGateway) ForUser(ctx context.Context, userName string) ([]Playlist, error) {
	var playlists []Playlist
	if err := g.client.Get(ctx, "/playlists/user/"+url.PathEscape(userName), &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// Update renames or redescribes a playlist and returns the updated playlist.
func (g *PlaylistGateway) Update(ctx context.Context, playlistID string, in PlaylistInput) (*Playlist, error) {
	var playlist Playlist
	if err := g.client.Patch(ctx, "/playlists/"+url.PathEscape(playlistID), in, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// AddVideo adds a video to a playlist and returns the full updated playlist.
func (g *PlaylistGateway) AddVideo(ctx context.Context, videoID, playlistID string) (*Playlist, error) {
	var playlist Playlist
	path := "/playlists/add/" + url.PathEscape(videoID) + "/" + url.PathEscape(playlistID)
	if err := g.client.Patch(ctx, path, nil, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// RemoveVideo removes a video from a playlist and returns the full updated
// playlist.
func (g *PlaylistGateway) RemoveVideo(ctx context.Context, videoID, playlistID string) (*Playlist, error) {
	var playlist Playlist
	path := "/playlists/remove/" + url.PathEscape(videoID) + "/" + url.PathEscape(playlistID)
	if err := g.client.Patch(ctx, path, nil, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// Delete removes a playlist.
func (g *PlaylistGateway) Delete(ctx context.Context, playlistID string) error {
	return g.client.Delete(ctx, "/playlists/"+url.PathEscape(playlistID))
}
