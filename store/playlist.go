package store

import (
	"context"
	"errors"

	"videotube/api"
)

// ErrDuplicateVideo is returned when adding a video to a playlist that
// already contains it; the cached copy makes the request unnecessary.
var ErrDuplicateVideo = errors.New("store: video already in playlist")

// playlistAPI is the slice of the playlist gateway the store consumes.
type playlistAPI interface {
	Create(ctx context.Context, in api.PlaylistInput) (*api.Playlist, error)
	Get(ctx context.Context, playlistID string) (*api.Playlist, error)
	ForUser(ctx context.Context, userName string) ([]api.Playlist, error)
	Update(ctx context.Context, playlistID string, in api.PlaylistInput) (*api.Playlist, error)
	AddVideo(ctx context.Context, videoID, playlistID string) (*api.Playlist, error)
	RemoveVideo(ctx context.Context, videoID, playlistID string) (*api.Playlist, error)
	Delete(ctx context.Context, playlistID string) error
}

// PlaylistStore caches a user's playlists and the playlist currently open.
// Membership mutations return the full updated playlist, which is swapped
// into both caches.
type PlaylistStore struct {
	lifecycle
	sessions *SessionHolder
	api      playlistAPI

	userPlaylists []api.Playlist
	userKey       string
	current       *api.Playlist
	currentKey    string
}

// NewPlaylistStore creates the playlist store.
func NewPlaylistStore(gw playlistAPI, sessions *SessionHolder) *PlaylistStore {
	return &PlaylistStore{sessions: sessions, api: gw}
}

// Create makes a new playlist and prepends it to the cached list.
func (s *PlaylistStore) Create(ctx context.Context, in api.PlaylistInput) (*api.Playlist, error) {
	if err := requireAuth(s.sessions); err != nil {
		return nil, err
	}
	s.begin()
	playlist, err := s.api.Create(ctx, in)
	if err != nil {
		return nil, s.fail(err)
	}
	s.mu.Lock()
	s.userPlaylists = append([]api.Playlist{*playlist}, s.userPlaylists...)
	s.status = StatusSucceeded
	s.mu.Unlock()
	return playlist, nil
}

// LoadForUser fetches a user's playlists, replacing the cached list.
func (s *PlaylistStore) LoadForUser(ctx context.Context, userName string) error {
	s.mu.Lock()
	s.status = StatusPending
	s.err = nil
	s.userKey = userName
	s.mu.Unlock()

	playlists, err := s.api.ForUser(ctx, userName)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userKey != userName {
		return nil
	}
	if err != nil {
		s.status = StatusFailed
		s.err = err
		return err
	}
	s.userPlaylists = playlists
	s.status = StatusSucceeded
	return nil
}

// LoadPlaylist fetches one playlist, replacing the current one.
func (s *PlaylistStore) LoadPlaylist(ctx context.Context, playlistID string) error {
	s.mu.Lock()
	s.status = StatusPending
	s.err = nil
	s.current = nil
	s.currentKey = playlistID
	s.mu.Unlock()

	playlist, err := s.api.Get(ctx, playlistID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentKey != playlistID {
		return nil
	}
	if err != nil {
		s.status = StatusFailed
		s.err = err
		return err
	}
	s.current = playlist
	s.status = StatusSucceeded
	return nil
}

// Update renames or redescribes a playlist and swaps the result into both
// caches.
func (s *PlaylistStore) Update(ctx context.Context, playlistID string, in api.PlaylistInput) (*api.Playlist, error) {
	if err := requireAuth(s.sessions); err != nil {
		return nil, err
	}
	s.begin()
	playlist, err := s.api.Update(ctx, playlistID, in)
	if err != nil {
		return nil, s.fail(err)
	}
	s.apply(playlist)
	return playlist, nil
}

// AddVideo adds a video to a playlist. Duplicate adds are rejected locally
// when the cached playlist already shows the video; each video appears at
// most once.
func (s *PlaylistStore) AddVideo(ctx context.Context, videoID, playlistID string) (*api.Playlist, error) {
	if err := requireAuth(s.sessions); err != nil {
		return nil, err
	}
	if s.contains(playlistID, videoID) {
		return nil, ErrDuplicateVideo
	}
	s.begin()
	playlist, err := s.api.AddVideo(ctx, videoID, playlistID)
	if err != nil {
		return nil, s.fail(err)
	}
	s.apply(playlist)
	return playlist, nil
}

// RemoveVideo removes a video from a playlist and swaps the result into both
// caches.
func (s *PlaylistStore) RemoveVideo(ctx context.Context, videoID, playlistID string) (*api.Playlist, error) {
	if err := requireAuth(s.sessions); err != nil {
		return nil, err
	}
	s.begin()
	playlist, err := s.api.RemoveVideo(ctx, videoID, playlistID)
	if err != nil {
		return nil, s.fail(err)
	}
	s.apply(playlist)
	return playlist, nil
}

// Delete removes a playlist from the server and both caches.
func (s *PlaylistStore) Delete(ctx context.Context, playlistID string) error {
	if err := requireAuth(s.sessions); err != nil {
		return err
	}
	s.begin()
	if err := s.api.Delete(ctx, playlistID); err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	for i := range s.userPlaylists {
		if s.userPlaylists[i].ID == playlistID {
			s.userPlaylists = append(s.userPlaylists[:i:i], s.userPlaylists[i+1:]...)
			break
		}
	}
	if s.current != nil && s.current.ID == playlistID {
		s.current = nil
	}
	s.status = StatusSucceeded
	s.mu.Unlock()
	return nil
}

// UserPlaylists returns a copy of the cached playlist list.
func (s *PlaylistStore) UserPlaylists() []api.Playlist {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Playlist(nil), s.userPlaylists...)
}

// Current returns a copy of the open playlist, or nil.
func (s *PlaylistStore) Current() *api.Playlist {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	p := *s.current
	return &p
}

// apply swaps an updated playlist into every cache holding it by id.
func (s *PlaylistStore) apply(playlist *api.Playlist) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.userPlaylists {
		if s.userPlaylists[i].ID == playlist.ID {
			s.userPlaylists[i] = *playlist
		}
	}
	if s.current != nil && s.current.ID == playlist.ID {
		p := *playlist
		s.current = &p
	}
	s.status = StatusSucceeded
}

// contains reports whether a cached copy of the playlist already lists the
// video.
func (s *PlaylistStore) contains(playlistID, videoID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	check := func(p *api.Playlist) bool {
		for i := range p.Videos {
			if p.Videos[i].ID == videoID {
				return true
			}
		}
		return false
	}
	if s.current != nil && s.current.ID == playlistID {
		return check(s.current)
	}
	for i := range s.userPlaylists {
		if s.userPlaylists[i].ID == playlistID {
			return check(&s.userPlaylists[i])
		}
	}
	return false
}
