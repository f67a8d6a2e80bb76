package store

import (
	"context"

	"videotube/api"
)

// likedVideosAPI is the slice of the like gateway the store consumes.
type likedVideosAPI interface {
	LikedVideos(ctx context.Context) ([]api.Video, error)
}

// LikeStore caches the viewer's liked-videos list. Like toggles themselves
// live on the stores owning the liked entities; this store only holds the
// viewer-scoped read.
type LikeStore struct {
	lifecycle
	sessions *SessionHolder
	api      likedVideosAPI

	videos []api.Video
}

// NewLikeStore creates the like store.
func NewLikeStore(gw likedVideosAPI, sessions *SessionHolder) *LikeStore {
	return &LikeStore{sessions: sessions, api: gw}
}

// Load fetches the viewer's liked videos, replacing the cached list.
func (s *LikeStore) Load(ctx context.Context) error {
	if err := requireAuth(s.sessions); err != nil {
		return err
	}
	s.begin()
	videos, err := s.api.LikedVideos(ctx)
	if err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	s.videos = videos
	s.status = StatusSucceeded
	s.mu.Unlock()
	return nil
}

// Videos returns a copy of the cached liked videos.
func (s *LikeStore) Videos() []api.Video {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Video(nil), s.videos...)
}

// Clear drops the viewer-scoped cache, e.g. on session end.
func (s *LikeStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videos = nil
}
