package store

import (
	"context"
	"net/url"

	"videotube/api"
)

// videoAPI is the slice of the video gateway the store consumes.
type videoAPI interface {
	List(ctx context.Context, q api.ListQuery) ([]api.Video, error)
	Get(ctx context.Context, videoID string) (*api.Video, error)
	Recommended(ctx context.Context, videoID string) ([]api.Video, error)
	Upload(ctx context.Context, in api.UploadInput) (*api.Video, error)
	Update(ctx context.Context, videoID string, in api.UpdateInput) (*api.Video, error)
	Delete(ctx context.Context, videoID string) error
	TogglePublish(ctx context.Context, videoID string) (*api.Video, error)
}

// videoLikeAPI is the slice of the like gateway the store consumes.
type videoLikeAPI interface {
	ToggleVideo(ctx context.Context, videoID string) (*api.LikeStatus, error)
}

// VideoStore caches the video feed, the video currently being watched, and
// its recommendations. A fetch for a key fully replaces the cache for that
// key; mutations apply targeted patches.
type VideoStore struct {
	lifecycle
	sessions *SessionHolder
	api      videoAPI
	likes    videoLikeAPI

	feed           []api.Video
	feedKey        string
	current        *api.Video
	currentKey     string
	recommended    []api.Video
	recommendedKey string
}

// NewVideoStore creates the video store.
func NewVideoStore(gw videoAPI, likes videoLikeAPI, sessions *SessionHolder) *VideoStore {
	return &VideoStore{sessions: sessions, api: gw, likes: likes}
}

// LoadFeed fetches the feed for the given query, replacing the cached one.
// A response for a query the viewer has since navigated away from is
// discarded.
func (s *VideoStore) LoadFeed(ctx context.Context, q api.ListQuery) error {
	key := q.Key()
	s.mu.Lock()
	s.status = StatusPending
	s.err = nil
	s.feedKey = key
	s.mu.Unlock()

	videos, err := s.api.List(ctx, q)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.feedKey != key {
		return nil
	}
	if err != nil {
		s.status = StatusFailed
		s.err = err
		return err
	}
	s.feed = videos
	s.status = StatusSucceeded
	return nil
}

// LoadVideo fetches the video to watch, clearing the previous one first.
func (s *VideoStore) LoadVideo(ctx context.Context, videoID string) error {
	s.mu.Lock()
	s.status = StatusPending
	s.err = nil
	s.current = nil
	s.currentKey = videoID
	s.mu.Unlock()

	video, err := s.api.Get(ctx, videoID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentKey != videoID {
		return nil
	}
	if err != nil {
		s.status = StatusFailed
		s.err = err
		return err
	}
	s.current = video
	s.status = StatusSucceeded
	return nil
}

// LoadRecommended fetches recommendations for the video being watched.
func (s *VideoStore) LoadRecommended(ctx context.Context, videoID string) error {
	s.mu.Lock()
	s.status = StatusPending
	s.err = nil
	s.recommended = nil
	s.recommendedKey = videoID
	s.mu.Unlock()

	videos, err := s.api.Recommended(ctx, videoID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recommendedKey != videoID {
		return nil
	}
	if err != nil {
		s.status = StatusFailed
		s.err = err
		return err
	}
	s.recommended = videos
	s.status = StatusSucceeded
	return nil
}

// Publish uploads a new video and prepends it to the cached feed. A feed
// narrowed by a search query is left untouched: whether the new video
// matches is the server's call on the next fetch.
func (s *VideoStore) Publish(ctx context.Context, in api.UploadInput) (*api.Video, error) {
	if err := requireAuth(s.sessions); err != nil {
		return nil, err
	}
	s.begin()
	video, err := s.api.Upload(ctx, in)
	if err != nil {
		return nil, s.fail(err)
	}
	s.mu.Lock()
	if feedUnfiltered(s.feedKey) {
		s.feed = append([]api.Video{*video}, s.feed...)
	}
	s.status = StatusSucceeded
	s.mu.Unlock()
	return video, nil
}

// Update patches a video and replaces it in every cache that contains it.
func (s *VideoStore) Update(ctx context.Context, videoID string, in api.UpdateInput) (*api.Video, error) {
	if err := requireAuth(s.sessions); err != nil {
		return nil, err
	}
	s.begin()
	video, err := s.api.Update(ctx, videoID, in)
	if err != nil {
		return nil, s.fail(err)
	}
	s.mu.Lock()
	s.replaceLocked(video)
	s.status = StatusSucceeded
	s.mu.Unlock()
	return video, nil
}

// Delete removes a video from the server and from every cache.
func (s *VideoStore) Delete(ctx context.Context, videoID string) error {
	if err := requireAuth(s.sessions); err != nil {
		return err
	}
	s.begin()
	if err := s.api.Delete(ctx, videoID); err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	s.feed = removeVideo(s.feed, videoID)
	s.recommended = removeVideo(s.recommended, videoID)
	if s.current != nil && s.current.ID == videoID {
		s.current = nil
	}
	s.status = StatusSucceeded
	s.mu.Unlock()
	return nil
}

// TogglePublish flips the publish state, trusting the server's answer.
func (s *VideoStore) TogglePublish(ctx context.Context, videoID string) (*api.Video, error) {
	if err := requireAuth(s.sessions); err != nil {
		return nil, err
	}
	s.begin()
	video, err := s.api.TogglePublish(ctx, videoID)
	if err != nil {
		return nil, s.fail(err)
	}
	s.mu.Lock()
	s.replaceLocked(video)
	s.status = StatusSucceeded
	s.mu.Unlock()
	return video, nil
}

// ToggleLike flips the viewer's like on a video. The server response is
// authoritative: cached boolean and count are overwritten with the returned
// values, never with a local guess.
func (s *VideoStore) ToggleLike(ctx context.Context, videoID string) (*api.LikeStatus, error) {
	if err := requireAuth(s.sessions); err != nil {
		return nil, err
	}
	s.begin()
	status, err := s.likes.ToggleVideo(ctx, videoID)
	if err != nil {
		return nil, s.fail(err)
	}
	s.mu.Lock()
	if s.current != nil && s.current.ID == videoID {
		s.current.IsLiked = status.IsLiked
		s.current.LikesCount = status.Likes
	}
	patchVideoLike(s.feed, videoID, status)
	patchVideoLike(s.recommended, videoID, status)
	s.status = StatusSucceeded
	s.mu.Unlock()
	return status, nil
}

// ApplyOwnerSubscription patches the owner panel of the video being watched
// after a subscription toggle elsewhere resolved.
func (s *VideoStore) ApplyOwnerSubscription(channelID string, status *api.SubscriptionStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.Owner.ID == channelID {
		s.current.Owner.IsSubscribed = status.IsSubscribed
		s.current.Owner.SubscribersCount = status.Subscribers
	}
}

// Feed returns a copy of the cached feed.
func (s *VideoStore) Feed() []api.Video {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Video(nil), s.feed...)
}

// Current returns a copy of the video being watched, or nil.
func (s *VideoStore) Current() *api.Video {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	v := *s.current
	return &v
}

// Recommended returns a copy of the cached recommendations.
func (s *VideoStore) Recommended() []api.Video {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Video(nil), s.recommended...)
}

// replaceLocked swaps the updated video into every cache holding it by id.
// Caller holds the lock.
func (s *VideoStore) replaceLocked(video *api.Video) {
	for i := range s.feed {
		if s.feed[i].ID == video.ID {
			s.feed[i] = *video
		}
	}
	for i := range s.recommended {
		if s.recommended[i].ID == video.ID {
			s.recommended[i] = *video
		}
	}
	if s.current != nil && s.current.ID == video.ID {
		v := *video
		s.current = &v
	}
}

// feedUnfiltered reports whether the cached feed has no search filter and
// can therefore show a fresh upload without a refetch.
func feedUnfiltered(feedKey string) bool {
	v, err := url.ParseQuery(feedKey)
	return err == nil && v.Get("query") == ""
}

func removeVideo(videos []api.Video, videoID string) []api.Video {
	for i := range videos {
		if videos[i].ID == videoID {
			return append(videos[:i:i], videos[i+1:]...)
		}
	}
	return videos
}

func patchVideoLike(videos []api.Video, videoID string, status *api.LikeStatus) {
	for i := range videos {
		if videos[i].ID == videoID {
			videos[i].IsLiked = status.IsLiked
			videos[i].LikesCount = status.Likes
		}
	}
}
