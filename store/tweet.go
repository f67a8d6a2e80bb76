package store

import (
	"context"

	"videotube/api"
)

// tweetAPI is the slice of the tweet gateway the store consumes.
type tweetAPI interface {
	Create(ctx context.Context, content string) (*api.Tweet, error)
	ForUser(ctx context.Context, userName string) ([]api.Tweet, error)
	Update(ctx context.Context, tweetID, content string) (*api.Tweet, error)
	Delete(ctx context.Context, tweetID string) error
}

// tweetLikeAPI is the slice of the like gateway the store consumes.
type tweetLikeAPI interface {
	ToggleTweet(ctx context.Context, tweetID string) (*api.LikeStatus, error)
}

// TweetStore caches the tweet list of one channel at a time, keyed by the
// channel's user name.
type TweetStore struct {
	lifecycle
	sessions *SessionHolder
	api      tweetAPI
	likes    tweetLikeAPI

	userKey string
	tweets  []api.Tweet
}

// NewTweetStore creates the tweet store.
func NewTweetStore(gw tweetAPI, likes tweetLikeAPI, sessions *SessionHolder) *TweetStore {
	return &TweetStore{sessions: sessions, api: gw, likes: likes}
}

// LoadForUser fetches a channel's tweets, replacing the cache for that key.
func (s *TweetStore) LoadForUser(ctx context.Context, userName string) error {
	s.mu.Lock()
	s.status = StatusPending
	s.err = nil
	s.userKey = userName
	s.mu.Unlock()

	tweets, err := s.api.ForUser(ctx, userName)

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
	s.tweets = tweets
	s.status = StatusSucceeded
	return nil
}

// Create posts a tweet. When the viewer's own channel is the one cached,
// the new tweet is inserted at the head of the list.
func (s *TweetStore) Create(ctx context.Context, content string) (*api.Tweet, error) {
	if err := requireAuth(s.sessions); err != nil {
		return nil, err
	}
	s.begin()
	tweet, err := s.api.Create(ctx, content)
	if err != nil {
		return nil, s.fail(err)
	}
	s.mu.Lock()
	if s.userKey == "" || s.userKey == tweet.Owner.UserName {
		s.tweets = append([]api.Tweet{*tweet}, s.tweets...)
	}
	s.status = StatusSucceeded
	s.mu.Unlock()
	return tweet, nil
}

// Update edits a tweet and replaces it in the cached list by id.
func (s *TweetStore) Update(ctx context.Context, tweetID, content string) (*api.Tweet, error) {
	if err := requireAuth(s.sessions); err != nil {
		return nil, err
	}
	s.begin()
	tweet, err := s.api.Update(ctx, tweetID, content)
	if err != nil {
		return nil, s.fail(err)
	}
	s.mu.Lock()
	for i := range s.tweets {
		if s.tweets[i].ID == tweet.ID {
			s.tweets[i] = *tweet
		}
	}
	s.status = StatusSucceeded
	s.mu.Unlock()
	return tweet, nil
}

// Delete removes a tweet from the server and the cached list.
func (s *TweetStore) Delete(ctx context.Context, tweetID string) error {
	if err := requireAuth(s.sessions); err != nil {
		return err
	}
	s.begin()
	if err := s.api.Delete(ctx, tweetID); err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	for i := range s.tweets {
		if s.tweets[i].ID == tweetID {
			s.tweets = append(s.tweets[:i:i], s.tweets[i+1:]...)
			break
		}
	}
	s.status = StatusSucceeded
	s.mu.Unlock()
	return nil
}

// ToggleLike flips the viewer's like on a tweet, overwriting the cached
// boolean and count with the server's answer.
func (s *TweetStore) ToggleLike(ctx context.Context, tweetID string) (*api.LikeStatus, error) {
	if err := requireAuth(s.sessions); err != nil {
		return nil, err
	}
	s.begin()
	status, err := s.likes.ToggleTweet(ctx, tweetID)
	if err != nil {
		return nil, s.fail(err)
	}
	s.mu.Lock()
	for i := range s.tweets {
		if s.tweets[i].ID == tweetID {
			s.tweets[i].IsLiked = status.IsLiked
			s.tweets[i].LikesCount = status.Likes
		}
	}
	s.status = StatusSucceeded
	s.mu.Unlock()
	return status, nil
}

// Tweets returns a copy of the cached list.
func (s *TweetStore) Tweets() []api.Tweet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Tweet(nil), s.tweets...)
}
