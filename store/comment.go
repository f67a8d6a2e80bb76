package store

import (
	"context"

	"videotube/api"
)

// commentAPI is the slice of the comment gateway the store consumes.
type commentAPI interface {
	List(ctx context.Context, videoID string, page, limit int) (*api.CommentPage, error)
	Add(ctx context.Context, videoID, content string) (*api.Comment, error)
	Update(ctx context.Context, commentID, content string) (*api.Comment, error)
	Delete(ctx context.Context, commentID string) error
}

// commentLikeAPI is the slice of the like gateway the store consumes.
type commentLikeAPI interface {
	ToggleComment(ctx context.Context, commentID string) (*api.LikeStatus, error)
}

// CommentStore caches the comment list of one video at a time, keyed by
// video id. Server order is preserved; the only local reordering is the
// insert-at-head on creation.
type CommentStore struct {
	lifecycle
	sessions *SessionHolder
	api      commentAPI
	likes    commentLikeAPI

	videoKey string
	comments []api.Comment
	total    int
}

// NewCommentStore creates the comment store.
func NewCommentStore(gw commentAPI, likes commentLikeAPI, sessions *SessionHolder) *CommentStore {
	return &CommentStore{sessions: sessions, api: gw, likes: likes}
}

// Load fetches comments for a video, fully replacing the cache for that key.
// A response for a video the viewer has since navigated away from is
// discarded.
func (s *CommentStore) Load(ctx context.Context, videoID string, page, limit int) error {
	s.mu.Lock()
	s.status = StatusPending
	s.err = nil
	s.videoKey = videoID
	s.mu.Unlock()

	result, err := s.api.List(ctx, videoID, page, limit)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.videoKey != videoID {
		return nil
	}
	if err != nil {
		s.status = StatusFailed
		s.err = err
		return err
	}
	s.comments = result.Comments
	s.total = result.TotalComments
	s.status = StatusSucceeded
	return nil
}

// Add posts a comment. On success it is inserted at the head of the cached
// list and the total count is incremented, no refetch needed.
func (s *CommentStore) Add(ctx context.Context, videoID, content string) (*api.Comment, error) {
	if err := requireAuth(s.sessions); err != nil {
		return nil, err
	}
	s.begin()
	comment, err := s.api.Add(ctx, videoID, content)
	if err != nil {
		return nil, s.fail(err)
	}
	s.mu.Lock()
	if s.videoKey == videoID {
		s.comments = append([]api.Comment{*comment}, s.comments...)
		s.total++
	}
	s.status = StatusSucceeded
	s.mu.Unlock()
	return comment, nil
}

// Update edits a comment and replaces it in the cached list by id.
func (s *CommentStore) Update(ctx context.Context, commentID, content string) (*api.Comment, error) {
	if err := requireAuth(s.sessions); err != nil {
		return nil, err
	}
	s.begin()
	comment, err := s.api.Update(ctx, commentID, content)
	if err != nil {
		return nil, s.fail(err)
	}
	s.mu.Lock()
	for i := range s.comments {
		if s.comments[i].ID == comment.ID {
			s.comments[i] = *comment
		}
	}
	s.status = StatusSucceeded
	s.mu.Unlock()
	return comment, nil
}

// Delete removes a comment from the server, then removes exactly one entry
// with that id from the cache and decrements the total count.
func (s *CommentStore) Delete(ctx context.Context, commentID string) error {
	if err := requireAuth(s.sessions); err != nil {
		return err
	}
	s.begin()
	if err := s.api.Delete(ctx, commentID); err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	for i := range s.comments {
		if s.comments[i].ID == commentID {
			s.comments = append(s.comments[:i:i], s.comments[i+1:]...)
			s.total--
			break
		}
	}
	s.status = StatusSucceeded
	s.mu.Unlock()
	return nil
}

// ToggleLike flips the viewer's like on a comment, overwriting the cached
// boolean and count with the server's answer.
func (s *CommentStore) ToggleLike(ctx context.Context, commentID string) (*api.LikeStatus, error) {
	if err := requireAuth(s.sessions); err != nil {
		return nil, err
	}
	s.begin()
	status, err := s.likes.ToggleComment(ctx, commentID)
	if err != nil {
		return nil, s.fail(err)
	}
	s.mu.Lock()
	for i := range s.comments {
		if s.comments[i].ID == commentID {
			s.comments[i].IsLiked = status.IsLiked
			s.comments[i].LikesCount = status.Likes
		}
	}
	s.status = StatusSucceeded
	s.mu.Unlock()
	return status, nil
}

// Clear drops the cached list, e.g. when leaving the watch page.
func (s *CommentStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videoKey = ""
	s.comments = nil
	s.total = 0
}

// Comments returns a copy of the cached list.
func (s *CommentStore) Comments() []api.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Comment(nil), s.comments...)
}

// Total returns the denormalized total comment count for the cached video.
func (s *CommentStore) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// VideoKey returns the id of the video whose comments are cached.
func (s *CommentStore) VideoKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videoKey
}
