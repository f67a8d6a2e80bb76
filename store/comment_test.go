package store

import (
	"context"
	"errors"
	"testing"

	"videotube/api"
)

type commentAPIStub struct {
	list   func(videoID string, page, limit int) (*api.CommentPage, error)
	add    func(videoID, content string) (*api.Comment, error)
	update func(commentID, content string) (*api.Comment, error)
	del    func(commentID string) error
}

func (s *commentAPIStub) List(_ context.Context, videoID string, page, limit int) (*api.CommentPage, error) {
	return s.list(videoID, page, limit)
}

func (s *commentAPIStub) Add(_ context.Context, videoID, content string) (*api.Comment, error) {
	return s.add(videoID, content)
}

func (s *commentAPIStub) Update(_ context.Context, commentID, content string) (*api.Comment, error) {
	return s.update(commentID, content)
}

func (s *commentAPIStub) Delete(_ context.Context, commentID string) error {
	return s.del(commentID)
}

type likeAPIStub struct {
	toggleVideo   func(videoID string) (*api.LikeStatus, error)
	toggleComment func(commentID string) (*api.LikeStatus, error)
	toggleTweet   func(tweetID string) (*api.LikeStatus, error)
	likedVideos   func() ([]api.Video, error)
}

func (s *likeAPIStub) ToggleVideo(_ context.Context, videoID string) (*api.LikeStatus, error) {
	return s.toggleVideo(videoID)
}

func (s *likeAPIStub) ToggleComment(_ context.Context, commentID string) (*api.LikeStatus, error) {
	return s.toggleComment(commentID)
}

func (s *likeAPIStub) ToggleTweet(_ context.Context, tweetID string) (*api.LikeStatus, error) {
	return s.toggleTweet(tweetID)
}

func (s *likeAPIStub) LikedVideos(_ context.Context) ([]api.Video, error) {
	return s.likedVideos()
}

func commentPage(videoID string, ids ...string) *api.CommentPage {
	page := &api.CommentPage{TotalComments: len(ids)}
	for _, id := range ids {
		page.Comments = append(page.Comments, api.Comment{ID: id, VideoID: videoID, Content: "c-" + id})
	}
	return page
}

func TestCommentLoadReplacesCachePerKey(t *testing.T) {
	pages := map[string]*api.CommentPage{
		"vidA": commentPage("vidA", "a1", "a2"),
		"vidB": commentPage("vidB", "b1"),
	}
	stub := &commentAPIStub{
		list: func(videoID string, _, _ int) (*api.CommentPage, error) {
			return pages[videoID], nil
		},
	}
	s := NewCommentStore(stub, nil, authedHolder())
	ctx := context.Background()

	if err := s.Load(ctx, "vidA", 1, 10); err != nil {
		t.Fatalf("load vidA: %v", err)
	}
	if got := s.Comments(); len(got) != 2 || got[0].ID != "a1" {
		t.Fatalf("unexpected vidA cache: %+v", got)
	}

	if err := s.Load(ctx, "vidB", 1, 10); err != nil {
		t.Fatalf("load vidB: %v", err)
	}
	if got := s.Comments(); len(got) != 1 || got[0].ID != "b1" {
		t.Fatalf("vidB load must fully replace the cache, got %+v", got)
	}

	// Server-side change while away from vidA.
	pages["vidA"] = commentPage("vidA", "a1", "a2", "a3")
	if err := s.Load(ctx, "vidA", 1, 10); err != nil {
		t.Fatalf("reload vidA: %v", err)
	}
	got := s.Comments()
	if len(got) != 3 || s.Total() != 3 {
		t.Fatalf("expected fresh vidA page, got %d comments total %d", len(got), s.Total())
	}
	for _, c := range got {
		if c.VideoID != "vidA" {
			t.Errorf("comment %s from another video leaked into the cache", c.ID)
		}
	}
}

func TestCommentAddPrependsAndCounts(t *testing.T) {
	stub := &commentAPIStub{
		list: func(videoID string, _, _ int) (*api.CommentPage, error) {
			return commentPage(videoID, "c1", "c2", "c3"), nil
		},
		add: func(videoID, content string) (*api.Comment, error) {
			return &api.Comment{ID: "c4", VideoID: videoID, Content: content}, nil
		},
	}
	s := NewCommentStore(stub, nil, authedHolder())
	ctx := context.Background()

	if err := s.Load(ctx, "vidA", 1, 10); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := s.Add(ctx, "vidA", "first!"); err != nil {
		t.Fatalf("add: %v", err)
	}

	got := s.Comments()
	if len(got) != 4 {
		t.Fatalf("expected 4 comments, got %d", len(got))
	}
	if got[0].ID != "c4" || got[0].Content != "first!" {
		t.Errorf("new comment must be at the head, got %+v", got[0])
	}
	if s.Total() != 4 {
		t.Errorf("expected total 4, got %d", s.Total())
	}
}

func TestCommentAddForOtherVideoNotCached(t *testing.T) {
	stub := &commentAPIStub{
		list: func(videoID string, _, _ int) (*api.CommentPage, error) {
			return commentPage(videoID, "c1"), nil
		},
		add: func(videoID, content string) (*api.Comment, error) {
			return &api.Comment{ID: "x1", VideoID: videoID, Content: content}, nil
		},
	}
	s := NewCommentStore(stub, nil, authedHolder())
	ctx := context.Background()

	if err := s.Load(ctx, "vidA", 1, 10); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := s.Add(ctx, "vidB", "elsewhere"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := s.Comments(); len(got) != 1 || got[0].ID != "c1" {
		t.Errorf("comment for another video must not enter the cache, got %+v", got)
	}
	if s.Total() != 1 {
		t.Errorf("expected total unchanged, got %d", s.Total())
	}
}

func TestCommentDeleteRemovesExactlyOne(t *testing.T) {
	stub := &commentAPIStub{
		list: func(videoID string, _, _ int) (*api.CommentPage, error) {
			return commentPage(videoID, "c1", "c2", "c3"), nil
		},
		del: func(commentID string) error { return nil },
	}
	s := NewCommentStore(stub, nil, authedHolder())
	ctx := context.Background()

	if err := s.Load(ctx, "vidA", 1, 10); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := s.Delete(ctx, "c2"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got := s.Comments()
	if len(got) != 2 || got[0].ID != "c1" || got[1].ID != "c3" {
		t.Errorf("unexpected cache after delete: %+v", got)
	}
	if s.Total() != 2 {
		t.Errorf("expected total 2, got %d", s.Total())
	}
}

func TestCommentToggleLikeServerAuthoritative(t *testing.T) {
	likes := &likeAPIStub{
		toggleComment: func(commentID string) (*api.LikeStatus, error) {
			return &api.LikeStatus{IsLiked: true, Likes: 7}, nil
		},
	}
	stub := &commentAPIStub{
		list: func(videoID string, _, _ int) (*api.CommentPage, error) {
			return commentPage(videoID, "c1"), nil
		},
	}
	s := NewCommentStore(stub, likes, authedHolder())
	ctx := context.Background()

	if err := s.Load(ctx, "vidA", 1, 10); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := s.ToggleLike(ctx, "c1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	got := s.Comments()
	if !got[0].IsLiked || got[0].LikesCount != 7 {
		t.Errorf("cache must carry the server's answer, got %+v", got[0])
	}
}

func TestCommentStaleResponseDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	stub := &commentAPIStub{
		list: func(videoID string, _, _ int) (*api.CommentPage, error) {
			if videoID == "vidA" {
				close(started)
				<-release
			}
			return commentPage(videoID, videoID+"-1"), nil
		},
	}
	s := NewCommentStore(stub, nil, authedHolder())
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- s.Load(ctx, "vidA", 1, 10) }()
	<-started

	// Navigate away before the first fetch resolves.
	if err := s.Load(ctx, "vidB", 1, 10); err != nil {
		t.Fatalf("load vidB: %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("load vidA: %v", err)
	}

	if key := s.VideoKey(); key != "vidB" {
		t.Errorf("expected cache keyed to vidB, got %q", key)
	}
	if got := s.Comments(); len(got) != 1 || got[0].ID != "vidB-1" {
		t.Errorf("stale vidA response must be discarded, got %+v", got)
	}
}

func TestCommentMutationsRequireAuth(t *testing.T) {
	called := false
	stub := &commentAPIStub{
		add: func(videoID, content string) (*api.Comment, error) {
			called = true
			return nil, nil
		},
	}
	s := NewCommentStore(stub, nil, NewSessionHolder())

	if _, err := s.Add(context.Background(), "vidA", "hi"); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if called {
		t.Error("request must not be issued without a session")
	}
}
