package store

import (
	"context"
	"errors"
	"testing"

	"videotube/api"
)

type videoAPIStub struct {
	list          func(q api.ListQuery) ([]api.Video, error)
	get           func(videoID string) (*api.Video, error)
	recommended   func(videoID string) ([]api.Video, error)
	upload        func(in api.UploadInput) (*api.Video, error)
	update        func(videoID string, in api.UpdateInput) (*api.Video, error)
	del           func(videoID string) error
	togglePublish func(videoID string) (*api.Video, error)
}

func (s *videoAPIStub) List(_ context.Context, q api.ListQuery) ([]api.Video, error) {
	return s.list(q)
}

func (s *videoAPIStub) Get(_ context.Context, videoID string) (*api.Video, error) {
	return s.get(videoID)
}

func (s *videoAPIStub) Recommended(_ context.Context, videoID string) ([]api.Video, error) {
	return s.recommended(videoID)
}

func (s *videoAPIStub) Upload(_ context.Context, in api.UploadInput) (*api.Video, error) {
	return s.upload(in)
}

func (s *videoAPIStub) Update(_ context.Context, videoID string, in api.UpdateInput) (*api.Video, error) {
	return s.update(videoID, in)
}

func (s *videoAPIStub) Delete(_ context.Context, videoID string) error {
	return s.del(videoID)
}

func (s *videoAPIStub) TogglePublish(_ context.Context, videoID string) (*api.Video, error) {
	return s.togglePublish(videoID)
}

func feedOf(ids ...string) []api.Video {
	videos := make([]api.Video, 0, len(ids))
	for _, id := range ids {
		videos = append(videos, api.Video{ID: id, Title: "t-" + id})
	}
	return videos
}

func TestVideoFeedReplacedPerQuery(t *testing.T) {
	stub := &videoAPIStub{
		list: func(q api.ListQuery) ([]api.Video, error) {
			if q.Query == "go" {
				return feedOf("g1"), nil
			}
			return feedOf("v1", "v2"), nil
		},
	}
	s := NewVideoStore(stub, nil, authedHolder())
	ctx := context.Background()

	if err := s.LoadFeed(ctx, api.ListQuery{}); err != nil {
		t.Fatalf("load feed: %v", err)
	}
	if got := s.Feed(); len(got) != 2 {
		t.Fatalf("unexpected feed: %+v", got)
	}

	if err := s.LoadFeed(ctx, api.ListQuery{Query: "go"}); err != nil {
		t.Fatalf("load search feed: %v", err)
	}
	if got := s.Feed(); len(got) != 1 || got[0].ID != "g1" {
		t.Errorf("search feed must fully replace the cache, got %+v", got)
	}
	if s.Status() != StatusSucceeded {
		t.Errorf("expected succeeded, got %v", s.Status())
	}
}

func TestVideoLoadFailureRecorded(t *testing.T) {
	wantErr := errors.New("boom")
	stub := &videoAPIStub{
		get: func(videoID string) (*api.Video, error) { return nil, wantErr },
	}
	s := NewVideoStore(stub, nil, authedHolder())

	if err := s.LoadVideo(context.Background(), "v1"); !errors.Is(err, wantErr) {
		t.Fatalf("expected error surfaced, got %v", err)
	}
	if s.Status() != StatusFailed || !errors.Is(s.Err(), wantErr) {
		t.Errorf("expected failure recorded, status %v err %v", s.Status(), s.Err())
	}
	if s.Current() != nil {
		t.Error("expected no current video after failed load")
	}
}

func TestVideoToggleLikeDoubleToggleRestores(t *testing.T) {
	answers := []*api.LikeStatus{
		{IsLiked: true, Likes: 11},
		{IsLiked: false, Likes: 10},
	}
	likes := &likeAPIStub{
		toggleVideo: func(videoID string) (*api.LikeStatus, error) {
			status := answers[0]
			answers = answers[1:]
			return status, nil
		},
	}
	stub := &videoAPIStub{
		get: func(videoID string) (*api.Video, error) {
			return &api.Video{ID: videoID, LikesCount: 10, IsLiked: false}, nil
		},
		list: func(q api.ListQuery) ([]api.Video, error) {
			return []api.Video{{ID: "v1", LikesCount: 10}}, nil
		},
	}
	s := NewVideoStore(stub, likes, authedHolder())
	ctx := context.Background()

	if err := s.LoadVideo(ctx, "v1"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := s.LoadFeed(ctx, api.ListQuery{}); err != nil {
		t.Fatalf("load feed: %v", err)
	}

	if _, err := s.ToggleLike(ctx, "v1"); err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if cur := s.Current(); !cur.IsLiked || cur.LikesCount != 11 {
		t.Errorf("after first toggle: %+v", cur)
	}
	if feed := s.Feed(); !feed[0].IsLiked || feed[0].LikesCount != 11 {
		t.Errorf("feed not patched: %+v", feed[0])
	}

	if _, err := s.ToggleLike(ctx, "v1"); err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if cur := s.Current(); cur.IsLiked || cur.LikesCount != 10 {
		t.Errorf("double toggle must restore server state: %+v", cur)
	}
}

func TestVideoPublishPrependsToFeed(t *testing.T) {
	stub := &videoAPIStub{
		list: func(q api.ListQuery) ([]api.Video, error) { return feedOf("v1", "v2"), nil },
		upload: func(in api.UploadInput) (*api.Video, error) {
			return &api.Video{ID: "v3", Title: in.Title}, nil
		},
	}
	s := NewVideoStore(stub, nil, authedHolder())
	ctx := context.Background()

	if err := s.LoadFeed(ctx, api.ListQuery{}); err != nil {
		t.Fatalf("load feed: %v", err)
	}
	if _, err := s.Publish(ctx, api.UploadInput{Title: "fresh"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	got := s.Feed()
	if len(got) != 3 || got[0].ID != "v3" {
		t.Errorf("new video must be at the head of the feed, got %+v", got)
	}
}

func TestVideoPublishSkipsSearchFilteredFeed(t *testing.T) {
	stub := &videoAPIStub{
		list: func(q api.ListQuery) ([]api.Video, error) {
			if q.Query != "" {
				return feedOf("g1"), nil
			}
			return feedOf("v1"), nil
		},
		upload: func(in api.UploadInput) (*api.Video, error) {
			return &api.Video{ID: "v9", Title: in.Title}, nil
		},
	}
	s := NewVideoStore(stub, nil, authedHolder())
	ctx := context.Background()

	if err := s.LoadFeed(ctx, api.ListQuery{Query: "go"}); err != nil {
		t.Fatalf("load search feed: %v", err)
	}
	if _, err := s.Publish(ctx, api.UploadInput{Title: "unrelated"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got := s.Feed(); len(got) != 1 || got[0].ID != "g1" {
		t.Errorf("search-filtered feed must not gain the new video, got %+v", got)
	}

	// An unfiltered feed still shows the fresh upload immediately.
	if err := s.LoadFeed(ctx, api.ListQuery{Page: 1, Limit: 20}); err != nil {
		t.Fatalf("load feed: %v", err)
	}
	if _, err := s.Publish(ctx, api.UploadInput{Title: "another"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got := s.Feed(); len(got) != 2 || got[0].ID != "v9" {
		t.Errorf("unfiltered feed must gain the new video at the head, got %+v", got)
	}
}

func TestVideoDeleteRemovesEverywhere(t *testing.T) {
	stub := &videoAPIStub{
		list:        func(q api.ListQuery) ([]api.Video, error) { return feedOf("v1", "v2"), nil },
		get:         func(videoID string) (*api.Video, error) { return &api.Video{ID: videoID}, nil },
		recommended: func(videoID string) ([]api.Video, error) { return feedOf("v2", "v3"), nil },
		del:         func(videoID string) error { return nil },
	}
	s := NewVideoStore(stub, nil, authedHolder())
	ctx := context.Background()

	if err := s.LoadFeed(ctx, api.ListQuery{}); err != nil {
		t.Fatalf("load feed: %v", err)
	}
	if err := s.LoadVideo(ctx, "v2"); err != nil {
		t.Fatalf("load video: %v", err)
	}
	if err := s.LoadRecommended(ctx, "v2"); err != nil {
		t.Fatalf("load recommended: %v", err)
	}

	if err := s.Delete(ctx, "v2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := s.Feed(); len(got) != 1 || got[0].ID != "v1" {
		t.Errorf("feed after delete: %+v", got)
	}
	if got := s.Recommended(); len(got) != 1 || got[0].ID != "v3" {
		t.Errorf("recommended after delete: %+v", got)
	}
	if s.Current() != nil {
		t.Error("current video must be dropped on delete")
	}
}

func TestVideoMutationsRequireAuth(t *testing.T) {
	called := false
	stub := &videoAPIStub{
		del: func(videoID string) error { called = true; return nil },
	}
	s := NewVideoStore(stub, nil, NewSessionHolder())

	if err := s.Delete(context.Background(), "v1"); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if called {
		t.Error("request must not be issued without a session")
	}
}
