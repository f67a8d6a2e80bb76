package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"videotube/transport"
)

func newTestGateways(t *testing.T, handler http.Handler) *Gateways {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := transport.New(server.URL, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return New(client)
}

func TestVideoUploadMultipartRoundTrip(t *testing.T) {
	gw := newTestGateways(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/videos/upload-video" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("title"); got != "T" {
			t.Errorf("expected title T, got %q", got)
		}
		if got := r.FormValue("description"); got != "D" {
			t.Errorf("expected description D, got %q", got)
		}
		for _, key := range []string{"videoFile", "thumbnail"} {
			if _, _, err := r.FormFile(key); err != nil {
				t.Errorf("missing file part %s: %v", key, err)
			}
		}
		w.Write([]byte(`{"data":{"_id":"v1","title":"T","description":"D",` +
			`"videoFile":"https://cdn.example/v1.mp4","thumbnail":"https://cdn.example/v1.png",` +
			`"isPublished":true},"message":"uploaded"}`))
	}))

	video, err := gw.Videos.Upload(context.Background(), UploadInput{
		Title:       "T",
		Description: "D",
		VideoFile:   File{Name: "clip.mp4", Reader: strings.NewReader("mp4")},
		Thumbnail:   File{Name: "thumb.png", Reader: strings.NewReader("png")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if video.ID != "v1" || video.Title != "T" || video.Description != "D" {
		t.Errorf("unexpected video: %+v", video)
	}
	if video.VideoFile == "" || video.Thumbnail == "" {
		t.Error("expected non-empty media URLs")
	}
}

func TestVideoListQueryParams(t *testing.T) {
	gw := newTestGateways(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("limit") != "12" || q.Get("query") != "go" ||
			q.Get("sortBy") != "views" || q.Get("sortType") != "desc" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"data":[{"_id":"v1"},{"_id":"v2"}],"message":"ok"}`))
	}))

	videos, err := gw.Videos.List(context.Background(), ListQuery{
		Page: 2, Limit: 12, Query: "go", SortBy: "views", SortType: "desc",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(videos) != 2 || videos[0].ID != "v1" {
		t.Errorf("unexpected videos: %+v", videos)
	}
}

func TestListQueryKeyStable(t *testing.T) {
	a := ListQuery{Page: 1, Query: "go", SortBy: "views"}
	b := ListQuery{SortBy: "views", Query: "go", Page: 1}
	if a.Key() != b.Key() {
		t.Errorf("expected equal keys, got %q vs %q", a.Key(), b.Key())
	}
	if a.Key() == (ListQuery{Page: 2, Query: "go", SortBy: "views"}).Key() {
		t.Error("expected distinct keys for distinct queries")
	}
}
