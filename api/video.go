package api

import (
	"context"
	"net/url"
	"strconv"

	"videotube/transport"
)

// VideoGateway covers the /videos endpoints.
type VideoGateway struct {
	client *transport.Client
}

// ListQuery selects and orders the video feed.
type ListQuery struct {
	Page     int
	Limit    int
	Query    string
	SortBy   string
	SortType string
}

// Key is a stable cache key for the query, used by the video store to match
// responses to the feed they were requested for.
func (q ListQuery) Key() string {
	return q.encode()
}

func (q ListQuery) encode() string {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Query != "" {
		v.Set("query", q.Query)
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.SortType != "" {
		v.Set("sortType", q.SortType)
	}
	return v.Encode()
}

// List fetches the video feed.
func (g *VideoGateway) List(ctx context.Context, q ListQuery) ([]Video, error) {
	path := "/videos"
	if enc := q.encode(); enc != "" {
		path += "?" + enc
	}
	var videos []Video
	if err := g.client.Get(ctx, path, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// Get fetches a single video with its owner panel joined in.
func (g *VideoGateway) Get(ctx context.Context, videoID string) (*Video, error) {
	var video Video
	if err := g.client.Get(ctx, "/videos/"+url.PathEscape(videoID), &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// Recommended fetches videos related to the one being watched.
func (g *VideoGateway) Recommended(ctx context.Context, videoID string) ([]Video, error) {
	var videos []Video
	if err := g.client.Get(ctx, "/videos/recommendation/"+url.PathEscape(videoID), &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// UploadInput holds the publish form. VideoFile and Thumbnail are required.
type UploadInput struct {
	Title       string
	Description string
	VideoFile   File
	Thumbnail   File
}

// Upload publishes a new video (multipart).
func (g *VideoGateway) Upload(ctx context.Context, in UploadInput) (*Video, error) {
	form := transport.NewForm().
		Field("title", in.Title).
		Field("description", in.Description).
		File("videoFile", in.VideoFile.Name, in.VideoFile.Reader).
		File("thumbnail", in.Thumbnail.Name, in.Thumbnail.Reader)

	var video Video
	if err := g.client.PostForm(ctx, "/videos/upload-video", form, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// UpdateInput holds the video mutation form. All fields are optional; a nil
// thumbnail reader leaves the existing one in place.
type UpdateInput struct {
	Title       string
	Description string
	Thumbnail   File
}

// Update patches a video's metadata and optionally its thumbnail (multipart).
func (g *VideoGateway) Update(ctx context.Context, videoID string, in UpdateInput) (*Video, error) {
	form := transport.NewForm().
		Field("title", in.Title).
		Field("description", in.Description).
		File("thumbnail", in.Thumbnail.Name, in.Thumbnail.Reader)

	var video Video
	if err := g.client.PatchForm(ctx, "/videos/update/"+url.PathEscape(videoID), form, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// Delete removes a video.
func (g *VideoGateway) Delete(ctx context.Context, videoID string) error {
	return g.client.Delete(ctx, "/videos/delete/"+url.PathEscape(videoID))
}

// TogglePublish flips a video's publish state and returns the updated video.
func (g *VideoGateway) TogglePublish(ctx context.Context, videoID string) (*Video, error) {
	var video Video
	if err := g.client.Patch(ctx, "/videos/toggle/"+url.PathEscape(videoID), nil, &video); err != nil {
		return nil, err
	}
	return &video, nil
}
