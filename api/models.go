// Package api defines the wire models of the VideoTube backend and the
// resource gateways that issue one API call per domain operation.
package api

import (
	"io"
	"time"
)

// User is the viewer's own account as returned by the auth endpoints.
type User struct {
	ID         string    `json:"_id"`
	UserName   string    `json:"userName"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Owner is a denormalized back reference to the user that owns an entity.
// It carries display fields only and never implies ownership of the parent.
// The subscription fields are populated only where the server joins them in
// (the video detail view).
type Owner struct {
	ID               string `json:"_id"`
	UserName         string `json:"userName"`
	FullName         string `json:"fullName"`
	Avatar           string `json:"avatar"`
	SubscribersCount int    `json:"subscribersCount,omitempty"`
	IsSubscribed     bool   `json:"isSubscribed,omitempty"`
}

// Video is the client-side projection of a published video.
type Video struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoFile   string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Duration    float64   `json:"duration"`
	Views       int       `json:"views"`
	IsPublished bool      `json:"isPublished"`
	LikesCount  int       `json:"likesCount"`
	IsLiked     bool      `json:"isLiked"`
	Owner       Owner     `json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Comment belongs to a video. Server order is preserved by the stores.
type Comment struct {
	ID         string    `json:"_id"`
	VideoID    string    `json:"video"`
	Content    string    `json:"content"`
	Owner      Owner     `json:"owner"`
	LikesCount int       `json:"likesCount"`
	IsLiked    bool      `json:"isLiked"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CommentPage is the payload of a comment list fetch.
type CommentPage struct {
	Comments      []Comment `json:"comments"`
	TotalComments int       `json:"totalComments"`
}

// Tweet is a short text update posted by a channel.
type Tweet struct {
	ID         string    `json:"_id"`
	Content    string    `json:"content"`
	Owner      Owner     `json:"owner"`
	LikesCount int       `json:"likesCount"`
	IsLiked    bool      `json:"isLiked"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Playlist is an ordered collection of video summaries. The server
// guarantees each video appears at most once.
type Playlist struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Owner       Owner     `json:"owner"`
	Videos      []Video   `json:"videos"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ChannelProfile is a user viewed as a publisher.
type ChannelProfile struct {
	ID                string `json:"_id"`
	UserName          string `json:"userName"`
	FullName          string `json:"fullName"`
	Avatar            string `json:"avatar"`
	CoverImage        string `json:"coverImage"`
	SubscribersCount  int    `json:"subscribersCount"`
	SubscribedToCount int    `json:"subscribedToCount"`
	IsSubscribed      bool   `json:"isSubscribed"`
}

// LikeStatus is the server-authoritative result of a like toggle.
type LikeStatus struct {
	IsLiked bool `json:"isLiked"`
	Likes   int  `json:"likes"`
}

// SubscriptionStatus is the server-authoritative result of a subscription
// toggle.
type SubscriptionStatus struct {
	IsSubscribed bool `json:"isSubscribed"`
	Subscribers  int  `json:"subscribers"`
}

// SubscriberPage is the payload of a channel subscriber fetch.
type SubscriberPage struct {
	Subscribers      []Owner `json:"subscribers"`
	SubscribersCount int     `json:"subscribersCount"`
}

// DashboardStats summarizes a creator's channel.
type DashboardStats struct {
	TotalVideos      []Video `json:"totalVideos"`
	TotalViews       int     `json:"totalViews"`
	TotalLikes       int     `json:"totalLikes"`
	TotalSubscribers int     `json:"totalSubscribers"`
}

// File is a named file handle for multipart uploads.
type File struct {
	Name   string
	Reader io.Reader
}
