package api

import (
	"context"
	"net/url"

	"videotube/transport"
)

// AuthGateway covers account and session endpoints under /users.
type AuthGateway struct {
	client *transport.Client
}

// RegisterInput holds the registration form. Avatar is required by the
// backend; CoverImage is optional.
type RegisterInput struct {
	UserName   string
	Email      string
	FullName   string
	Password   string
	Avatar     File
	CoverImage File
}

// Register creates an account with profile images (multipart).
func (g *AuthGateway) Register(ctx context.Context, in RegisterInput) (*User, error) {
	form := transport.NewForm().
		Field("userName", in.UserName).
		Field("email", in.Email).
		Field("fullName", in.FullName).
		Field("password", in.Password).
		File("avatar", in.Avatar.Name, in.Avatar.Reader).
		File("coverImage", in.CoverImage.Name, in.CoverImage.Reader)

	var user User
	if err := g.client.PostForm(ctx, "/users/register", form, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// LoginInput identifies the account by email or user name.
type LoginInput struct {
	Email    string `json:"email,omitempty"`
	UserName string `json:"userName,omitempty"`
	Password string `json:"password"`
}

// loginData unwraps the login payload; tokens travel as cookies, not here.
type loginData struct {
	User User `json:"user"`
}

// Login starts a session. The server sets the access/refresh cookie pair.
func (g *AuthGateway) Login(ctx context.Context, in LoginInput) (*User, error) {
	var data loginData
	if err := g.client.Post(ctx, "/users/login", in, &data); err != nil {
		return nil, err
	}
	return &data.User, nil
}

// Logout ends the session and clears the cookie pair server-side.
func (g *AuthGateway) Logout(ctx context.Context) error {
	return g.client.Post(ctx, "/users/logout", nil, nil)
}

// CurrentUser resolves the active session, if any.
func (g *AuthGateway) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := g.client.Get(ctx, "/users/current-user", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// AccountUpdate holds mutable account fields.
type AccountUpdate struct {
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
}

// UpdateAccount patches account details.
func (g *AuthGateway) UpdateAccount(ctx context.Context, in AccountUpdate) (*User, error) {
	var user User
	if err := g.client.Patch(ctx, "/users/update-account", in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateAvatar replaces the profile avatar (multipart).
func (g *AuthGateway) UpdateAvatar(ctx context.Context, avatar File) (*User, error) {
	form := transport.NewForm().File("avatar", avatar.Name, avatar.Reader)
	var user User
	if err := g.client.PatchForm(ctx, "/users/avatar", form, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateCoverImage replaces the profile cover image (multipart).
func (g *AuthGateway) UpdateCoverImage(ctx context.Context, cover File) (*User, error) {
	form := transport.NewForm().File("coverImage", cover.Name, cover.Reader)
	var user User
	if err := g.client.PatchForm(ctx, "/users/cover-image", form, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// PasswordChange carries the credential rotation payload.
type PasswordChange struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ChangePassword rotates the account password.
func (g *AuthGateway) ChangePassword(ctx context.Context, in PasswordChange) error {
	return g.client.Post(ctx, "/users/change-password", in, nil)
}

// ChannelProfile fetches a user's public channel page.
func (g *AuthGateway) ChannelProfile(ctx context.Context, userName string) (*ChannelProfile, error) {
	var profile ChannelProfile
	if err := g.client.Get(ctx, "/users/c/"+url.PathEscape(userName), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// WatchHistory fetches the viewer's watch history.
func (g *AuthGateway) WatchHistory(ctx context.Context) ([]Video, error) {
	var history []Video
	if err := g.client.Get(ctx, "/users/history", &history); err != nil {
		return nil, err
	}
	return history, nil
}

// Dashboard fetches creator dashboard stats for a channel.
func (g *AuthGateway) Dashboard(ctx context.Context, userName string) (*DashboardStats, error) {
	var stats DashboardStats
	if err := g.client.Get(ctx, "/users/c/"+url.PathEscape(userName)+"/dashboard", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
