package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"

	"videotube"
	"videotube/api"
	"videotube/config"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "login":
		cmdLogin(args)
	case "whoami":
		cmdWhoami(args)
	case "logout":
		cmdLogout(args)
	case "videos":
		cmdVideos(args)
	case "watch":
		cmdWatch(args)
	case "like":
		cmdLike(args)
	case "subscribe":
		cmdSubscribe(args)
	case "comment":
		cmdComment(args)
	case "tweet":
		cmdTweet(args)
	case "upload":
		cmdUpload(args)
	case "playlists":
		cmdPlaylists(args)
	case "history":
		cmdHistory(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `videotube - command-line client for the VideoTube platform

Usage:
  videotube login <user> <password>          Start a session
  videotube whoami                           Show the active session
  videotube logout                           End the session
  videotube videos [query]                   Browse the video feed
  videotube watch <video-id>                 Show a video and its comments
  videotube like <video-id>                  Toggle a like on a video
  videotube subscribe <channel-id>           Toggle a channel subscription
  videotube comment <video-id> <text>        Comment on a video
  videotube tweet <text>                     Post a tweet
  videotube upload <title> <video> <thumb>   Publish a video
  videotube playlists <user>                 List a user's playlists
  videotube history                          Show watch history
  videotube help                             Show this help message

Configuration is read from VIDEOTUBE_* environment variables (a .env file
in the working directory is honored).
`)
}

// newApp loads config and builds the client. Session cookies persist in the
// configured cookie file, so a login in one run authenticates later runs
// until the refresh token expires or logout clears it.
func newApp() *videotube.App {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	app, err := videotube.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return app
}

func newCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func cmdLogin(args []string) {
	if len(args) < 2 {
		fail(fmt.Errorf("usage: videotube login <user> <password>"))
	}
	app := newApp()
	defer app.Close()
	ctx, cancel := newCtx()
	defer cancel()

	in := api.LoginInput{Password: args[1]}
	if isEmail(args[0]) {
		in.Email = args[0]
	} else {
		in.UserName = args[0]
	}
	user, err := app.Stores.Auth.Login(ctx, in)
	if err != nil {
		fail(err)
	}
	fmt.Printf("Logged in as %s (%s)\n", user.UserName, user.FullName)
}

func cmdWhoami(args []string) {
	app := newApp()
	defer app.Close()
	ctx, cancel := newCtx()
	defer cancel()

	user, err := app.Stores.Auth.Probe(ctx)
	if err != nil {
		fail(err)
	}
	fmt.Printf("%s (%s) <%s>\n", user.UserName, user.FullName, user.Email)
}

func cmdLogout(args []string) {
	app := newApp()
	defer app.Close()
	ctx, cancel := newCtx()
	defer cancel()

	if err := app.Stores.Logout(ctx); err != nil {
		fail(err)
	}
	fmt.Println("Logged out.")
}

func cmdVideos(args []string) {
	app := newApp()
	defer app.Close()
	ctx, cancel := newCtx()
	defer cancel()

	q := api.ListQuery{Limit: 20, SortBy: "createdAt", SortType: "desc"}
	if len(args) > 0 {
		q.Query = args[0]
	}
	if err := app.Stores.Videos.LoadFeed(ctx, q); err != nil {
		fail(err)
	}

	videos := app.Stores.Videos.Feed()
	if len(videos) == 0 {
		fmt.Println("No videos found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VIDEO ID\tTITLE\tCHANNEL\tVIEWS\tLIKES")
	for _, v := range videos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
			v.ID, truncate(v.Title, 50), v.Owner.UserName, v.Views, v.LikesCount)
	}
	w.Flush()
}

func cmdWatch(args []string) {
	if len(args) < 1 {
		fail(fmt.Errorf("usage: videotube watch <video-id>"))
	}
	app := newApp()
	defer app.Close()
	ctx, cancel := newCtx()
	defer cancel()

	if err := app.Stores.Videos.LoadVideo(ctx, args[0]); err != nil {
		fail(err)
	}
	v := app.Stores.Videos.Current()
	fmt.Printf("%s\nby %s (%d subscribers)\n%d views, %d likes\n\n%s\n",
		v.Title, v.Owner.UserName, v.Owner.SubscribersCount, v.Views, v.LikesCount, v.Description)

	if err := app.Stores.Comments.Load(ctx, args[0], 1, 10); err != nil {
		fail(err)
	}
	fmt.Printf("\nComments (%d total):\n", app.Stores.Comments.Total())
	for _, c := range app.Stores.Comments.Comments() {
		fmt.Printf("  %s: %s\n", c.Owner.UserName, truncate(c.Content, 80))
	}
}

func cmdLike(args []string) {
	if len(args) < 1 {
		fail(fmt.Errorf("usage: videotube like <video-id>"))
	}
	app := newApp()
	defer app.Close()
	ctx, cancel := newCtx()
	defer cancel()

	status, err := app.Stores.Videos.ToggleLike(ctx, args[0])
	if err != nil {
		fail(err)
	}
	if status.IsLiked {
		fmt.Printf("Liked (%d likes)\n", status.Likes)
	} else {
		fmt.Printf("Like removed (%d likes)\n", status.Likes)
	}
}

func cmdSubscribe(args []string) {
	if len(args) < 1 {
		fail(fmt.Errorf("usage: videotube subscribe <channel-id>"))
	}
	app := newApp()
	defer app.Close()
	ctx, cancel := newCtx()
	defer cancel()

	status, err := app.Stores.ToggleSubscription(ctx, args[0])
	if err != nil {
		fail(err)
	}
	if status.IsSubscribed {
		fmt.Printf("Subscribed (%d subscribers)\n", status.Subscribers)
	} else {
		fmt.Printf("Unsubscribed (%d subscribers)\n", status.Subscribers)
	}
}

func cmdComment(args []string) {
	if len(args) < 2 {
		fail(fmt.Errorf("usage: videotube comment <video-id> <text>"))
	}
	app := newApp()
	defer app.Close()
	ctx, cancel := newCtx()
	defer cancel()

	comment, err := app.Stores.Comments.Add(ctx, args[0], args[1])
	if err != nil {
		fail(err)
	}
	fmt.Printf("Comment posted (%s)\n", comment.ID)
}

func cmdTweet(args []string) {
	if len(args) < 1 {
		fail(fmt.Errorf("usage: videotube tweet <text>"))
	}
	app := newApp()
	defer app.Close()
	ctx, cancel := newCtx()
	defer cancel()

	tweet, err := app.Stores.Tweets.Create(ctx, args[0])
	if err != nil {
		fail(err)
	}
	fmt.Printf("Tweet posted (%s)\n", tweet.ID)
}

func cmdUpload(args []string) {
	if len(args) < 3 {
		fail(fmt.Errorf("usage: videotube upload <title> <video-file> <thumbnail-file>"))
	}
	app := newApp()
	defer app.Close()

	// Uploads can be large; give them more room than the default.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	videoFile, err := os.Open(args[1])
	if err != nil {
		fail(err)
	}
	defer videoFile.Close()
	thumbFile, err := os.Open(args[2])
	if err != nil {
		fail(err)
	}
	defer thumbFile.Close()

	video, err := app.Stores.Videos.Publish(ctx, api.UploadInput{
		Title:     args[0],
		VideoFile: api.File{Name: videoFile.Name(), Reader: videoFile},
		Thumbnail: api.File{Name: thumbFile.Name(), Reader: thumbFile},
	})
	if err != nil {
		fail(err)
	}
	fmt.Printf("Published %q (%s)\n", video.Title, video.ID)
}

func cmdPlaylists(args []string) {
	if len(args) < 1 {
		fail(fmt.Errorf("usage: videotube playlists <user>"))
	}
	app := newApp()
	defer app.Close()
	ctx, cancel := newCtx()
	defer cancel()

	if err := app.Stores.Playlists.LoadForUser(ctx, args[0]); err != nil {
		fail(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLAYLIST ID\tNAME\tVIDEOS")
	for _, p := range app.Stores.Playlists.UserPlaylists() {
		fmt.Fprintf(w, "%s\t%s\t%d\n", p.ID, truncate(p.Name, 40), len(p.Videos))
	}
	w.Flush()
}

func cmdHistory(args []string) {
	app := newApp()
	defer app.Close()
	ctx, cancel := newCtx()
	defer cancel()

	if err := app.Stores.Channels.LoadHistory(ctx); err != nil {
		fail(err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VIDEO ID\tTITLE\tCHANNEL")
	for _, v := range app.Stores.Channels.History() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", v.ID, truncate(v.Title, 50), v.Owner.UserName)
	}
	w.Flush()
}

func isEmail(s string) bool {
	for _, r := range s {
		if r == '@' {
			return true
		}
	}
	return false
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}
