// Package videotube is a Go client for the VideoTube video-sharing
// platform: browsing and publishing videos, commenting, liking,
// subscribing, managing playlists, and posting tweets.
//
// All business logic lives in the backend service; this library renders
// nothing and owns no canonical state. It provides three layers:
//
//   - transport: an authenticated HTTP client with cookie credentials and
//     transparent access-token refresh-and-retry on 401
//   - api: stateless gateways mapping domain operations to API calls
//   - store: normalized local caches that stay consistent across views
//     after mutating actions
//
// # Quick start
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//	app, err := videotube.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer app.Close()
//
//	ctx := context.Background()
//	if _, err := app.Stores.Auth.Login(ctx, api.LoginInput{
//		UserName: "chai",
//		Password: "secret",
//	}); err != nil {
//		log.Fatal(err)
//	}
//
//	if err := app.Stores.Videos.LoadFeed(ctx, api.ListQuery{Limit: 10}); err != nil {
//		log.Fatal(err)
//	}
//	for _, v := range app.Stores.Videos.Feed() {
//		fmt.Println(v.Title)
//	}
//
// # Configuration
//
// Settings load from VIDEOTUBE_* environment variables, see the config
// package. The backend base URL defaults to a local development server.
// Session cookies persist in a configurable cookie file, so a session
// started by one process survives into the next.
//
// # Error handling
//
// All operations return errors supporting errors.Is and errors.As.
// Classify failures against the exported sentinels:
//
//	if errors.Is(err, videotube.ErrNotFound) {
//		// resource missing
//	}
//	var apiErr *videotube.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Println(apiErr.StatusCode, apiErr.Message)
//	}
//
// # Consistency
//
// Stores cache server state and patch it from mutation responses; toggle
// results are always server-authoritative. Cross-domain effects (a
// subscription toggle updating both the channel page and the viewer's
// sidebar) go through store.Hub entry points. Concurrent mutations against
// the same entity are not serialized by the client; the last response to
// arrive wins.
package videotube
