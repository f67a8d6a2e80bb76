package videotube

import (
	"github.com/rs/zerolog"

	"videotube/api"
	"videotube/config"
	"videotube/store"
	"videotube/transport"
)

// App wires the full client: transport, gateways, and stores over one
// session.
type App struct {
	Config    config.Config
	Log       zerolog.Logger
	Transport *transport.Client
	API       *api.Gateways
	Stores    *store.Hub
}

// New builds an App from configuration. The transport client's
// refresh-failure path is wired to the session holder so an irrecoverable
// 401 clears the session and viewer-scoped caches.
func New(cfg config.Config) (*App, error) {
	log := config.NewLogger(cfg.AppEnv)

	tc := &transport.Config{
		Timeout:           cfg.Timeout,
		UserAgent:         cfg.UserAgent,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
		CookieFile:        cfg.CookieFile,
		Transport:         transport.DefaultConfig().Transport,
	}
	client, err := transport.New(cfg.BaseURL, tc, log)
	if err != nil {
		return nil, err
	}

	gateways := api.New(client)
	sessions := store.NewSessionHolder()
	hub := store.NewHub(gateways, sessions, log)
	client.OnSessionExpired(hub.SessionExpired)

	return &App{
		Config:    cfg,
		Log:       log,
		Transport: client,
		API:       gateways,
		Stores:    hub,
	}, nil
}

// Close releases transport resources.
func (a *App) Close() error {
	return a.Transport.Close()
}
