package cli

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"residence/server/config"
	"residence/server/internal/client"
	"residence/server/internal/content"
	"residence/server/internal/models"
	"residence/server/internal/persistence"
)

// Session is the content loaded for one command run
type Session struct {
	Store   *content.Store
	Adapter *persistence.Adapter
	Client  *client.Client
	Offline bool
}

// OpenSession hydrates from the local cache and reconciles with the server.
// An unreachable server leaves the session offline with cached content.
func OpenSession(ctx context.Context, cfg *config.ClientConfig, logger *logrus.Logger) *Session {
	var remote persistence.Remote
	var api *client.Client
	if cfg.APIURL != "" {
		api = client.New(cfg.APIURL, cfg.HTTPTimeout)
		remote = api
	}

	store := content.NewStore(models.AllData{})
	adapter := persistence.NewAdapter(store, persistence.NewCache(cfg.CachePath), remote, persistence.Options{
		Debounce:   cfg.SaveDebounce,
		Retries:    cfg.SyncRetries,
		RetryDelay: cfg.SyncRetryDelay,
	}, logger)
	adapter.Hydrate()

	s := &Session{Store: store, Adapter: adapter, Client: api}
	if err := adapter.Reconcile(ctx); err != nil {
		s.Offline = true
	}
	return s
}

// Close pushes pending edits. Edits are already in the local cache
// when this fails.
func (s *Session) Close(ctx context.Context) error {
	defer s.Adapter.Close()
	if s.Offline {
		return nil
	}
	return s.Adapter.Flush(ctx)
}

var errNoServer = errors.New("no server configured (set CMS_API_URL)")

func (s *Session) api() (*client.Client, error) {
	if s.Client == nil {
		return nil, errNoServer
	}
	return s.Client, nil
}
