package persistence

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"residence/server/internal/content"
	"residence/server/internal/models"
)

// ErrOffline is returned by Reconcile when no remote is configured
var ErrOffline = errors.New("no server configured, working offline")

// Remote is the server side copy of the content
type Remote interface {
	Fetch(ctx context.Context) (*models.AllData, error)
	Push(ctx context.Context, data models.AllData) error
}

type SyncState string

const (
	SyncIdle    SyncState = "idle"
	SyncPending SyncState = "pending"
	SyncSynced  SyncState = "synced"
	SyncFailed  SyncState = "failed"
)

// SyncStatus describes the outcome of the last push. Unsynced is true
// while local edits, possibly from an earlier run, are not on the server.
type SyncStatus struct {
	State        SyncState
	Unsynced     bool
	LastError    error
	LastSyncedAt time.Time
}

type Options struct {
	Debounce   time.Duration
	Retries    int
	RetryDelay time.Duration
}

// Adapter keeps a content store, the local cache and the server in step
type Adapter struct {
	store  *content.Store
	cache  *Cache
	remote Remote
	opts   Options
	logger *logrus.Logger

	debouncer *Debouncer

	mu       sync.Mutex
	pending  *models.AllData
	unsynced bool
	status   SyncStatus

	pushMu sync.Mutex
}

// NewAdapter binds itself as the store's change listener. remote may be nil.
func NewAdapter(store *content.Store, cache *Cache, remote Remote, opts Options, logger *logrus.Logger) *Adapter {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if opts.Debounce <= 0 {
		opts.Debounce = time.Second
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}

	a := &Adapter{
		store:  store,
		cache:  cache,
		remote: remote,
		opts:   opts,
		logger: logger,
		status: SyncStatus{State: SyncIdle},
	}
	a.debouncer = NewDebouncer(opts.Debounce, func() {
		if err := a.push(context.Background()); err != nil {
			a.logger.WithError(err).Warn("Background sync failed")
		}
	})
	store.OnChange(a.OnChange)
	return a
}

// Hydrate loads the local cache into the store, falling back to the
// built-in defaults when there is no usable cache.
func (a *Adapter) Hydrate() {
	entry, found, err := a.cache.Load()
	switch {
	case err != nil:
		a.logger.WithError(err).WithField("path", a.cache.Path()).Warn("Failed to read local cache, using defaults")
		entry = Entry{Content: content.Defaults()}
	case !found:
		a.logger.WithField("path", a.cache.Path()).Debug("No local cache, using defaults")
		entry = Entry{Content: content.Defaults()}
	case entry.Unsynced:
		a.logger.WithField("path", a.cache.Path()).Info("Local cache has edits not yet on the server")
	}
	a.store.Replace(entry.Content)

	a.mu.Lock()
	a.unsynced = entry.Unsynced
	a.mu.Unlock()
}

// Reconcile brings the store and the server in step. When the cache holds
// edits the server never received, they are pushed and the server copy is
// not merged over them. Otherwise the server's content is merged into the
// store. On failure the store keeps its local state and the error is returned.
func (a *Adapter) Reconcile(ctx context.Context) error {
	if a.remote == nil {
		return ErrOffline
	}

	a.mu.Lock()
	unsynced := a.unsynced
	if unsynced && a.pending == nil {
		snapshot := a.store.Snapshot()
		a.pending = &snapshot
		a.status.State = SyncPending
	}
	a.mu.Unlock()

	if unsynced {
		if err := a.push(ctx); err != nil {
			a.logger.WithError(err).Warn("Server unavailable, local edits stay unsynced")
			return fmt.Errorf("failed to push unsynced local content: %w", err)
		}
		a.logger.Info("Pushed local edits from an earlier session")
		return nil
	}

	remote, err := a.remote.Fetch(ctx)
	if err != nil {
		a.logger.WithError(err).Warn("Server unavailable, working offline")
		return fmt.Errorf("failed to fetch remote content: %w", err)
	}

	merged := Merge(a.store.Snapshot(), remote)
	a.store.Replace(merged)

	a.mu.Lock()
	if !a.unsynced {
		if err := a.cache.Save(merged, false); err != nil {
			a.logger.WithError(err).Error("Failed to update local cache")
		}
	}
	a.mu.Unlock()
	a.logger.Debug("Reconciled local content with server")
	return nil
}

// OnChange writes the snapshot to the cache, marked unsynced until the
// server accepts it, and schedules a push
func (a *Adapter) OnChange(snapshot models.AllData) {
	a.mu.Lock()
	if err := a.cache.Save(snapshot, true); err != nil {
		a.logger.WithError(err).Error("Failed to write local cache")
	}
	a.unsynced = true
	if a.remote != nil {
		a.pending = &snapshot
		a.status.State = SyncPending
	}
	a.mu.Unlock()

	if a.remote != nil {
		a.debouncer.Trigger()
	}
}

// Flush pushes a pending snapshot now
func (a *Adapter) Flush(ctx context.Context) error {
	a.debouncer.Stop()
	return a.push(ctx)
}

func (a *Adapter) Close() {
	a.debouncer.Stop()
}

func (a *Adapter) Status() SyncStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	status := a.status
	status.Unsynced = a.unsynced
	return status
}

// push sends the latest pending snapshot, retrying a bounded number of times
func (a *Adapter) push(ctx context.Context) error {
	a.pushMu.Lock()
	defer a.pushMu.Unlock()

	a.mu.Lock()
	snapshot := a.pending
	a.pending = nil
	a.mu.Unlock()

	if snapshot == nil || a.remote == nil {
		return nil
	}

	var err error
	for attempt := 0; attempt <= a.opts.Retries; attempt++ {
		if attempt > 0 {
			a.logger.Infof("Retrying sync, attempt %d of %d", attempt, a.opts.Retries)
			select {
			case <-ctx.Done():
				err = ctx.Err()
				a.fail(snapshot, err)
				return err
			case <-time.After(a.opts.RetryDelay):
			}
		}

		if err = a.remote.Push(ctx, *snapshot); err == nil {
			a.mu.Lock()
			if a.pending == nil {
				a.status.State = SyncSynced
				a.unsynced = false
				if err := a.cache.Save(*snapshot, false); err != nil {
					a.logger.WithError(err).Error("Failed to update local cache")
				}
			}
			a.status.LastError = nil
			a.status.LastSyncedAt = time.Now()
			a.mu.Unlock()
			a.logger.Debug("Content synced to server")
			return nil
		}

		a.logger.WithError(err).Warn("Sync failed")
	}

	err = fmt.Errorf("failed to sync after %d attempts: %w", a.opts.Retries+1, err)
	a.fail(snapshot, err)
	return err
}

// fail records err and keeps snapshot pending unless a newer one arrived
func (a *Adapter) fail(snapshot *models.AllData, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pending == nil {
		a.pending = snapshot
	}
	a.status.State = SyncFailed
	a.status.LastError = err
}
