package persistence

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"residence/server/internal/content"
	"residence/server/internal/models"
)

type fakeRemote struct {
	mu       sync.Mutex
	data     *models.AllData
	fetchErr error
	pushErrs []error
	pushes   []models.AllData
}

func (f *fakeRemote) Fetch(ctx context.Context) (*models.AllData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.data, nil
}

func (f *fakeRemote) Push(ctx context.Context, data models.AllData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.pushErrs) > 0 {
		err := f.pushErrs[0]
		f.pushErrs = f.pushErrs[1:]
		return err
	}
	f.pushes = append(f.pushes, data)
	return nil
}

func (f *fakeRemote) pushCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pushes)
}

func (f *fakeRemote) lastPush() models.AllData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pushes[len(f.pushes)-1]
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func setup(t *testing.T, remote Remote, opts Options) (*content.Store, *Cache, *Adapter) {
	t.Helper()
	store := content.NewStore(models.AllData{})
	cache := NewCache(filepath.Join(t.TempDir(), "cache.json"))
	adapter := NewAdapter(store, cache, remote, opts, quietLogger())
	t.Cleanup(adapter.Close)
	return store, cache, adapter
}

func TestMerge(t *testing.T) {
	local := models.AllData{
		Projects:     []models.Project{{ID: "local"}},
		News:         []models.NewsItem{{ID: "local-news"}},
		SiteSettings: &models.SiteSettings{Phone: "local"},
		HomeContent:  &models.HomePageContent{HeroTitle: "local"},
	}
	remote := &models.AllData{
		Projects:     []models.Project{{ID: "remote"}},
		News:         []models.NewsItem{},
		SiteSettings: &models.SiteSettings{Phone: "remote"},
	}

	merged := Merge(local, remote)

	assert.Equal(t, "remote", merged.Projects[0].ID)
	assert.Equal(t, "local-news", merged.News[0].ID, "empty remote collection must not wipe local")
	assert.Equal(t, "remote", merged.SiteSettings.Phone)
	assert.Equal(t, "local", merged.HomeContent.HeroTitle, "absent remote singleton keeps local")

	assert.Equal(t, local, Merge(local, nil))
}

func TestAdapter_HydrateFallsBackToDefaults(t *testing.T) {
	store, _, adapter := setup(t, nil, Options{})
	adapter.Hydrate()
	assert.Equal(t, content.Defaults(), store.Snapshot())
}

func TestAdapter_HydrateUsesCache(t *testing.T) {
	store, cache, adapter := setup(t, nil, Options{})
	cached := models.AllData{News: []models.NewsItem{{ID: "cached"}}}
	require.NoError(t, cache.Save(cached, false))

	adapter.Hydrate()

	assert.Equal(t, "cached", store.News()[0].ID)
}

func TestAdapter_ReconcileOffline(t *testing.T) {
	remote := &fakeRemote{fetchErr: errors.New("connection refused")}
	store, _, adapter := setup(t, remote, Options{})
	adapter.Hydrate()

	err := adapter.Reconcile(context.Background())
	assert.Error(t, err)
	assert.Equal(t, content.Defaults(), store.Snapshot())

	_, _, noRemote := setup(t, nil, Options{})
	assert.ErrorIs(t, noRemote.Reconcile(context.Background()), ErrOffline)
}

func TestAdapter_ReconcileMergesAndCaches(t *testing.T) {
	remote := &fakeRemote{data: &models.AllData{Team: []models.TeamMember{{ID: "remote-member"}}}}
	store, cache, adapter := setup(t, remote, Options{})
	adapter.Hydrate()

	require.NoError(t, adapter.Reconcile(context.Background()))

	assert.Equal(t, "remote-member", store.Team()[0].ID)
	assert.Equal(t, content.Defaults().Projects, store.Projects())

	cached, found, err := cache.Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.False(t, cached.Unsynced)
	assert.Equal(t, "remote-member", cached.Content.Team[0].ID)
	assert.Equal(t, 0, remote.pushCount(), "reconcile must not push")
}

func TestAdapter_DebouncedPushSendsLatestOnce(t *testing.T) {
	remote := &fakeRemote{}
	store, cache, adapter := setup(t, remote, Options{Debounce: 50 * time.Millisecond})

	store.AddNews(models.NewsItem{ID: "first"})
	store.AddNews(models.NewsItem{ID: "second"})

	cached, _, err := cache.Load()
	require.NoError(t, err)
	assert.Len(t, cached.Content.News, 2, "cache is written synchronously")
	assert.True(t, cached.Unsynced)
	assert.Equal(t, SyncPending, adapter.Status().State)

	assert.Eventually(t, func() bool { return remote.pushCount() == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, remote.pushCount())
	assert.Len(t, remote.lastPush().News, 2)

	status := adapter.Status()
	assert.Equal(t, SyncSynced, status.State)
	assert.False(t, status.Unsynced)
	assert.False(t, status.LastSyncedAt.IsZero())

	cached, _, err = cache.Load()
	require.NoError(t, err)
	assert.False(t, cached.Unsynced, "a successful push clears the marker")
	assert.Len(t, cached.Content.News, 2)
}

func TestAdapter_FlushPushesImmediately(t *testing.T) {
	remote := &fakeRemote{}
	store, _, adapter := setup(t, remote, Options{Debounce: time.Hour})

	store.AddVacancy(models.Vacancy{ID: "v"})
	require.NoError(t, adapter.Flush(context.Background()))

	assert.Equal(t, 1, remote.pushCount())
	assert.NoError(t, adapter.Flush(context.Background()), "nothing pending")
	assert.Equal(t, 1, remote.pushCount())
}

func TestAdapter_RetriesThenSucceeds(t *testing.T) {
	remote := &fakeRemote{pushErrs: []error{errors.New("503")}}
	store, _, adapter := setup(t, remote, Options{Debounce: time.Hour, Retries: 2, RetryDelay: time.Millisecond})

	store.AddVacancy(models.Vacancy{ID: "v"})
	require.NoError(t, adapter.Flush(context.Background()))

	assert.Equal(t, 1, remote.pushCount())
	assert.Equal(t, SyncSynced, adapter.Status().State)
}

func TestAdapter_FailureIsVisibleAndKeptPending(t *testing.T) {
	boom := errors.New("unreachable")
	remote := &fakeRemote{pushErrs: []error{boom, boom}}
	store, _, adapter := setup(t, remote, Options{Debounce: time.Hour, Retries: 1, RetryDelay: time.Millisecond})

	store.AddVacancy(models.Vacancy{ID: "v"})
	err := adapter.Flush(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	status := adapter.Status()
	assert.Equal(t, SyncFailed, status.State)
	assert.ErrorIs(t, status.LastError, boom)

	require.NoError(t, adapter.Flush(context.Background()))
	assert.Equal(t, 1, remote.pushCount())
	assert.Equal(t, "v", remote.lastPush().Vacancies[0].ID)
}

func TestAdapter_OfflineOnlyWritesCache(t *testing.T) {
	store, cache, adapter := setup(t, nil, Options{})

	store.AddTeamMember(models.TeamMember{ID: "m"})

	cached, found, err := cache.Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "m", cached.Content.Team[0].ID)
	assert.True(t, cached.Unsynced)
	assert.Equal(t, SyncIdle, adapter.Status().State)
	assert.True(t, adapter.Status().Unsynced)
}

func TestAdapter_UnsyncedEditsSurviveRestart(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "cache.json")
	remote := &fakeRemote{
		data:     &models.AllData{Projects: []models.Project{{ID: "server-project"}}},
		pushErrs: []error{errors.New("unreachable")},
	}

	first := content.NewStore(models.AllData{})
	firstAdapter := NewAdapter(first, NewCache(cachePath), remote, Options{Debounce: time.Hour}, quietLogger())
	firstAdapter.Hydrate()
	require.NoError(t, firstAdapter.Reconcile(context.Background()))
	first.AddProject(models.Project{ID: "local-project", Name: "Черновик"})
	require.Error(t, firstAdapter.Flush(context.Background()))
	firstAdapter.Close()

	entry, found, err := NewCache(cachePath).Load()
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, entry.Unsynced)

	second := content.NewStore(models.AllData{})
	secondAdapter := NewAdapter(second, NewCache(cachePath), remote, Options{Debounce: time.Hour}, quietLogger())
	defer secondAdapter.Close()
	secondAdapter.Hydrate()
	require.NoError(t, secondAdapter.Reconcile(context.Background()))

	_, kept := second.Project("local-project")
	assert.True(t, kept, "server content must not overwrite unsynced local edits")

	require.Equal(t, 1, remote.pushCount())
	pushed := remote.lastPush()
	assert.Equal(t, []string{"server-project", "local-project"}, []string{pushed.Projects[0].ID, pushed.Projects[1].ID})

	entry, _, err = NewCache(cachePath).Load()
	require.NoError(t, err)
	assert.False(t, entry.Unsynced)
	assert.False(t, secondAdapter.Status().Unsynced)
}

func TestAdapter_UnsyncedPushFailureKeepsMarker(t *testing.T) {
	remote := &fakeRemote{
		data:     &models.AllData{Team: []models.TeamMember{{ID: "remote"}}},
		pushErrs: []error{errors.New("503")},
	}
	store, cache, adapter := setup(t, remote, Options{Debounce: time.Hour})
	require.NoError(t, cache.Save(models.AllData{Team: []models.TeamMember{{ID: "local"}}}, true))

	adapter.Hydrate()
	require.Error(t, adapter.Reconcile(context.Background()))

	assert.Equal(t, "local", store.Team()[0].ID)
	entry, _, err := cache.Load()
	require.NoError(t, err)
	assert.True(t, entry.Unsynced)
	assert.Equal(t, "local", entry.Content.Team[0].ID)
}

func TestCache_LoadsBareContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"news":[{"id":"old"}]}`), 0644))

	entry, found, err := NewCache(path).Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.False(t, entry.Unsynced)
	assert.Equal(t, "old", entry.Content.News[0].ID)
}

func TestDebouncer_Stop(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	d := NewDebouncer(20*time.Millisecond, func() {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	assert.False(t, d.Stop())
	d.Trigger()
	assert.True(t, d.Stop())
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, calls)
}
