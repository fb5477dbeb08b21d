package patterns

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/titlex/engine/internal/observability"
)

// fakeSource is a Source whose LoadAll result and error can be swapped
// between calls, letting tests exercise both a successful and a failing
// reload against the same Loader.
type fakeSource struct {
	mu      sync.Mutex
	lib     *MemoryLibrary
	err     error
	loadCnt int
}

func (f *fakeSource) LoadAll(_ context.Context) (*MemoryLibrary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadCnt++
	if f.err != nil {
		return nil, f.err
	}
	return f.lib, nil
}

// fakeCache is an in-memory cache.Client stand-in so Loader tests don't
// need a real Redis connection.
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{store: make(map[string][]byte)} }

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.store[key]
	if !ok {
		return nil, errors.New("miss")
	}
	return v, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

func (c *fakeCache) DeleteByPrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.store {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(c.store, k)
		}
	}
	return nil
}

func (c *fakeCache) Close() error { return nil }

func testLogger() *observability.Logger {
	return observability.NewLogger(observability.LogConfig{
		Level:       "error",
		Format:      "json",
		Output:      io.Discard,
		ServiceName: "titlex-test",
	})
}

func mustLibrary(t *testing.T, term string) *MemoryLibrary {
	t.Helper()
	lib, err := NewMemoryLibrary([]Pattern{
		{Kind: KindReportSeparator, Term: term, Priority: 1, Active: true},
	})
	require.NoError(t, err)
	return lib
}

func TestNewLoader_PerformsInitialLoad(t *testing.T) {
	src := &fakeSource{lib: mustLibrary(t, "&")}

	loader, err := NewLoader(context.Background(), src, nil, testLogger())
	require.NoError(t, err)
	assert.Len(t, loader.Current().PatternsOf(KindReportSeparator), 1)
	assert.Equal(t, 1, src.loadCnt)
}

func TestNewLoader_FailsOnBadInitialLoad(t *testing.T) {
	src := &fakeSource{err: errors.New("store unavailable")}

	_, err := NewLoader(context.Background(), src, nil, testLogger())
	require.Error(t, err)
}

func TestLoader_ReloadSwapsSnapshot(t *testing.T) {
	src := &fakeSource{lib: mustLibrary(t, "&")}
	loader, err := NewLoader(context.Background(), src, nil, testLogger())
	require.NoError(t, err)

	src.lib = mustLibrary(t, "/")
	require.NoError(t, loader.Reload(context.Background()))

	got := loader.Current().PatternsOf(KindReportSeparator)
	require.Len(t, got, 1)
	assert.Equal(t, "/", got[0].Term)
}

func TestLoader_FailedReloadKeepsPreviousSnapshot(t *testing.T) {
	src := &fakeSource{lib: mustLibrary(t, "&")}
	loader, err := NewLoader(context.Background(), src, nil, testLogger())
	require.NoError(t, err)

	src.err = errors.New("transient failure")
	err = loader.Reload(context.Background())
	require.Error(t, err)

	got := loader.Current().PatternsOf(KindReportSeparator)
	require.Len(t, got, 1)
	assert.Equal(t, "&", got[0].Term)
}

func TestLoader_ReloadWritesCacheSnapshot(t *testing.T) {
	src := &fakeSource{lib: mustLibrary(t, "&")}
	c := newFakeCache()

	_, err := NewLoader(context.Background(), src, c, testLogger())
	require.NoError(t, err)

	assert.NotEmpty(t, c.store)
}

func TestLoader_StartAutoReloadStopsOnContextCancel(t *testing.T) {
	src := &fakeSource{lib: mustLibrary(t, "&")}
	loader, err := NewLoader(context.Background(), src, nil, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	loader.StartAutoReload(ctx, 5*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	cancel()

	countAfterCancel := src.loadCnt
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, countAfterCancel, src.loadCnt)
	assert.GreaterOrEqual(t, countAfterCancel, 1)
}
