package patterns

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/titlex/engine/internal/cache"
	"github.com/titlex/engine/internal/observability"
)

// Source is anything that can produce a fresh Library snapshot on demand.
// SQLStore and the YAML seed loader both satisfy it.
type Source interface {
	LoadAll(ctx context.Context) (*MemoryLibrary, error)
}

// Loader owns the single, hot-reloadable pattern-library snapshot the
// pipeline reads from. Readers call Current() and get back an immutable
// MemoryLibrary; reload swaps the atomic pointer so no reader ever
// observes a partially updated library (§5).
type Loader struct {
	source  Source
	cache   cache.Client
	logger  *observability.Logger
	current atomic.Pointer[MemoryLibrary]
	version atomic.Uint64
}

// NewLoader constructs a Loader and performs the initial load. cache may
// be nil, in which case no snapshot is written; every Reload reads from
// source either way.
func NewLoader(ctx context.Context, source Source, cacheClient cache.Client, logger *observability.Logger) (*Loader, error) {
	l := &Loader{source: source, cache: cacheClient, logger: logger}
	if err := l.Reload(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

// Current returns the live snapshot. Safe to call concurrently from any
// number of worker goroutines; never blocks on a reload in progress.
func (l *Loader) Current() *MemoryLibrary {
	return l.current.Load()
}

// Reload fetches a fresh snapshot from source, validates it (via
// NewMemoryLibrary inside Source.LoadAll), and atomically swaps it in.
// A failed reload leaves the previous snapshot serving traffic.
func (l *Loader) Reload(ctx context.Context) error {
	lib, err := l.source.LoadAll(ctx)
	if err != nil {
		if l.logger != nil {
			l.logger.Error().Err(err).Msg("pattern library reload failed, keeping previous snapshot")
		}
		return fmt.Errorf("reload pattern library: %w", err)
	}

	l.current.Store(lib)
	version := l.version.Add(1)

	if l.cache != nil {
		l.cacheSnapshot(ctx, version, lib)
	}
	if l.logger != nil {
		l.logger.Info().Int64("version", int64(version)).Msg("pattern library reloaded")
	}
	return nil
}

// cacheSnapshotEntry is the JSON wire shape written to the cache on each
// reload. Nothing in this module reads it back; Current() serves the
// in-process snapshot.
type cacheSnapshotEntry struct {
	Kind     Kind      `json:"kind"`
	Patterns []Pattern `json:"patterns"`
}

func (l *Loader) cacheSnapshot(ctx context.Context, version uint64, lib *MemoryLibrary) {
	kinds := []Kind{
		KindMarketTerm, KindDatePattern, KindReportKeywordPrimary,
		KindReportKeywordSecondary, KindReportSeparator, KindGeographicEntity, KindGeographicAlias,
	}
	entries := make([]cacheSnapshotEntry, 0, len(kinds))
	for _, k := range kinds {
		entries = append(entries, cacheSnapshotEntry{Kind: k, Patterns: lib.PatternsOf(k)})
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return
	}
	key := cache.PatternLibrarySnapshotKey(fmt.Sprintf("%d", version))
	_ = l.cache.Set(ctx, key, data, time.Hour)
}

// StartAutoReload launches a background ticker that calls Reload every
// interval until ctx is canceled. Reload errors are logged, not returned;
// the previous snapshot keeps serving.
func (l *Loader) StartAutoReload(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = l.Reload(ctx)
			}
		}
	}()
}
