// wx/manager.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wx

import (
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/aerie-sh/aerie/geo"
)

const (
	// gridResolutionMeters snaps lookups to a shared cache key, per
	// spec.md §4.3 ("grid-snapped cache").
	gridResolutionMeters = 1000.0

	// nearestRadiusMeters is how far the manager will look for an
	// existing sample before treating a point as a cache miss.
	nearestRadiusMeters = 5000.0

	// cacheSize and defaultCacheTTL mirror the teacher's manifest.go
	// expirable.NewLRU(32, nil, 4*time.Hour) pattern; mission areas are
	// smaller than the teacher's continental grids so fewer, longer-lived
	// entries are enough. defaultCacheTTL applies when NewManager is
	// called with a zero duration (e.g. a config file leaving the field
	// unset before config.SetDefaults runs).
	cacheSize       = 256
	defaultCacheTTL = 30 * time.Minute
)

type cacheEntry struct {
	lat, lon, alt float64
	sample        *Sample // nil means "fetch attempted and failed"
}

// Manager is C3: a grid-snapped cache in front of an external Client. Its
// lookup order is exact key, then nearest cached sample within 5km, then
// an external fetch (which populates the cache, including failures so a
// known-bad point isn't refetched every call).
type Manager struct {
	client Client
	cache  *expirable.LRU[string, *cacheEntry]
	mu     sync.Mutex
}

// NewManager builds a Manager around client, with cache entries expiring
// after cacheTTL (e.g. config.MissionPlannerConfig.WeatherCacheTTL()). A
// zero or negative cacheTTL falls back to defaultCacheTTL. A nil client is
// valid for tests that only exercise the cache via Seed.
func NewManager(client Client, cacheTTL time.Duration) *Manager {
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &Manager{
		client: client,
		cache:  expirable.NewLRU[string, *cacheEntry](cacheSize, nil, cacheTTL),
	}
}

func gridKey(lat, lon, alt float64) string {
	snapLat, snapLon := geo.GridSnap(lat, lon, gridResolutionMeters)
	return fmt.Sprintf("%.4f,%.4f,%.0f", snapLat, snapLon, alt)
}

// Lookup returns the weather sample nearest to (lat, lon, alt), fetching
// from the external client on a cache miss. ok is false only when no
// sample could be obtained at all (neither cached nor fetched) — that is
// not treated as an error per spec.md §7; callers decide how to proceed
// without weather data. A nil *Manager has no samples and returns
// (nil, false).
func (m *Manager) Lookup(lat, lon, alt float64, at *time.Time) (*Sample, bool) {
	if m == nil {
		return nil, false
	}
	key := gridKey(lat, lon, alt)

	m.mu.Lock()
	if entry, found := m.cache.Get(key); found {
		m.mu.Unlock()
		return entry.sample, entry.sample != nil
	}
	if entry, ok := m.nearestLocked(lat, lon); ok {
		m.mu.Unlock()
		return entry.sample, entry.sample != nil
	}
	m.mu.Unlock()

	if m.client == nil {
		return nil, false
	}

	sample, err := m.client.Fetch(lat, lon, alt, at)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil || sample == nil {
		m.cache.Add(key, &cacheEntry{lat: lat, lon: lon, alt: alt, sample: nil})
		return nil, false
	}
	m.cache.Add(key, &cacheEntry{lat: lat, lon: lon, alt: alt, sample: sample})
	return sample, true
}

// nearestLocked scans cached entries for one within nearestRadiusMeters;
// must be called with m.mu held. The expirable LRU doesn't expose range
// iteration beyond Keys, so this is O(n) in the cache size — acceptable
// at the few-hundred-entry scale a single mission touches.
func (m *Manager) nearestLocked(lat, lon float64) (*cacheEntry, bool) {
	var best *cacheEntry
	bestDist := nearestRadiusMeters
	for _, key := range m.cache.Keys() {
		entry, ok := m.cache.Peek(key)
		if !ok || entry.sample == nil {
			continue
		}
		d := geo.Haversine(lat, lon, entry.lat, entry.lon)
		if d <= bestDist {
			best, bestDist = entry, d
		}
	}
	return best, best != nil
}

// Seed pre-populates the cache with a known sample, bypassing the client.
// Tests and PreFetch both use this to avoid redundant fetches.
func (m *Manager) Seed(lat, lon, alt float64, sample *Sample) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Add(gridKey(lat, lon, alt), &cacheEntry{lat: lat, lon: lon, alt: alt, sample: sample})
}

// PreFetch warms the cache for a batch of waypoints before planning starts,
// so the cost model's per-segment lookups (C4) never block on network I/O
// mid-plan. Fetch failures are recorded (as cache misses) rather than
// aborting the batch.
func (m *Manager) PreFetch(points []geo.Position, at *time.Time) {
	for _, p := range points {
		m.Lookup(p.Lat, p.Lon, p.Alt, at)
	}
}
