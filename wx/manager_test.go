// wx/manager_test.go
// Copyright(c) 2022-2025 aerie contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wx

import (
	"errors"
	"testing"
	"time"
)

func TestManagerLookupHitsCacheBeforeFetching(t *testing.T) {
	calls := 0
	client := ClientFunc(func(lat, lon, alt float64, at *time.Time) (*Sample, error) {
		calls++
		return &Sample{Lat: lat, Lon: lon, Alt: alt, WindSpeed10m: 4}, nil
	})
	m := NewManager(client, 0)

	s1, ok := m.Lookup(50.0, 30.0, 100, nil)
	if !ok || s1 == nil {
		t.Fatalf("expected a sample on first lookup")
	}
	if calls != 1 {
		t.Fatalf("expected 1 fetch, got %d", calls)
	}

	s2, ok := m.Lookup(50.0, 30.0, 100, nil)
	if !ok || s2 == nil {
		t.Fatalf("expected a cached sample on second lookup")
	}
	if calls != 1 {
		t.Errorf("expected cache hit, but fetch was called again (calls=%d)", calls)
	}
}

func TestManagerNearestWithinRadius(t *testing.T) {
	m := NewManager(nil, 0)
	m.Seed(50.000, 30.000, 100, &Sample{WindSpeed10m: 6})

	// ~0.5km away, within the 5km nearest-search radius.
	got, ok := m.Lookup(50.004, 30.000, 100, nil)
	if !ok || got == nil {
		t.Fatalf("expected nearest-cache hit within radius")
	}
	if got.WindSpeed10m != 6 {
		t.Errorf("got wind %v, want 6", got.WindSpeed10m)
	}
}

func TestManagerNoClientNoCacheIsMiss(t *testing.T) {
	m := NewManager(nil, 0)
	_, ok := m.Lookup(1, 1, 1, nil)
	if ok {
		t.Error("expected a miss with no client and empty cache")
	}
}

func TestManagerHonorsConfiguredCacheTTL(t *testing.T) {
	calls := 0
	client := ClientFunc(func(lat, lon, alt float64, at *time.Time) (*Sample, error) {
		calls++
		return &Sample{Lat: lat, Lon: lon, Alt: alt, WindSpeed10m: 4}, nil
	})
	m := NewManager(client, 10*time.Millisecond)

	if _, ok := m.Lookup(50.0, 30.0, 100, nil); !ok {
		t.Fatalf("expected a sample on first lookup")
	}
	time.Sleep(30 * time.Millisecond)

	if _, ok := m.Lookup(50.0, 30.0, 100, nil); !ok {
		t.Fatalf("expected a sample after the cache entry expired and was refetched")
	}
	if calls != 2 {
		t.Errorf("expected the short TTL to force a second fetch, got %d calls", calls)
	}
}

func TestManagerMemoizesFailedFetch(t *testing.T) {
	calls := 0
	client := ClientFunc(func(lat, lon, alt float64, at *time.Time) (*Sample, error) {
		calls++
		return nil, errors.New("upstream unavailable")
	})
	m := NewManager(client, 0)

	_, ok1 := m.Lookup(10, 10, 50, nil)
	_, ok2 := m.Lookup(10, 10, 50, nil)
	if ok1 || ok2 {
		t.Error("expected both lookups to miss")
	}
	if calls != 1 {
		t.Errorf("expected failed fetch to be memoized, got %d calls", calls)
	}
}
