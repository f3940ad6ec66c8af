package geodata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"satprobe-desktop/internal/geo"
)

// urlProviderFunc adapts a function to the ImageURLProvider interface
type urlProviderFunc func(domainID, productID, timestamp string) string

func (f urlProviderFunc) ImageURL(domainID, productID, timestamp string) string {
	return f(domainID, productID, timestamp)
}

func testRegistry() *Registry {
	r := NewRegistry()
	r.Register(Domain{
		ID:     "conus",
		Name:   "CONUS",
		Bounds: geo.Bounds{MinLat: 14.57, MaxLat: 56.76, MinLon: -152.11, MaxLon: -52.95},
	})
	return r
}

const validGeodataBody = `{
	"bounds": {"min_lat": 20, "max_lat": 50, "min_lon": -130, "max_lon": -60},
	"projection": "plate_carree",
	"data_unit": "K"
}`

func newTestFetcher(serverURL string) (*Fetcher, *Store) {
	store := NewStore(50, DefaultTTL, DefaultSweepInterval)
	provider := urlProviderFunc(func(domainID, productID, timestamp string) string {
		return fmt.Sprintf("%s/%s/%s/%s.jpg", serverURL, domainID, productID, timestamp)
	})
	return NewFetcher(store, nil, testRegistry(), provider), store
}

func TestMetadataURL(t *testing.T) {
	tests := []struct {
		imageURL string
		expected string
	}{
		{"https://cdn.example.com/conus/C13/20240115183000.jpg", "https://cdn.example.com/conus/C13/20240115183000.json"},
		{"https://cdn.example.com/frame.PNG", "https://cdn.example.com/frame.json"},
		{"https://cdn.example.com/frame.webp", "https://cdn.example.com/frame.json"},
		{"https://cdn.example.com/frame", ""}, // no recognizable extension
		{"", ""},
	}

	for _, tt := range tests {
		if got := MetadataURL(tt.imageURL); got != tt.expected {
			t.Errorf("MetadataURL(%q) = %q, expected %q", tt.imageURL, got, tt.expected)
		}
	}
}

func TestFetchFrame_SuccessAndCacheHit(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		fmt.Fprint(w, validGeodataBody)
	}))
	defer server.Close()

	fetcher, store := newTestFetcher(server.URL)

	frame := fetcher.FetchFrame(context.Background(), "conus", "C13", "20240115183000", nil)
	if frame == nil {
		t.Fatal("expected metadata, got nil")
	}
	if frame.IsFallback {
		t.Error("expected real metadata, got fallback")
	}
	if frame.DataUnit != "K" {
		t.Errorf("expected parsed body, got %+v", frame)
	}
	if frame.Timestamp != "20240115183000" {
		t.Errorf("expected request timestamp to backfill, got %q", frame.Timestamp)
	}
	if store.Size() != 1 {
		t.Errorf("expected 1 cached entry, got %d", store.Size())
	}

	// Second call is served from cache without touching the network
	fetcher.FetchFrame(context.Background(), "conus", "C13", "20240115183000", nil)
	if got := atomic.LoadInt64(&hits); got != 1 {
		t.Errorf("expected 1 upstream hit, got %d", got)
	}
}

func TestFetchFrame_NonSuccessStatusFallsBack(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		http.NotFound(w, r)
	}))
	defer server.Close()

	fetcher, _ := newTestFetcher(server.URL)

	frame := fetcher.FetchFrame(context.Background(), "conus", "C13", "t1", nil)
	if frame == nil {
		t.Fatal("expected fallback metadata, got nil")
	}
	if !frame.IsFallback {
		t.Error("expected fallback flag")
	}
	if frame.Bounds.MinLat != 14.57 {
		t.Errorf("expected domain bounds, got %+v", frame.Bounds)
	}

	// The fallback is cached, so re-renders do not hammer the endpoint
	fetcher.FetchFrame(context.Background(), "conus", "C13", "t1", nil)
	if got := atomic.LoadInt64(&hits); got != 1 {
		t.Errorf("expected 1 upstream hit after fallback caching, got %d", got)
	}
}

func TestFetchFrame_MalformedBodyFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"projection": "mercator"}`) // no bounds
	}))
	defer server.Close()

	fetcher, _ := newTestFetcher(server.URL)

	frame := fetcher.FetchFrame(context.Background(), "conus", "C13", "t1", nil)
	if frame == nil || !frame.IsFallback {
		t.Fatalf("expected fallback for malformed body, got %+v", frame)
	}
}

func TestFetchFrame_TimeoutFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, validGeodataBody)
	}))
	defer server.Close()

	fetcher, _ := newTestFetcher(server.URL)

	opts := DefaultOptions()
	opts.Timeout = 20 * time.Millisecond
	frame := fetcher.FetchFrame(context.Background(), "conus", "C13", "t1", &opts)
	if frame == nil || !frame.IsFallback {
		t.Fatalf("expected fallback on timeout, got %+v", frame)
	}
}

func TestFetchFrame_NoDerivableURL(t *testing.T) {
	store := NewStore(50, DefaultTTL, DefaultSweepInterval)
	provider := urlProviderFunc(func(_, _, _ string) string { return "" })
	fetcher := NewFetcher(store, nil, testRegistry(), provider)

	frame := fetcher.FetchFrame(context.Background(), "conus", "C13", "t1", nil)
	if frame == nil || !frame.IsFallback {
		t.Fatalf("expected fallback when no URL can be derived, got %+v", frame)
	}

	// With fallback disabled the miss surfaces as nil
	opts := DefaultOptions()
	opts.FallbackOnFailure = false
	opts.UseCache = false
	if frame := fetcher.FetchFrame(context.Background(), "conus", "C13", "t2", &opts); frame != nil {
		t.Errorf("expected nil with fallback disabled, got %+v", frame)
	}
}

func TestFetchFrame_UnknownDomain(t *testing.T) {
	store := NewStore(50, DefaultTTL, DefaultSweepInterval)
	provider := urlProviderFunc(func(_, _, _ string) string { return "" })
	fetcher := NewFetcher(store, nil, testRegistry(), provider)

	if frame := fetcher.FetchFrame(context.Background(), "atlantis", "C13", "t1", nil); frame != nil {
		t.Errorf("expected nil for unknown domain, got %+v", frame)
	}
}

func TestFetchFrame_CacheDisabled(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		fmt.Fprint(w, validGeodataBody)
	}))
	defer server.Close()

	fetcher, store := newTestFetcher(server.URL)

	opts := DefaultOptions()
	opts.UseCache = false
	fetcher.FetchFrame(context.Background(), "conus", "C13", "t1", &opts)
	fetcher.FetchFrame(context.Background(), "conus", "C13", "t1", &opts)

	if got := atomic.LoadInt64(&hits); got != 2 {
		t.Errorf("expected 2 upstream hits with caching disabled, got %d", got)
	}
	if store.Size() != 0 {
		t.Errorf("expected nothing cached, got %d entries", store.Size())
	}
}

// TestPrefetch verifies batch partitioning bounds concurrency and that every
// timestamp lands in the result map
func TestPrefetch(t *testing.T) {
	var inflight, maxInflight int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := atomic.AddInt64(&inflight, 1)
		for {
			prev := atomic.LoadInt64(&maxInflight)
			if cur <= prev || atomic.CompareAndSwapInt64(&maxInflight, prev, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt64(&inflight, -1)
		fmt.Fprint(w, validGeodataBody)
	}))
	defer server.Close()

	fetcher, _ := newTestFetcher(server.URL)

	timestamps := []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7"}
	results := fetcher.Prefetch(context.Background(), "conus", "C13", timestamps, &PrefetchOptions{BatchSize: 3})

	if len(results) != 7 {
		t.Fatalf("expected 7 results, got %d", len(results))
	}
	for _, ts := range timestamps {
		if results[ts] == nil {
			t.Errorf("missing result for %s", ts)
		}
	}
	if got := atomic.LoadInt64(&maxInflight); got > 3 {
		t.Errorf("expected at most 3 concurrent fetches, observed %d", got)
	}
}
