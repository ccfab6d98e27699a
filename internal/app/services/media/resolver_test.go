package media

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/KratoLib/promo_service/internal/httputil"
)

type countingStats struct {
	hits   int64
	misses int64
}

func (s *countingStats) CacheHit()  { atomic.AddInt64(&s.hits, 1) }
func (s *countingStats) CacheMiss() { atomic.AddInt64(&s.misses, 1) }

func newTestResolver(t *testing.T, handler http.HandlerFunc) (*Resolver, *countingStats, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	stats := &countingStats{}
	upstream := httputil.NewClient(httputil.ClientConfig{BaseURL: server.URL})
	return NewResolver(upstream, NewMemoryCache(), stats, nil), stats, server
}

func resolveHandler(t *testing.T, calls *int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(calls, 1)
		if r.URL.Path != "/v1/media/resolve" {
			t.Errorf("path = %s, want /v1/media/resolve", r.URL.Path)
		}
		var payload struct {
			Ref string `json:"ref"`
		}
		json.NewDecoder(r.Body).Decode(&payload)
		json.NewEncoder(w).Encode(map[string]string{
			"url": "https://cdn.example.com/" + payload.Ref + "?sig=abc",
		})
	}
}

func TestResolver_Resolve(t *testing.T) {
	var calls int64
	resolver, stats, _ := newTestResolver(t, resolveHandler(t, &calls))

	url, err := resolver.Resolve(context.Background(), "covers/rel-1.jpg")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if url != "https://cdn.example.com/covers/rel-1.jpg?sig=abc" {
		t.Errorf("unexpected url %s", url)
	}
	if stats.misses != 1 {
		t.Errorf("misses = %d, want 1", stats.misses)
	}
}

func TestResolver_CachesResolvedURL(t *testing.T) {
	var calls int64
	resolver, stats, _ := newTestResolver(t, resolveHandler(t, &calls))

	ctx := context.Background()
	first, err := resolver.Resolve(ctx, "covers/rel-1.jpg")
	if err != nil {
		t.Fatalf("first Resolve() error = %v", err)
	}
	second, err := resolver.Resolve(ctx, "covers/rel-1.jpg")
	if err != nil {
		t.Fatalf("second Resolve() error = %v", err)
	}

	if first != second {
		t.Errorf("cached url %s differs from first %s", second, first)
	}
	if calls != 1 {
		t.Errorf("upstream calls = %d, want 1", calls)
	}
	if stats.hits != 1 || stats.misses != 1 {
		t.Errorf("hits/misses = %d/%d, want 1/1", stats.hits, stats.misses)
	}
}

func TestResolver_AbsoluteURLPassesThrough(t *testing.T) {
	var calls int64
	resolver, _, _ := newTestResolver(t, resolveHandler(t, &calls))

	url, err := resolver.Resolve(context.Background(), "https://example.com/direct.png")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if url != "https://example.com/direct.png" {
		t.Errorf("url = %s, want pass-through", url)
	}
	if calls != 0 {
		t.Errorf("upstream calls = %d, want 0", calls)
	}
}

func TestResolver_ResolveAll(t *testing.T) {
	var calls int64
	resolver, _, _ := newTestResolver(t, resolveHandler(t, &calls))

	refs := []string{"covers/a.jpg", "backgrounds/b.jpg", "covers/a.jpg", ""}
	resolved, err := resolver.ResolveAll(context.Background(), refs)
	if err != nil {
		t.Fatalf("ResolveAll() error = %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("resolved %d refs, want 2", len(resolved))
	}
	if calls != 2 {
		t.Errorf("upstream calls = %d, want 2 (duplicates deduped)", calls)
	}
	if resolved["covers/a.jpg"] == "" || resolved["backgrounds/b.jpg"] == "" {
		t.Errorf("missing resolutions: %v", resolved)
	}
}

func TestResolver_ResolveAllPartialFailure(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Ref string `json:"ref"`
		}
		json.NewDecoder(r.Body).Decode(&payload)
		if payload.Ref == "covers/broken.jpg" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"url": "https://cdn.example.com/" + payload.Ref})
	}
	resolver, _, _ := newTestResolver(t, handler)

	resolved, err := resolver.ResolveAll(context.Background(), []string{"covers/ok.jpg", "covers/broken.jpg"})
	if err == nil {
		t.Fatal("expected an error for the broken ref")
	}
	if resolved["covers/ok.jpg"] == "" {
		t.Error("healthy ref should still resolve")
	}
	if resolved["covers/broken.jpg"] != "" {
		t.Errorf("broken ref should map to empty string, got %s", resolved["covers/broken.jpg"])
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	cache := NewMemoryCache()
	now := time.Now()
	cache.now = func() time.Time { return now }

	ctx := context.Background()
	if err := cache.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if _, ok, _ := cache.Get(ctx, "k"); !ok {
		t.Fatal("value should be cached")
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := cache.Get(ctx, "k"); ok {
		t.Fatal("value should have expired")
	}
}
