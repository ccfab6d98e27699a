// Package media resolves storage references into time-limited public URLs
// via the upstream KratoLib media service.
package media

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/KratoLib/promo_service/internal/httputil"
	"github.com/KratoLib/promo_service/pkg/logger"
)

// CacheTTL is how long a resolved URL is reused. Upstream links stay valid
// for an hour; the margin absorbs clock drift and in-flight renders.
const CacheTTL = 45 * time.Minute

const cacheKeyPrefix = "media:url:"

// Stats receives cache outcome notifications. Implementations must be safe
// for concurrent use.
type Stats interface {
	CacheHit()
	CacheMiss()
}

// Resolver turns storage references into fetchable URLs.
type Resolver struct {
	upstream *httputil.Client
	cache    Cache
	stats    Stats
	log      *logger.Logger
}

// NewResolver constructs a resolver. A nil cache disables caching; a nil
// stats sink disables cache accounting.
func NewResolver(upstream *httputil.Client, cache Cache, stats Stats, log *logger.Logger) *Resolver {
	if log == nil {
		log = logger.NewDefault("media")
	}
	return &Resolver{upstream: upstream, cache: cache, stats: stats, log: log}
}

type resolvePayload struct {
	Ref string `json:"ref"`
}

type resolveResult struct {
	URL       string `json:"url"`
	ExpiresAt string `json:"expiresAt"`
}

// Resolve returns a fetchable URL for a storage reference. Absolute http(s)
// references pass through untouched.
func (r *Resolver) Resolve(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("media ref is empty")
	}
	if isAbsolute(ref) {
		return ref, nil
	}

	key := cacheKeyPrefix + ref
	if r.cache != nil {
		cached, ok, err := r.cache.Get(ctx, key)
		if err != nil {
			r.log.WithError(err).WithField("ref", ref).Warn("media cache read failed")
		} else if ok {
			r.recordHit()
			return cached, nil
		}
	}
	r.recordMiss()

	if r.upstream == nil {
		return "", fmt.Errorf("resolve media %s: no upstream configured", ref)
	}
	resp, err := r.upstream.Post(ctx, "/v1/media/resolve", resolvePayload{Ref: ref})
	if err != nil {
		return "", fmt.Errorf("resolve media %s: %w", ref, err)
	}
	var result resolveResult
	if err := httputil.DecodeResponse(resp, &result); err != nil {
		return "", fmt.Errorf("resolve media %s: %w", ref, err)
	}
	if result.URL == "" {
		return "", fmt.Errorf("resolve media %s: upstream returned no url", ref)
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, key, result.URL, CacheTTL); err != nil {
			r.log.WithError(err).WithField("ref", ref).Warn("media cache write failed")
		}
	}
	return result.URL, nil
}

// ResolveAll resolves refs concurrently. Failed refs map to empty strings so
// one broken asset does not sink a whole composition; the first error is
// returned for callers that want to surface it.
func (r *Resolver) ResolveAll(ctx context.Context, refs []string) (map[string]string, error) {
	resolved := make(map[string]string, len(refs))
	seen := make(map[string]bool, len(refs))

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" || seen[ref] {
			continue
		}
		seen[ref] = true

		wg.Add(1)
		go func(ref string) {
			defer wg.Done()
			url, err := r.Resolve(ctx, ref)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				r.log.WithError(err).WithField("ref", ref).Warn("media resolution failed")
				resolved[ref] = ""
				return
			}
			resolved[ref] = url
		}(ref)
	}
	wg.Wait()
	return resolved, firstErr
}

func (r *Resolver) recordHit() {
	if r.stats != nil {
		r.stats.CacheHit()
	}
}

func (r *Resolver) recordMiss() {
	if r.stats != nil {
		r.stats.CacheMiss()
	}
}

func isAbsolute(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
