// Package platform implements the per-platform content adapters: identifier
// validation and resolution, content fetching, and normalization into the
// common content record.
package platform

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"

	"golang.org/x/time/rate"

	"github.com/jonesrussell/gosocial/internal/models"
)

// Adapter is the capability contract for one social media platform.
//
// FetchContent and BloggerName are best-effort: network or parse failures
// degrade to an empty result or a placeholder name instead of an error,
// because scraping targets are inherently unreliable and partial results are
// preferred to total failure.
type Adapter interface {
	// Platform returns the stable registry key, e.g. "bilibili".
	Platform() string

	// ValidateIdentifier is a pure syntactic check. No network I/O.
	ValidateIdentifier(identifier string) bool

	// ResolveIdentifier converts an accepted identifier into the canonical
	// key the fetcher needs (numeric ID or profile URL). It re-derives the
	// validation and returns models.ErrInvalidIdentifier on mismatch.
	ResolveIdentifier(identifier string) (string, error)

	// FetchContent retrieves and normalizes up to limit records for a
	// resolved key. Per-item parse failures skip the item; total fetch
	// failure returns an empty slice.
	FetchContent(ctx context.Context, key string, limit int) []models.Content

	// BloggerName returns the display name for a resolved key, or a
	// platform-specific placeholder. It never fails.
	BloggerName(ctx context.Context, key string) string
}

// Registry maps platform keys to adapters. Built once at startup, read-only
// afterwards.
type Registry struct {
	adapters map[string]Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	m := make(map[string]Adapter, len(adapters))
	for _, a := range adapters {
		m[a.Platform()] = a
	}
	return &Registry{adapters: m}
}

// Get returns the adapter for a platform key.
func (r *Registry) Get(platform string) (Adapter, bool) {
	a, ok := r.adapters[platform]
	return a, ok
}

// Keys returns the registered platform keys, sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.adapters))
	for k := range r.adapters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// fetchURL performs a rate-limited GET and returns the response body.
// Non-2xx responses are errors.
func fetchURL(ctx context.Context, client *http.Client, limiter *rate.Limiter, url string, headers map[string]string) ([]byte, error) {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}
