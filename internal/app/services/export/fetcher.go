package export

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"time"

	// Decoders for the formats cover art and backdrops arrive in.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// ImageFetcher retrieves and decodes a remote image.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (image.Image, error)
}

// HTTPFetcher fetches images over HTTP with a bounded body size.
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPFetcher constructs a fetcher with sane limits for creative assets.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		client:   &http.Client{Timeout: 20 * time.Second},
		maxBytes: 32 << 20,
	}
}

// Fetch downloads and decodes the image at url.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: status %d for %s", resp.StatusCode, url)
	}

	img, _, err := image.Decode(http.MaxBytesReader(nil, resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", url, err)
	}
	return img, nil
}
