// Package covers fetches book cover images from the OpenLibrary covers
// service. Fetches are bounded by a timeout and results are kept in an LRU
// cache; a small worker pool warms the cache for the whole catalog.
package covers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/bookstore-ledger/internal/config"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/panjf2000/ants/v2"
)

// ErrCoverNotFound indicates the service has no cover for the ISBN
var ErrCoverNotFound = errors.New("cover not found")

// Covers larger than this are rejected rather than cached
const maxCoverBytes = 2 << 20

// Fetcher retrieves cover images by ISBN
type Fetcher interface {
	Fetch(ctx context.Context, isbn string) ([]byte, error)
}

// Client fetches and caches cover images
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *lru.Cache[string, []byte]
	pool       *ants.Pool
	timeout    time.Duration
	logger     *slog.Logger
}

var _ Fetcher = (*Client)(nil)

// NewClient creates a cover image client from the covers configuration
func NewClient(logger *slog.Logger, cfg *config.CoversConfig) (*Client, error) {
	cache, err := lru.New[string, []byte](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create cover cache: %w", err)
	}

	pool, err := ants.NewPool(cfg.PrefetchWorkers)
	if err != nil {
		return nil, fmt.Errorf("failed to create cover prefetch pool: %w", err)
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.FetchTimeout},
		cache:      cache,
		pool:       pool,
		timeout:    cfg.FetchTimeout,
		logger:     logger,
	}, nil
}

// Fetch returns the medium-size cover for the given ISBN, from cache when
// possible. Returns ErrCoverNotFound when the service has no image.
func (c *Client) Fetch(ctx context.Context, isbn string) ([]byte, error) {
	if data, ok := c.cache.Get(isbn); ok {
		return data, nil
	}

	url := fmt.Sprintf("%s/b/isbn/%s-M.jpg?default=false", c.baseURL, isbn)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build cover request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cover for %s: %w", isbn, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrCoverNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cover service returned status %d for %s", resp.StatusCode, isbn)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCoverBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read cover for %s: %w", isbn, err)
	}
	if len(data) > maxCoverBytes {
		return nil, fmt.Errorf("cover for %s exceeds %d bytes", isbn, maxCoverBytes)
	}

	c.cache.Add(isbn, data)
	return data, nil
}

// Prefetch warms the cache for the given ISBNs on the worker pool. Misses and
// fetch errors are logged and otherwise ignored.
func (c *Client) Prefetch(isbns []string) {
	for _, isbn := range isbns {
		isbn := isbn
		err := c.pool.Submit(func() {
			ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
			defer cancel()

			if _, err := c.Fetch(ctx, isbn); err != nil && !errors.Is(err, ErrCoverNotFound) {
				c.logger.Warn("Cover prefetch failed", "isbn", isbn, "error", err)
			}
		})
		if err != nil {
			c.logger.Warn("Cover prefetch not scheduled", "isbn", isbn, "error", err)
			return
		}
	}
}

// Close releases the prefetch worker pool
func (c *Client) Close() {
	c.pool.Release()
}
