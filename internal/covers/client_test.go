package covers

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bookstore-ledger/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	client, err := NewClient(logger, &config.CoversConfig{
		BaseURL:         baseURL,
		FetchTimeout:    2 * time.Second,
		CacheSize:       16,
		PrefetchWorkers: 2,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return client
}

func TestClient_Fetch(t *testing.T) {
	ctx := context.Background()

	t.Run("success and cache hit", func(t *testing.T) {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			assert.Equal(t, "/b/isbn/111-M.jpg", r.URL.Path)
			assert.Equal(t, "false", r.URL.Query().Get("default"))
			w.Write([]byte("jpeg-bytes"))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		data, err := client.Fetch(ctx, "111")
		require.NoError(t, err)
		assert.Equal(t, []byte("jpeg-bytes"), data)

		// Second call must be served from the cache
		data, err = client.Fetch(ctx, "111")
		require.NoError(t, err)
		assert.Equal(t, []byte("jpeg-bytes"), data)
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("missing cover", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		data, err := client.Fetch(ctx, "999")
		assert.ErrorIs(t, err, ErrCoverNotFound)
		assert.Nil(t, data)
	})

	t.Run("unexpected status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		_, err := client.Fetch(ctx, "111")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrCoverNotFound)
	})

	t.Run("oversized cover is rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(make([]byte, maxCoverBytes+1))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		_, err := client.Fetch(ctx, "111")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds")

		// Oversized responses must not be cached either
		_, ok := client.cache.Get("111")
		assert.False(t, ok)
	})
}

func TestClient_Prefetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jpeg-bytes"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	client.Prefetch([]string{"111", "222"})

	// The pool fetches asynchronously; poll until both entries land
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		_, ok1 := client.cache.Get("111")
		_, ok2 := client.cache.Get("222")
		if ok1 && ok2 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("prefetch did not warm the cache in time")
}
