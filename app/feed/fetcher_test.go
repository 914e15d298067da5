package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lysyi3m/pod-comb/app/podcast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcherRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		assert.Contains(t, r.Header.Get("Accept"), "application/rss+xml")
		w.Write([]byte("<rss/>"))
	}))
	defer server.Close()

	data, err := NewFetcher("test-agent", time.Second, 0).Run(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "<rss/>", string(data))
}

func TestFetcherRetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("<rss/>"))
	}))
	defer server.Close()

	data, err := NewFetcher("test-agent", 5*time.Second, 2).Run(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "<rss/>", string(data))
	assert.Equal(t, 2, attempts)
}

func TestFetcherErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	fetcher := NewFetcher("test-agent", time.Second, 0)

	_, err := fetcher.Run(context.Background(), server.URL)
	var fetchErr *podcast.FetchingError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusForbidden, fetchErr.StatusCode)
	assert.Equal(t, server.URL, fetchErr.URL)

	_, err = fetcher.Run(context.Background(), "http://127.0.0.1:1/unreachable")
	assert.ErrorIs(t, err, podcast.ErrFetching)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = fetcher.Run(ctx, server.URL)
	assert.ErrorIs(t, err, podcast.ErrFetching)
}
