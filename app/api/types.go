package api

import (
	"context"
	"time"

	"github.com/lysyi3m/pod-comb/app/cache"
	"github.com/lysyi3m/pod-comb/app/database"
	"github.com/lysyi3m/pod-comb/app/feed"
	"github.com/lysyi3m/pod-comb/app/podcast"
	"github.com/lysyi3m/pod-comb/app/tasks"
)

type ParserInterface interface {
	FromFeed(data []byte, opts *podcast.Options) (*podcast.Result, error)
	FromURL(ctx context.Context, url string, opts *podcast.Options) (*podcast.Result, error)
}

var _ ParserInterface = (*feed.Parser)(nil)

// ResultCache stores serialized URL parse results.
type ResultCache interface {
	GetResult(ctx context.Context, key string) ([]byte, bool, error)
	SetResult(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Health(ctx context.Context) map[string]any
}

var _ ResultCache = (*cache.Cache)(nil)

type Handler struct {
	podcastRepo database.PodcastRepository
	configCache *feed.ConfigCache
	parser      ParserInterface
	scheduler   tasks.TaskSchedulerInterface
	resultCache ResultCache
	cacheTTL    time.Duration
}

// ParseRequest is the body of POST /api/parse. Exactly one of URL and Feed is set.
type ParseRequest struct {
	URL     string           `json:"url" binding:"omitempty,url"`
	Feed    string           `json:"feed"`
	Options *podcast.Options `json:"options"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
