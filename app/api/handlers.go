package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/pod-comb/app/cache"
	"github.com/lysyi3m/pod-comb/app/cfg"
	"github.com/lysyi3m/pod-comb/app/database"
	"github.com/lysyi3m/pod-comb/app/feed"
	"github.com/lysyi3m/pod-comb/app/podcast"
	"github.com/lysyi3m/pod-comb/app/tasks"
	"github.com/rs/zerolog/log"
)

func NewHandler(configCache *feed.ConfigCache, podcastRepo database.PodcastRepository,
	parser ParserInterface, scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		podcastRepo: podcastRepo,
		configCache: configCache,
		parser:      parser,
		scheduler:   scheduler,
	}
}

// SetResultCache enables caching of URL parse results for ttl.
func (h *Handler) SetResultCache(resultCache ResultCache, ttl time.Duration) {
	h.resultCache = resultCache
	h.cacheTTL = ttl
}

// statusFor maps a parse error kind to an HTTP status.
func statusFor(err error) int {
	switch podcast.KindOf(err) {
	case "options":
		return http.StatusBadRequest
	case "required", "parsing":
		return http.StatusUnprocessableEntity
	case "fetching":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) GetPodcast(c *gin.Context) {
	name := c.Param("name")

	if _, err := h.configCache.GetConfig(name); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Podcast configuration not found"})
		return
	}

	stored, err := h.podcastRepo.GetPodcast(name)
	if err != nil {
		log.Error().Str("operation", "get_podcast").Str("podcast", name).Err(err).Msg("Database error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Database error"})
		return
	}

	if stored == nil || !stored.Fetched() {
		response := gin.H{"error": "Podcast has not been fetched yet"}
		if stored != nil && stored.LastError != "" {
			response["last_error"] = stored.LastError
		}
		c.JSON(http.StatusNotFound, response)
		return
	}

	c.Header("X-Podcast-Name", name)
	c.Header("X-Episode-Count", strconv.Itoa(stored.EpisodeCount))
	c.Header("X-Last-Updated", stored.UpdatedAt.In(time.Local).Format(time.RFC3339))

	c.Data(http.StatusOK, "application/json; charset=utf-8", stored.ResultJSON)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   cfg.GetVersion(),
	}

	if podcastCount, err := h.podcastRepo.GetPodcastCount(); err == nil {
		health["podcasts"] = podcastCount
	}

	health["loaded_configurations"] = h.configCache.GetConfigCount()

	if h.resultCache != nil {
		health["cache"] = h.resultCache.Health(c.Request.Context())
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) APIParse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if (req.URL == "") == (req.Feed == "") {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Exactly one of url or feed is required"})
		return
	}

	if req.URL != "" {
		h.parseURL(c, req)
		return
	}

	result, err := h.parser.FromFeed([]byte(req.Feed), req.Options)
	if err != nil {
		respondParseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) parseURL(c *gin.Context, req ParseRequest) {
	ctx := c.Request.Context()

	var key string
	if h.resultCache != nil {
		key = cache.ParseKey(req.URL, req.Options)
		data, ok, err := h.resultCache.GetResult(ctx, key)
		if err != nil {
			log.Warn().Str("url", req.URL).Err(err).Msg("Cache lookup failed")
		} else if ok {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", data)
			return
		}
	}

	result, err := h.parser.FromURL(ctx, req.URL, req.Options)
	if err != nil {
		respondParseError(c, err)
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		log.Error().Str("url", req.URL).Err(err).Msg("Failed to encode parse result")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to encode parse result"})
		return
	}

	if h.resultCache != nil {
		if err := h.resultCache.SetResult(ctx, key, data, h.cacheTTL); err != nil {
			log.Warn().Str("url", req.URL).Err(err).Msg("Cache store failed")
		}
		c.Header("X-Cache", "MISS")
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func respondParseError(c *gin.Context, err error) {
	kind := podcast.KindOf(err)
	log.Debug().Str("kind", kind).Err(err).Msg("Parse request failed")
	c.JSON(statusFor(err), ErrorResponse{Error: err.Error(), Kind: kind})
}

func (h *Handler) APIListPodcasts(c *gin.Context) {
	configs := h.configCache.GetConfigs()

	stored := make(map[string]database.Podcast)
	if podcasts, err := h.podcastRepo.ListPodcasts(); err == nil {
		for _, p := range podcasts {
			stored[p.Name] = p
		}
	} else {
		log.Error().Str("operation", "list_podcasts").Err(err).Msg("Database error")
	}

	podcasts := make([]gin.H, 0, len(configs))
	for _, podcastConfig := range configs {
		info := gin.H{
			"name":             podcastConfig.Name,
			"url":              podcastConfig.URL,
			"enabled":          podcastConfig.Settings.Enabled,
			"refresh_interval": (time.Duration(podcastConfig.Settings.RefreshInterval) * time.Second).String(),
			"title":            "",
		}

		if p, ok := stored[podcastConfig.Name]; ok {
			info["title"] = p.Title
			info["episode_count"] = p.EpisodeCount
			info["last_fetched_at"] = p.LastFetchedAt
			info["next_fetch_at"] = p.NextFetchAt
			info["last_error"] = p.LastError
		}

		podcasts = append(podcasts, info)
	}

	c.JSON(http.StatusOK, gin.H{
		"podcasts": podcasts,
		"total":    len(podcasts),
	})
}

func (h *Handler) APIRefreshPodcast(c *gin.Context) {
	name := c.Param("name")

	if _, err := h.configCache.LoadConfig(name); err != nil {
		log.Error().Str("podcast", name).Err(err).Msg("Error reloading configuration")
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Podcast configuration not found or invalid"})
		return
	}

	if err := h.scheduler.RefreshPodcast(name); err != nil {
		log.Error().Str("podcast", name).Err(err).Msg("Error enqueueing refresh task")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Failed to enqueue refresh task"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "Configuration reloaded and refresh enqueued",
		"podcast": name,
	})
}
