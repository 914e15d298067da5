package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/pod-comb/app/api"
	"github.com/lysyi3m/pod-comb/app/cache"
	"github.com/lysyi3m/pod-comb/app/cfg"
	"github.com/lysyi3m/pod-comb/app/database"
	"github.com/lysyi3m/pod-comb/app/feed"
	"github.com/lysyi3m/pod-comb/app/logger"
	"github.com/lysyi3m/pod-comb/app/podcast"
	"github.com/lysyi3m/pod-comb/app/tasks"
	"github.com/rs/zerolog/log"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if appCfg == nil {
		return
	}

	logger.Init(logger.Config{Level: appCfg.LogLevel, Pretty: appCfg.LogPretty})

	parser := feed.NewParser(feed.NewFetcher(appCfg.UserAgent, appCfg.FetchTimeoutDuration(), appCfg.FetchRetries))

	if appCfg.OneShot() {
		if err := runOnce(appCfg, parser, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "%s error: %v\n", podcast.KindOf(err), err)
			os.Exit(1)
		}
		return
	}

	if err := serve(appCfg, parser); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

// runOnce parses a single feed from a URL or a file and prints the result.
func runOnce(appCfg *cfg.Cfg, parser *feed.Parser, w io.Writer) error {
	opts, err := loadOptions(appCfg.OptionsFile)
	if err != nil {
		return err
	}

	var result *podcast.Result
	if appCfg.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), appCfg.FetchTimeoutDuration())
		defer cancel()
		result, err = parser.FromURL(ctx, appCfg.URL, opts)
	} else {
		var data []byte
		data, err = os.ReadFile(appCfg.File)
		if err != nil {
			return fmt.Errorf("failed to read feed file: %w", err)
		}
		result, err = parser.FromFeed(data, opts)
	}
	if err != nil {
		return err
	}

	if appCfg.Format == "table" {
		feed.RenderEpisodes(w, result)
		return nil
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func loadOptions(path string) (*podcast.Options, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &podcast.OptionsError{Reason: "cannot read options file", Err: err}
	}
	return podcast.ParseOptions(data)
}

func serve(appCfg *cfg.Cfg, parser *feed.Parser) error {
	log.Info().Str("version", appCfg.Version).Msg("Starting pod-comb server")

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		return err
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Str("path", appCfg.DBPath).Msg("Database ready")

	configCache := feed.NewConfigCache(appCfg.FeedsDir)
	if err := configCache.Run(); err != nil {
		return fmt.Errorf("failed to load podcast configurations: %w", err)
	}
	log.Info().Int("count", configCache.GetConfigCount()).Str("dir", appCfg.FeedsDir).Msg("Podcast configurations loaded")

	podcastRepo := database.NewPodcastRepository(db)

	scheduler := tasks.NewScheduler(configCache, podcastRepo, parser,
		time.Duration(appCfg.SchedulerInterval)*time.Second, appCfg.WorkerCount)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(configCache, podcastRepo, parser, scheduler)
	if appCfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		resultCache, err := cache.NewCache(ctx, appCfg.RedisAddr)
		cancel()
		if err != nil {
			log.Warn().Err(err).Msg("Parse result cache disabled")
		} else {
			defer resultCache.Close()
			handler.SetResultCache(resultCache, appCfg.ParseCacheTTLDuration())
		}
	}

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      api.NewServer(handler, appCfg.APIAccessKey),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info().Str("port", appCfg.Port).Str("base_url", appCfg.BaseUrl).Int("workers", appCfg.WorkerCount).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received signal")
	case runErr = <-serverErrChan:
	}

	log.Info().Msg("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	return runErr
}
