package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lysyi3m/pod-comb/app/database"
	"github.com/lysyi3m/pod-comb/app/feed"
	"github.com/lysyi3m/pod-comb/app/podcast"
	"github.com/rs/zerolog/log"
)

type RefreshPodcastTask struct {
	Task
	PodcastConfig *feed.Config
	parser        PodcastParser
	podcastRepo   database.PodcastRepository
}

func NewRefreshPodcastTask(podcastConfig *feed.Config, parser PodcastParser, podcastRepo database.PodcastRepository) *RefreshPodcastTask {
	return &RefreshPodcastTask{
		Task:          NewTask(TaskTypeRefreshPodcast, podcastConfig.Name),
		PodcastConfig: podcastConfig,
		parser:        parser,
		podcastRepo:   podcastRepo,
	}
}

// Execute fetches, parses and stores the podcast. Feeds rejected by the parser
// are recorded as the podcast's last error and are not retried; fetch and
// storage failures are returned for the scheduler to retry.
func (t *RefreshPodcastTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.PodcastConfig.Settings.Enabled {
		log.Debug().Str("podcast", t.PodcastName).Msg("Podcast disabled, skipping")
		return nil
	}

	settings := t.PodcastConfig.Settings
	nextFetch := time.Now().UTC().Add(time.Duration(settings.RefreshInterval) * time.Second)

	fetchCtx := ctx
	if settings.Timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, time.Duration(settings.Timeout)*time.Second)
		defer cancel()
	}

	result, err := t.parser.FromURL(fetchCtx, t.PodcastConfig.URL, t.PodcastConfig.Options)
	if err != nil {
		if saveErr := t.podcastRepo.SaveFailure(t.PodcastName, err.Error(), nextFetch); saveErr != nil {
			return fmt.Errorf("failed to record refresh failure: %w", saveErr)
		}

		if errors.Is(err, podcast.ErrFetching) {
			return err
		}

		log.Warn().
			Str("type", string(t.Type)).
			Str("podcast", t.PodcastName).
			Str("kind", podcast.KindOf(err)).
			Err(err).
			Msg("Podcast feed rejected")
		return nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode parsed podcast: %w", err)
	}

	title, _ := result.Meta["title"].(string)
	if err := t.podcastRepo.SaveSnapshot(t.PodcastName, title, len(result.Episodes), data, nextFetch); err != nil {
		return fmt.Errorf("failed to store parsed podcast: %w", err)
	}

	log.Info().
		Str("type", string(t.Type)).
		Str("podcast", t.PodcastName).
		Dur("duration", t.GetDuration()).
		Int("episodes", len(result.Episodes)).
		Time("next_fetch_at", nextFetch).
		Msg("Task completed")

	return nil
}
