package tasks

import (
	"context"
	"fmt"

	"github.com/lysyi3m/pod-comb/app/database"
	"github.com/lysyi3m/pod-comb/app/feed"
	"github.com/rs/zerolog/log"
)

type SyncPodcastConfigTask struct {
	Task
	PodcastConfig *feed.Config
	podcastRepo   database.PodcastRepository
}

func NewSyncPodcastConfigTask(podcastConfig *feed.Config, podcastRepo database.PodcastRepository) *SyncPodcastConfigTask {
	return &SyncPodcastConfigTask{
		Task:          NewTask(TaskTypeSyncPodcastConfig, podcastConfig.Name),
		PodcastConfig: podcastConfig,
		podcastRepo:   podcastRepo,
	}
}

func (t *SyncPodcastConfigTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := t.podcastRepo.UpsertPodcast(t.PodcastConfig.Name, t.PodcastConfig.URL); err != nil {
		return fmt.Errorf("failed to sync podcast config to database: %w", err)
	}

	log.Info().
		Str("type", string(t.Type)).
		Str("podcast", t.PodcastName).
		Dur("duration", t.GetDuration()).
		Msg("Task completed")

	return nil
}
