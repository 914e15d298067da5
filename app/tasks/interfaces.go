package tasks

import (
	"context"

	"github.com/lysyi3m/pod-comb/app/podcast"
)

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application and the API to manage background podcast refreshes.
//
//	scheduler := NewScheduler(configCache, podcastRepo, parser, interval, workerCount)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewRefreshPodcastTask(...))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
	RefreshPodcast(name string) error
}

// PodcastParser fetches and parses a podcast feed.
type PodcastParser interface {
	FromURL(ctx context.Context, url string, opts *podcast.Options) (*podcast.Result, error)
}
