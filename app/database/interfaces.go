package database

import (
	"time"
)

type PodcastRepository interface {
	GetPodcast(name string) (*Podcast, error)
	ListPodcasts() ([]Podcast, error)
	GetPodcastCount() (int, error)

	UpsertPodcast(name, feedURL string) error
	SaveSnapshot(name, title string, episodeCount int, resultJSON []byte, nextFetch time.Time) error
	SaveFailure(name, errMsg string, nextFetch time.Time) error
}
