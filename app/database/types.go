package database

import (
	"time"
)

type Podcast struct {
	ID            string // Database UUID
	Name          string // Subscription name derived from filename
	FeedURL       string
	Title         string // Channel title from the last successful parse
	EpisodeCount  int
	ResultJSON    []byte // Last parsed result, nil until the first successful refresh
	LastFetchedAt *time.Time
	NextFetchAt   *time.Time
	LastError     string // Cleared by a successful refresh
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Fetched reports whether a parsed snapshot is stored.
func (p *Podcast) Fetched() bool {
	return len(p.ResultJSON) > 0
}
