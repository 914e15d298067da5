package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lysyi3m/pod-comb/app/database"
	"github.com/lysyi3m/pod-comb/app/podcast"
)

// MockPodcastRepository is an in-memory PodcastRepository.
type MockPodcastRepository struct {
	mu        sync.Mutex
	podcasts  map[string]*database.Podcast
	upserts   []string
	upsertErr error
}

func NewMockPodcastRepository() *MockPodcastRepository {
	return &MockPodcastRepository{podcasts: make(map[string]*database.Podcast)}
}

func (m *MockPodcastRepository) GetPodcast(name string) (*database.Podcast, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.podcasts[name]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (m *MockPodcastRepository) ListPodcasts() ([]database.Podcast, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	podcasts := make([]database.Podcast, 0, len(m.podcasts))
	for _, p := range m.podcasts {
		podcasts = append(podcasts, *p)
	}
	return podcasts, nil
}

func (m *MockPodcastRepository) GetPodcastCount() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.podcasts), nil
}

func (m *MockPodcastRepository) UpsertPodcast(name, feedURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts = append(m.upserts, name)
	if p, ok := m.podcasts[name]; ok {
		p.FeedURL = feedURL
		return nil
	}
	m.podcasts[name] = &database.Podcast{ID: "id-" + name, Name: name, FeedURL: feedURL}
	return nil
}

func (m *MockPodcastRepository) SaveSnapshot(name, title string, episodeCount int, resultJSON []byte, nextFetch time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.podcasts[name]
	if !ok {
		return fmt.Errorf("podcast '%s' not found", name)
	}
	p.Title = title
	p.EpisodeCount = episodeCount
	p.ResultJSON = resultJSON
	p.LastError = ""
	p.NextFetchAt = &nextFetch
	return nil
}

func (m *MockPodcastRepository) SaveFailure(name, errMsg string, nextFetch time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.podcasts[name]
	if !ok {
		return fmt.Errorf("podcast '%s' not found", name)
	}
	p.LastError = errMsg
	p.NextFetchAt = &nextFetch
	return nil
}

// MockParser returns queued results in order, repeating the last one.
type MockParser struct {
	mu      sync.Mutex
	results []*podcast.Result
	errs    []error
	calls   int
}

func (m *MockParser) FromURL(ctx context.Context, url string, opts *podcast.Options) (*podcast.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := min(m.calls, len(m.errs)-1)
	m.calls++
	return m.results[i], m.errs[i]
}

func (m *MockParser) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func sampleResult() *podcast.Result {
	return &podcast.Result{
		Meta: podcast.Record{"title": "Test Podcast"},
		Episodes: []podcast.Record{
			{"title": "Episode 2"},
			{"title": "Episode 1"},
		},
	}
}
