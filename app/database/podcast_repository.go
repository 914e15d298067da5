package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var _ PodcastRepository = (*SQLitePodcastRepository)(nil)

// SQLitePodcastRepository handles database operations for podcasts
type SQLitePodcastRepository struct {
	db *DB
}

func NewPodcastRepository(db *DB) *SQLitePodcastRepository {
	return &SQLitePodcastRepository{db: db}
}

const podcastColumns = `id, name, feed_url, title, episode_count, result_json,
	last_fetched_at, next_fetch_at, last_error, created_at, updated_at`

// UpsertPodcast registers a subscription or updates its feed URL.
func (r *SQLitePodcastRepository) UpsertPodcast(name, feedURL string) error {
	now := formatTime(time.Now())

	_, err := r.db.Exec(`
		INSERT INTO podcasts (id, name, feed_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			feed_url = excluded.feed_url,
			updated_at = excluded.updated_at
	`, uuid.NewString(), name, feedURL, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert podcast: %w", err)
	}

	return nil
}

// SaveSnapshot stores a successfully parsed result and clears the last error.
func (r *SQLitePodcastRepository) SaveSnapshot(name, title string, episodeCount int, resultJSON []byte, nextFetch time.Time) error {
	now := formatTime(time.Now())

	res, err := r.db.Exec(`
		UPDATE podcasts
		SET title = ?, episode_count = ?, result_json = ?, last_error = '',
		    last_fetched_at = ?, next_fetch_at = ?, updated_at = ?
		WHERE name = ?
	`, title, episodeCount, string(resultJSON), now, formatTime(nextFetch), now, name)
	if err != nil {
		return fmt.Errorf("failed to save podcast snapshot: %w", err)
	}

	return requireRow(res, name)
}

// SaveFailure records a failed refresh. A previously stored snapshot is kept.
func (r *SQLitePodcastRepository) SaveFailure(name, errMsg string, nextFetch time.Time) error {
	now := formatTime(time.Now())

	res, err := r.db.Exec(`
		UPDATE podcasts
		SET last_error = ?, last_fetched_at = ?, next_fetch_at = ?, updated_at = ?
		WHERE name = ?
	`, errMsg, now, formatTime(nextFetch), now, name)
	if err != nil {
		return fmt.Errorf("failed to save podcast failure: %w", err)
	}

	return requireRow(res, name)
}

// GetPodcast returns nil when no podcast with that name is registered.
func (r *SQLitePodcastRepository) GetPodcast(name string) (*Podcast, error) {
	row := r.db.QueryRow(`SELECT `+podcastColumns+` FROM podcasts WHERE name = ?`, name)

	podcast, err := scanPodcast(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get podcast: %w", err)
	}

	return podcast, nil
}

func (r *SQLitePodcastRepository) ListPodcasts() ([]Podcast, error) {
	rows, err := r.db.Query(`SELECT ` + podcastColumns + ` FROM podcasts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list podcasts: %w", err)
	}
	defer rows.Close()

	var podcasts []Podcast
	for rows.Next() {
		podcast, err := scanPodcast(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan podcast row: %w", err)
		}
		podcasts = append(podcasts, *podcast)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate podcast rows: %w", err)
	}

	return podcasts, nil
}

func (r *SQLitePodcastRepository) GetPodcastCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM podcasts").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get podcast count: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPodcast(s scanner) (*Podcast, error) {
	var (
		podcast                Podcast
		resultJSON             sql.NullString
		lastFetched, nextFetch sql.NullString
		createdAt, updatedAt   string
	)

	err := s.Scan(
		&podcast.ID, &podcast.Name, &podcast.FeedURL, &podcast.Title, &podcast.EpisodeCount, &resultJSON,
		&lastFetched, &nextFetch, &podcast.LastError, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if resultJSON.Valid {
		podcast.ResultJSON = []byte(resultJSON.String)
	}
	if podcast.LastFetchedAt, err = parseNullTime(lastFetched); err != nil {
		return nil, err
	}
	if podcast.NextFetchAt, err = parseNullTime(nextFetch); err != nil {
		return nil, err
	}
	if podcast.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if podcast.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &podcast, nil
}

func requireRow(res sql.Result, name string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("podcast '%s' not found", name)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	return t, nil
}

func parseNullTime(value sql.NullString) (*time.Time, error) {
	if !value.Valid || value.String == "" {
		return nil, nil
	}
	t, err := parseTime(value.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
