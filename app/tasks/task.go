package tasks

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type TaskType string

const (
	TaskTypeRefreshPodcast    TaskType = "refresh_podcast"
	TaskTypeSyncPodcastConfig TaskType = "sync_podcast_config"
)

const (
	DefaultMaxRetries = 3
	MaxRetryDelay     = 30 * time.Second
)

type TaskInterface interface {
	Execute(ctx context.Context) error
	GetID() string
	GetType() TaskType
	GetPodcastName() string
	GetRetryCount() int
	GetMaxRetries() int
	IncrementRetryCount()
	CanRetry() bool
	Start()
	GetDuration() time.Duration
}

type Task struct {
	ID          string
	Type        TaskType
	PodcastName string
	RetryCount  int
	MaxRetries  int
	StartedAt   *time.Time
}

func (t *Task) GetID() string {
	return t.ID
}

func (t *Task) GetType() TaskType {
	return t.Type
}

func (t *Task) GetPodcastName() string {
	return t.PodcastName
}

func (t *Task) GetRetryCount() int {
	return t.RetryCount
}

func (t *Task) GetMaxRetries() int {
	return t.MaxRetries
}

func (t *Task) IncrementRetryCount() {
	t.RetryCount++
}

func (t *Task) CanRetry() bool {
	return t.RetryCount < t.MaxRetries
}

func (t *Task) Start() {
	now := time.Now()
	t.StartedAt = &now
}

func (t *Task) GetDuration() time.Duration {
	if t.StartedAt == nil {
		return 0
	}
	return time.Since(*t.StartedAt)
}

func NewTask(taskType TaskType, podcastName string) Task {
	return Task{
		ID:          uuid.NewString(),
		Type:        taskType,
		PodcastName: podcastName,
		RetryCount:  0,
		MaxRetries:  DefaultMaxRetries,
	}
}

// RetryDelay is the backoff before the given retry attempt: 1s, 2s, 4s, ... capped at MaxRetryDelay.
func RetryDelay(retryCount int) time.Duration {
	if retryCount < 1 {
		retryCount = 1
	}
	if retryCount > 6 {
		return MaxRetryDelay
	}
	return min(time.Duration(1<<uint(retryCount-1))*time.Second, MaxRetryDelay)
}
