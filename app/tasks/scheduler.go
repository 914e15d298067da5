package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lysyi3m/pod-comb/app/database"
	"github.com/lysyi3m/pod-comb/app/feed"
	"github.com/lysyi3m/pod-comb/app/metrics"
	"github.com/rs/zerolog/log"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

const taskQueueSize = 300

type Scheduler struct {
	podcastRepo database.PodcastRepository
	configCache *feed.ConfigCache
	parser      PodcastParser
	interval    time.Duration
	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface
}

func NewScheduler(configCache *feed.ConfigCache, podcastRepo database.PodcastRepository,
	parser PodcastParser, interval time.Duration, workerCount int) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		podcastRepo: podcastRepo,
		configCache: configCache,
		parser:      parser,
		interval:    interval,
		workerCount: max(workerCount, 1),
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, taskQueueSize),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueStartupTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueTasks()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
	}

	select {
	case s.taskQueue <- task:
		return nil
	default:
		return fmt.Errorf("task queue is full")
	}
}

// RefreshPodcast enqueues an immediate sync and refresh of a subscribed podcast.
func (s *Scheduler) RefreshPodcast(name string) error {
	podcastConfig, err := s.configCache.GetConfig(name)
	if err != nil {
		return err
	}
	return s.EnqueueTask(s.syncThenRefresh(podcastConfig))
}

func (s *Scheduler) syncThenRefresh(podcastConfig *feed.Config) TaskInterface {
	return &chainedTask{
		TaskInterface: NewSyncPodcastConfigTask(podcastConfig, s.podcastRepo),
		next:          NewRefreshPodcastTask(podcastConfig, s.parser, s.podcastRepo),
		enqueue:       s.EnqueueTask,
	}
}

// enqueueStartupTasks registers every subscription and refreshes the enabled
// ones. A worker pool is not ordered, so each refresh is chained after its sync.
func (s *Scheduler) enqueueStartupTasks() {
	podcastConfigs := s.configCache.GetConfigs()
	if len(podcastConfigs) == 0 {
		log.Debug().Msg("No podcast configurations found")
		return
	}

	log.Debug().Int("count", len(podcastConfigs)).Msg("Processing podcast configurations")

	for _, podcastConfig := range podcastConfigs {
		var task TaskInterface
		if podcastConfig.Settings.Enabled {
			task = s.syncThenRefresh(podcastConfig)
		} else {
			log.Debug().Str("podcast", podcastConfig.Name).Msg("Podcast disabled, skipping RefreshPodcastTask")
			task = NewSyncPodcastConfigTask(podcastConfig, s.podcastRepo)
		}

		if err := s.EnqueueTask(task); err != nil {
			log.Warn().Str("podcast", podcastConfig.Name).Err(err).Msg("Failed to enqueue SyncPodcastConfigTask")
		}
	}
}

func (s *Scheduler) enqueueTasks() {
	podcastConfigs := s.configCache.GetEnabledConfigs()
	if len(podcastConfigs) == 0 {
		log.Debug().Msg("No enabled podcast configurations found")
		return
	}

	now := time.Now().UTC()
	for _, podcastConfig := range podcastConfigs {
		stored, err := s.podcastRepo.GetPodcast(podcastConfig.Name)
		if err != nil {
			log.Warn().Str("podcast", podcastConfig.Name).Err(err).Msg("Failed to get podcast from database, skipping")
			continue
		}
		if stored == nil {
			log.Warn().Str("podcast", podcastConfig.Name).Msg("Podcast not found in database, skipping")
			continue
		}

		if stored.NextFetchAt != nil && stored.NextFetchAt.After(now) {
			log.Debug().Str("podcast", podcastConfig.Name).Time("next_fetch_at", *stored.NextFetchAt).Msg("Podcast not due for refresh yet")
			continue
		}

		if err := s.EnqueueTask(NewRefreshPodcastTask(podcastConfig, s.parser, s.podcastRepo)); err != nil {
			log.Warn().Str("podcast", podcastConfig.Name).Err(err).Msg("Failed to enqueue RefreshPodcastTask")
		}
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task := <-s.taskQueue:
			s.executeTask(id, task)
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	metrics.IncActiveWorkers()
	defer metrics.DecActiveWorkers()

	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)
	if err == nil {
		metrics.ObserveTask(string(task.GetType()), "success")
		return
	}

	log.Error().
		Int("worker_id", workerID).
		Str("type", string(task.GetType())).
		Str("id", task.GetID()).
		Int("retry_count", task.GetRetryCount()).
		Err(err).
		Msg("Worker task execution failed")

	if !task.CanRetry() {
		metrics.ObserveTask(string(task.GetType()), "failure")
		log.Error().
			Str("type", string(task.GetType())).
			Str("id", task.GetID()).
			Int("retry_count", task.GetRetryCount()).
			Int("max_retries", task.GetMaxRetries()).
			AnErr("last_error", err).
			Msg("Task failed after maximum retries")
		return
	}

	metrics.ObserveTask(string(task.GetType()), "retry")
	task.IncrementRetryCount()
	retryDelay := RetryDelay(task.GetRetryCount())

	log.Warn().
		Str("type", string(task.GetType())).
		Str("podcast", task.GetPodcastName()).
		Int("retry_count", task.GetRetryCount()).
		Int("max_retries", task.GetMaxRetries()).
		Dur("delay", retryDelay).
		Msg("Task retry scheduled")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		timer := time.NewTimer(retryDelay)
		defer timer.Stop()

		select {
		case <-s.ctx.Done():
			log.Debug().Str("type", string(task.GetType())).Str("id", task.GetID()).Msg("Scheduler stopped, skipping task retry")
		case <-timer.C:
			if retryErr := s.EnqueueTask(task); retryErr != nil {
				log.Error().Str("type", string(task.GetType())).Str("id", task.GetID()).Err(retryErr).Msg("Failed to re-enqueue task for retry")
			}
		}
	}()
}

// chainedTask enqueues next once the wrapped task succeeds.
type chainedTask struct {
	TaskInterface
	next    TaskInterface
	enqueue func(TaskInterface) error
}

func (c *chainedTask) Execute(ctx context.Context) error {
	if err := c.TaskInterface.Execute(ctx); err != nil {
		return err
	}
	if err := c.enqueue(c.next); err != nil {
		log.Warn().Str("podcast", c.next.GetPodcastName()).Err(err).Msg("Failed to enqueue follow-up task")
	}
	return nil
}
