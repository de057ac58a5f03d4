package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/avoronov/cal-comb/app/calendar"
	"github.com/avoronov/cal-comb/app/cfg"
	"github.com/avoronov/cal-comb/app/database"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	calRepo     database.CalendarRepository
	eventRepo   database.EventRepository
	configCache *calendar.ConfigCache
	httpClient  *http.Client
	tokenizer   *calendar.Tokenizer
	parser      *calendar.Parser
	normalizer  *calendar.Normalizer
	eventCache  *calendar.EventCache
	userAgent   string
	interval    time.Duration
	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface
}

func NewScheduler(configCache *calendar.ConfigCache, calRepo database.CalendarRepository,
	eventRepo database.EventRepository, httpClient *http.Client, tokenizer *calendar.Tokenizer,
	parser *calendar.Parser, normalizer *calendar.Normalizer,
	eventCache *calendar.EventCache) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		calRepo:     calRepo,
		eventRepo:   eventRepo,
		configCache: configCache,
		httpClient:  httpClient,
		tokenizer:   tokenizer,
		parser:      parser,
		normalizer:  normalizer,
		eventCache:  eventCache,
		userAgent:   cfg.UserAgent,
		interval:    time.Duration(cfg.SchedulerInterval) * time.Second,
		workerCount: cfg.WorkerCount,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 300),
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
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) enqueueStartupTasks() {
	configs := s.configCache.GetConfigs()
	if len(configs) == 0 {
		slog.Debug("No calendar configurations found")
		return
	}

	slog.Debug("Processing calendar configurations", "count", len(configs))

	for _, config := range configs {
		syncTask := NewSyncCalendarConfigTask(config.Name, config, s.calRepo)
		if err := s.EnqueueTask(syncTask); err != nil {
			slog.Warn("Failed to enqueue SyncCalendarConfigTask", "calendar", config.Name, "error", err)
			continue
		}

		if !config.Settings.Enabled {
			slog.Debug("Calendar disabled, skipping SyncCalendarTask", "calendar", config.Name)
			continue
		}

		processTask := NewSyncCalendarTask(config.Name, config, s.httpClient, s.tokenizer, s.parser, s.normalizer, s.eventCache, s.calRepo, s.eventRepo, s.userAgent)
		if err := s.EnqueueTask(processTask); err != nil {
			slog.Warn("Failed to enqueue SyncCalendarTask", "calendar", config.Name, "error", err)
		}
	}
}

func (s *Scheduler) enqueueTasks() {
	configs := s.configCache.GetEnabledConfigs()
	if len(configs) == 0 {
		slog.Debug("No enabled calendar configurations found")
		return
	}

	slog.Debug("Processing enabled calendar configurations for task scheduling", "count", len(configs))

	for _, config := range configs {
		cal, err := s.calRepo.GetCalendar(config.Name)
		if err != nil {
			slog.Warn("Failed to get calendar from database, skipping", "calendar", config.Name, "error", err)
			continue
		}
		if cal == nil {
			slog.Warn("Calendar not found in database, skipping", "calendar", config.Name)
			continue
		}

		now := time.Now().UTC()
		if cal.NextSyncAt != nil && cal.NextSyncAt.After(now) {
			slog.Debug("Calendar not due for sync yet", "calendar", config.Name, "next_sync_at", cal.NextSyncAt)
			continue
		}

		processTask := NewSyncCalendarTask(config.Name, config, s.httpClient, s.tokenizer, s.parser, s.normalizer, s.eventCache, s.calRepo, s.eventRepo, s.userAgent)
		if err := s.EnqueueTask(processTask); err != nil {
			slog.Warn("Failed to enqueue SyncCalendarTask", "calendar", config.Name, "error", err)
		}
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "calendar", task.GetCalendarName(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
