package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/avoronov/cal-comb/app/calendar"
	"github.com/avoronov/cal-comb/app/database"
)

type SyncCalendarTask struct {
	Task
	CalendarConfig *calendar.Config
	httpClient     *http.Client
	tokenizer      *calendar.Tokenizer
	parser         *calendar.Parser
	normalizer     *calendar.Normalizer
	eventCache     *calendar.EventCache
	calRepo        database.CalendarRepository
	eventRepo      database.EventRepository
	userAgent      string
}

func NewSyncCalendarTask(name string, config *calendar.Config, httpClient *http.Client,
	tokenizer *calendar.Tokenizer, parser *calendar.Parser, normalizer *calendar.Normalizer,
	eventCache *calendar.EventCache, calRepo database.CalendarRepository,
	eventRepo database.EventRepository, userAgent string) *SyncCalendarTask {
	return &SyncCalendarTask{
		Task:           NewTask(TaskTypeSyncCalendar, name),
		CalendarConfig: config,
		httpClient:     httpClient,
		tokenizer:      tokenizer,
		parser:         parser,
		normalizer:     normalizer,
		eventCache:     eventCache,
		calRepo:        calRepo,
		eventRepo:      eventRepo,
		userAgent:      userAgent,
	}
}

// Execute fetches the calendar feed and runs the full pipeline. A fetch
// failure aborts before any parsing, leaving cache and storage untouched.
// Parse-level problems never fail the task; dropped blocks are accounted
// and logged.
func (t *SyncCalendarTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.CalendarConfig.Settings.Enabled {
		slog.Debug("Calendar disabled, skipping", "calendar", t.CalendarName)
		return nil
	}

	data, err := t.fetchFeed(ctx, t.CalendarConfig.URL)
	if err != nil {
		return fmt.Errorf("failed to fetch calendar feed: %w", err)
	}

	blocks := t.tokenizer.Run(data)

	entries, skipped := t.parser.Run(blocks)
	for _, skip := range skipped {
		slog.Debug("Block dropped", "calendar", t.CalendarName, "block", skip.BlockIndex, "reason", skip.Reason)
	}

	events := make([]calendar.NormalizedEvent, 0, len(entries))
	droppedDates := 0
	duplicateCount := 0
	seenIDs := make(map[string]bool, len(entries))
	for _, entry := range entries {
		event, err := t.normalizer.Run(entry, t.CalendarConfig.Label)
		if err != nil {
			droppedDates++
			slog.Debug("Entry dropped", "calendar", t.CalendarName, "uid", entry.UID, "reason", err)
			continue
		}

		// Recurrence-override blocks repeat the UID of their series; the
		// first occurrence wins so cache and storage stay in step.
		if seenIDs[event.ID] {
			duplicateCount++
			slog.Debug("Duplicate event dropped", "calendar", t.CalendarName, "id", event.ID)
			continue
		}
		seenIDs[event.ID] = true

		events = append(events, event)
	}

	if max := t.CalendarConfig.Settings.MaxEvents; len(events) > max {
		events = events[:max]
	}

	t.eventCache.Store(t.CalendarName, events)

	if err := t.eventRepo.ReplaceEvents(t.CalendarName, events); err != nil {
		return fmt.Errorf("failed to store events: %w", err)
	}

	now := time.Now().UTC()
	nextSync := now.Add(time.Duration(t.CalendarConfig.Settings.RefreshInterval) * time.Second)
	if err := t.calRepo.UpdateSyncStatus(t.CalendarName, now, nextSync); err != nil {
		return fmt.Errorf("failed to update sync status: %w", err)
	}

	slog.Info("Task completed",
		"type", "SyncCalendar",
		"calendar", t.CalendarName,
		"duration", t.GetDuration(),
		"blocks", len(blocks),
		"skipped", len(skipped),
		"bad_dates", droppedDates,
		"duplicates", duplicateCount,
		"events", len(events))

	return nil
}

func (t *SyncCalendarTask) fetchFeed(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(t.CalendarConfig.Settings.Timeout)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
