package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avoronov/cal-comb/app/calendar"
	"github.com/avoronov/cal-comb/app/database"
)

type SyncCalendarConfigTask struct {
	Task
	CalendarConfig *calendar.Config
	calRepo        database.CalendarRepository
}

func NewSyncCalendarConfigTask(name string, config *calendar.Config, calRepo database.CalendarRepository) *SyncCalendarConfigTask {
	return &SyncCalendarConfigTask{
		Task:           NewTask(TaskTypeSyncCalendarConfig, name),
		CalendarConfig: config,
		calRepo:        calRepo,
	}
}

func (t *SyncCalendarConfigTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	err := t.calRepo.UpsertCalendar(
		t.CalendarConfig.Name,
		t.CalendarConfig.URL,
		t.CalendarConfig.Label)
	if err != nil {
		slog.Error("Task failed", "type", "SyncCalendarConfig", "calendar", t.CalendarName, "error", err)
		return fmt.Errorf("failed to sync calendar config to database: %w", err)
	}

	slog.Info("Task completed",
		"type", "SyncCalendarConfig",
		"calendar", t.CalendarName,
		"duration", t.GetDuration())

	return nil
}
