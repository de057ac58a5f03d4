package database

import (
	"time"

	"github.com/avoronov/cal-comb/app/calendar"
)

type CalendarRepository interface {
	GetCalendar(name string) (*Calendar, error)
	GetCalendarCount() (int, error)

	UpsertCalendar(name, url, label string) error
	UpdateSyncStatus(name string, lastSynced, nextSync time.Time) error
}

type EventRepository interface {
	GetEvents(calendarName string, limit int) ([]calendar.NormalizedEvent, error)
	GetEventCount(calendarName string) (int, error)
	GetEventStats(calendarName string) (total int, cancelled int, conference int, err error)

	ReplaceEvents(calendarName string, events []calendar.NormalizedEvent) error
}
