package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ CalendarRepository = (*calendarRepository)(nil)

type calendarRepository struct {
	db *DB
}

func NewCalendarRepository(db *DB) CalendarRepository {
	return &calendarRepository{db: db}
}

// UpsertCalendar registers a calendar from its configuration, updating the
// URL and label when the configuration changed.
func (r *calendarRepository) UpsertCalendar(name, url, label string) error {
	_, err := r.db.Exec(`
		INSERT INTO calendars (name, url, label)
		VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			url = excluded.url,
			label = excluded.label,
			updated_at = CURRENT_TIMESTAMP
	`, name, url, label)

	if err != nil {
		return fmt.Errorf("failed to upsert calendar: %w", err)
	}

	return nil
}

// UpdateSyncStatus records a successful sync and schedules the next one.
func (r *calendarRepository) UpdateSyncStatus(name string, lastSynced, nextSync time.Time) error {
	_, err := r.db.Exec(`
		UPDATE calendars
		SET last_synced_at = ?, next_sync_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE name = ?
	`, lastSynced, nextSync, name)

	if err != nil {
		return fmt.Errorf("failed to update sync status: %w", err)
	}

	return nil
}

func (r *calendarRepository) GetCalendar(name string) (*Calendar, error) {
	var cal Calendar
	err := r.db.QueryRow(`
		SELECT name, url, label, last_synced_at, next_sync_at, created_at, updated_at
		FROM calendars
		WHERE name = ?
	`, name).Scan(
		&cal.Name, &cal.URL, &cal.Label,
		&cal.LastSyncedAt, &cal.NextSyncAt,
		&cal.CreatedAt, &cal.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar: %w", err)
	}

	return &cal, nil
}

func (r *calendarRepository) GetCalendarCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM calendars").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get calendar count: %w", err)
	}
	return count, nil
}
