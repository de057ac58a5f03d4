package database

import (
	"encoding/json"
	"fmt"

	"github.com/avoronov/cal-comb/app/calendar"
)

var _ EventRepository = (*eventRepository)(nil)

type eventRepository struct {
	db *DB
}

func NewEventRepository(db *DB) EventRepository {
	return &eventRepository{db: db}
}

// ReplaceEvents swaps the full event list for a calendar in one
// transaction. There is no incremental merge: the pipeline recreates every
// event per pass, so persistence mirrors the cache's wholesale-replace
// lifecycle.
func (r *eventRepository) ReplaceEvents(calendarName string, events []calendar.NormalizedEvent) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM events WHERE calendar_name = ?`, calendarName); err != nil {
		return fmt.Errorf("failed to clear events: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO events (
			id, calendar_name, title, event_date, event_time, kind,
			duration_minutes, location, organizer, attendees, meeting_type,
			status, source_label, join_url, is_conference_meeting, position
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	// Feeds routinely repeat a UID (recurrence overrides share the UID of
	// the series), which collides with the primary key. First occurrence
	// wins; later ones are skipped rather than failing the whole pass.
	inserted := make(map[string]bool, len(events))
	position := 0

	for _, event := range events {
		if inserted[event.ID] {
			continue
		}
		inserted[event.ID] = true

		attendees := event.Attendees
		if attendees == nil {
			attendees = []string{}
		}
		attendeesJSON, err := json.Marshal(attendees)
		if err != nil {
			return fmt.Errorf("failed to encode attendees for event %s: %w", event.ID, err)
		}

		_, err = stmt.Exec(
			event.ID, calendarName, event.Title, event.Date, event.Time, event.Kind,
			event.DurationMinutes, event.Location, event.Organizer, string(attendeesJSON),
			string(event.MeetingType), string(event.Status), event.SourceLabel,
			event.JoinURL, event.IsConferenceMeeting, position,
		)
		if err != nil {
			return fmt.Errorf("failed to insert event %s: %w", event.ID, err)
		}
		position++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit events: %w", err)
	}

	return nil
}

// GetEvents returns the persisted events in pipeline order.
func (r *eventRepository) GetEvents(calendarName string, limit int) ([]calendar.NormalizedEvent, error) {
	rows, err := r.db.Query(`
		SELECT id, title, event_date, event_time, kind, duration_minutes,
		       location, organizer, attendees, meeting_type, status,
		       source_label, join_url, is_conference_meeting
		FROM events
		WHERE calendar_name = ?
		ORDER BY position
		LIMIT ?
	`, calendarName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []calendar.NormalizedEvent
	for rows.Next() {
		var event calendar.NormalizedEvent
		var attendeesJSON, meetingType, status string
		err := rows.Scan(
			&event.ID, &event.Title, &event.Date, &event.Time, &event.Kind,
			&event.DurationMinutes, &event.Location, &event.Organizer,
			&attendeesJSON, &meetingType, &status,
			&event.SourceLabel, &event.JoinURL, &event.IsConferenceMeeting,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}

		var attendees []string
		if err := json.Unmarshal([]byte(attendeesJSON), &attendees); err != nil {
			return nil, fmt.Errorf("failed to decode attendees for event %s: %w", event.ID, err)
		}
		if len(attendees) > 0 {
			event.Attendees = attendees
		}

		event.MeetingType = calendar.MeetingType(meetingType)
		event.Status = calendar.EventStatus(status)
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, nil
}

func (r *eventRepository) GetEventCount(calendarName string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM events WHERE calendar_name = ?", calendarName).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get event count: %w", err)
	}
	return count, nil
}

func (r *eventRepository) GetEventStats(calendarName string) (int, int, int, error) {
	var total, cancelled, conference int
	err := r.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN status = 'cancelled' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN is_conference_meeting THEN 1 ELSE 0 END), 0)
		FROM events
		WHERE calendar_name = ?
	`, calendarName).Scan(&total, &cancelled, &conference)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to get event stats: %w", err)
	}
	return total, cancelled, conference, nil
}
