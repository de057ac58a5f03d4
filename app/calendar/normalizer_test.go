package calendar

import (
	"reflect"
	"testing"
)

func TestNormalizerTimedEvent(t *testing.T) {
	entry := ParsedEntry{
		UID:         "evt-100",
		Summary:     "Design Review",
		Description: "Join: https://meet.google.com/abc-defg-hij",
		StartToken:  "20260310T143000",
		EndToken:    "20260310T153000",
		Organizer:   "host@example.com",
		Attendees:   []string{"alice@example.com", "bob@example.com"},
	}

	event, err := NewNormalizer().Run(entry, "work")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if event.ID != "work-evt-100" {
		t.Errorf("Expected label-prefixed ID, got: %q", event.ID)
	}
	if event.Date != "2026-03-10" {
		t.Errorf("Unexpected date: %q", event.Date)
	}
	if event.Time != "14:30" {
		t.Errorf("Unexpected time: %q", event.Time)
	}
	if event.DurationMinutes != 60 {
		t.Errorf("Expected 60 minute duration, got: %d", event.DurationMinutes)
	}
	if event.Kind != EventKind {
		t.Errorf("Unexpected kind: %q", event.Kind)
	}
	if event.JoinURL != "https://meet.google.com/abc-defg-hij" {
		t.Errorf("Unexpected join URL: %q", event.JoinURL)
	}
	if event.MeetingType != MeetingTypeVideoCall {
		t.Errorf("Expected video_call, got: %q", event.MeetingType)
	}
	if event.Status != StatusScheduled {
		t.Errorf("Expected scheduled status, got: %q", event.Status)
	}
	if event.Organizer != "host@example.com" {
		t.Errorf("Unexpected organizer: %q", event.Organizer)
	}
	if !reflect.DeepEqual(event.Attendees, []string{"alice@example.com", "bob@example.com"}) {
		t.Errorf("Unexpected attendees: %v", event.Attendees)
	}
}

func TestNormalizerAllDayEvent(t *testing.T) {
	entry := ParsedEntry{
		UID:        "evt-200",
		Summary:    "Company Holiday",
		StartToken: "20260704",
	}

	event, err := NewNormalizer().Run(entry, "work")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if event.Date != "2026-07-04" {
		t.Errorf("Unexpected date: %q", event.Date)
	}
	if event.Time != "" {
		t.Errorf("Expected no time on an all-day event, got: %q", event.Time)
	}
	if event.DurationMinutes != 0 {
		t.Errorf("Expected no duration, got: %d", event.DurationMinutes)
	}
}

func TestNormalizerPhysicalLocation(t *testing.T) {
	entry := ParsedEntry{
		UID:        "evt-300",
		Summary:    "Quarterly Planning",
		StartToken: "20260401T090000",
		Location:   "Conference Room A",
	}

	event, err := NewNormalizer().Run(entry, "work")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if event.MeetingType != MeetingTypeInPerson {
		t.Errorf("Expected in_person for a room location, got: %q", event.MeetingType)
	}
	if event.IsConferenceMeeting {
		t.Error("Expected no conference meeting flag for a room location")
	}
}

func TestNormalizerVirtualLocationKeyword(t *testing.T) {
	entry := ParsedEntry{
		UID:        "evt-310",
		Summary:    "Standup",
		StartToken: "20260401T100000",
		Location:   "Zoom",
	}

	event, err := NewNormalizer().Run(entry, "work")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if event.MeetingType != MeetingTypeVideoCall {
		t.Errorf("Expected video_call for a platform-named location, got: %q", event.MeetingType)
	}
}

func TestNormalizerNoLocationDefaultsToVideoCall(t *testing.T) {
	entry := ParsedEntry{
		UID:        "evt-320",
		Summary:    "1:1",
		StartToken: "20260401T110000",
	}

	event, err := NewNormalizer().Run(entry, "work")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if event.MeetingType != MeetingTypeVideoCall {
		t.Errorf("Expected video_call default for empty location, got: %q", event.MeetingType)
	}
}

func TestNormalizerCancelledStatus(t *testing.T) {
	normalizer := NewNormalizer()

	cancelled, err := normalizer.Run(ParsedEntry{
		UID:         "evt-400",
		Summary:     "Retro",
		StartToken:  "20260401T120000",
		StatusToken: "cancelled",
	}, "work")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Errorf("Expected cancelled status regardless of case, got: %q", cancelled.Status)
	}

	tentative, err := normalizer.Run(ParsedEntry{
		UID:         "evt-401",
		Summary:     "Retro",
		StartToken:  "20260401T120000",
		StatusToken: "TENTATIVE",
	}, "work")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if tentative.Status != StatusScheduled {
		t.Errorf("Expected scheduled for non-cancelled status token, got: %q", tentative.Status)
	}
}

func TestNormalizerNegativeDurationOmitted(t *testing.T) {
	entry := ParsedEntry{
		UID:        "evt-500",
		Summary:    "Broken Range",
		StartToken: "20260401T120000",
		EndToken:   "20260401T110000",
	}

	event, err := NewNormalizer().Run(entry, "work")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if event.DurationMinutes != 0 {
		t.Errorf("Expected non-positive duration to be dropped, got: %d", event.DurationMinutes)
	}
}

func TestNormalizerMalformedEndTokenDropsDurationOnly(t *testing.T) {
	entry := ParsedEntry{
		UID:        "evt-510",
		Summary:    "Partial Data",
		StartToken: "20260401T120000",
		EndToken:   "garbage",
	}

	event, err := NewNormalizer().Run(entry, "work")
	if err != nil {
		t.Fatalf("Expected malformed end token to be tolerated, got: %v", err)
	}

	if event.DurationMinutes != 0 {
		t.Errorf("Expected no duration, got: %d", event.DurationMinutes)
	}
	if event.Date != "2026-04-01" {
		t.Errorf("Expected event to survive, got date: %q", event.Date)
	}
}

func TestNormalizerRejectsUnusableStartToken(t *testing.T) {
	_, err := NewNormalizer().Run(ParsedEntry{
		UID:        "evt-600",
		Summary:    "Bad Start",
		StartToken: "not-a-date",
	}, "work")

	if err == nil {
		t.Error("Expected error for unusable start token")
	}
}

func TestPipelineIsDeterministic(t *testing.T) {
	feed := []byte("BEGIN:VCALENDAR\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:evt-700\r\n" +
		"SUMMARY:Weekly Sync\r\n" +
		"DTSTART:20260310T143000Z\r\n" +
		"DTEND:20260310T150000Z\r\n" +
		"DESCRIPTION:Join Zoom Meeting: https://corp.zoom.us/j/98765432100\r\n" +
		"STATUS:CONFIRMED\r\n" +
		"END:VEVENT\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:evt-701\r\n" +
		"SUMMARY:Offsite\r\n" +
		"DTSTART:20260311\r\n" +
		"LOCATION:Conference Room A\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n")

	run := func() []NormalizedEvent {
		blocks := NewTokenizer().Run(feed)
		entries, _ := NewParser().Run(blocks)

		normalizer := NewNormalizer()
		events := make([]NormalizedEvent, 0, len(entries))
		for _, entry := range entries {
			event, err := normalizer.Run(entry, "work")
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			events = append(events, event)
		}
		return events
	}

	first := run()
	second := run()

	if len(first) != 2 {
		t.Fatalf("Expected 2 events, got: %d", len(first))
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical output across runs on the same input")
	}
	if first[0].JoinURL != "https://corp.zoom.us/j/98765432100" {
		t.Errorf("Unexpected join URL: %q", first[0].JoinURL)
	}
	if first[1].MeetingType != MeetingTypeInPerson {
		t.Errorf("Expected in_person for room location, got: %q", first[1].MeetingType)
	}
}
