package calendar

import (
	"testing"
)

func TestExtractorFindsZoomJoinURL(t *testing.T) {
	description := "Weekly sync.\nJoin Zoom Meeting: https://corp.zoom.us/j/98765432100?pwd=aBcD1234 (passcode in invite)"

	meta := NewMeetingLinkExtractor().Run("", description)

	if !meta.IsConferenceMeeting {
		t.Error("Expected conference meeting flag")
	}
	if meta.JoinURL != "https://corp.zoom.us/j/98765432100?pwd=aBcD1234" {
		t.Errorf("Expected exact matched substring, got: %q", meta.JoinURL)
	}
}

func TestExtractorFindsGoogleMeetURL(t *testing.T) {
	meta := NewMeetingLinkExtractor().Run("", "Video call: https://meet.google.com/abc-defg-hij")

	if meta.JoinURL != "https://meet.google.com/abc-defg-hij" {
		t.Errorf("Unexpected join URL: %q", meta.JoinURL)
	}
	if !meta.IsConferenceMeeting {
		t.Error("Expected conference meeting flag")
	}
}

func TestExtractorFirstPatternWins(t *testing.T) {
	// Both a Zoom and a Meet link present: the pattern table is visited in
	// priority order, so the Zoom match is kept.
	description := "Primary https://corp.zoom.us/j/123456789 fallback https://meet.google.com/abc-defg-hij"

	meta := NewMeetingLinkExtractor().Run("", description)

	if meta.JoinURL != "https://corp.zoom.us/j/123456789" {
		t.Errorf("Expected Zoom link to take priority, got: %q", meta.JoinURL)
	}
}

func TestExtractorMeetingAndConferenceIDs(t *testing.T) {
	description := "Meeting ID: 987 6543 2100\nConference ID: 445 566"

	meta := NewMeetingLinkExtractor().Run("", description)

	if meta.MeetingID != "98765432100" {
		t.Errorf("Expected whitespace stripped from meeting ID, got: %q", meta.MeetingID)
	}
	if meta.ConferenceID != "445566" {
		t.Errorf("Expected whitespace stripped from conference ID, got: %q", meta.ConferenceID)
	}
}

func TestExtractorTextualFallback(t *testing.T) {
	meta := NewMeetingLinkExtractor().Run("Microsoft Teams Meeting", "Dial-in details in the invite")

	if !meta.IsConferenceMeeting {
		t.Error("Expected indicator phrase to set conference meeting flag")
	}
	if meta.JoinURL != "" {
		t.Errorf("Expected no join URL from textual fallback, got: %q", meta.JoinURL)
	}
}

func TestExtractorDefaultsWhenNothingMatches(t *testing.T) {
	meta := NewMeetingLinkExtractor().Run("Conference Room A", "Quarterly planning with the design team")

	if meta.IsConferenceMeeting {
		t.Error("Expected no conference meeting flag")
	}
	if meta.JoinURL != "" || meta.MeetingID != "" || meta.ConferenceID != "" {
		t.Errorf("Expected zero-valued metadata, got: %+v", meta)
	}
}

func TestExtractorEmptyInput(t *testing.T) {
	meta := NewMeetingLinkExtractor().Run("", "")

	if meta.IsConferenceMeeting {
		t.Error("Expected default false for empty input")
	}
}
