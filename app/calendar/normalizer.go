package calendar

import (
	"fmt"
	"math"
	"strings"
)

// videoPlatformKeywords classifies a location as virtual even when the
// conferencing extractor found no join URL, e.g. a location of just "Zoom".
var videoPlatformKeywords = []string{
	"zoom",
	"google meet",
	"meet.google.com",
	"microsoft teams",
	"webex",
	"skype",
	"hangout",
}

const cancelledToken = "CANCELLED"

type Normalizer struct {
	dates      *DateNormalizer
	conference *MeetingLinkExtractor
}

func NewNormalizer() *Normalizer {
	return &Normalizer{
		dates:      NewDateNormalizer(),
		conference: NewMeetingLinkExtractor(),
	}
}

// Run assembles one display-ready event from a parsed entry. The only
// failure mode is an unusable start token; everything else degrades to a
// field-level default.
func (n *Normalizer) Run(entry ParsedEntry, sourceLabel string) (NormalizedEvent, error) {
	start, err := n.dates.Run(entry.StartToken)
	if err != nil {
		return NormalizedEvent{}, fmt.Errorf("unusable start token: %w", err)
	}

	event := NormalizedEvent{
		ID:          sourceLabel + "-" + entry.UID,
		Title:       entry.Summary,
		Date:        start.Format("2006-01-02"),
		Kind:        EventKind,
		Location:    entry.Location,
		Organizer:   entry.Organizer,
		Attendees:   entry.Attendees,
		Status:      StatusScheduled,
		SourceLabel: sourceLabel,
	}

	// Midnight starts read as all-day entries and carry no clock time.
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		event.Time = start.Format("15:04")
	}

	if entry.EndToken != "" {
		// A missing or malformed end token drops the duration, not the event.
		if end, endErr := n.dates.Run(entry.EndToken); endErr == nil {
			if minutes := int(math.Round(end.Sub(start).Minutes())); minutes > 0 {
				event.DurationMinutes = minutes
			}
		}
	}

	meta := n.conference.Run(entry.Location, entry.Description)
	event.JoinURL = meta.JoinURL
	event.IsConferenceMeeting = meta.IsConferenceMeeting

	switch {
	case meta.IsConferenceMeeting || n.locationNamesPlatform(entry.Location):
		event.MeetingType = MeetingTypeVideoCall
	case entry.Location != "":
		event.MeetingType = MeetingTypeInPerson
	default:
		// No location at all: assume virtual rather than unclassified.
		event.MeetingType = MeetingTypeVideoCall
	}

	if strings.EqualFold(entry.StatusToken, cancelledToken) {
		event.Status = StatusCancelled
	}

	return event, nil
}

func (n *Normalizer) locationNamesPlatform(location string) bool {
	if location == "" {
		return false
	}

	lowered := strings.ToLower(location)
	for _, keyword := range videoPlatformKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
